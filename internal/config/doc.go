// Package config provides configuration loading for the client360 host.
//
// Configuration is read from client360.json in the working directory, or
// from the file passed with --config. Files ending in .yaml or .yml are
// decoded as YAML with the same keys. Missing values fall back to defaults,
// and the CLIENT360_ADDR and CLIENT360_LOG_LEVEL environment variables
// override the file.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 8080,
//	    "shutdownTimeout": "10s"
//	  },
//	  "shell": {
//	    "dir": "public",
//	    "index": "index.html",
//	    "s3": {
//	      "bucket": "client360-shell",
//	      "prefix": "releases/current",
//	      "region": "us-east-1"
//	    }
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "json"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := cfg.Logger(os.Stderr)
//	fmt.Println("Listening on", cfg.Address())
package config
