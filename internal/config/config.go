package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/client360/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "client360.json"

	// DefaultPort is the default listen port.
	DefaultPort = 8080

	// DefaultHost is the default listen host.
	DefaultHost = "localhost"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "10s"

	// DefaultShellDir is the default local shell directory.
	DefaultShellDir = "public"

	// DefaultIndex is the shell document served for every matched route.
	DefaultIndex = "index.html"

	// DefaultMetricsPath is where Prometheus metrics are exposed.
	DefaultMetricsPath = "/metrics"

	// DefaultTracerName names the OpenTelemetry tracer.
	DefaultTracerName = "client360"

	// EnvAddr overrides the listen address ("host:port").
	EnvAddr = "CLIENT360_ADDR"

	// EnvLogLevel overrides the log level.
	EnvLogLevel = "CLIENT360_LOG_LEVEL"
)

// Config represents the complete client360 configuration.
type Config struct {
	// Server contains listener settings.
	Server ServerConfig `json:"server" yaml:"server"`

	// Shell contains the client shell source.
	Shell ShellConfig `json:"shell" yaml:"shell"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`

	// Log contains logging settings.
	Log LogConfig `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains listener settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// ShutdownTimeout is how long graceful shutdown waits (e.g., "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty"`
}

// ShellConfig selects where the client shell is served from.
// When S3.Bucket is set the bucket wins over Dir.
type ShellConfig struct {
	// Dir is the local directory containing the shell.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Index is the shell document name.
	Index string `json:"index,omitempty" yaml:"index,omitempty"`

	// S3 points the shell at a bucket.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config contains bucket settings for a remote shell.
type S3Config struct {
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes metrics and records navigation counters.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the metrics endpoint.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Namespace prefixes metric names (default "client360").
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled wraps each navigation in a span.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// TracerName is the instrumentation name.
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Shell: ShellConfig{
			Dir:   DefaultShellDir,
			Index: DefaultIndex,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      DefaultMetricsPath,
			Namespace: "client360",
		},
		Tracing: TracingConfig{
			Enabled:    true,
			TracerName: DefaultTracerName,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads client360.json from dir. A missing file is not an error: the
// defaults are returned with environment overrides applied.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := New()
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. The file must
// exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.New("E101").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
		return nil
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		e := errors.New("E101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")

		var syntax *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case stderrors.As(err, &syntax):
			line, col := position(data, syntax.Offset)
			e = e.WithLocation(path, line, col)
		case stderrors.As(err, &typeErr):
			line, col := position(data, typeErr.Offset)
			e = e.WithLocation(path, line, col)
		}
		return e
	}
	return nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - (bytes.LastIndexByte(before, '\n') + 1)
	if col < 1 {
		col = 1
	}
	return line, col
}

// Path returns the path where the config was loaded from, or "" for
// defaults.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Shell.Dir == "" {
		c.Shell.Dir = DefaultShellDir
	}
	if c.Shell.Index == "" {
		c.Shell.Index = DefaultIndex
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "client360"
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// ApplyEnv applies environment overrides using lookup (os.LookupEnv in
// production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if addr, ok := lookup(EnvAddr); ok && addr != "" {
		if err := c.SetAddress(addr); err != nil {
			return err
		}
	}
	if level, ok := lookup(EnvLogLevel); ok && level != "" {
		c.Log.Level = level
	}
	return nil
}

// SetAddress sets host and port from "host:port". An empty host keeps the
// configured one.
func (c *Config) SetAddress(addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("E102").
			WithDetail(fmt.Sprintf("Address %q is not host:port", addr)).
			Wrap(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return errors.New("E102").
			WithDetail(fmt.Sprintf("Port %q is not a number", portStr))
	}
	if host != "" {
		c.Server.Host = host
	}
	c.Server.Port = port
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetail("Port must be between 0 and 65535")
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return errors.New("E102").
			WithDetail(fmt.Sprintf("shutdownTimeout %q is not a duration", c.Server.ShutdownTimeout)).
			WithSuggestion(`Use a Go duration such as "10s" or "1m"`)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return errors.New("E102").
			WithDetail(err.Error()).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E102").
			WithDetail(fmt.Sprintf("Log format %q is not supported", c.Log.Format)).
			WithSuggestion(`Use "text" or "json"`)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E102").
			WithDetail("Metrics path must start with /")
	}
	if strings.ContainsAny(c.Shell.Index, `/\`) {
		return errors.New("E102").
			WithDetail("Shell index must be a file name, not a path")
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ShutdownTimeout returns the parsed graceful shutdown timeout.
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.ShutdownTimeout)
}

// UsesS3 reports whether the shell is served from a bucket.
func (c *Config) UsesS3() bool {
	return c.Shell.S3.Bucket != ""
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Logger builds the process logger writing to w. An invalid level falls
// back to info; Validate reports it.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
