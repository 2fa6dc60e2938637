package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/client360/internal/config"
	"github.com/vango-dev/client360/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	noColor    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "client360",
		Short: "Client 360 dashboard navigation host",
		Long: `client360 hosts the Client 360 dashboard in history mode.

Every dashboard path resolves against one ordered route table and
serves the client shell. Navigation sessions run over WebSocket:
each transition mounts the matched view and scrolls to the top.

  • 13 routes, first match wins
  • Reverse lookup from route name to path
  • Shell from a local directory or an S3 bucket
  • Prometheus metrics and OpenTelemetry spans per navigation`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a client360.json or .yaml file")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		serveCmd(opts),
		routesCmd(),
		resolveCmd(),
		hrefCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads --config when given, otherwise client360.json from the
// working directory if present.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.Load(".")
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", fmt.Sprintf(format, args...))
}
