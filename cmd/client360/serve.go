package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/client360/internal/config"
	"github.com/vango-dev/client360/internal/errors"
	"github.com/vango-dev/client360/pkg/dashboard"
	navmw "github.com/vango-dev/client360/pkg/middleware"
	"github.com/vango-dev/client360/pkg/navserver"
	"github.com/vango-dev/client360/pkg/router"
	"github.com/vango-dev/client360/pkg/shell"
)

func serveCmd(root *rootOptions) *cobra.Command {
	var (
		addr      string
		shellDir  string
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard",
		Long: `Serve the dashboard shell and navigation sessions.

Every path that matches a route answers with the shell document; any
other path is a 404. Browsers open a navigation session on /_nav.

Endpoints:
  /_nav        WebSocket navigation session
  /_resolve    Resolve ?path= to a route
  /_routes     The route table
  /assets/*    Shell assets
  /healthz     Health check
  /metrics     Prometheus metrics (when enabled)

Examples:
  client360 serve
  client360 serve --addr=0.0.0.0:9000
  client360 serve -c deploy/client360.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			if addr != "" {
				if err := cfg.SetAddress(addr); err != nil {
					return err
				}
			}
			if shellDir != "" {
				cfg.Shell.Dir = shellDir
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if logFormat != "" {
				cfg.Log.Format = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := buildServer(cmd.Context(), cfg, cfg.Logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if err := srv.ListenAndServe(ctx); err != nil {
				return errors.New("E400").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address as host:port (default from config)")
	cmd.Flags().StringVar(&shellDir, "shell", "", "Directory containing the client shell (default from config)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: text or json")

	return cmd
}

// buildServer wires the route table, shell source and observability stack
// described by cfg.
func buildServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*navserver.Server, error) {
	src, err := shellSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.ShutdownTimeout()
	if err != nil {
		return nil, errors.New("E102").Wrap(err)
	}

	serverCfg := navserver.Config{
		Address:         cfg.Address(),
		Index:           cfg.Shell.Index,
		ShutdownTimeout: timeout,
	}

	opts := []navserver.Option{
		navserver.WithLogger(logger),
		navserver.WithBreadcrumbs(func(m *router.MatchResult) (any, error) {
			return dashboard.Breadcrumbs(m)
		}),
	}

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := navmw.NewMetrics(
			navmw.WithNamespace(cfg.Metrics.Namespace),
			navmw.WithRegistry(registry),
		)
		serverCfg.MetricsPath = cfg.Metrics.Path
		opts = append(opts, navserver.WithMetrics(metrics, registry))
	}

	var mw []router.Middleware
	if cfg.Tracing.Enabled {
		mw = append(mw, navmw.OpenTelemetry(navmw.WithTracerName(cfg.Tracing.TracerName)))
	}
	mw = append(mw, navmw.Logging(logger))
	opts = append(opts, navserver.WithConfig(serverCfg), navserver.WithNavigationMiddleware(mw...))

	return navserver.New(dashboard.Table(), src, opts...), nil
}

// shellSource returns the bucket source when one is configured, otherwise
// the local directory. The index document must be readable at start-up.
func shellSource(ctx context.Context, cfg *config.Config) (shell.Source, error) {
	var (
		src   shell.Source
		where string
	)
	if cfg.UsesS3() {
		s3cfg := cfg.Shell.S3
		client := shell.NewS3Client(shell.S3Options{Region: s3cfg.Region, Endpoint: s3cfg.Endpoint})
		src = shell.NewS3Source(client, s3cfg.Bucket, s3cfg.Prefix)
		where = fmt.Sprintf("s3://%s/%s", s3cfg.Bucket, s3cfg.Prefix)
	} else {
		src = shell.NewDirSource(cfg.Shell.Dir)
		where = cfg.Shell.Dir
	}

	asset, err := src.Open(ctx, cfg.Shell.Index)
	if err != nil {
		return nil, errors.New("E401").
			WithDetail(fmt.Sprintf("Cannot open %s in %s.", cfg.Shell.Index, where)).
			Wrap(err)
	}
	asset.Body.Close()
	return src, nil
}
