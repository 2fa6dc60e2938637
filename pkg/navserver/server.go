package navserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	navmw "github.com/vango-dev/client360/pkg/middleware"
	"github.com/vango-dev/client360/pkg/router"
	"github.com/vango-dev/client360/pkg/shell"
)

// Config configures the server.
type Config struct {
	// Address is the listen address (default ":8080").
	Address string

	// Index is the shell document served for matched routes.
	Index string

	// MetricsPath is where metrics are exposed. Empty disables the endpoint.
	MetricsPath string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	ReadHeaderTimeout time.Duration

	// MaxMessageSize limits a single WebSocket client frame.
	MaxMessageSize int64

	// WriteTimeout bounds a single WebSocket frame write.
	WriteTimeout time.Duration

	// CheckOrigin validates WebSocket origins. Default: same host.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Address:           ":8080",
		Index:             "index.html",
		MetricsPath:       "/metrics",
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxMessageSize:    64 * 1024,
		WriteTimeout:      10 * time.Second,
	}
}

// Server is the history-mode host.
type Server struct {
	config Config
	table  *router.Table
	shell  shell.Source
	logger *slog.Logger

	metrics    *navmw.Metrics
	gatherer   prometheus.Gatherer
	navMW      []router.Middleware
	crumbs     func(*router.MatchResult) (any, error)
	upgrader   websocket.Upgrader
	httpServer *http.Server

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the server configuration. Zero fields keep their
// defaults.
func WithConfig(c Config) Option {
	return func(s *Server) {
		d := s.config
		if c.Address == "" {
			c.Address = d.Address
		}
		if c.Index == "" {
			c.Index = d.Index
		}
		if c.ShutdownTimeout == 0 {
			c.ShutdownTimeout = d.ShutdownTimeout
		}
		if c.ReadHeaderTimeout == 0 {
			c.ReadHeaderTimeout = d.ReadHeaderTimeout
		}
		if c.MaxMessageSize == 0 {
			c.MaxMessageSize = d.MaxMessageSize
		}
		if c.WriteTimeout == 0 {
			c.WriteTimeout = d.WriteTimeout
		}
		s.config = c
	}
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics records navigation and session metrics into m and exposes
// gatherer on the metrics path.
func WithMetrics(m *navmw.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithNavigationMiddleware adds middleware to every session's navigator.
func WithNavigationMiddleware(mw ...router.Middleware) Option {
	return func(s *Server) {
		s.navMW = append(s.navMW, mw...)
	}
}

// WithBreadcrumbs adds a breadcrumb trail to /_resolve responses.
func WithBreadcrumbs(fn func(*router.MatchResult) (any, error)) Option {
	return func(s *Server) {
		s.crumbs = fn
	}
}

// New creates a server for table, serving the shell from src.
func New(table *router.Table, src shell.Source, opts ...Option) *Server {
	s := &Server{
		config:   DefaultConfig(),
		table:    table,
		shell:    src,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "navserver")
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.config.CheckOrigin,
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	if s.config.MetricsPath != "" {
		r.Method(http.MethodGet, s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/_routes", s.handleRoutes)
	r.Get("/_resolve", s.handleResolve)
	r.Get("/_nav", s.handleNav)
	r.Get("/assets/*", s.handleAsset)
	r.NotFound(s.handleShell)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
	return r
}

// requestLogger logs one line per HTTP request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe listens on the configured address and serves until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	s.httpServer.RegisterOnShutdown(s.closeSessions)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// SessionCount returns the number of open navigation sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) addSession(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
}

func (s *Server) removeSession(sess *Session) {
	s.mu.Lock()
	_, ok := s.sessions[sess.ID]
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	if ok && s.metrics != nil {
		s.metrics.SessionClosed()
	}
}

// closeSessions closes every hijacked WebSocket connection; http.Server
// does not track them.
func (s *Server) closeSessions() {
	s.mu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()

	for _, sess := range open {
		sess.Close()
	}
}
