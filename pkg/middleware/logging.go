package middleware

import (
	"log/slog"
	"time"

	"github.com/vango-dev/client360/pkg/router"
)

// Logging creates middleware that logs one line per transition.
// A nil logger uses slog.Default().
func Logging(logger *slog.Logger) router.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "navigation")

	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		start := time.Now()
		err := next()

		attrs := []any{
			"path", nav.Target.Path,
			"direction", nav.Direction.String(),
			"duration", time.Since(start),
		}
		if nav.From != "" {
			attrs = append(attrs, "from", nav.From)
		}
		if nav.Result != nil {
			attrs = append(attrs,
				"route", nav.Result.Route.Name,
				"view", string(nav.Result.Route.View))
		}

		switch {
		case err == nil:
			logger.InfoContext(nav.Context, "navigated", attrs...)
		case router.IsNotFound(err):
			logger.WarnContext(nav.Context, "route not found", attrs...)
		default:
			logger.ErrorContext(nav.Context, "navigation failed", append(attrs, "error", err)...)
		}
		return err
	})
}
