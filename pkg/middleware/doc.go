// Package middleware provides navigation middleware for client360 navigators.
//
// This package includes:
//   - OpenTelemetry tracing of every transition
//   - Prometheus navigation metrics
//   - Structured logging of transitions
//
// # OpenTelemetry Middleware
//
// One span is started per transition, carrying the path, the direction and,
// once matched, the route name and view. The span context replaces
// Navigation.Context, so the view mounter inherits the trace.
//
//	nav := router.NewNavigator(table, mounter,
//	    router.WithMiddleware(middleware.OpenTelemetry()),
//	)
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("client360-host"),
//	    middleware.WithNavigationFilter(func(nav *router.Navigation) bool {
//	        return nav.Direction != router.DirectionReplace
//	    }),
//	)
//
// # Prometheus Metrics
//
// Metrics are registered once per Metrics value, so several navigators (one
// per WebSocket session) share the same collectors:
//
//   - client360_navigations_total{route,direction,outcome}
//   - client360_navigation_duration_seconds{direction}
//   - client360_not_found_total
//   - client360_active_sessions
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	nav := router.NewNavigator(table, mounter, router.WithMiddleware(m.Middleware()))
//
// Route labels are route names, never raw paths, so cardinality is bounded by
// the route table.
//
// # Logging
//
//	router.WithMiddleware(middleware.Logging(logger))
//
// logs one line per transition: Info on success, Warn on NotFound, Error on
// any other failure.
package middleware
