package middleware

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/client360/pkg/router"
)

// Default tracer name for client360 navigators.
const defaultTracerName = "client360"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "client360").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// IncludeQuery records the raw query string on the span.
	// Disabled by default; queries may carry identifiers.
	IncludeQuery bool

	// Filter determines which navigations to trace.
	// Return true to trace, false to skip. If nil, all are traced.
	Filter func(nav *router.Navigation) bool

	// AttributeExtractor adds custom attributes for each traced navigation.
	AttributeExtractor func(nav *router.Navigation) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeQuery enables recording the query string.
func WithIncludeQuery(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeQuery = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(nav *router.Navigation) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(nav *router.Navigation) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every transition.
//
// The middleware:
//   - Starts a span per transition with path and direction
//   - Replaces nav.Context with the span context for the mounter
//   - Adds the route name and view once the target has matched
//   - Records errors and sets span status
//
// The tracer comes from the global OpenTelemetry provider unless
// WithTracerProvider is given. Configure it in main() before serving:
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	tracer := config.TracerProvider.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		if config.Filter != nil && !config.Filter(nav) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("client360.path", nav.Target.Path),
			attribute.String("client360.direction", nav.Direction.String()),
		}
		if nav.From != "" {
			attrs = append(attrs, attribute.String("client360.from", nav.From))
		}
		if config.IncludeQuery && nav.Target.Query != "" {
			attrs = append(attrs, attribute.String("client360.query", nav.Target.Query))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(nav)...)
		}

		spanCtx, span := tracer.Start(
			nav.Context,
			fmt.Sprintf("navigate %s", nav.Direction),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		parent := nav.Context
		nav.Context = spanCtx
		err := next()
		nav.Context = parent

		if nav.Result != nil {
			span.SetAttributes(
				attribute.String("client360.route", nav.Result.Route.Name),
				attribute.String("client360.view", string(nav.Result.Route.View)),
				attribute.Int("client360.param_count", len(nav.Result.Params)),
			)
		}

		switch {
		case err == nil:
			span.SetStatus(codes.Ok, "")
		case router.IsNotFound(err):
			span.SetAttributes(attribute.Bool("client360.not_found", true))
			span.SetStatus(codes.Error, "route not found")
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		return err
	})
}
