package router

import "context"

// Navigation describes one transition as it passes through middleware.
type Navigation struct {
	// Context is the caller's context.
	Context context.Context

	// Target is the requested destination.
	Target NavigationTarget

	// Direction is how the transition moves through history.
	Direction Direction

	// From is the path of the entry being left, empty on first navigation.
	From string

	// Result is set once the target has matched. It is nil for a
	// NotFound outcome.
	Result *MatchResult
}

// Middleware wraps each transition.
type Middleware interface {
	// Handle processes the navigation and optionally calls next.
	// Return an error to abort the transition.
	Handle(nav *Navigation, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(nav *Navigation, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(nav *Navigation, next func() error) error {
	return f(nav, next)
}

// ComposeMiddleware builds a handler chain from middleware and a final handler.
// Middleware is executed in order (first to last), with the handler at the end.
func ComposeMiddleware(nav *Navigation, mw []Middleware, handler func() error) error {
	if len(mw) == 0 {
		return handler()
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(nav, next)
		}
	}

	return chain()
}

// Chain creates a middleware that combines multiple middleware in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(nav *Navigation, next func() error) error {
		return ComposeMiddleware(nav, middleware, next)
	})
}

// Skip bypasses mw when condition holds.
func Skip(condition func(nav *Navigation) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(nav *Navigation, next func() error) error {
		if condition(nav) {
			return next()
		}
		return mw.Handle(nav, next)
	})
}
