package router

import (
	"fmt"
	"net/url"

	"github.com/vango-dev/client360/pkg/routepath"
)

// Table is an ordered, immutable set of routes.
//
// A Table is built once with NewTable and never changes afterwards, so it
// is safe to share between goroutines without locking.
type Table struct {
	routes []*compiledRoute
	byName map[string]*compiledRoute
}

// NewTable compiles patterns into a Table, preserving their order.
// It fails on the first malformed template or duplicate name.
func NewTable(patterns ...RoutePattern) (*Table, error) {
	t := &Table{
		routes: make([]*compiledRoute, 0, len(patterns)),
		byName: make(map[string]*compiledRoute, len(patterns)),
	}
	for _, p := range patterns {
		c, err := compilePattern(p)
		if err != nil {
			return nil, err
		}
		if prev, dup := t.byName[p.Name]; dup {
			return nil, fmt.Errorf("%w: %q used by %q and %q",
				ErrDuplicateRouteName, p.Name, prev.pattern.Path, p.Path)
		}
		t.routes = append(t.routes, c)
		t.byName[p.Name] = c
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
// It is meant for tables declared at process start.
func MustTable(patterns ...RoutePattern) *Table {
	t, err := NewTable(patterns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Routes returns the patterns in declared order. The slice is a copy.
func (t *Table) Routes() []RoutePattern {
	out := make([]RoutePattern, len(t.routes))
	for i, c := range t.routes {
		out[i] = c.pattern
	}
	return out
}

// Lookup returns the pattern registered under name.
func (t *Table) Lookup(name string) (RoutePattern, bool) {
	c, ok := t.byName[name]
	if !ok {
		return RoutePattern{}, false
	}
	return c.pattern, true
}

// ParamNames returns the placeholder names of the named route in template
// order.
func (t *Table) ParamNames(name string) ([]string, bool) {
	c, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return c.paramNames(), true
}

// Match resolves target against the table.
//
// Routes are tried in declared order and the first structural match wins.
// An unmatched, empty or malformed path yields a *NotFoundError wrapping
// ErrNotFound.
func (t *Table) Match(target NavigationTarget) (*MatchResult, error) {
	raw, err := routepath.Segments(target.Path)
	if err != nil {
		return nil, &NotFoundError{Path: target.Path, Cause: err}
	}

	segments := make([]string, len(raw))
	for i, seg := range raw {
		decoded, err := routepath.DecodeSegment(seg)
		if err != nil {
			return nil, &NotFoundError{Path: target.Path, Cause: err}
		}
		segments[i] = decoded
	}

	for _, c := range t.routes {
		params, ok := c.match(segments)
		if !ok {
			continue
		}
		// Malformed pairs are dropped; the query never decides the match.
		query, _ := url.ParseQuery(target.Query)
		return &MatchResult{
			Route:  c.pattern,
			Params: params,
			Query:  query,
		}, nil
	}

	return nil, &NotFoundError{Path: target.Path}
}

// MatchPath resolves a raw path, which may carry a query string.
func (t *Table) MatchPath(raw string) (*MatchResult, error) {
	return t.Match(ParseTarget(raw))
}
