package router

import "github.com/vango-dev/client360/pkg/routepath"

// NavigationTarget is a request to navigate to a path.
// It is consumed once by the router and not retained.
type NavigationTarget struct {
	// Path is the URL path, without query or fragment.
	Path string

	// Query is the raw query string without the leading "?".
	Query string
}

// ParseTarget splits a raw navigation string ("/region/5?tab=rms") into a
// NavigationTarget. Fragments are dropped.
func ParseTarget(raw string) NavigationTarget {
	path, query := routepath.SplitPathAndQuery(raw)
	return NavigationTarget{Path: path, Query: query}
}

// String reassembles the target into a path with optional query.
func (t NavigationTarget) String() string {
	if t.Query == "" {
		return t.Path
	}
	return t.Path + "?" + t.Query
}
