// Package router implements route tables and client-side navigation.
//
// The router provides:
//   - An ordered, immutable route table built once at start-up
//   - First-match-wins path matching with strict segment counts
//   - Ordered parameter extraction and typed decoding
//   - Reverse lookup from route name to path
//   - A navigator that mounts views and resets scroll on every transition
//
// # Path Templates
//
// Templates are "/"-separated segments. A segment starting with ":" is a
// placeholder bound to a named parameter; anything else is a literal:
//
//	/region/:regionId/rm/:rmId
//
// Literals match exactly (case-sensitive). Placeholders match any
// non-empty segment. A path matches a template only when both have the
// same number of segments, so "/region/5/extra" never matches
// "/region/:regionId".
//
// # Ordering
//
// Routes are tried in the order they were declared and the first match
// wins. There is no specificity ranking.
//
// # Usage
//
//	table := router.MustTable(
//	    router.RoutePattern{Path: "/", View: "Landing", Name: "Landing"},
//	    router.RoutePattern{Path: "/region/:regionId", View: "RegionView", Name: "Region", ForwardParams: true},
//	)
//
//	result, err := table.MatchPath("/region/5")
//	if router.IsNotFound(err) {
//	    // render a fallback
//	}
//	// result.Route.Name == "Region"
//	// result.Params.Get("regionId") == "5", true
//
//	nav := router.NewNavigator(table, mounter, router.WithViewport(vp))
//	nav.Navigate(ctx, "/region/5")
//	nav.Back(ctx)
package router
