// Package dashboard declares the Client 360 route table.
//
// Main navigation is a drill-down from region to account:
//
//	/region/:regionId
//	  /rm/:rmId
//	    /relationship/:relationshipId
//	      /client/:clientId
//	        /account/:accountId
//
// A direct client path skips the relationship level, an /api prefix serves
// a second client view implementation, and the metro/market hierarchy is
// kept for existing bookmarks. Legacy routes reuse the main views.
package dashboard

import (
	"sync"

	"github.com/vango-dev/client360/pkg/router"
)

// Variant identifies a matched route. It equals the route name.
type Variant string

// Route variants, in table order.
const (
	Landing             Variant = "Landing"
	Region              Variant = "Region"
	RelationshipManager Variant = "RelationshipManager"
	Relationship        Variant = "Relationship"
	ClientDetail        Variant = "ClientDetail"
	Account             Variant = "Account"
	DirectClient        Variant = "DirectClient"
	ClientDetailAPI     Variant = "ClientDetailAPI"
	Executive           Variant = "Executive"
	Metro               Variant = "Metro"
	Market              Variant = "Market"
	LegacyRegion        Variant = "LegacyRegion"
	LegacyRM            Variant = "LegacyRM"
)

// Variants lists every variant in table order.
var Variants = []Variant{
	Landing,
	Region,
	RelationshipManager,
	Relationship,
	ClientDetail,
	Account,
	DirectClient,
	ClientDetailAPI,
	Executive,
	Metro,
	Market,
	LegacyRegion,
	LegacyRM,
}

// Valid reports whether v is one of the declared variants.
func (v Variant) Valid() bool {
	for _, known := range Variants {
		if v == known {
			return true
		}
	}
	return false
}

// VariantOf returns the variant of a match.
func VariantOf(m *router.MatchResult) Variant {
	if m == nil {
		return ""
	}
	return Variant(m.Route.Name)
}

// Views rendered by the dashboard.
const (
	ViewLanding             router.ViewID = "RegionalVPLandingView"
	ViewRegion              router.ViewID = "RegionView"
	ViewRelationshipManager router.ViewID = "RelationshipManagerView"
	ViewRelationship        router.ViewID = "RelationshipView"
	ViewClientDetail        router.ViewID = "ClientDetailView"
	ViewClientDetailAPI     router.ViewID = "ClientDetailViewAPI"
	ViewAccount             router.ViewID = "AccountView"
	ViewExecutive           router.ViewID = "ExecutiveView"
	ViewMetro               router.ViewID = "MetroView"
	ViewMarket              router.ViewID = "MarketView"
)

// Patterns returns the route declarations in match order.
func Patterns() []router.RoutePattern {
	return []router.RoutePattern{
		// Main hierarchy, starting from the regional VP landing page.
		{Path: "/", View: ViewLanding, Name: string(Landing)},
		{Path: "/region/:regionId", View: ViewRegion, Name: string(Region), ForwardParams: true},
		{Path: "/region/:regionId/rm/:rmId", View: ViewRelationshipManager, Name: string(RelationshipManager), ForwardParams: true},
		{Path: "/region/:regionId/rm/:rmId/relationship/:relationshipId", View: ViewRelationship, Name: string(Relationship), ForwardParams: true},
		{Path: "/region/:regionId/rm/:rmId/relationship/:relationshipId/client/:clientId", View: ViewClientDetail, Name: string(ClientDetail), ForwardParams: true},
		{Path: "/region/:regionId/rm/:rmId/relationship/:relationshipId/client/:clientId/account/:accountId", View: ViewAccount, Name: string(Account), ForwardParams: true},

		// Client without the relationship level.
		{Path: "/region/:regionId/rm/:rmId/client/:clientId", View: ViewClientDetail, Name: string(DirectClient), ForwardParams: true},

		// Second client view implementation, same parameters.
		{Path: "/api/region/:regionId/rm/:rmId/relationship/:relationshipId/client/:clientId", View: ViewClientDetailAPI, Name: string(ClientDetailAPI), ForwardParams: true},

		// Legacy hierarchy, not linked from main navigation.
		{Path: "/executive", View: ViewExecutive, Name: string(Executive)},
		{Path: "/metro/:metroId", View: ViewMetro, Name: string(Metro), ForwardParams: true},
		{Path: "/metro/:metroId/market/:marketId", View: ViewMarket, Name: string(Market), ForwardParams: true},
		{Path: "/metro/:metroId/market/:marketId/region/:regionId", View: ViewRegion, Name: string(LegacyRegion), ForwardParams: true},
		{Path: "/metro/:metroId/market/:marketId/region/:regionId/rm/:rmId", View: ViewRelationshipManager, Name: string(LegacyRM), ForwardParams: true},
	}
}

// Table returns the process-wide route table. It is built on first use and
// shared read-only afterwards; a malformed declaration panics.
var Table = sync.OnceValue(func() *router.Table {
	return router.MustTable(Patterns()...)
})

// Href builds the path for a variant.
func Href(v Variant, params map[string]string) (string, error) {
	return Table().Href(string(v), params)
}
