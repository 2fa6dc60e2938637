package dashboard

import (
	"errors"
	"fmt"

	"github.com/vango-dev/client360/pkg/router"
)

// ErrUnknownVariant is returned for a match that is not a dashboard route.
var ErrUnknownVariant = errors.New("unknown dashboard variant")

// LandingProps are the inputs of the landing view. It takes none.
type LandingProps struct{}

// ExecutiveProps are the inputs of the executive view. It takes none.
type ExecutiveProps struct{}

// RegionProps are the inputs of RegionView.
// MetroID and MarketID are only set when reached through the legacy
// hierarchy.
type RegionProps struct {
	RegionID string `param:"regionId"`
	MetroID  string `param:"metroId"`
	MarketID string `param:"marketId"`
}

// RelationshipManagerProps are the inputs of RelationshipManagerView.
// MetroID and MarketID are only set on the legacy path.
type RelationshipManagerProps struct {
	RegionID string `param:"regionId"`
	RMID     string `param:"rmId"`
	MetroID  string `param:"metroId"`
	MarketID string `param:"marketId"`
}

// RelationshipProps are the inputs of RelationshipView.
type RelationshipProps struct {
	RegionID       string `param:"regionId"`
	RMID           string `param:"rmId"`
	RelationshipID string `param:"relationshipId"`
}

// ClientProps are the inputs of both client detail views.
// RelationshipID is empty on the direct client path.
type ClientProps struct {
	RegionID       string `param:"regionId"`
	RMID           string `param:"rmId"`
	RelationshipID string `param:"relationshipId"`
	ClientID       string `param:"clientId"`
}

// HasRelationship reports whether the client was reached through a
// relationship.
func (p ClientProps) HasRelationship() bool {
	return p.RelationshipID != ""
}

// AccountProps are the inputs of AccountView.
type AccountProps struct {
	RegionID       string `param:"regionId"`
	RMID           string `param:"rmId"`
	RelationshipID string `param:"relationshipId"`
	ClientID       string `param:"clientId"`
	AccountID      string `param:"accountId"`
}

// MetroProps are the inputs of MetroView.
type MetroProps struct {
	MetroID string `param:"metroId"`
}

// MarketProps are the inputs of MarketView.
type MarketProps struct {
	MetroID  string `param:"metroId"`
	MarketID string `param:"marketId"`
}

var parser = router.NewParamParser()

// DecodeProps returns a pointer to the typed props of the matched view,
// e.g. *ClientProps for ClientDetail, DirectClient and ClientDetailAPI.
// Routes that do not forward parameters decode to empty props.
func DecodeProps(m *router.MatchResult) (any, error) {
	var target any
	switch VariantOf(m) {
	case Landing:
		target = &LandingProps{}
	case Executive:
		target = &ExecutiveProps{}
	case Region, LegacyRegion:
		target = &RegionProps{}
	case RelationshipManager, LegacyRM:
		target = &RelationshipManagerProps{}
	case Relationship:
		target = &RelationshipProps{}
	case ClientDetail, DirectClient, ClientDetailAPI:
		target = &ClientProps{}
	case Account:
		target = &AccountProps{}
	case Metro:
		target = &MetroProps{}
	case Market:
		target = &MarketProps{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, VariantOf(m))
	}

	var params router.Params
	if m.Route.ForwardParams {
		params = m.Params
	}
	if err := parser.Parse(params, target); err != nil {
		return nil, fmt.Errorf("decode %s props: %w", m.Route.Name, err)
	}
	return target, nil
}
