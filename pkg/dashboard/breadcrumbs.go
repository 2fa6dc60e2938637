package dashboard

import (
	"fmt"

	"github.com/vango-dev/client360/pkg/router"
)

// Crumb is one level of the drill-down trail above and including the
// current view.
type Crumb struct {
	Variant Variant `json:"variant"`
	Href    string  `json:"href"`
	// ID is the identifier this level introduces, e.g. the rmId on the
	// RelationshipManager crumb. Empty for Landing and Executive.
	ID string `json:"id,omitempty"`
}

// parents maps each variant to the level above it.
var parents = map[Variant]Variant{
	Region:              Landing,
	RelationshipManager: Region,
	Relationship:        RelationshipManager,
	ClientDetail:        Relationship,
	Account:             ClientDetail,
	DirectClient:        RelationshipManager,
	ClientDetailAPI:     Relationship,

	Metro:        Executive,
	Market:       Metro,
	LegacyRegion: Market,
	LegacyRM:     LegacyRegion,
}

// Breadcrumbs returns the trail from the hierarchy root (Landing, or
// Executive for legacy routes) down to the matched view. Each ancestor's
// href is rebuilt from the match's own parameters.
func Breadcrumbs(m *router.MatchResult) ([]Crumb, error) {
	v := VariantOf(m)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}

	table := Table()
	values := m.Params.Map()

	var trail []Crumb
	for cur, ok := v, true; ok; cur, ok = parents[cur] {
		href, err := table.Href(string(cur), values)
		if err != nil {
			return nil, fmt.Errorf("breadcrumb %s: %w", cur, err)
		}
		crumb := Crumb{Variant: cur, Href: href}
		if names, _ := table.ParamNames(string(cur)); len(names) > 0 {
			crumb.ID = values[names[len(names)-1]]
		}
		trail = append([]Crumb{crumb}, trail...)
	}
	return trail, nil
}
