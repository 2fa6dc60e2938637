package dashboard

import (
	"reflect"
	"testing"

	"github.com/vango-dev/client360/pkg/router"
)

func mustMatch(t *testing.T, path string) *router.MatchResult {
	t.Helper()
	result, err := Table().MatchPath(path)
	if err != nil {
		t.Fatalf("MatchPath(%q) error: %v", path, err)
	}
	return result
}

func TestTableIsBuiltOnce(t *testing.T) {
	if Table() != Table() {
		t.Error("Table() should return the same instance every call")
	}
	if Table().Len() != len(Variants) {
		t.Errorf("Len() = %d, want %d", Table().Len(), len(Variants))
	}
}

func TestTableOrderMatchesVariants(t *testing.T) {
	for i, r := range Table().Routes() {
		if Variant(r.Name) != Variants[i] {
			t.Errorf("route %d = %q, want %q", i, r.Name, Variants[i])
		}
	}
}

func TestTableWireContract(t *testing.T) {
	tests := []struct {
		path    string
		variant Variant
		view    router.ViewID
		forward bool
	}{
		{"/", Landing, ViewLanding, false},
		{"/region/:regionId", Region, ViewRegion, true},
		{"/region/:regionId/rm/:rmId", RelationshipManager, ViewRelationshipManager, true},
		{"/region/:regionId/rm/:rmId/relationship/:relationshipId", Relationship, ViewRelationship, true},
		{"/region/:regionId/rm/:rmId/relationship/:relationshipId/client/:clientId", ClientDetail, ViewClientDetail, true},
		{"/region/:regionId/rm/:rmId/relationship/:relationshipId/client/:clientId/account/:accountId", Account, ViewAccount, true},
		{"/region/:regionId/rm/:rmId/client/:clientId", DirectClient, ViewClientDetail, true},
		{"/api/region/:regionId/rm/:rmId/relationship/:relationshipId/client/:clientId", ClientDetailAPI, ViewClientDetailAPI, true},
		{"/executive", Executive, ViewExecutive, false},
		{"/metro/:metroId", Metro, ViewMetro, true},
		{"/metro/:metroId/market/:marketId", Market, ViewMarket, true},
		{"/metro/:metroId/market/:marketId/region/:regionId", LegacyRegion, ViewRegion, true},
		{"/metro/:metroId/market/:marketId/region/:regionId/rm/:rmId", LegacyRM, ViewRelationshipManager, true},
	}

	routes := Table().Routes()
	if len(routes) != len(tests) {
		t.Fatalf("table has %d routes, want %d", len(routes), len(tests))
	}
	for i, tt := range tests {
		r := routes[i]
		if r.Path != tt.path || Variant(r.Name) != tt.variant || r.View != tt.view || r.ForwardParams != tt.forward {
			t.Errorf("route %d = %+v, want path=%q name=%q view=%q forward=%v",
				i, r, tt.path, tt.variant, tt.view, tt.forward)
		}
	}
}

func TestClientDetailParams(t *testing.T) {
	result := mustMatch(t, "/region/5/rm/12/relationship/3/client/9")

	if VariantOf(result) != ClientDetail {
		t.Fatalf("variant = %q, want ClientDetail", VariantOf(result))
	}
	want := router.Params{
		{Name: "regionId", Value: "5"},
		{Name: "rmId", Value: "12"},
		{Name: "relationshipId", Value: "3"},
		{Name: "clientId", Value: "9"},
	}
	if !reflect.DeepEqual(result.Params, want) {
		t.Errorf("params = %#v, want %#v", result.Params, want)
	}
}

func TestDirectClientOmitsRelationship(t *testing.T) {
	result := mustMatch(t, "/region/5/rm/12/client/9")

	if VariantOf(result) != DirectClient {
		t.Fatalf("variant = %q, want DirectClient", VariantOf(result))
	}
	if result.Route.View != ViewClientDetail {
		t.Errorf("view = %q, want %q", result.Route.View, ViewClientDetail)
	}
	want := map[string]string{"regionId": "5", "rmId": "12", "clientId": "9"}
	if got := result.Props(); !reflect.DeepEqual(got, want) {
		t.Errorf("props = %v, want %v", got, want)
	}
	if result.Params.Has("relationshipId") {
		t.Error("DirectClient must not carry relationshipId")
	}
}

func TestAPIVariantUsesDistinctView(t *testing.T) {
	main := mustMatch(t, "/region/5/rm/12/relationship/3/client/9")
	api := mustMatch(t, "/api/region/5/rm/12/relationship/3/client/9")

	if VariantOf(api) != ClientDetailAPI || api.Route.View != ViewClientDetailAPI {
		t.Errorf("api = %q/%q", VariantOf(api), api.Route.View)
	}
	if api.Route.View == main.Route.View {
		t.Error("API variant must render a different view")
	}
	if !reflect.DeepEqual(api.Params, main.Params) {
		t.Errorf("API params %v differ from main %v", api.Params, main.Params)
	}
}

func TestLegacyAliasesShareViews(t *testing.T) {
	legacy := mustMatch(t, "/metro/A/market/B/region/5")
	main := mustMatch(t, "/region/5")

	if legacy.Route.View != ViewRegion || main.Route.View != ViewRegion {
		t.Errorf("views = %q, %q; both should be RegionView", legacy.Route.View, main.Route.View)
	}
	if VariantOf(legacy) != LegacyRegion || VariantOf(main) != Region {
		t.Errorf("variants = %q, %q", VariantOf(legacy), VariantOf(main))
	}
	if reflect.DeepEqual(legacy.Params, main.Params) {
		t.Error("legacy and main parameter sets should differ")
	}
	if v, _ := legacy.Params.Get("regionId"); v != "5" {
		t.Errorf("legacy regionId = %q", v)
	}

	rm := mustMatch(t, "/metro/A/market/B/region/5/rm/12")
	if VariantOf(rm) != LegacyRM || rm.Route.View != ViewRelationshipManager {
		t.Errorf("legacy rm = %q/%q", VariantOf(rm), rm.Route.View)
	}
}

func TestSegmentCountStrictness(t *testing.T) {
	for _, p := range []string{
		"/region/5/extra",
		"/region/5/rm",
		"/region/5/rm/12/relationship/3/client/9/account",
		"/region/5/rm/12/relationship/3/client/9/account/1/extra",
		"/metro/A/market",
		"/executive/1",
		"/does/not/exist",
		"/region",
		"/Region/5",
		"/region//rm/12",
	} {
		if result, err := Table().MatchPath(p); !router.IsNotFound(err) {
			t.Errorf("MatchPath(%q) = %v, %v; want NotFound", p, result, err)
		}
	}
}

func TestEveryVariantRoundTrips(t *testing.T) {
	values := map[string]string{
		"regionId":       "5",
		"rmId":           "12",
		"relationshipId": "3",
		"clientId":       "9",
		"accountId":      "77",
		"metroId":        "A",
		"marketId":       "B",
	}

	for _, v := range Variants {
		href, err := Href(v, values)
		if err != nil {
			t.Fatalf("Href(%s) error: %v", v, err)
		}
		result := mustMatch(t, href)
		if VariantOf(result) != v {
			t.Errorf("Href(%s) = %q resolves to %s", v, href, VariantOf(result))
		}
	}
}

func TestVariantValid(t *testing.T) {
	for _, v := range Variants {
		if !v.Valid() {
			t.Errorf("%s should be valid", v)
		}
	}
	if Variant("NotFound").Valid() {
		t.Error("NotFound is not a dashboard variant")
	}
	if VariantOf(nil) != "" {
		t.Error("VariantOf(nil) should be empty")
	}
}
