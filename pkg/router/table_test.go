package router

import (
	"errors"
	"reflect"
	"testing"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		RoutePattern{Path: "/", View: "Home", Name: "Home"},
		RoutePattern{Path: "/users/:id", View: "UserView", Name: "User", ForwardParams: true},
		RoutePattern{Path: "/users/:id/posts/:postId", View: "PostView", Name: "Post", ForwardParams: true},
		RoutePattern{Path: "/users/new", View: "NewUserView", Name: "NewUser"},
		RoutePattern{Path: "/about", View: "About", Name: "About"},
	)
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	return table
}

func TestNewTableKeepsOrder(t *testing.T) {
	table := testTable(t)

	var names []string
	for _, r := range table.Routes() {
		names = append(names, r.Name)
	}
	want := []string{"Home", "User", "Post", "NewUser", "About"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("route order = %v, want %v", names, want)
	}
	if table.Len() != 5 {
		t.Errorf("Len() = %d, want 5", table.Len())
	}
}

func TestNewTableRoutesIsCopy(t *testing.T) {
	table := testTable(t)

	routes := table.Routes()
	routes[0].Name = "Mutated"

	if _, ok := table.Lookup("Home"); !ok {
		t.Error("mutating Routes() result changed the table")
	}
	if table.Routes()[0].Name != "Home" {
		t.Error("Routes() should return a fresh copy")
	}
}

func TestNewTableDuplicateName(t *testing.T) {
	_, err := NewTable(
		RoutePattern{Path: "/a", Name: "Same"},
		RoutePattern{Path: "/b", Name: "Same"},
	)
	if !errors.Is(err, ErrDuplicateRouteName) {
		t.Fatalf("error = %v, want ErrDuplicateRouteName", err)
	}
}

func TestNewTableInvalidPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern RoutePattern
	}{
		{"no leading slash", RoutePattern{Path: "region/:id", Name: "A"}},
		{"empty path", RoutePattern{Path: "", Name: "A"}},
		{"empty segment", RoutePattern{Path: "/region//rm", Name: "A"}},
		{"trailing slash", RoutePattern{Path: "/region/", Name: "A"}},
		{"unnamed placeholder", RoutePattern{Path: "/region/:", Name: "A"}},
		{"repeated placeholder", RoutePattern{Path: "/a/:id/b/:id", Name: "A"}},
		{"empty name", RoutePattern{Path: "/a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.pattern)
			if !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("error = %v, want ErrInvalidPattern", err)
			}
		})
	}
}

func TestMustTablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustTable should panic on duplicate names")
		}
	}()
	MustTable(
		RoutePattern{Path: "/a", Name: "Same"},
		RoutePattern{Path: "/b", Name: "Same"},
	)
}

func TestMatch(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		path       string
		wantRoute  string
		wantParams Params
	}{
		{"/", "Home", Params{}},
		{"/about", "About", Params{}},
		{"/users/42", "User", Params{{Name: "id", Value: "42"}}},
		{"/users/42/", "User", Params{{Name: "id", Value: "42"}}},
		{"/users/42/posts/7", "Post", Params{{Name: "id", Value: "42"}, {Name: "postId", Value: "7"}}},
		{"/users/a%20b", "User", Params{{Name: "id", Value: "a b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result, err := table.MatchPath(tt.path)
			if err != nil {
				t.Fatalf("MatchPath(%q) error: %v", tt.path, err)
			}
			if result.Route.Name != tt.wantRoute {
				t.Errorf("route = %q, want %q", result.Route.Name, tt.wantRoute)
			}
			if !reflect.DeepEqual(result.Params, tt.wantParams) {
				t.Errorf("params = %#v, want %#v", result.Params, tt.wantParams)
			}
		})
	}
}

func TestMatchFirstDeclaredWins(t *testing.T) {
	table := testTable(t)

	// "/users/:id" is declared before "/users/new", so the placeholder wins.
	result, err := table.MatchPath("/users/new")
	if err != nil {
		t.Fatalf("MatchPath() error: %v", err)
	}
	if result.Route.Name != "User" {
		t.Errorf("route = %q, want User (first declared)", result.Route.Name)
	}
	if v, _ := result.Params.Get("id"); v != "new" {
		t.Errorf("id = %q, want %q", v, "new")
	}
}

func TestMatchNotFound(t *testing.T) {
	table := testTable(t)

	paths := []string{
		"/does/not/exist",
		"/users/42/extra",
		"/users",
		"/users//posts/7",
		"/users/42/posts/",
		"/Users/42",
		"/ABOUT",
		"",
		"users/42",
		"/users/a%2Fb",
		"/users/%zz",
		"/users/../about",
	}

	for _, p := range paths {
		result, err := table.MatchPath(p)
		if err == nil {
			t.Errorf("MatchPath(%q) = %q, want NotFound", p, result.Route.Name)
			continue
		}
		if !IsNotFound(err) {
			t.Errorf("MatchPath(%q) error = %v, want ErrNotFound", p, err)
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("MatchPath(%q) error should be *NotFoundError, got %T", p, err)
		} else if nf.Path != ParseTarget(p).Path {
			t.Errorf("NotFoundError.Path = %q, want %q", nf.Path, ParseTarget(p).Path)
		}
	}
}

func TestMatchDeterministic(t *testing.T) {
	table := testTable(t)

	first, err := table.MatchPath("/users/42/posts/7?sort=new")
	if err != nil {
		t.Fatalf("MatchPath() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := table.MatchPath("/users/42/posts/7?sort=new")
		if err != nil {
			t.Fatalf("MatchPath() error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("match %d differs: %#v vs %#v", i, first, again)
		}
	}
}

func TestMatchQuery(t *testing.T) {
	table := testTable(t)

	result, err := table.MatchPath("/users/42?tab=posts&tab=likes&page=2#top")
	if err != nil {
		t.Fatalf("MatchPath() error: %v", err)
	}
	if got := result.Query["tab"]; !reflect.DeepEqual(got, []string{"posts", "likes"}) {
		t.Errorf("query tab = %v", got)
	}
	if result.Query.Get("page") != "2" {
		t.Errorf("query page = %q, want 2", result.Query.Get("page"))
	}

	// The query never affects which route matches.
	result, err = table.MatchPath("/users/42?bad=%zz")
	if err != nil {
		t.Fatalf("MatchPath() with malformed query error: %v", err)
	}
	if result.Route.Name != "User" {
		t.Errorf("route = %q, want User", result.Route.Name)
	}
}

func TestMatchResultProps(t *testing.T) {
	table := MustTable(
		RoutePattern{Path: "/quiet/:id", Name: "Quiet"},
		RoutePattern{Path: "/loud/:id", Name: "Loud", ForwardParams: true},
	)

	quiet, err := table.MatchPath("/quiet/1")
	if err != nil {
		t.Fatal(err)
	}
	if len(quiet.Props()) != 0 {
		t.Errorf("Props() for non-forwarding route = %v, want empty", quiet.Props())
	}
	if !quiet.Params.Has("id") {
		t.Error("Params should still record extracted values")
	}

	loud, err := table.MatchPath("/loud/1")
	if err != nil {
		t.Fatal(err)
	}
	if got := loud.Props(); got["id"] != "1" || len(got) != 1 {
		t.Errorf("Props() = %v, want map[id:1]", got)
	}

	var nilResult *MatchResult
	if len(nilResult.Props()) != 0 {
		t.Error("nil MatchResult Props() should be empty")
	}
}

func TestLookupAndParamNames(t *testing.T) {
	table := testTable(t)

	p, ok := table.Lookup("Post")
	if !ok {
		t.Fatal("Lookup(Post) not found")
	}
	if p.Path != "/users/:id/posts/:postId" || p.View != "PostView" {
		t.Errorf("Lookup(Post) = %+v", p)
	}

	names, ok := table.ParamNames("Post")
	if !ok || !reflect.DeepEqual(names, []string{"id", "postId"}) {
		t.Errorf("ParamNames(Post) = %v, %v", names, ok)
	}

	if _, ok := table.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) should fail")
	}
	if _, ok := table.ParamNames("Missing"); ok {
		t.Error("ParamNames(Missing) should fail")
	}
}

func TestParamsHelpers(t *testing.T) {
	p := Params{{Name: "b", Value: "2"}, {Name: "a", Value: "1"}}

	if !reflect.DeepEqual(p.Names(), []string{"b", "a"}) {
		t.Errorf("Names() = %v, want template order", p.Names())
	}
	if v, ok := p.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if p.Has("c") {
		t.Error("Has(c) should be false")
	}

	m := p.Map()
	m["a"] = "changed"
	if v, _ := p.Get("a"); v != "1" {
		t.Error("Map() should return a copy")
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Path: "/nope"}
	if err.Error() != `route not found: "/nope"` {
		t.Errorf("Error() = %q", err.Error())
	}
	cause := errors.New("bad escape")
	err = &NotFoundError{Path: "/x", Cause: cause}
	if !errors.Is(err, cause) || !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should unwrap to both ErrNotFound and its cause")
	}
}
