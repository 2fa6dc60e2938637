package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/vango-dev/client360/pkg/router"
)

// =============================================================================
// Test Helpers
// =============================================================================

func testTable(t *testing.T) *router.Table {
	t.Helper()
	table, err := router.NewTable(
		router.RoutePattern{Path: "/", View: "HomeView", Name: "Home"},
		router.RoutePattern{Path: "/region/:regionId", View: "RegionView", Name: "Region", ForwardParams: true},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

var errMountFailed = errors.New("mount failed")

// failingMounter fails for the named route.
func failingMounter(route string) router.Mounter {
	return router.MounterFunc(func(_ context.Context, m *router.MatchResult) error {
		if m.Route.Name == route {
			return errMountFailed
		}
		return nil
	})
}

func newNavigator(t *testing.T, m router.Mounter, mw ...router.Middleware) *router.Navigator {
	t.Helper()
	return router.NewNavigator(testTable(t), m, router.WithMiddleware(mw...))
}

// =============================================================================
// Outcome
// =============================================================================

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{&router.NotFoundError{Path: "/x"}, OutcomeNotFound},
		{context.Canceled, OutcomeCanceled},
		{context.DeadlineExceeded, OutcomeCanceled},
		{errMountFailed, OutcomeError},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
