package router

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/vango-dev/client360/pkg/routepath"
)

// Direction is how a transition moves through history.
type Direction int

const (
	// DirectionPush appends a new history entry.
	DirectionPush Direction = iota
	// DirectionReplace overwrites the current entry.
	DirectionReplace
	// DirectionBack moves one entry back.
	DirectionBack
	// DirectionForward moves one entry forward.
	DirectionForward
)

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirectionPush:
		return "push"
	case DirectionReplace:
		return "replace"
	case DirectionBack:
		return "back"
	case DirectionForward:
		return "forward"
	default:
		return "unknown"
	}
}

// ParseDirection parses a direction name. The empty string means push.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "push":
		return DirectionPush, nil
	case "replace":
		return DirectionReplace, nil
	case "back":
		return DirectionBack, nil
	case "forward":
		return DirectionForward, nil
	default:
		return 0, fmt.Errorf("unknown navigation direction %q", s)
	}
}

// Mounter mounts the view selected by a match.
// The router never calls view code directly; the mounter owns dispatch.
type Mounter interface {
	Mount(ctx context.Context, m *MatchResult) error
}

// MounterFunc is a function adapter for Mounter.
type MounterFunc func(ctx context.Context, m *MatchResult) error

// Mount implements Mounter.
func (f MounterFunc) Mount(ctx context.Context, m *MatchResult) error {
	return f(ctx, m)
}

// Viewport is the scrollable page the navigator resets after a transition.
type Viewport interface {
	// Offset returns the current scroll offset.
	Offset() ScrollPosition

	// ScrollTo moves the viewport to pos.
	ScrollTo(pos ScrollPosition)
}

// NavigateOptions configures a single Navigate call.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Query is merged into the target's query string.
	Query url.Values
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithQuery adds query parameters to the navigation target.
func WithQuery(q url.Values) NavigateOption {
	return func(o *NavigateOptions) {
		o.Query = q
	}
}

// Navigator performs transitions against a Table.
//
// Every successful transition mounts the matched view and then resets the
// viewport to the top, whatever the direction and whatever offset the
// history entry saved. Transitions are serialized: a Navigator handles one
// at a time.
type Navigator struct {
	mu sync.Mutex

	table      *Table
	mounter    Mounter
	history    History
	viewport   Viewport
	middleware []Middleware
	logger     *slog.Logger

	current *MatchResult
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithHistory sets the history backing the navigator.
// Default: a new MemoryHistory.
func WithHistory(h History) NavigatorOption {
	return func(n *Navigator) {
		n.history = h
	}
}

// WithViewport sets the viewport reset after each transition.
// Default: a viewport that discards scroll requests.
func WithViewport(v Viewport) NavigatorOption {
	return func(n *Navigator) {
		n.viewport = v
	}
}

// WithMiddleware appends middleware run around every transition.
func WithMiddleware(mw ...Middleware) NavigatorOption {
	return func(n *Navigator) {
		n.middleware = append(n.middleware, mw...)
	}
}

// WithLogger sets the navigator's logger.
func WithLogger(l *slog.Logger) NavigatorOption {
	return func(n *Navigator) {
		n.logger = l
	}
}

// NewNavigator creates a navigator over table that mounts views through m.
func NewNavigator(table *Table, m Mounter, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		table:   table,
		mounter: m,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.history == nil {
		n.history = NewMemoryHistory()
	}
	if n.viewport == nil {
		n.viewport = &discardViewport{}
	}
	if n.logger == nil {
		n.logger = slog.Default().With("component", "navigator")
	}
	if n.mounter == nil {
		n.mounter = MounterFunc(func(context.Context, *MatchResult) error { return nil })
	}
	return n
}

// Table returns the route table.
func (n *Navigator) Table() *Table {
	return n.table
}

// Current returns the match of the mounted view, or nil before the first
// successful transition.
func (n *Navigator) Current() *MatchResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate resolves raw and, on a match, mounts its view and records a
// history entry. An unmatched target returns an error wrapping ErrNotFound
// and leaves history, the mounted view and the scroll position untouched.
func (n *Navigator) Navigate(ctx context.Context, raw string, opts ...NavigateOption) (*MatchResult, error) {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}

	valid, err := routepath.ValidateNavPath(raw)
	if err != nil {
		return nil, &NotFoundError{Path: raw, Cause: err}
	}
	target := ParseTarget(valid)
	if len(options.Query) > 0 {
		q, _ := url.ParseQuery(target.Query)
		for k, vs := range options.Query {
			q[k] = vs
		}
		target.Query = q.Encode()
	}

	dir := DirectionPush
	if options.Replace {
		dir = DirectionReplace
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	return n.transition(ctx, dir, target)
}

// Back moves one entry back in history.
func (n *Navigator) Back(ctx context.Context) (*MatchResult, error) {
	return n.traverse(ctx, DirectionBack, -1)
}

// Forward moves one entry forward in history.
func (n *Navigator) Forward(ctx context.Context) (*MatchResult, error) {
	return n.traverse(ctx, DirectionForward, 1)
}

func (n *Navigator) traverse(ctx context.Context, dir Direction, delta int) (*MatchResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry, ok := n.history.Peek(delta)
	if !ok {
		return nil, ErrNoHistory
	}
	return n.transition(ctx, dir, ParseTarget(entry.Path))
}

// transition runs one navigation. Callers hold n.mu.
func (n *Navigator) transition(ctx context.Context, dir Direction, target NavigationTarget) (*MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nav := &Navigation{
		Context:   ctx,
		Target:    target,
		Direction: dir,
	}
	if from, ok := n.history.Current(); ok {
		nav.From = from.Path
	}

	err := ComposeMiddleware(nav, n.middleware, func() error {
		result, err := n.table.Match(target)
		if err != nil {
			return err
		}
		nav.Result = result

		if err := n.mounter.Mount(nav.Context, result); err != nil {
			return fmt.Errorf("mount %s: %w", result.Route.Name, err)
		}

		n.commit(dir, target)
		n.viewport.ScrollTo(Top)
		n.current = result
		return nil
	})
	if err != nil {
		n.logger.Debug("navigation failed",
			"path", target.Path,
			"direction", dir.String(),
			"error", err)
		return nil, err
	}

	n.logger.Debug("navigated",
		"path", target.Path,
		"direction", dir.String(),
		"route", nav.Result.Route.Name,
		"view", string(nav.Result.Route.View))
	return nav.Result, nil
}

// commit records the transition in history. The offset of the entry
// being left is saved, as a browser would, but never restored.
func (n *Navigator) commit(dir Direction, target NavigationTarget) {
	n.history.SaveScroll(n.viewport.Offset())

	entry := HistoryEntry{Path: target.String()}
	switch dir {
	case DirectionReplace:
		n.history.Replace(entry)
	case DirectionBack:
		n.history.Go(-1)
	case DirectionForward:
		n.history.Go(1)
	default:
		n.history.Push(entry)
	}
}

// discardViewport records offsets but renders nothing.
type discardViewport struct {
	pos ScrollPosition
}

func (v *discardViewport) Offset() ScrollPosition      { return v.pos }
func (v *discardViewport) ScrollTo(pos ScrollPosition) { v.pos = pos }
