package nav

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"wayfind/internal/route"
)

// ErrNoRoute reports that no registered route matched the requested path.
// The caller decides the fallback (typically a not-found panel); state is
// left untouched.
var ErrNoRoute = errors.New("no route matches path")

// Controller owns the navigation state and keeps it in sync with History.
// All mutations flow through NavigateTo, Replace and HandleHistoryEvent;
// subscribers observe each new state in registration order, so the panel
// orchestrator (registered first) finishes teardown/mount before later
// subscribers see the transition.
type Controller struct {
	mu    sync.Mutex
	table *route.Table
	hist  History
	state State
	subs  []func(State)
}

// NewController resolves the history's current path as the initial state.
// An unmatched startup path yields a nil-route state rather than an error;
// the host renders its not-found panel for it.
func NewController(table *route.Table, hist History) *Controller {
	c := &Controller{table: table, hist: hist}
	c.state = c.resolve(hist.Current(), ReasonNavigation)
	return c
}

// State returns a snapshot of the current navigation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to observe every state change. Subscribers added
// earlier are notified earlier.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// NavigateTo resolves path and, on success, pushes a history entry and
// publishes the new state with ReasonNavigation. A path equal to the
// current one is a no-op. On match failure nothing is mutated and
// ErrNoRoute is returned.
func (c *Controller) NavigateTo(path string) error {
	return c.transition(path, ReasonNavigation)
}

// Replace is NavigateTo without a new history entry: the current entry is
// replaced in place and the state carries ReasonReplace.
func (c *Controller) Replace(path string) error {
	return c.transition(path, ReasonReplace)
}

func (c *Controller) transition(path string, reason Reason) error {
	c.mu.Lock()
	if _, ok := c.table.MatchURL(path); !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrNoRoute, path)
	}
	if path == c.state.Path {
		c.mu.Unlock()
		return nil
	}
	switch reason {
	case ReasonReplace:
		c.hist.Replace(path)
	default:
		c.hist.Push(path)
	}
	c.state = c.resolve(path, reason)
	state := c.state
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
	return nil
}

// HandleHistoryEvent re-resolves the history's now-current path after a
// back/forward move and publishes it with ReasonHistory. No entry is
// pushed; the cursor already moved. An unmatched path publishes a
// nil-route state so the host can show not-found without losing the
// history position.
func (c *Controller) HandleHistoryEvent() {
	c.mu.Lock()
	path := c.hist.Current()
	c.state = c.resolve(path, ReasonHistory)
	state := c.state
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

func (c *Controller) resolve(path string, reason Reason) State {
	m, ok := c.table.MatchURL(path)
	if !ok {
		return State{Path: path, Reason: reason}
	}
	return State{
		Path:   path,
		Route:  m.Route,
		Params: m.Params,
		Query:  m.Query,
		Reason: reason,
	}
}

// BuildPath exposes the table's inverse mapping for programmatic
// navigation: hosts construct paths from typed values instead of string
// concatenation.
func (c *Controller) BuildPath(routeID string, params, query map[string]any) (string, error) {
	return c.table.BuildPath(routeID, params, query)
}

// normalizePath strips a parseable href down to "path?query" form.
func normalizePath(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path, true
}
