// Package panel mounts and tears down the UI region selected by the
// current route. At most one panel is active at a time; switching routes
// disposes the outgoing panel's scope before the incoming panel is built,
// so timers, listeners and in-flight fetches owned by the old panel can
// never race with the new one.
package panel

import (
	"fmt"

	"wayfind/internal/life"
	"wayfind/internal/nav"
)

// Panel is one mounted, exclusively visible UI region. Update re-runs the
// panel's effects when the same route is hit with different parameters;
// the instance is reused so transient UI state (scroll, hover) survives.
// Scope is the panel's teardown scope, disposed exactly once on unmount.
type Panel interface {
	Update(params, query map[string]any, reason nav.Reason)
	Scope() *life.Scope
}

// Factory builds a panel for decoded route parameters. The navigation
// reason lets panels run one-shot behaviors only on direct navigation.
type Factory func(params, query map[string]any, reason nav.Reason) Panel

// Registry is the closed set of panel factories, fixed at startup. It
// implements route.PanelChecker so the route table can reject unknown
// panel identifiers at construction time.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under id. Duplicate registration is an error.
func (r *Registry) Register(id string, f Factory) error {
	if id == "" || f == nil {
		return fmt.Errorf("panel registration needs an id and a factory")
	}
	if _, dup := r.factories[id]; dup {
		return fmt.Errorf("panel %q registered twice", id)
	}
	r.factories[id] = f
	return nil
}

// HasPanel reports whether id names a registered factory.
func (r *Registry) HasPanel(id string) bool {
	_, ok := r.factories[id]
	return ok
}

// IDs returns the registered identifiers, order unspecified.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	return ids
}
