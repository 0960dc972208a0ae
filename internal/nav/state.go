package nav

import "wayfind/internal/route"

// Reason classifies why the current route changed. Panels use it to gate
// one-shot side effects, e.g. fitting the map to results only on a fresh
// navigation and not when walking history.
type Reason uint8

const (
	ReasonNavigation Reason = iota
	ReasonHistory
	ReasonReplace
)

func (r Reason) String() string {
	switch r {
	case ReasonNavigation:
		return "navigation"
	case ReasonHistory:
		return "history"
	case ReasonReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// State is the single source of navigational truth: the current path, the
// matched route (nil when nothing matched, e.g. after a history move to a
// retired path), decoded parameters and the transition reason. Only the
// Controller writes it; everyone else reads snapshots.
type State struct {
	Path   string
	Route  *route.Definition
	Params map[string]any
	Query  map[string]any
	Reason Reason
}
