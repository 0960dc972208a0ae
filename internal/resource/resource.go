package resource

import "errors"

// ErrNotFound is the explicit absent-resource signal. Fetch functions
// return it (or wrap it) for a 404-equivalent response; the machine maps
// it to PhaseNotFound, never to PhaseError, so hosts can render "does not
// exist" distinctly from a transient failure.
var ErrNotFound = errors.New("resource not found")

// Phase enumerates the states of one remote-data fetch site.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
	PhaseNotFound
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	case PhaseNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Resource is the observable value of a fetch site. Data is valid in
// PhaseReady. Previous carries the last ready data through PhaseLoading
// and PhaseError so a reload or a transient failure never blanks the
// panel; it is non-nil only if a ready state existed for the same owner
// with no intervening idle reset. Message is set in PhaseError.
type Resource[T any] struct {
	Phase    Phase
	Data     T
	Previous *T
	Message  string
}

// Stale returns the data worth showing while not ready: the previous
// value during a reload or after a failed one.
func (r Resource[T]) Stale() (T, bool) {
	if (r.Phase == PhaseLoading || r.Phase == PhaseError) && r.Previous != nil {
		return *r.Previous, true
	}
	var zero T
	return zero, false
}
