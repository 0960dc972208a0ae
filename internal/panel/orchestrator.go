package panel

import (
	"sync"

	"wayfind/internal/nav"
)

// Orchestrator applies navigation states to the panel layer, holding the
// single-active-panel invariant. Wire it to the controller with
// Controller.Subscribe(o.Apply), registered before any other subscriber,
// so teardown and mount complete before the rest of the host observes the
// transition.
type Orchestrator struct {
	mu       sync.Mutex
	reg      *Registry
	active   Panel
	activeID string
}

func NewOrchestrator(reg *Registry) *Orchestrator {
	return &Orchestrator{reg: reg}
}

// Apply reconciles the active panel with the state's route. Same panel
// identifier with new parameters reuses the instance via Update; a
// different identifier disposes the outgoing panel's scope (teardown
// callbacks in reverse registration order, exactly once) strictly before
// the incoming factory runs. A nil route only unmounts.
func (o *Orchestrator) Apply(st nav.State) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if st.Route == nil {
		o.unmountLocked()
		return
	}
	id := st.Route.Panel
	if o.active != nil && o.activeID == id {
		o.active.Update(st.Params, st.Query, st.Reason)
		return
	}
	o.unmountLocked()
	factory := o.reg.factories[id]
	if factory == nil {
		// Table construction validates panel IDs; reaching here means the
		// registry and table were built against different sets.
		return
	}
	o.active = factory(st.Params, st.Query, st.Reason)
	o.activeID = id
}

// Active returns the mounted panel and its identifier, if any.
func (o *Orchestrator) Active() (Panel, string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active, o.activeID, o.active != nil
}

// Shutdown unmounts whatever is active. Used on host exit.
func (o *Orchestrator) Shutdown() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unmountLocked()
}

func (o *Orchestrator) unmountLocked() {
	if o.active == nil {
		return
	}
	o.active.Scope().Dispose()
	o.active = nil
	o.activeID = ""
}
