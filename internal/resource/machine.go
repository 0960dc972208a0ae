package resource

import (
	"context"
	"errors"
	"sync"
)

// FetchFunc loads the value for one input. It must honor ctx: once the
// signal fires the fetch is superseded and must stop without touching
// shared state. Return ErrNotFound (possibly wrapped) for an absent
// resource.
type FetchFunc[I, T any] func(ctx context.Context, input I) (T, error)

// Machine drives one fetch site through the Resource phases. Inputs
// arrive via SetInput; fetches run on their own goroutine with the abort
// registry guaranteeing that only the most recently issued request can
// apply its result ("last request wins", even if an older response lands
// later). All state application is serialized under one mutex, so the
// machine is the single writer of its Resource.
type Machine[I, T any] struct {
	mu        sync.Mutex
	reg       *Registry
	owner     string
	keyFn     func(I) string
	fetch     FetchFunc[I, T]
	state     Resource[T]
	lastReady *T
	current   *Token
	subs      []func(Resource[T])
}

// NewMachine creates an idle machine. The owner string namespaces this
// fetch site in the shared registry; keyFn derives the request key that
// decides duplicate suppression.
func NewMachine[I, T any](reg *Registry, owner string, keyFn func(I) string, fetch FetchFunc[I, T]) *Machine[I, T] {
	return &Machine[I, T]{
		reg:   reg,
		owner: owner,
		keyFn: keyFn,
		fetch: fetch,
		state: Resource[T]{Phase: PhaseIdle},
	}
}

// State returns the current resource snapshot.
func (m *Machine[I, T]) State() Resource[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn for every state transition. Suppressed duplicate
// starts and dropped superseded results produce no notification.
func (m *Machine[I, T]) Subscribe(fn func(Resource[T])) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// SetInput feeds the machine its driving input. nil cancels any in-flight
// fetch and resets to idle, discarding stale data so a reopened panel
// cannot resurrect it. A non-nil input with the key already in flight is
// coalesced; otherwise the machine enters loading (retaining the last
// ready data as Previous) and launches the fetch.
func (m *Machine[I, T]) SetInput(input *I) {
	if input == nil {
		m.reset()
		return
	}
	key := m.keyFn(*input)
	m.mu.Lock()
	tok := m.reg.Start(m.owner, key)
	if tok == nil {
		// Same key already in flight; its result is awaited.
		m.mu.Unlock()
		return
	}
	m.current = tok
	m.state = Resource[T]{Phase: PhaseLoading, Previous: m.lastReady}
	m.notifyLocked()

	value := *input
	go m.run(tok, value)
}

func (m *Machine[I, T]) reset() {
	m.mu.Lock()
	m.reg.Cancel(m.owner)
	m.current = nil
	m.lastReady = nil
	m.state = Resource[T]{Phase: PhaseIdle}
	m.notifyLocked()
}

func (m *Machine[I, T]) run(tok *Token, input I) {
	data, err := m.fetch(tok.Ctx(), input)
	tok.Done()

	m.mu.Lock()
	if m.current != tok || tok.Ctx().Err() != nil {
		// Superseded, reset, or cancelled while in flight; the newer
		// request owns the state now, whatever this one resolved to.
		m.mu.Unlock()
		return
	}
	switch {
	case err == nil:
		d := data
		m.lastReady = &d
		m.state = Resource[T]{Phase: PhaseReady, Data: d}
	case errors.Is(err, ErrNotFound):
		m.state = Resource[T]{Phase: PhaseNotFound}
	case errors.Is(err, context.Canceled):
		// Cancellation makes no transition.
		m.mu.Unlock()
		return
	default:
		m.state = Resource[T]{Phase: PhaseError, Message: err.Error(), Previous: m.lastReady}
	}
	m.notifyLocked()
}

// notifyLocked snapshots state and subscribers, releases the lock and
// fans out. Callers must hold m.mu; it is released on return.
func (m *Machine[I, T]) notifyLocked() {
	state := m.state
	subs := make([]func(Resource[T]), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
