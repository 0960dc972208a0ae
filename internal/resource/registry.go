package resource

import (
	"context"
	"sync"
)

// Token is the cancellation handle for one in-flight operation. Its
// context is cancelled when a newer operation for the same owner starts or
// when the owner is torn down. Done must be called exactly once when the
// operation completes; Done on a superseded token is a no-op.
type Token struct {
	reg   *Registry
	owner string
	key   string
	gen   uint64
	ctx   context.Context
	done  bool // guarded by reg.mu
}

// Ctx is the token's cancellation signal. Fetches must check it
// cooperatively and stop mutating shared state once it fires.
func (t *Token) Ctx() context.Context {
	return t.ctx
}

// Key returns the request key the token was started with.
func (t *Token) Key() string {
	return t.key
}

// Generation returns the token's monotonically increasing sequence number
// within its owner.
func (t *Token) Generation() uint64 {
	return t.gen
}

// Done marks the operation complete and clears the owner's pending flag if
// the token is still the most recent one. Calling it again, or on a stale
// token, does nothing.
func (t *Token) Done() {
	t.reg.finish(t)
}

type ownerState struct {
	current  *Token
	cancel   context.CancelFunc
	gen      uint64
	pending  bool
	watchers []func(bool)
}

// Registry enforces at most one active cancellation token per owner.
// Starting a new operation for an owner cancels the prior one; starting
// with the key already in flight is coalesced into the existing request.
type Registry struct {
	mu     sync.Mutex
	owners map[string]*ownerState
}

func NewRegistry() *Registry {
	return &Registry{owners: make(map[string]*ownerState)}
}

// Start begins an operation for owner under the given request key.
// It returns nil when an in-flight, not yet completed token for the owner
// carries the same key: the duplicate is suppressed and the existing
// result should be awaited. Otherwise any prior token is cancelled and a
// fresh token with the next generation is returned.
func (r *Registry) Start(owner, key string) *Token {
	r.mu.Lock()
	os := r.owners[owner]
	if os == nil {
		os = &ownerState{}
		r.owners[owner] = os
	}
	if os.current != nil && !os.current.done && os.current.key == key {
		r.mu.Unlock()
		return nil
	}
	if os.cancel != nil {
		os.cancel()
	}
	os.gen++
	ctx, cancel := context.WithCancel(context.Background())
	tok := &Token{reg: r, owner: owner, key: key, gen: os.gen, ctx: ctx}
	os.current = tok
	os.cancel = cancel
	watchers := r.setPending(os, true)
	r.mu.Unlock()

	for _, fn := range watchers {
		fn(true)
	}
	return tok
}

func (r *Registry) finish(t *Token) {
	r.mu.Lock()
	os := r.owners[t.owner]
	if os == nil || t.done {
		r.mu.Unlock()
		return
	}
	t.done = true
	var watchers []func(bool)
	if os.current == t {
		watchers = r.setPending(os, false)
	}
	r.mu.Unlock()

	for _, fn := range watchers {
		fn(false)
	}
}

// Cancel tears down the owner's in-flight operation, if any, and clears
// the pending flag. A subsequent Start with the same key issues a fresh
// request instead of coalescing.
func (r *Registry) Cancel(owner string) {
	r.mu.Lock()
	os := r.owners[owner]
	if os == nil {
		r.mu.Unlock()
		return
	}
	if os.cancel != nil {
		os.cancel()
		os.cancel = nil
	}
	os.current = nil
	watchers := r.setPending(os, false)
	r.mu.Unlock()

	for _, fn := range watchers {
		fn(false)
	}
}

// Pending reports whether the owner has an operation between Start and the
// matching Done.
func (r *Registry) Pending(owner string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	os := r.owners[owner]
	return os != nil && os.pending
}

// OnPending registers an observer for the owner's pending flag. It fires
// on every edge, not on redundant sets.
func (r *Registry) OnPending(owner string, fn func(bool)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	os := r.owners[owner]
	if os == nil {
		os = &ownerState{}
		r.owners[owner] = os
	}
	os.watchers = append(os.watchers, fn)
}

// setPending flips the flag and returns the watchers to notify, or nil if
// the value did not change. Callers invoke them after unlocking.
func (r *Registry) setPending(os *ownerState, v bool) []func(bool) {
	if os.pending == v {
		return nil
	}
	os.pending = v
	return os.watchers
}
