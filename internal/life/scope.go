package life

import (
	"context"
	"sync"
	"time"
)

// Scope collects cleanup work registered over the lifetime of one owner
// (typically a mounted panel). A single Dispose call tears down everything
// registered since creation: cleanup callbacks run in reverse registration
// order, pending timers are stopped, and the scope context is cancelled.
// Dispose is idempotent; every callback runs exactly once.
type Scope struct {
	mu       sync.Mutex
	disposed bool
	cleanups []func()
	timers   []*time.Timer
	children []*Scope
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewScope creates a root scope.
func NewScope() *Scope {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scope{ctx: ctx, cancel: cancel}
}

// Ctx returns a context that is cancelled when the scope is disposed.
// In-flight fetches derived from it observe teardown cooperatively.
func (s *Scope) Ctx() context.Context {
	return s.ctx
}

// OnDispose registers fn to run when the scope is disposed.
// Registering on an already disposed scope runs fn immediately, so a late
// registrant cannot leak its resource past teardown.
func (s *Scope) OnDispose(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// AfterFunc schedules fn after d, unless the scope is disposed first.
// The timer is stopped on dispose; fn never fires after teardown.
func (s *Scope) AfterFunc(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	timer := time.AfterFunc(d, func() {
		s.mu.Lock()
		dead := s.disposed
		s.mu.Unlock()
		if !dead {
			fn()
		}
	})
	s.timers = append(s.timers, timer)
	s.mu.Unlock()
}

// Child creates a nested scope that is disposed together with its parent.
// Disposing the child early does not affect the parent.
func (s *Scope) Child() *Scope {
	child := NewScope()
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		child.Dispose()
		return child
	}
	s.children = append(s.children, child)
	s.mu.Unlock()
	return child
}

// Disposed reports whether Dispose has run.
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Dispose cancels the scope context, stops timers, disposes children and
// runs cleanups in reverse registration order. Subsequent calls are no-ops.
func (s *Scope) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	cleanups := s.cleanups
	timers := s.timers
	children := s.children
	s.cleanups = nil
	s.timers = nil
	s.children = nil
	s.mu.Unlock()

	s.cancel()
	for _, timer := range timers {
		timer.Stop()
	}
	for _, child := range children {
		child.Dispose()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
