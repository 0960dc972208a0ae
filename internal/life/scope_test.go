package life

import (
	"testing"
	"time"
)

func TestDisposeRunsCleanupsInReverseOrder(t *testing.T) {
	s := NewScope()
	var order []int
	s.OnDispose(func() { order = append(order, 1) })
	s.OnDispose(func() { order = append(order, 2) })
	s.OnDispose(func() { order = append(order, 3) })

	s.Dispose()

	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("ran %d cleanups, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("cleanup order: got %v, want %v", order, want)
		}
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	s := NewScope()
	count := 0
	s.OnDispose(func() { count++ })

	s.Dispose()
	s.Dispose()
	s.Dispose()

	if count != 1 {
		t.Fatalf("cleanup ran %d times, want 1", count)
	}
}

func TestOnDisposeAfterDisposeRunsImmediately(t *testing.T) {
	s := NewScope()
	s.Dispose()

	ran := false
	s.OnDispose(func() { ran = true })
	if !ran {
		t.Fatal("late OnDispose did not run immediately")
	}
}

func TestCtxCancelledOnDispose(t *testing.T) {
	s := NewScope()
	select {
	case <-s.Ctx().Done():
		t.Fatal("context done before dispose")
	default:
	}

	s.Dispose()

	select {
	case <-s.Ctx().Done():
	default:
		t.Fatal("context not cancelled after dispose")
	}
}

func TestAfterFuncStoppedByDispose(t *testing.T) {
	s := NewScope()
	fired := make(chan struct{}, 1)
	s.AfterFunc(10*time.Millisecond, func() { fired <- struct{}{} })
	s.Dispose()

	select {
	case <-fired:
		t.Fatal("timer fired after dispose")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAfterFuncFiresWhileAlive(t *testing.T) {
	s := NewScope()
	defer s.Dispose()

	fired := make(chan struct{}, 1)
	s.AfterFunc(time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestChildDisposedWithParent(t *testing.T) {
	parent := NewScope()
	child := parent.Child()

	childDown := false
	child.OnDispose(func() { childDown = true })

	parent.Dispose()

	if !childDown {
		t.Fatal("child cleanup did not run on parent dispose")
	}
	if !child.Disposed() {
		t.Fatal("child not marked disposed")
	}
}

func TestChildOfDisposedParentIsBornDisposed(t *testing.T) {
	parent := NewScope()
	parent.Dispose()

	child := parent.Child()
	if !child.Disposed() {
		t.Fatal("child of disposed parent should be disposed")
	}
}
