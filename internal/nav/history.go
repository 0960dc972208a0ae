package nav

import "sync"

// History is the browser-history boundary. The Controller calls Push and
// Replace exactly on successful client-side navigations, never on failed
// matches. Current returns the entry the cursor points at.
type History interface {
	Push(path string)
	Replace(path string)
	Current() string
}

// MemoryHistory is an in-process History with back/forward traversal, used
// by the terminal host and by headless tests. Pushing while the cursor is
// in the middle of the stack discards the forward entries, matching
// browser semantics.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	cursor  int
}

// NewMemoryHistory starts the history at the given path.
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{entries: []string{initial}}
}

func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.cursor+1], path)
	h.cursor = len(h.entries) - 1
}

func (h *MemoryHistory) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.cursor] = path
}

func (h *MemoryHistory) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.cursor]
}

// Back moves the cursor one entry back. It reports whether it moved; the
// caller is responsible for firing the controller's history event.
func (h *MemoryHistory) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Forward moves the cursor one entry forward, if there is one.
func (h *MemoryHistory) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor >= len(h.entries)-1 {
		return false
	}
	h.cursor++
	return true
}

// Len returns the number of stacked entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
