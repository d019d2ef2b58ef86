// Package task provides a lean, concurrency-safe, in-memory tracker for
// live proof rounds. The engine itself is stateless and lock-free; callers
// that need at-most-one-in-flight-operation-per-document use this tracker
// as an advisory guard at the orchestration layer. No persistence, progress
// reporting, or background processing is included.
package task

import "sync"

// Tracker defines a minimal interface for tracking live rounds per
// operation. Implementations must be concurrency-safe. All methods are
// non-blocking and best-effort; invalid inputs are ignored.
type Tracker interface {
	Start(operation, documentID string)
	End(operation, documentID string)
	Snapshot() map[string][]string
}

// InMemoryTracker is a lean, concurrency-safe tracker of live proof rounds.
// It stores only in-memory state for the lifetime of the process and
// returns copies when asked for a snapshot to ensure isolation.
type InMemoryTracker struct {
	mu sync.RWMutex
	// operation -> set(documentID)
	data map[string]map[string]struct{}
}

// New creates and returns a new in-memory tracker.
func New() *InMemoryTracker {
	return &InMemoryTracker{data: make(map[string]map[string]struct{})}
}

// TryStart attempts to mark a document as having a round in flight under a
// given operation. It returns true if the round was newly started, or false
// if one was already running (or if inputs are invalid). This is the
// "only one in-flight round per document" guard.
func (t *InMemoryTracker) TryStart(operation, documentID string) bool {
	if operation == "" || documentID == "" {
		return false
	}
	t.mu.Lock()
	m, ok := t.data[operation]
	if !ok {
		m = make(map[string]struct{})
		t.data[operation] = m
	}
	if _, exists := m[documentID]; exists {
		t.mu.Unlock()
		return false
	}
	m[documentID] = struct{}{}
	t.mu.Unlock()
	return true
}

// Start marks a round as running for a document under a given operation.
// Empty arguments are ignored. Calling Start with the same pair is idempotent.
func (t *InMemoryTracker) Start(operation, documentID string) {
	if operation == "" || documentID == "" {
		return
	}
	t.mu.Lock()
	m, ok := t.data[operation]
	if !ok {
		m = make(map[string]struct{})
		t.data[operation] = m
	}
	m[documentID] = struct{}{}
	t.mu.Unlock()
}

// End removes a running round for a document. Empty arguments are ignored.
// Removing a non-existent pair is a no-op.
func (t *InMemoryTracker) End(operation, documentID string) {
	if operation == "" || documentID == "" {
		return
	}
	t.mu.Lock()
	if m, ok := t.data[operation]; ok {
		delete(m, documentID)
		if len(m) == 0 {
			delete(t.data, operation)
		}
	}
	t.mu.Unlock()
}

// Snapshot returns a copy of the current in-flight documents per operation.
// The returned map and slices are independent of internal state.
func (t *InMemoryTracker) Snapshot() map[string][]string {
	out := make(map[string][]string)
	t.mu.RLock()
	for op, m := range t.data {
		ids := make([]string, 0, len(m))
		for id := range m {
			ids = append(ids, id)
		}
		out[op] = ids
	}
	t.mu.RUnlock()
	return out
}
