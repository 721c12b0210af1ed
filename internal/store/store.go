// Authoritative object store with full-snapshot change notification
package store

import (
	"sync"

	"orrery-sim/internal/body"
)

// SnapshotFunc receives a full copy of the store contents after every change.
// Callbacks run synchronously on the mutating goroutine; callers are expected
// to serialize store changes with frame ticks.
type SnapshotFunc func(map[string]body.Body)

// ObjectStore owns the authoritative id -> Body mapping.
type ObjectStore struct {
	mu     sync.Mutex
	bodies map[string]body.Body
	subs   map[int]SnapshotFunc
	nextID int
}

// NewObjectStore creates an empty store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		bodies: make(map[string]body.Body),
		subs:   make(map[int]SnapshotFunc),
	}
}

// Subscribe registers fn and immediately delivers the current snapshot.
// The returned function cancels the subscription.
func (s *ObjectStore) Subscribe(fn SnapshotFunc) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	snap := s.snapshotLocked()
	s.mu.Unlock()

	fn(snap)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Set inserts or replaces a body and notifies subscribers.
func (s *ObjectStore) Set(b body.Body) {
	s.mu.Lock()
	s.bodies[b.ID] = b.Clone()
	snap, subs := s.snapshotLocked(), s.subsLocked()
	s.mu.Unlock()
	notify(subs, snap)
}

// SetAll replaces or inserts multiple bodies in one notification.
func (s *ObjectStore) SetAll(bs []body.Body) {
	if len(bs) == 0 {
		return
	}
	s.mu.Lock()
	for _, b := range bs {
		s.bodies[b.ID] = b.Clone()
	}
	snap, subs := s.snapshotLocked(), s.subsLocked()
	s.mu.Unlock()
	notify(subs, snap)
}

// Remove deletes a body by id; missing ids are a no-op with no notification.
func (s *ObjectStore) Remove(id string) {
	s.mu.Lock()
	if _, ok := s.bodies[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.bodies, id)
	snap, subs := s.snapshotLocked(), s.subsLocked()
	s.mu.Unlock()
	notify(subs, snap)
}

// Replace swaps the entire store contents and notifies subscribers.
func (s *ObjectStore) Replace(bs map[string]body.Body) {
	s.mu.Lock()
	s.bodies = make(map[string]body.Body, len(bs))
	for id, b := range bs {
		s.bodies[id] = b.Clone()
	}
	snap, subs := s.snapshotLocked(), s.subsLocked()
	s.mu.Unlock()
	notify(subs, snap)
}

// Get returns a copy of one body.
func (s *ObjectStore) Get(id string) (body.Body, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bodies[id]
	if !ok {
		return body.Body{}, false
	}
	return b.Clone(), true
}

// Snapshot returns a copy of the full store contents.
func (s *ObjectStore) Snapshot() map[string]body.Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of stored bodies.
func (s *ObjectStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}

func (s *ObjectStore) snapshotLocked() map[string]body.Body {
	snap := make(map[string]body.Body, len(s.bodies))
	for id, b := range s.bodies {
		snap[id] = b.Clone()
	}
	return snap
}

func (s *ObjectStore) subsLocked() []SnapshotFunc {
	subs := make([]SnapshotFunc, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []SnapshotFunc, snap map[string]body.Body) {
	for _, fn := range subs {
		fn(snap)
	}
}
