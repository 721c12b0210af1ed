package store

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// DestructionEvent describes a body destruction for debris spawning.
type DestructionEvent struct {
	DestroyedID      string     `json:"destroyed_id"`
	ImpactPosition   mgl32.Vec3 `json:"impact_position"`
	DestroyedRadius  float32    `json:"destroyed_radius"`
	RelativeVelocity mgl32.Vec3 `json:"relative_velocity"`
}

// DestructionFunc consumes one destruction event.
type DestructionFunc func(DestructionEvent)

// DestructionChannel fans destruction notifications out to subscribers.
type DestructionChannel struct {
	mu     sync.Mutex
	subs   map[int]DestructionFunc
	nextID int
}

// NewDestructionChannel creates an empty channel.
func NewDestructionChannel() *DestructionChannel {
	return &DestructionChannel{subs: make(map[int]DestructionFunc)}
}

// Subscribe registers fn; the returned function cancels the subscription.
func (c *DestructionChannel) Subscribe(fn DestructionFunc) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Publish delivers ev synchronously to all subscribers.
func (c *DestructionChannel) Publish(ev DestructionEvent) {
	c.mu.Lock()
	subs := make([]DestructionFunc, 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// AccelStore maps body ids to acceleration vectors for debug arrow overlays.
// Absence of an id means no arrow.
type AccelStore struct {
	mu   sync.Mutex
	vecs map[string]mgl32.Vec3
}

// NewAccelStore creates an empty acceleration store.
func NewAccelStore() *AccelStore {
	return &AccelStore{vecs: make(map[string]mgl32.Vec3)}
}

// Set stores the acceleration vector for a body.
func (a *AccelStore) Set(id string, v mgl32.Vec3) {
	a.mu.Lock()
	a.vecs[id] = v
	a.mu.Unlock()
}

// Remove drops a body's vector.
func (a *AccelStore) Remove(id string) {
	a.mu.Lock()
	delete(a.vecs, id)
	a.mu.Unlock()
}

// Get returns the vector for id, if present.
func (a *AccelStore) Get(id string) (mgl32.Vec3, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.vecs[id]
	return v, ok
}

// Snapshot returns a copy of all vectors.
func (a *AccelStore) Snapshot() map[string]mgl32.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]mgl32.Vec3, len(a.vecs))
	for id, v := range a.vecs {
		out[id] = v
	}
	return out
}
