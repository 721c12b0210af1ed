package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
	"orrery-sim/internal/store"
)

// mockLights counts light registrations for disposal assertions.
type mockLights struct {
	active  map[string]mgl32.Vec3
	adds    int
	removes int
}

func newMockLights() *mockLights {
	return &mockLights{active: map[string]mgl32.Vec3{}}
}

func (m *mockLights) AddLight(id string, pos mgl32.Vec3) {
	if _, ok := m.active[id]; !ok {
		m.adds++
	}
	m.active[id] = pos
}

func (m *mockLights) RemoveLight(id string) {
	if _, ok := m.active[id]; ok {
		m.removes++
		delete(m.active, id)
	}
}

// mockLabels counts label lifecycle calls.
type mockLabels struct {
	active  map[string]string
	creates int
	removes int
}

func newMockLabels() *mockLabels {
	return &mockLabels{active: map[string]string{}}
}

func (m *mockLabels) CreateLabel(id, text string, anchor *gfx.Node) {
	if _, ok := m.active[id]; !ok {
		m.creates++
		m.active[id] = text
	}
}

func (m *mockLabels) RemoveLabel(id string) {
	if _, ok := m.active[id]; ok {
		m.removes++
		delete(m.active, id)
	}
}

// testStrategy builds simple tiers at fixed thresholds and records calls.
type testStrategy struct {
	thresholds []float32
	builds     int
	animates   int
	disposed   int
}

func (s *testStrategy) BuildDetailTiers(b body.Body, opts TierOptions) ([]DetailTier, error) {
	s.builds++
	tiers := make([]DetailTier, len(s.thresholds))
	for i, d := range s.thresholds {
		mesh := gfx.NewMesh(gfx.MeshSphere, b.Radius)
		tiers[i] = DetailTier{
			Node:        gfx.NewMeshNode("tier", mesh, gfx.NewMaterial(mgl32.Vec3{1, 1, 1})),
			MinDistance: d,
		}
	}
	return tiers, nil
}

func (s *testStrategy) Animate(*Visual, float64, map[string]body.LightSource, *gfx.Camera) {
	s.animates++
}

func (s *testStrategy) Dispose() { s.disposed++ }

// failStrategy always fails tier construction.
type failStrategy struct{}

func (failStrategy) BuildDetailTiers(body.Body, TierOptions) ([]DetailTier, error) {
	return nil, errors.New("shader compile failed")
}

func (failStrategy) Animate(*Visual, float64, map[string]body.LightSource, *gfx.Camera) {}
func (failStrategy) Dispose()                                                          {}

// testRegistry returns a registry with one shared test strategy for planets
// and a per-id strategy for stars.
func testRegistry(thresholds []float32) (*Registry, *testStrategy) {
	shared := &testStrategy{thresholds: thresholds}
	r := NewRegistry(nil)
	r.Register(body.TypePlanet, func(body.Body) Strategy { return shared })
	r.Register(body.TypeMoon, func(body.Body) Strategy { return shared })
	r.Register(body.TypeStar, func(body.Body) Strategy {
		return &testStrategy{thresholds: thresholds}
	})
	return r, shared
}

func activeBody(id string, t body.Type, pos mgl32.Vec3) body.Body {
	return body.Body{
		ID:          id,
		Name:        id,
		Type:        t,
		Status:      body.StatusActive,
		Position:    pos,
		Orientation: mgl32.QuatIdent(),
		Radius:      1,
	}
}

// boundStore is a minimal Subscribable that records unsubscription.
type boundStore struct {
	fn           store.SnapshotFunc
	unsubscribed bool
}

func newBoundStore() *boundStore { return &boundStore{} }

func (b *boundStore) Subscribe(fn store.SnapshotFunc) func() {
	b.fn = fn
	fn(map[string]body.Body{})
	return func() { b.unsubscribed = true }
}

func (b *boundStore) push(snap map[string]body.Body) {
	if b.fn != nil && !b.unsubscribed {
		b.fn(snap)
	}
}

func snapshotOf(bs ...body.Body) map[string]body.Body {
	m := make(map[string]body.Body, len(bs))
	for _, b := range bs {
		m[b.ID] = b
	}
	return m
}
