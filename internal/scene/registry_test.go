package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
)

func TestRegistry_KeyingRules(t *testing.T) {
	r := NewRegistry(nil)
	var starBuilds, planetBuilds, giantBuilds int
	r.Register(body.TypeStar, func(body.Body) Strategy {
		starBuilds++
		return &testStrategy{thresholds: []float32{0}}
	})
	planetFactory := func(body.Body) Strategy {
		planetBuilds++
		return &testStrategy{thresholds: []float32{0}}
	}
	r.Register(body.TypePlanet, planetFactory)
	r.Register(body.TypeMoon, planetFactory)
	r.Register(body.TypeDwarfPlanet, planetFactory)
	r.Register(body.TypeGasGiant, func(body.Body) Strategy {
		giantBuilds++
		return &testStrategy{thresholds: []float32{0}}
	})

	// Stars key per id: two stars, two instances; same star, cached.
	s1, _, _ := r.Resolve(activeBody("s1", body.TypeStar, mgl32.Vec3{}))
	s2, _, _ := r.Resolve(activeBody("s2", body.TypeStar, mgl32.Vec3{}))
	s1again, _, _ := r.Resolve(activeBody("s1", body.TypeStar, mgl32.Vec3{}))
	if starBuilds != 2 {
		t.Errorf("star factory calls = %d, want 2", starBuilds)
	}
	if s1 != s1again || s1 == s2 {
		t.Error("star caching violated per-id keying")
	}

	// Planets, moons, and dwarfs share one strategy.
	p, _, _ := r.Resolve(activeBody("p", body.TypePlanet, mgl32.Vec3{}))
	m, _, _ := r.Resolve(activeBody("m", body.TypeMoon, mgl32.Vec3{}))
	if planetBuilds != 1 || p != m {
		t.Errorf("planet/moon should share one instance (factory calls = %d)", planetBuilds)
	}

	// Gas giants key per class.
	g1 := activeBody("g1", body.TypeGasGiant, mgl32.Vec3{})
	g1.Properties = map[string]string{"class": "I"}
	g2 := activeBody("g2", body.TypeGasGiant, mgl32.Vec3{})
	g2.Properties = map[string]string{"class": "III"}
	g3 := activeBody("g3", body.TypeGasGiant, mgl32.Vec3{})
	g3.Properties = map[string]string{"class": "I"}
	a, _, _ := r.Resolve(g1)
	b2, _, _ := r.Resolve(g2)
	c, _, _ := r.Resolve(g3)
	if giantBuilds != 2 {
		t.Errorf("gas giant factory calls = %d, want 2 (one per class)", giantBuilds)
	}
	if a == b2 || a != c {
		t.Error("gas giant class keying violated")
	}
}

func TestRegistry_UnknownTypeIsSentinel(t *testing.T) {
	r := NewRegistry(nil)
	if _, _, ok := r.Resolve(activeBody("x", body.Type("nebula"), mgl32.Vec3{})); ok {
		t.Fatal("Resolve returned a strategy for an unregistered type")
	}
	// TypeOther is deliberately unregistered in the default set too.
	if _, _, ok := r.Resolve(activeBody("y", body.TypeOther, mgl32.Vec3{})); ok {
		t.Fatal("Resolve returned a strategy for TypeOther")
	}
}

func TestRegistry_ReleaseID(t *testing.T) {
	r, shared := testRegistry([]float32{0})

	star := activeBody("s1", body.TypeStar, mgl32.Vec3{})
	planet := activeBody("p1", body.TypePlanet, mgl32.Vec3{})
	ss, _, _ := r.Resolve(star)
	r.Resolve(planet)
	if r.CachedCount() != 2 {
		t.Fatalf("cache entries = %d, want 2", r.CachedCount())
	}

	// Releasing the star id disposes only the per-id entry.
	r.ReleaseID("s1")
	if r.CachedCount() != 1 {
		t.Errorf("cache entries after ReleaseID = %d, want 1", r.CachedCount())
	}
	if ss.(*testStrategy).disposed != 1 {
		t.Error("per-id strategy not disposed on release")
	}
	if shared.disposed != 0 {
		t.Error("shared strategy disposed by unrelated release")
	}

	// Releasing a shared-key id is a no-op.
	r.ReleaseID("p1")
	if r.CachedCount() != 1 {
		t.Error("shared strategy evicted by per-id release")
	}

	r.Dispose()
	if r.CachedCount() != 0 || shared.disposed != 1 {
		t.Error("Dispose did not release all cached strategies")
	}
}
