package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
)

func TestLODSelector_Monotonic(t *testing.T) {
	s := &testStrategy{thresholds: []float32{0, 100, 500}}
	tiers, err := s.BuildDetailTiers(activeBody("x", body.TypePlanet, mgl32.Vec3{}), TierOptions{})
	if err != nil {
		t.Fatalf("BuildDetailTiers: %v", err)
	}

	cases := []struct {
		distance float32
		want     int
	}{
		{0, 0},
		{50, 0},
		{100, 1},
		{499, 1},
		{500, 2},
		{1000, 2},
	}
	var sel LODSelector
	for _, c := range cases {
		if got := sel.Select(tiers, c.distance); got != c.want {
			t.Errorf("Select(distance=%v) = %d, want %d", c.distance, got, c.want)
		}
	}
}

func TestLODSelector_ApplyTogglesVisibilityOnly(t *testing.T) {
	s := &testStrategy{thresholds: []float32{0, 100}}
	tiers, _ := s.BuildDetailTiers(activeBody("x", body.TypePlanet, mgl32.Vec3{}), TierOptions{})
	v := &Visual{ID: "x", Root: gfx.NewNode("root"), Tiers: tiers}
	for i := range tiers {
		tiers[i].Node.SetVisible(i == 0)
		v.Root.AddChild(tiers[i].Node)
	}

	var sel LODSelector
	if !sel.Apply(v, 150) {
		t.Fatal("expected tier swap at distance 150")
	}
	if v.ActiveTier != 1 {
		t.Fatalf("ActiveTier = %d, want 1", v.ActiveTier)
	}
	if tiers[0].Node.Visible() || !tiers[1].Node.Visible() {
		t.Error("visibility flags not swapped")
	}
	if tiers[0].Node.Mesh.Disposed() || tiers[1].Node.Mesh.Disposed() {
		t.Error("tier swap must not dispose geometry")
	}

	// Same distance, no further swap.
	if sel.Apply(v, 150) {
		t.Error("unexpected swap on unchanged distance")
	}
}

func TestLOD_ChildUsesParentDistance(t *testing.T) {
	reg, _ := testRegistry([]float32{0, 100, 500})
	sc := gfx.NewScene()
	sync := New(Config{Scene: sc, Registry: reg})
	defer sync.Dispose()

	planet := activeBody("p1", body.TypePlanet, mgl32.Vec3{0, 0, 0})
	moon := activeBody("m1", body.TypeMoon, mgl32.Vec3{600, 0, 0})
	moon.ParentID = "p1"
	sync.OnStoreSnapshot(snapshotOf(planet, moon))

	// Camera sits at the planet: the moon itself is 600 away, but it must
	// follow its parent's distance of 0 and stay at the nearest tier.
	cam := &gfx.Camera{Position: mgl32.Vec3{0, 0, 0}}
	sync.Update(1, nil, &gfx.FrameContext{Camera: cam})

	counts := sync.ActiveTierCounts()
	if counts[0] != 2 {
		t.Fatalf("active tier histogram = %v, want both visuals at tier 0", counts)
	}
}
