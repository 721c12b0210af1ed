package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
	"orrery-sim/internal/store"
)

func compactStar(id string) body.Body {
	b := activeBody(id, body.TypeStar, mgl32.Vec3{})
	b.Properties = map[string]string{"compact": "true"}
	return b
}

func fullContext() *gfx.FrameContext {
	return &gfx.FrameContext{
		Target: &gfx.RenderTarget{Width: 80, Height: 24},
		Scene:  gfx.NewScene(),
		Camera: &gfx.Camera{Position: mgl32.Vec3{0, 0, 10}},
	}
}

func TestEffectCoordinator_NeedsLensing(t *testing.T) {
	c := NewEffectCoordinator(nil, nil)
	if c.NeedsLensing(activeBody("s", body.TypeStar, mgl32.Vec3{})) {
		t.Error("ordinary star should not need lensing")
	}
	if !c.NeedsLensing(compactStar("bh")) {
		t.Error("compact star should need lensing")
	}
	compactPlanet := activeBody("p", body.TypePlanet, mgl32.Vec3{})
	compactPlanet.Properties = map[string]string{"compact": "true"}
	if c.NeedsLensing(compactPlanet) {
		t.Error("lensing is a stellar effect only")
	}
}

func TestEffectCoordinator_DeferredAttach(t *testing.T) {
	c := NewEffectCoordinator(nil, nil)
	b := compactStar("bh")
	v := &Visual{ID: b.ID, Body: b, Root: gfx.NewNode("bh")}
	visuals := map[string]*Visual{v.ID: v}

	// No frame context at attach time: deferred, not failed.
	c.Attach(v, nil)
	if c.HasLensing("bh") {
		t.Fatal("lensing attached without frame context")
	}
	if !c.PendingLensing("bh") {
		t.Fatal("attach was not deferred")
	}

	// Context still missing: tick skips, attachment stays pending.
	c.Tick(visuals, nil)
	if c.HasLensing("bh") {
		t.Fatal("lensing attached during context-less tick")
	}

	// First frame with a complete context performs the attach.
	c.Tick(visuals, fullContext())
	if !c.HasLensing("bh") {
		t.Fatal("deferred attach never completed")
	}
	if c.PendingLensing("bh") {
		t.Error("pending flag survives successful attach")
	}
}

func TestEffectCoordinator_ImmediateAttachWithContext(t *testing.T) {
	c := NewEffectCoordinator(nil, nil)
	b := compactStar("bh")
	v := &Visual{ID: b.ID, Body: b, Root: gfx.NewNode("bh")}

	c.Attach(v, fullContext())
	if !c.HasLensing("bh") {
		t.Fatal("attach with full context did not create the effect")
	}
}

func TestEffectCoordinator_DetachIsIdempotent(t *testing.T) {
	c := NewEffectCoordinator(nil, nil)
	b := compactStar("bh")
	v := &Visual{ID: b.ID, Body: b, Root: gfx.NewNode("bh")}
	c.Attach(v, fullContext())

	c.Detach("bh")
	if c.HasLensing("bh") {
		t.Fatal("lensing survives Detach")
	}
	// Second detach and unknown ids are no-ops.
	c.Detach("bh")
	c.Detach("never-existed")
}

func TestEffectCoordinator_ArrowsFollowAccelStore(t *testing.T) {
	accel := store.NewAccelStore()
	c := NewEffectCoordinator(nil, accel)
	b := activeBody("p", body.TypePlanet, mgl32.Vec3{})
	v := &Visual{ID: b.ID, Body: b, Root: gfx.NewNode("p")}
	visuals := map[string]*Visual{v.ID: v}

	accel.Set("p", mgl32.Vec3{0, 0, 2})
	c.Tick(visuals, nil)
	if len(v.Root.Children()) != 1 {
		t.Fatalf("arrow node count = %d, want 1", len(v.Root.Children()))
	}
	arrow := v.Root.Children()[0]

	// Absence of the id removes its arrow.
	accel.Remove("p")
	c.Tick(visuals, nil)
	if len(v.Root.Children()) != 0 {
		t.Fatal("arrow not removed after store entry vanished")
	}
	if arrow.Mesh.Disposals() != 1 {
		t.Errorf("arrow mesh disposals = %d, want exactly 1", arrow.Mesh.Disposals())
	}
}
