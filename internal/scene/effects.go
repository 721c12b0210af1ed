package scene

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
	"orrery-sim/internal/store"
)

// lensingEffect owns the scene resources of one gravitational lensing halo.
type lensingEffect struct {
	node *gfx.Node
}

// EffectCoordinator manages optional per-body effects: gravitational lensing
// for compact objects and acceleration-vector debug arrows. Attachments never
// outlive their visual; absence of an effect is never a hard failure.
type EffectCoordinator struct {
	log   *slog.Logger
	accel *store.AccelStore

	lensing map[string]*lensingEffect
	// pending holds ids whose lensing attach is deferred until a frame with a
	// complete context arrives.
	pending map[string]struct{}
	arrows  map[string]*gfx.Node
}

// NewEffectCoordinator creates a coordinator. accel may be nil to produce no
// arrow overlays.
func NewEffectCoordinator(log *slog.Logger, accel *store.AccelStore) *EffectCoordinator {
	if log == nil {
		log = slog.Default()
	}
	return &EffectCoordinator{
		log:     log,
		accel:   accel,
		lensing: make(map[string]*lensingEffect),
		pending: make(map[string]struct{}),
		arrows:  make(map[string]*gfx.Node),
	}
}

// NeedsLensing is a pure predicate over type and properties: compact stellar
// objects (black holes, neutron stars) bend light enough to warrant the halo.
func (c *EffectCoordinator) NeedsLensing(b body.Body) bool {
	return b.Type == body.TypeStar && b.IsCompact()
}

// Attach creates the lensing effect for a visual if it qualifies and the full
// frame context is available. Without a context the attach is deferred; the
// body stays fully functional without the effect in the interim.
func (c *EffectCoordinator) Attach(v *Visual, fc *gfx.FrameContext) {
	if !c.NeedsLensing(v.Body) {
		return
	}
	if _, ok := c.lensing[v.ID]; ok {
		return
	}
	if !fc.Complete() {
		c.pending[v.ID] = struct{}{}
		return
	}
	c.attachLensing(v, fc)
}

func (c *EffectCoordinator) attachLensing(v *Visual, fc *gfx.FrameContext) {
	mesh := gfx.NewMesh(gfx.MeshDisc, v.Body.Radius*6)
	mesh.InnerRadius = v.Body.Radius * 1.5
	mat := gfx.NewMaterial(mgl32.Vec3{0.6, 0.7, 1.0})
	mat.Opacity = 0.35
	mat.Additive = true
	n := gfx.NewMeshNode("lensing:"+v.ID, mesh, mat)
	n.Position = v.Root.Position
	fc.Scene.Add(n)
	c.lensing[v.ID] = &lensingEffect{node: n}
	delete(c.pending, v.ID)
	c.log.Debug("lensing effect attached", "body_id", v.ID)
}

// Detach releases effect resources for an id. Safe on ids with no attachment.
func (c *EffectCoordinator) Detach(id string) {
	if e, ok := c.lensing[id]; ok {
		e.node.DisposeTree()
		delete(c.lensing, id)
	}
	delete(c.pending, id)
	if n, ok := c.arrows[id]; ok {
		n.DisposeTree()
		delete(c.arrows, id)
	}
}

// HasLensing reports whether a live lensing attachment exists for id.
func (c *EffectCoordinator) HasLensing(id string) bool {
	_, ok := c.lensing[id]
	return ok
}

// PendingLensing reports whether a deferred attach is queued for id.
func (c *EffectCoordinator) PendingLensing(id string) bool {
	_, ok := c.pending[id]
	return ok
}

// Tick updates all effect attachments for this frame. Lensing updates require
// the full context and are skipped for the frame when it is unavailable, not
// deferred or queued. Arrow overlays follow the acceleration store.
func (c *EffectCoordinator) Tick(visuals map[string]*Visual, fc *gfx.FrameContext) {
	if fc.Complete() {
		for id := range c.pending {
			if v, ok := visuals[id]; ok {
				c.attachLensing(v, fc)
			} else {
				delete(c.pending, id)
			}
		}
		for id, e := range c.lensing {
			v, ok := visuals[id]
			if !ok {
				continue
			}
			e.node.Position = v.Root.Position
			// Halo faces the camera; the distortion ring reads as a circle
			// from any viewpoint.
			e.node.Orientation = faceCamera(v.Root.Position, fc.Camera)
		}
	}
	c.tickArrows(visuals)
}

func (c *EffectCoordinator) tickArrows(visuals map[string]*Visual) {
	if c.accel == nil {
		return
	}
	vecs := c.accel.Snapshot()
	for id, vec := range vecs {
		v, ok := visuals[id]
		if !ok {
			continue
		}
		n, ok := c.arrows[id]
		if !ok {
			mesh := gfx.NewMesh(gfx.MeshArrow, v.Body.Radius*2)
			mat := gfx.NewMaterial(mgl32.Vec3{1.0, 0.4, 0.1})
			n = gfx.NewMeshNode("accel:"+id, mesh, mat)
			v.Root.AddChild(n)
			c.arrows[id] = n
		}
		if l := vec.Len(); l > 0 {
			n.Orientation = mgl32.QuatBetweenVectors(mgl32.Vec3{0, 1, 0}, vec.Mul(1/l))
			n.Scale = mgl32.Vec3{1, l, 1}
			n.SetVisible(true)
		} else {
			n.SetVisible(false)
		}
	}
	// Absence of an id in the store removes its arrow.
	for id, n := range c.arrows {
		if _, ok := vecs[id]; !ok {
			n.DisposeTree()
			delete(c.arrows, id)
		}
	}
}

// Dispose tears down every attachment.
func (c *EffectCoordinator) Dispose() {
	for id := range c.lensing {
		c.Detach(id)
	}
	for id := range c.arrows {
		c.Detach(id)
	}
	c.pending = make(map[string]struct{})
}

func faceCamera(pos mgl32.Vec3, cam *gfx.Camera) mgl32.Quat {
	dir := cam.Position.Sub(pos)
	if dir.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, 1}, dir.Normalize())
}
