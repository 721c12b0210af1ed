package scene

import (
	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
)

// Visual is the scene-side counterpart of one active body: the strategy that
// renders it, its detail tiers, and the handles for everything it owns.
// At most one Visual exists per body id at any time.
type Visual struct {
	ID       string
	Body     body.Body
	Strategy Strategy

	// strategyKey is the registry cache key the strategy was resolved under;
	// per-id keys are released when the visual is removed.
	strategyKey string

	// Root carries the body transform; tier nodes hang under it.
	Root *gfx.Node

	Tiers      []DetailTier
	ActiveTier int

	// Placeholder marks a fallback representation built after a resolution or
	// construction failure.
	Placeholder bool

	hasLight bool
	disposed bool
}

// ApplyTransform copies the latest body position and orientation onto the
// root node. Geometry and materials are untouched.
func (v *Visual) ApplyTransform(b body.Body) {
	v.Body = b
	v.Root.Position = b.Position
	v.Root.Orientation = b.Orientation
}

// ActiveNode returns the node of the currently active tier.
func (v *Visual) ActiveNode() *gfx.Node {
	if v.ActiveTier < 0 || v.ActiveTier >= len(v.Tiers) {
		return nil
	}
	return v.Tiers[v.ActiveTier].Node
}

// dispose releases all tier resources and detaches the root. Idempotent.
func (v *Visual) dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	for i := range v.Tiers {
		if v.Tiers[i].Node != nil {
			v.Tiers[i].Node.DisposeTree()
		}
	}
	v.Root.DisposeTree()
}
