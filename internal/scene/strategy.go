// Scene synchronization core: renderer strategies and detail tiers
package scene

import (
	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
)

// DetailTier is one level-of-detail representation of a body. MinDistance is
// the closest camera distance at which this tier becomes active; tier lists
// are sorted ascending and start at 0.
type DetailTier struct {
	Node        *gfx.Node
	MinDistance float32
}

// TierOptions tunes tier construction without changing strategy identity.
type TierOptions struct {
	// DistanceScale multiplies every tier threshold, letting config stretch or
	// compress the LOD bands uniformly.
	DistanceScale float32
}

// Scale returns d adjusted by the configured distance scale.
func (o TierOptions) Scale(d float32) float32 {
	if o.DistanceScale <= 0 {
		return d
	}
	return d * o.DistanceScale
}

// Strategy builds and animates the visual representation for one class of
// body. Strategies are stateless with respect to individual bodies: per-body
// state lives in the Visual, so one strategy instance may serve many ids.
type Strategy interface {
	// BuildDetailTiers constructs the tier list for a body, highest detail
	// first. The caller owns the returned nodes and their resources.
	BuildDetailTiers(b body.Body, opts TierOptions) ([]DetailTier, error)

	// Animate advances the visual's per-frame animation. Camera may be nil.
	Animate(v *Visual, time float64, lights map[string]body.LightSource, cam *gfx.Camera)

	// Dispose releases strategy-owned resources (shared textures, tables).
	Dispose()
}
