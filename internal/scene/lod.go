package scene

import (
	"orrery-sim/internal/gfx"
)

// LODSelector picks the active detail tier per visual each frame from the
// camera distance. Pure threshold comparison; tier lists are short (at most
// four entries) and thresholds well separated, so no hysteresis is applied.
type LODSelector struct{}

// Select returns the index of the tier with the largest MinDistance not
// exceeding distance. Tiers must be sorted ascending with tiers[0] at 0.
func (LODSelector) Select(tiers []DetailTier, distance float32) int {
	active := 0
	for i := 1; i < len(tiers); i++ {
		if tiers[i].MinDistance <= distance {
			active = i
		} else {
			break
		}
	}
	return active
}

// Apply selects the tier for distance and swaps visibility when the selection
// changed. Only visibility toggles: tier nodes and their resources persist for
// the visual's lifetime.
func (s LODSelector) Apply(v *Visual, distance float32) bool {
	if len(v.Tiers) == 0 {
		return false
	}
	next := s.Select(v.Tiers, distance)
	if next == v.ActiveTier {
		return false
	}
	if prev := v.ActiveNode(); prev != nil {
		prev.SetVisible(false)
	}
	v.ActiveTier = next
	if cur := v.ActiveNode(); cur != nil {
		cur.SetVisible(true)
	}
	return true
}

// distanceFor computes the camera distance used for a visual's tier selection.
// Bodies with a parent use the parent's own distance, so moons and rings gain
// detail exactly when their primary does.
func distanceFor(v *Visual, visuals map[string]*Visual, cam *gfx.Camera) float32 {
	if v.Body.ParentID != "" {
		if parent, ok := visuals[v.Body.ParentID]; ok {
			return cam.DistanceTo(parent.Root.Position)
		}
	}
	return cam.DistanceTo(v.Root.Position)
}
