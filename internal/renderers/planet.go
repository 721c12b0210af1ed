package renderers

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
	"orrery-sim/internal/scene"
)

// PlanetStrategy is the shared general-purpose renderer for planets, moons,
// and dwarf planets. One instance serves every such body; per-body appearance
// comes from the properties bag at tier construction time.
type PlanetStrategy struct{}

// NewPlanetStrategy creates the shared rocky-body renderer.
func NewPlanetStrategy(body.Body) *PlanetStrategy {
	return &PlanetStrategy{}
}

// BuildDetailTiers returns high and low poly spheres plus a far point sprite.
func (s *PlanetStrategy) BuildDetailTiers(b body.Body, opts scene.TierOptions) ([]scene.DetailTier, error) {
	color, ok := planetPalette[b.Property("surface", "rocky")]
	if !ok {
		color = planetPalette["rocky"]
	}

	hi := gfx.NewMesh(gfx.MeshSphere, b.Radius)
	hi.Segments = 32
	near := gfx.NewMeshNode("planet-near", hi, gfx.NewMaterial(color))

	lo := gfx.NewMesh(gfx.MeshSphere, b.Radius)
	lo.Segments = 8
	mid := gfx.NewMeshNode("planet-mid", lo, gfx.NewMaterial(color))

	far := gfx.NewMeshNode("planet-far", gfx.NewMesh(gfx.MeshBillboard, b.Radius), gfx.NewMaterial(color))

	return []scene.DetailTier{
		{Node: near, MinDistance: 0},
		{Node: mid, MinDistance: opts.Scale(midTierDistance)},
		{Node: far, MinDistance: opts.Scale(farTierDistance)},
	}, nil
}

// Animate spins the body around its axis by its rotation period.
func (s *PlanetStrategy) Animate(v *scene.Visual, time float64, lights map[string]body.LightSource, cam *gfx.Camera) {
	period := 24.0
	if p, err := strconv.ParseFloat(v.Body.Property("rotation_period_h", ""), 64); err == nil && p > 0 {
		period = p
	}
	angle := float32(time / (period * 3600) * 2 * 3.14159265)
	if n := v.ActiveNode(); n != nil {
		n.Orientation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
	}
}

// Dispose releases nothing: all geometry belongs to the visuals.
func (s *PlanetStrategy) Dispose() {}
