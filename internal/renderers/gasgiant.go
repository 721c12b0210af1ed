package renderers

import (
	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
	"orrery-sim/internal/scene"
)

// GasGiantStrategy renders gas giants. One instance exists per Sudarsky
// appearance class; the registry keys resolution on the body's class
// property, so all class-II giants share this strategy and its table row.
type GasGiantStrategy struct {
	class  string
	params gasGiantParams
}

// NewGasGiantStrategy picks the parameter row for the body's class.
func NewGasGiantStrategy(b body.Body) *GasGiantStrategy {
	class := b.Property("class", "II")
	params, ok := gasGiantTable[class]
	if !ok {
		class = "II"
		params = gasGiantTable[class]
	}
	return &GasGiantStrategy{class: class, params: params}
}

// BuildDetailTiers returns banded sphere, plain sphere, and far sprite tiers.
func (s *GasGiantStrategy) BuildDetailTiers(b body.Body, opts scene.TierOptions) ([]scene.DetailTier, error) {
	near := gfx.NewNode("gasgiant-near")
	surface := gfx.NewMesh(gfx.MeshSphere, b.Radius)
	surface.Segments = 40
	near.AddChild(gfx.NewMeshNode("surface", surface, gfx.NewMaterial(s.params.Color)))
	// One ring node per cloud band; banding survives into the retained tree
	// so viewers can draw it.
	for i := 0; i < s.params.BandCount; i++ {
		band := gfx.NewMesh(gfx.MeshRing, b.Radius*1.01)
		band.InnerRadius = b.Radius
		mat := gfx.NewMaterial(s.params.Color.Mul(0.85))
		mat.Opacity = s.params.CloudAlpha
		near.AddChild(gfx.NewMeshNode("band", band, mat))
	}

	lo := gfx.NewMesh(gfx.MeshSphere, b.Radius)
	lo.Segments = 12
	mid := gfx.NewMeshNode("gasgiant-mid", lo, gfx.NewMaterial(s.params.Color))

	far := gfx.NewMeshNode("gasgiant-far", gfx.NewMesh(gfx.MeshBillboard, b.Radius), gfx.NewMaterial(s.params.Color))

	return []scene.DetailTier{
		{Node: near, MinDistance: 0},
		{Node: mid, MinDistance: opts.Scale(midTierDistance)},
		{Node: far, MinDistance: opts.Scale(farTierDistance)},
	}, nil
}

// Animate rotates the cloud bands; giants spin fast.
func (s *GasGiantStrategy) Animate(v *scene.Visual, time float64, lights map[string]body.LightSource, cam *gfx.Camera) {
	if n := v.ActiveNode(); n != nil {
		n.Orientation = mgl32.QuatRotate(float32(time)*0.1, mgl32.Vec3{0, 1, 0})
	}
}

// Dispose releases nothing: all geometry belongs to the visuals.
func (s *GasGiantStrategy) Dispose() {}
