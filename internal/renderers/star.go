package renderers

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
	"orrery-sim/internal/scene"
)

// StarStrategy renders one star. Stars resolve per object id: each instance
// derives its own parameters from the body's spectral class at construction.
type StarStrategy struct {
	params spectralParams
}

// NewStarStrategy derives per-star parameters from the body properties.
func NewStarStrategy(b body.Body) *StarStrategy {
	class := b.Property("spectral_class", "G")
	params, ok := spectralTable[class]
	if !ok {
		params = spectralTable["G"]
	}
	return &StarStrategy{params: params}
}

// BuildDetailTiers returns three tiers: full surface with corona, bare
// surface, and a far billboard glow.
func (s *StarStrategy) BuildDetailTiers(b body.Body, opts scene.TierOptions) ([]scene.DetailTier, error) {
	near := gfx.NewNode("star-near")
	surface := gfx.NewMesh(gfx.MeshSphere, b.Radius)
	surface.Segments = 48
	surfMat := gfx.NewMaterial(s.params.Color)
	surfMat.Emissive = s.params.Color
	near.AddChild(gfx.NewMeshNode("surface", surface, surfMat))

	corona := gfx.NewMesh(gfx.MeshDisc, b.Radius*s.params.Corona)
	coronaMat := gfx.NewMaterial(s.params.Color)
	coronaMat.Opacity = 0.4
	coronaMat.Additive = true
	near.AddChild(gfx.NewMeshNode("corona", corona, coronaMat))

	midMesh := gfx.NewMesh(gfx.MeshSphere, b.Radius)
	midMesh.Segments = 16
	midMat := gfx.NewMaterial(s.params.Color)
	midMat.Emissive = s.params.Color
	mid := gfx.NewMeshNode("star-mid", midMesh, midMat)

	farMat := gfx.NewMaterial(s.params.Color)
	farMat.Emissive = s.params.Color
	farMat.Additive = true
	far := gfx.NewMeshNode("star-far", gfx.NewMesh(gfx.MeshBillboard, b.Radius*2), farMat)

	return []scene.DetailTier{
		{Node: near, MinDistance: 0},
		{Node: mid, MinDistance: opts.Scale(midTierDistance)},
		{Node: far, MinDistance: opts.Scale(farTierDistance)},
	}, nil
}

// Animate pulses the corona brightness.
func (s *StarStrategy) Animate(v *scene.Visual, time float64, lights map[string]body.LightSource, cam *gfx.Camera) {
	pulse := 0.85 + 0.15*float32(math.Sin(time*float64(s.params.PulseRate)))
	if n := v.ActiveNode(); n != nil {
		n.Walk(func(c *gfx.Node) {
			if c.Material != nil && c.Material.Additive {
				c.Material.Opacity = 0.4 * pulse
			}
		})
	}
}

// Dispose releases nothing: all geometry belongs to the visuals.
func (s *StarStrategy) Dispose() {}

// BlackHoleStrategy renders compact objects: an event horizon sphere and an
// accretion disc. The lensing halo itself is an optional effect owned by the
// effect coordinator, not the renderer.
type BlackHoleStrategy struct{}

// NewBlackHoleStrategy creates the compact-object variant.
func NewBlackHoleStrategy(body.Body) *BlackHoleStrategy {
	return &BlackHoleStrategy{}
}

// BuildDetailTiers returns a near tier with horizon plus disc and a far tier
// with only the disc glow.
func (s *BlackHoleStrategy) BuildDetailTiers(b body.Body, opts scene.TierOptions) ([]scene.DetailTier, error) {
	near := gfx.NewNode("blackhole-near")
	horizon := gfx.NewMesh(gfx.MeshSphere, b.Radius)
	horizon.Segments = 32
	near.AddChild(gfx.NewMeshNode("horizon", horizon, gfx.NewMaterial(mgl32.Vec3{0, 0, 0})))

	disc := gfx.NewMesh(gfx.MeshRing, b.Radius*4)
	disc.InnerRadius = b.Radius * 1.6
	discMat := gfx.NewMaterial(mgl32.Vec3{1.0, 0.65, 0.25})
	discMat.Emissive = mgl32.Vec3{1.0, 0.55, 0.15}
	discMat.Additive = true
	near.AddChild(gfx.NewMeshNode("accretion", disc, discMat))

	farMat := gfx.NewMaterial(mgl32.Vec3{1.0, 0.6, 0.2})
	farMat.Additive = true
	far := gfx.NewMeshNode("blackhole-far", gfx.NewMesh(gfx.MeshBillboard, b.Radius*3), farMat)

	return []scene.DetailTier{
		{Node: near, MinDistance: 0},
		{Node: far, MinDistance: opts.Scale(farTierDistance)},
	}, nil
}

// Animate spins the accretion disc.
func (s *BlackHoleStrategy) Animate(v *scene.Visual, time float64, lights map[string]body.LightSource, cam *gfx.Camera) {
	if n := v.ActiveNode(); n != nil {
		n.Walk(func(c *gfx.Node) {
			if c.Mesh != nil && c.Mesh.Kind == gfx.MeshRing {
				c.Orientation = mgl32.QuatRotate(float32(time)*1.5, mgl32.Vec3{0, 1, 0})
			}
		})
	}
}

// Dispose releases nothing: all geometry belongs to the visuals.
func (s *BlackHoleStrategy) Dispose() {}
