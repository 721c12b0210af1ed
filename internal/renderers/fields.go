package renderers

import (
	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
	"orrery-sim/internal/scene"
)

// RingStrategy renders ring systems around a parent body.
type RingStrategy struct{}

// NewRingStrategy creates the shared ring renderer.
func NewRingStrategy(body.Body) *RingStrategy { return &RingStrategy{} }

// BuildDetailTiers returns a dense ring and a sparse far ring. Rings inherit
// their LOD distance from the parent body, so two tiers suffice.
func (s *RingStrategy) BuildDetailTiers(b body.Body, opts scene.TierOptions) ([]scene.DetailTier, error) {
	color := mgl32.Vec3{0.82, 0.78, 0.65}

	nearMesh := gfx.NewMesh(gfx.MeshRing, b.Radius)
	nearMesh.InnerRadius = b.Radius * 0.6
	nearMesh.Segments = 96
	nearMat := gfx.NewMaterial(color)
	nearMat.Opacity = 0.85
	near := gfx.NewMeshNode("ring-near", nearMesh, nearMat)

	farMesh := gfx.NewMesh(gfx.MeshRing, b.Radius)
	farMesh.InnerRadius = b.Radius * 0.6
	farMesh.Segments = 24
	farMat := gfx.NewMaterial(color)
	farMat.Opacity = 0.5
	far := gfx.NewMeshNode("ring-far", farMesh, farMat)

	return []scene.DetailTier{
		{Node: near, MinDistance: 0},
		{Node: far, MinDistance: opts.Scale(farTierDistance)},
	}, nil
}

// Animate does nothing; rings follow their parent transform.
func (s *RingStrategy) Animate(*scene.Visual, float64, map[string]body.LightSource, *gfx.Camera) {}

// Dispose releases nothing: all geometry belongs to the visuals.
func (s *RingStrategy) Dispose() {}

// AsteroidFieldStrategy renders asteroid belts as point clouds with tiered
// particle counts.
type AsteroidFieldStrategy struct{}

// NewAsteroidFieldStrategy creates the shared belt renderer.
func NewAsteroidFieldStrategy(body.Body) *AsteroidFieldStrategy {
	return &AsteroidFieldStrategy{}
}

// BuildDetailTiers returns dense, medium, and sparse point clouds.
func (s *AsteroidFieldStrategy) BuildDetailTiers(b body.Body, opts scene.TierOptions) ([]scene.DetailTier, error) {
	color := mgl32.Vec3{0.5, 0.45, 0.4}
	counts := []int{2000, 500, 80}
	dists := []float32{0, opts.Scale(midTierDistance), opts.Scale(farTierDistance)}

	tiers := make([]scene.DetailTier, len(counts))
	for i, count := range counts {
		mesh := gfx.NewMesh(gfx.MeshPoints, b.Radius)
		mesh.Count = count
		tiers[i] = scene.DetailTier{
			Node:        gfx.NewMeshNode("belt", mesh, gfx.NewMaterial(color)),
			MinDistance: dists[i],
		}
	}
	return tiers, nil
}

// Animate slowly precesses the whole field.
func (s *AsteroidFieldStrategy) Animate(v *scene.Visual, time float64, lights map[string]body.LightSource, cam *gfx.Camera) {
	if n := v.ActiveNode(); n != nil {
		n.Orientation = mgl32.QuatRotate(float32(time)*0.01, mgl32.Vec3{0, 1, 0})
	}
}

// Dispose releases nothing: all geometry belongs to the visuals.
func (s *AsteroidFieldStrategy) Dispose() {}

// OortCloudStrategy renders the far comet shell as a single faint point
// cloud; there is nothing to sharpen up close.
type OortCloudStrategy struct{}

// NewOortCloudStrategy creates the shared shell renderer.
func NewOortCloudStrategy(body.Body) *OortCloudStrategy { return &OortCloudStrategy{} }

// BuildDetailTiers returns one sparse tier.
func (s *OortCloudStrategy) BuildDetailTiers(b body.Body, opts scene.TierOptions) ([]scene.DetailTier, error) {
	mesh := gfx.NewMesh(gfx.MeshPoints, b.Radius)
	mesh.Count = 600
	mat := gfx.NewMaterial(mgl32.Vec3{0.55, 0.62, 0.72})
	mat.Opacity = 0.3
	n := gfx.NewMeshNode("oort", mesh, mat)
	return []scene.DetailTier{{Node: n, MinDistance: 0}}, nil
}

// Animate does nothing; the shell is static.
func (s *OortCloudStrategy) Animate(*scene.Visual, float64, map[string]body.LightSource, *gfx.Camera) {}

// Dispose releases nothing: all geometry belongs to the visuals.
func (s *OortCloudStrategy) Dispose() {}
