package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
)

// placeholderColors maps body types to the wireframe tint used when no proper
// renderer is available.
var placeholderColors = map[body.Type]mgl32.Vec3{
	body.TypeStar:          {1.0, 0.9, 0.3},
	body.TypePlanet:        {0.3, 0.6, 1.0},
	body.TypeMoon:          {0.7, 0.7, 0.7},
	body.TypeGasGiant:      {0.9, 0.6, 0.3},
	body.TypeRingSystem:    {0.8, 0.8, 0.6},
	body.TypeAsteroidField: {0.5, 0.4, 0.3},
	body.TypeDwarfPlanet:   {0.6, 0.6, 0.8},
	body.TypeOortCloud:     {0.4, 0.5, 0.6},
}

// placeholderStrategy renders a wireframe primitive colored by type. It is
// the fallback for unresolved types and failed tier construction; one bad
// body must never block synchronization of the rest.
type placeholderStrategy struct{}

func (placeholderStrategy) BuildDetailTiers(b body.Body, opts TierOptions) ([]DetailTier, error) {
	color, ok := placeholderColors[b.Type]
	if !ok {
		color = mgl32.Vec3{1, 0, 1}
	}
	mesh := gfx.NewMesh(gfx.MeshWireframe, b.Radius)
	mesh.Segments = 8
	n := gfx.NewMeshNode("placeholder:"+b.ID, mesh, gfx.NewMaterial(color))
	return []DetailTier{{Node: n, MinDistance: 0}}, nil
}

func (placeholderStrategy) Animate(v *Visual, time float64, lights map[string]body.LightSource, cam *gfx.Camera) {
	// Slow tumble so misconfigured bodies are noticeable in the viewer.
	v.Root.Orientation = mgl32.QuatRotate(float32(time)*0.2, mgl32.Vec3{0, 1, 0})
}

func (placeholderStrategy) Dispose() {}
