// Geometry and material primitives for the retained scene graph
package gfx

import "github.com/go-gl/mathgl/mgl32"

// MeshKind enumerates the primitive shapes renderers build tiers from.
type MeshKind string

const (
	MeshSphere    MeshKind = "sphere"
	MeshWireframe MeshKind = "wireframe"
	MeshRing      MeshKind = "ring"
	MeshPoints    MeshKind = "points"
	MeshBillboard MeshKind = "billboard"
	MeshArrow     MeshKind = "arrow"
	MeshDisc      MeshKind = "disc"
)

// Mesh is a GPU-resident geometry handle. Dispose is idempotent; the disposal
// counter exists so tests can assert exactly-once release.
type Mesh struct {
	Kind     MeshKind
	Segments int
	Radius   float32
	// InnerRadius applies to ring and disc meshes.
	InnerRadius float32
	// Count applies to point meshes (particles, asteroid sprites).
	Count int

	disposals int
}

// NewMesh creates a mesh of the given kind and radius.
func NewMesh(kind MeshKind, radius float32) *Mesh {
	return &Mesh{Kind: kind, Radius: radius}
}

// Dispose releases the geometry. Safe to call more than once.
func (m *Mesh) Dispose() {
	if m == nil || m.disposals > 0 {
		return
	}
	m.disposals++
}

// Disposed reports whether Dispose has run.
func (m *Mesh) Disposed() bool { return m != nil && m.disposals > 0 }

// Disposals returns how many times Dispose actually released the mesh.
func (m *Mesh) Disposals() int {
	if m == nil {
		return 0
	}
	return m.disposals
}

// Material holds shading parameters for a mesh.
type Material struct {
	Color    mgl32.Vec3
	Emissive mgl32.Vec3
	Opacity  float32
	Additive bool

	disposals int
}

// NewMaterial creates an opaque material with the given base color.
func NewMaterial(color mgl32.Vec3) *Material {
	return &Material{Color: color, Opacity: 1}
}

// Dispose releases the material. Safe to call more than once.
func (m *Material) Dispose() {
	if m == nil || m.disposals > 0 {
		return
	}
	m.disposals++
}

// Disposed reports whether Dispose has run.
func (m *Material) Disposed() bool { return m != nil && m.disposals > 0 }

// Disposals returns how many times Dispose actually released the material.
func (m *Material) Disposals() int {
	if m == nil {
		return 0
	}
	return m.disposals
}
