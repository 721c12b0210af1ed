package gfx

import "github.com/go-gl/mathgl/mgl32"

// Scene is the root of the retained node tree.
type Scene struct {
	root *Node
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{root: NewNode("root")}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node { return s.root }

// Add attaches a node at the scene root.
func (s *Scene) Add(n *Node) {
	if n != nil {
		s.root.AddChild(n)
	}
}

// Remove detaches a node from the tree without disposing its resources.
func (s *Scene) Remove(n *Node) {
	if n != nil {
		n.Detach()
	}
}

// NodeCount returns the number of nodes in the tree, excluding the root.
func (s *Scene) NodeCount() int {
	count := -1
	s.root.Walk(func(*Node) { count++ })
	return count
}

// Camera provides the viewpoint used for LOD distance checks.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// DistanceTo returns the scalar distance from the camera to a point.
func (c *Camera) DistanceTo(p mgl32.Vec3) float32 {
	return p.Sub(c.Position).Len()
}

// RenderTarget identifies the surface a frame is rendered into.
type RenderTarget struct {
	Width  int
	Height int
}

// FrameContext bundles the per-frame handles that optional effects need.
// Providers may be unable to supply one on any given frame; callers must treat
// a nil context as "skip effect work this frame".
type FrameContext struct {
	Target *RenderTarget
	Scene  *Scene
	Camera *Camera
}

// Complete reports whether every handle is present.
func (fc *FrameContext) Complete() bool {
	return fc != nil && fc.Target != nil && fc.Scene != nil && fc.Camera != nil
}

// ContextProvider supplies the frame context, when available.
type ContextProvider interface {
	FrameContext() *FrameContext
}
