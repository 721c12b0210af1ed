package gfx

import "github.com/go-gl/mathgl/mgl32"

// Node is one element of the retained scene tree. A node may carry a mesh and
// material, or exist purely as a grouping transform.
type Node struct {
	Name        string
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Scale       mgl32.Vec3

	Mesh     *Mesh
	Material *Material

	parent   *Node
	children []*Node
	visible  bool
}

// NewNode creates a visible node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:        name,
		Orientation: mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{1, 1, 1},
		visible:     true,
	}
}

// NewMeshNode creates a node carrying the given mesh and material.
func NewMeshNode(name string, mesh *Mesh, mat *Material) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	n.Material = mat
	return n
}

// SetVisible toggles visibility without detaching the node.
func (n *Node) SetVisible(v bool) { n.visible = v }

// Visible reports the node's own visibility flag.
func (n *Node) Visible() bool { return n.visible }

// VisibleInTree reports whether the node and all its ancestors are visible.
func (n *Node) VisibleInTree() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if !cur.visible {
			return false
		}
	}
	return true
}

// AddChild attaches child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// Detach removes the node from its parent. Resources are untouched.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Parent returns the node's parent, or nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's direct children.
func (n *Node) Children() []*Node { return n.children }

// Walk calls fn for n and every descendant, depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// DisposeTree releases the mesh and material of the node and every descendant,
// then detaches the node. Disposal of one resource never blocks siblings.
func (n *Node) DisposeTree() {
	n.Walk(func(c *Node) {
		c.Mesh.Dispose()
		c.Material.Dispose()
	})
	n.Detach()
}
