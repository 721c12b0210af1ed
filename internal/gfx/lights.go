package gfx

import "github.com/go-gl/mathgl/mgl32"

// LightManager registers point lights for bodies that emit light.
type LightManager interface {
	AddLight(id string, position mgl32.Vec3)
	RemoveLight(id string)
}

// LabelManager manages floating name labels anchored to scene nodes.
type LabelManager interface {
	CreateLabel(id, text string, anchor *Node)
	RemoveLabel(id string)
}

// SceneLights is the default LightManager backed by a plain map.
type SceneLights struct {
	lights map[string]mgl32.Vec3
}

// NewSceneLights creates an empty light registry.
func NewSceneLights() *SceneLights {
	return &SceneLights{lights: make(map[string]mgl32.Vec3)}
}

// AddLight registers or moves a light.
func (sl *SceneLights) AddLight(id string, position mgl32.Vec3) {
	sl.lights[id] = position
}

// RemoveLight drops a light; unknown ids are ignored.
func (sl *SceneLights) RemoveLight(id string) {
	delete(sl.lights, id)
}

// Count returns the number of registered lights.
func (sl *SceneLights) Count() int { return len(sl.lights) }

// SceneLabels is the default LabelManager.
type SceneLabels struct {
	labels map[string]*Node
}

// NewSceneLabels creates an empty label registry.
func NewSceneLabels() *SceneLabels {
	return &SceneLabels{labels: make(map[string]*Node)}
}

// CreateLabel attaches a billboard label node under anchor.
func (sl *SceneLabels) CreateLabel(id, text string, anchor *Node) {
	if _, ok := sl.labels[id]; ok {
		return
	}
	n := NewMeshNode("label:"+text, NewMesh(MeshBillboard, 0), NewMaterial(mgl32.Vec3{1, 1, 1}))
	if anchor != nil {
		anchor.AddChild(n)
	}
	sl.labels[id] = n
}

// RemoveLabel disposes and drops a label; unknown ids are a no-op.
func (sl *SceneLabels) RemoveLabel(id string) {
	if n, ok := sl.labels[id]; ok {
		n.DisposeTree()
		delete(sl.labels, id)
	}
}

// Count returns the number of live labels.
func (sl *SceneLabels) Count() int { return len(sl.labels) }
