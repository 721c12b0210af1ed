package sim

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/config"
	"orrery-sim/internal/gfx"
)

// FrameProvider owns the camera and render target and hands out frame
// contexts. The camera orbits the configured focus point so every LOD tier
// gets exercised over a full revolution.
type FrameProvider struct {
	mu     sync.Mutex
	scene  *gfx.Scene
	camera gfx.Camera
	target gfx.RenderTarget

	distance  float64
	elevation float64
	periodS   float64
}

// NewFrameProvider creates a provider for the given scene and camera settings.
func NewFrameProvider(scene *gfx.Scene, cam config.Camera) *FrameProvider {
	distance := cam.Distance
	if distance <= 0 {
		distance = 200
	}
	period := cam.PeriodS
	if period <= 0 {
		period = 600
	}
	return &FrameProvider{
		scene:     scene,
		target:    gfx.RenderTarget{Width: 1920, Height: 1080},
		distance:  distance,
		elevation: cam.Elevation,
		periodS:   period,
	}
}

// Advance moves the camera along its orbit to the given simulation time.
func (p *FrameProvider) Advance(elapsed float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	angle := 2 * math.Pi * elapsed / p.periodS
	p.camera.Position = mgl32.Vec3{
		float32(p.distance * math.Cos(angle)),
		float32(p.elevation),
		float32(p.distance * math.Sin(angle)),
	}
	p.camera.Target = mgl32.Vec3{}
}

// FrameContext implements gfx.ContextProvider.
func (p *FrameProvider) FrameContext() *gfx.FrameContext {
	p.mu.Lock()
	defer p.mu.Unlock()
	cam := p.camera
	target := p.target
	return &gfx.FrameContext{Target: &target, Scene: p.scene, Camera: &cam}
}

// Camera returns the current camera value.
func (p *FrameProvider) Camera() gfx.Camera {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.camera
}
