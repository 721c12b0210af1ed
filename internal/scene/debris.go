package scene

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"orrery-sim/internal/gfx"
	"orrery-sim/internal/store"
)

// DebrisParams controls procedural generation of one debris burst.
type DebrisParams struct {
	Count        int
	BaseSize     float32
	Lifetime     float64 // seconds
	VelocityBias mgl32.Vec3
	Spread       float32 // max radial offset of initial positions
	SpeedFactor  float32
	ColorVar     float32 // 0..1 brightness jitter around the base color
}

// DefaultDebrisParams derives burst parameters from a destruction event.
func DefaultDebrisParams(ev store.DestructionEvent) DebrisParams {
	count := int(ev.DestroyedRadius * 12)
	if count < 24 {
		count = 24
	}
	if count > 400 {
		count = 400
	}
	return DebrisParams{
		Count:        count,
		BaseSize:     ev.DestroyedRadius * 0.05,
		Lifetime:     6,
		VelocityBias: ev.RelativeVelocity,
		Spread:       ev.DestroyedRadius * 0.5,
		SpeedFactor:  ev.DestroyedRadius * 0.4,
		ColorVar:     0.3,
	}
}

// Particle is a pure value: its state at time t is computed from the initial
// values, never integrated incrementally.
type Particle struct {
	Origin   mgl32.Vec3
	Velocity mgl32.Vec3
	Axis     mgl32.Vec3
	AngSpeed float32
	Size     float32
	Tint     float32
}

// PositionAt returns the particle position after elapsed seconds.
func (p Particle) PositionAt(elapsed float64) mgl32.Vec3 {
	return p.Origin.Add(p.Velocity.Mul(float32(elapsed)))
}

// RotationAt returns the accumulated rotation angle after elapsed seconds.
func (p Particle) RotationAt(elapsed float64) float32 {
	return p.AngSpeed * float32(elapsed)
}

type debrisEffect struct {
	id        string
	particles []Particle
	elapsed   float64
	lifetime  float64
	node      *gfx.Node
}

// DebrisPool manages short-lived destruction debris effects that are not tied
// to a persistent body id: spawn, advance, fade, expire, free.
type DebrisPool struct {
	log     *slog.Logger
	scene   *gfx.Scene
	rng     *rand.Rand
	effects map[string]*debrisEffect
}

// NewDebrisPool creates an empty pool attached to the given scene. A nil seed
// source falls back to a fixed seed, keeping tests deterministic.
func NewDebrisPool(log *slog.Logger, scene *gfx.Scene, rng *rand.Rand) *DebrisPool {
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &DebrisPool{
		log:     log,
		scene:   scene,
		rng:     rng,
		effects: make(map[string]*debrisEffect),
	}
}

// Spawn generates a debris burst at origin and returns its handle.
func (p *DebrisPool) Spawn(origin mgl32.Vec3, params DebrisParams) string {
	if params.Count <= 0 {
		params.Count = 1
	}
	if params.Lifetime <= 0 {
		params.Lifetime = 1
	}
	particles := make([]Particle, params.Count)
	for i := range particles {
		offset := p.randomDirection().Mul(p.rng.Float32() * params.Spread)
		vel := params.VelocityBias.Add(p.randomDirection().Mul(p.rng.Float32() * params.SpeedFactor))
		particles[i] = Particle{
			Origin:   origin.Add(offset),
			Velocity: vel,
			Axis:     p.randomDirection(),
			AngSpeed: (p.rng.Float32()*2 - 1) * 2 * math.Pi,
			Size:     params.BaseSize * (0.5 + p.rng.Float32()),
			Tint:     1 - params.ColorVar*p.rng.Float32(),
		}
	}

	mesh := gfx.NewMesh(gfx.MeshPoints, params.BaseSize)
	mesh.Count = params.Count
	mat := gfx.NewMaterial(mgl32.Vec3{0.9, 0.7, 0.5})
	mat.Additive = true
	node := gfx.NewMeshNode("debris", mesh, mat)
	node.Position = origin
	if p.scene != nil {
		p.scene.Add(node)
	}

	e := &debrisEffect{
		id:        uuid.New().String(),
		particles: particles,
		lifetime:  params.Lifetime,
		node:      node,
	}
	p.effects[e.id] = e
	p.log.Debug("debris spawned", "handle", e.id, "particles", len(particles), "lifetime_s", params.Lifetime)
	return e.id
}

// SpawnFromEvent spawns a burst for an external destruction notification.
func (p *DebrisPool) SpawnFromEvent(ev store.DestructionEvent) string {
	return p.Spawn(ev.ImpactPosition, DefaultDebrisParams(ev))
}

// Tick advances all live effects by dt seconds, fades them linearly over
// their lifetime, and frees any effect whose time is up.
func (p *DebrisPool) Tick(dt float64) {
	for id, e := range p.effects {
		e.elapsed += dt
		if e.elapsed >= e.lifetime {
			e.node.DisposeTree()
			delete(p.effects, id)
			continue
		}
		fade := 1 - float32(e.elapsed/e.lifetime)
		if fade < 0 {
			fade = 0
		} else if fade > 1 {
			fade = 1
		}
		e.node.Material.Opacity = fade
	}
}

// Contains reports whether a handle is still live.
func (p *DebrisPool) Contains(handle string) bool {
	_, ok := p.effects[handle]
	return ok
}

// Particles returns the particle values of a live effect along with its
// elapsed time, for projection by viewers.
func (p *DebrisPool) Particles(handle string) ([]Particle, float64, bool) {
	e, ok := p.effects[handle]
	if !ok {
		return nil, 0, false
	}
	return e.particles, e.elapsed, true
}

// Len returns the number of live effects.
func (p *DebrisPool) Len() int { return len(p.effects) }

// Handles returns the ids of all live effects.
func (p *DebrisPool) Handles() []string {
	out := make([]string, 0, len(p.effects))
	for id := range p.effects {
		out = append(out, id)
	}
	return out
}

// Dispose frees every live effect immediately.
func (p *DebrisPool) Dispose() {
	for id, e := range p.effects {
		e.node.DisposeTree()
		delete(p.effects, id)
	}
}

func (p *DebrisPool) randomDirection() mgl32.Vec3 {
	// Uniform direction on the unit sphere.
	z := p.rng.Float64()*2 - 1
	theta := p.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return mgl32.Vec3{float32(r * math.Cos(theta)), float32(r * math.Sin(theta)), float32(z)}
}
