// Authoritative celestial simulation: orbits, destruction, acceleration
package universe

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/config"
	"orrery-sim/internal/store"
)

// spectralLight maps a star's spectral class to its light color.
var spectralLight = map[string]mgl32.Vec3{
	"O": {0.6, 0.7, 1.0},
	"B": {0.7, 0.8, 1.0},
	"A": {0.9, 0.92, 1.0},
	"F": {1.0, 0.98, 0.9},
	"G": {1.0, 0.95, 0.8},
	"K": {1.0, 0.8, 0.6},
	"M": {1.0, 0.6, 0.45},
}

// Engine owns the authoritative body set and steps it each tick. The object
// store is the only boundary to the scene layer: the engine writes snapshots,
// the synchronizer subscribes.
type Engine struct {
	mu          sync.Mutex
	log         *slog.Logger
	cfg         *config.SimulationConfig
	objects     *store.ObjectStore
	destruction *store.DestructionChannel
	accel       *store.AccelStore

	bodies  map[string]body.Body
	orbits  map[string]*orbit
	rng     *rand.Rand
	chaos   bool
	cleanup []string // destroyed ids to drop from the store next step
}

// NewEngine spawns all configured systems and publishes the initial snapshot.
func NewEngine(log *slog.Logger, cfg *config.SimulationConfig, objects *store.ObjectStore, destruction *store.DestructionChannel, accel *store.AccelStore) (*Engine, error) {
	if log == nil {
		log = slog.Default()
	}
	bodies, orbits, err := spawnSystems(cfg)
	if err != nil {
		return nil, fmt.Errorf("spawning systems: %w", err)
	}
	e := &Engine{
		log:         log,
		cfg:         cfg,
		objects:     objects,
		destruction: destruction,
		accel:       accel,
		bodies:      bodies,
		orbits:      orbits,
		rng:         rand.New(rand.NewSource(rand.Int63())),
	}
	e.recomputePositions()
	e.publish()
	log.Info("universe spawned", "systems", len(cfg.Systems), "bodies", len(bodies))
	return e, nil
}

// Step advances all orbits by dt seconds, updates acceleration overlays, rolls
// for random destruction, and publishes the resulting snapshot.
func (e *Engine) Step(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, id := range e.cleanup {
		delete(e.bodies, id)
	}
	e.cleanup = e.cleanup[:0]

	for id, o := range e.orbits {
		b, ok := e.bodies[id]
		if !ok || b.Status != body.StatusActive {
			continue
		}
		o.phase += 2 * math.Pi * dt / o.periodS
		if o.phase > 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}
	e.recomputePositions()
	e.updateAccel()

	if e.destructionDue(dt) {
		e.destroyRandom()
	}

	e.publish()
}

// destructionDue rolls the per-step destruction probability. Chaos mode
// quadruples the event rate.
func (e *Engine) destructionDue(dt float64) bool {
	d := e.cfg.Destruction
	if !d.Enabled && !e.chaos {
		return false
	}
	mean := d.MeanIntervalS
	if mean <= 0 {
		mean = 120
	}
	p := dt / mean
	if e.chaos {
		p *= 4
	}
	return e.rng.Float64() < p
}

// destroyRandom picks a random destructible body. Stars and whole-field bodies
// survive random events; only discrete solid bodies shatter.
func (e *Engine) destroyRandom() {
	var candidates []string
	for id, b := range e.bodies {
		if b.Status != body.StatusActive {
			continue
		}
		switch b.Type {
		case body.TypePlanet, body.TypeMoon, body.TypeDwarfPlanet:
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return
	}
	e.destroyLocked(candidates[e.rng.Intn(len(candidates))])
}

// Destroy marks a body destroyed and emits the destruction event. The entry
// stays in the next snapshot with destroyed status so viewers can tear it down,
// then is dropped on the following step.
func (e *Engine) Destroy(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bodies[id]
	if !ok {
		return fmt.Errorf("unknown body %s", id)
	}
	if b.Status != body.StatusActive {
		return fmt.Errorf("body %s already %s", id, b.Status)
	}
	e.destroyLocked(id)
	e.publish()
	return nil
}

func (e *Engine) destroyLocked(id string) {
	b := e.bodies[id]
	b.Status = body.StatusDestroyed
	e.bodies[id] = b
	e.cleanup = append(e.cleanup, id)
	if e.accel != nil {
		e.accel.Remove(id)
	}
	e.log.Info("body destroyed", "body_id", id, "name", b.Name, "type", b.Type)
	if e.destruction != nil {
		e.destruction.Publish(store.DestructionEvent{
			DestroyedID:      id,
			ImpactPosition:   b.Position,
			DestroyedRadius:  b.Radius,
			RelativeVelocity: e.orbitalVelocity(id),
		})
	}
}

// SpawnRogue injects an extra body at runtime, for the admin surface.
func (e *Engine) SpawnRogue(spec config.BodySpec) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, err := bodyFromSpec(spec, "rogue")
	if err != nil {
		return "", err
	}
	e.bodies[b.ID] = b
	if spec.OrbitRadius > 0 && spec.OrbitPeriodS > 0 {
		e.orbits[b.ID] = &orbit{
			radius:  spec.OrbitRadius,
			periodS: spec.OrbitPeriodS,
			phase:   e.rng.Float64() * 2 * math.Pi,
		}
	}
	e.recomputePositions()
	e.publish()
	e.log.Info("rogue body spawned", "body_id", b.ID, "name", b.Name, "type", b.Type)
	return b.ID, nil
}

// ToggleChaos flips chaos mode on or off and returns the new state.
func (e *Engine) ToggleChaos() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.chaos = !e.chaos
	return e.chaos
}

// Chaos returns whether chaos mode is active.
func (e *Engine) Chaos() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chaos
}

// BodyCount returns the number of live bodies.
func (e *Engine) BodyCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, b := range e.bodies {
		if b.Status == body.StatusActive {
			n++
		}
	}
	return n
}

// Lights derives the active light sources from the star population, for the
// per-frame renderer animation pass.
func (e *Engine) Lights() map[string]body.LightSource {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]body.LightSource)
	for id, b := range e.bodies {
		if b.Type != body.TypeStar || b.Status != body.StatusActive {
			continue
		}
		color, ok := spectralLight[b.Property("spectral_class", "G")]
		if !ok {
			color = mgl32.Vec3{1, 1, 1}
		}
		out[id] = body.LightSource{
			Position:  b.Position,
			Color:     color,
			Intensity: b.Radius,
		}
	}
	return out
}

// recomputePositions resolves orbit hierarchies into absolute positions.
// Parents are resolved recursively with memoization, so moon-of-planet chains
// work regardless of map order.
func (e *Engine) recomputePositions() {
	done := make(map[string]bool, len(e.bodies))
	var resolve func(id string) mgl32.Vec3
	resolve = func(id string) mgl32.Vec3 {
		b, ok := e.bodies[id]
		if !ok {
			return mgl32.Vec3{}
		}
		if done[id] {
			return b.Position
		}
		done[id] = true
		o, orbiting := e.orbits[id]
		if orbiting {
			center := o.origin
			if o.parentID != "" {
				center = resolve(o.parentID)
			}
			b.Position = center.Add(orbitOffset(o))
		} else if b.ParentID != "" && b.Type == body.TypeRingSystem {
			// Rings ride their parent directly.
			b.Position = resolve(b.ParentID)
		}
		e.bodies[id] = b
		return b.Position
	}
	for id := range e.bodies {
		resolve(id)
	}
}

func orbitOffset(o *orbit) mgl32.Vec3 {
	x := o.radius * math.Cos(o.phase)
	z := o.radius * math.Sin(o.phase)
	y := z * math.Sin(o.inclination)
	z *= math.Cos(o.inclination)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// orbitalVelocity returns the instantaneous tangential velocity of an orbiting
// body, used as the debris velocity bias. Non-orbiting bodies return zero.
func (e *Engine) orbitalVelocity(id string) mgl32.Vec3 {
	o, ok := e.orbits[id]
	if !ok {
		return mgl32.Vec3{}
	}
	speed := 2 * math.Pi * o.radius / o.periodS
	vx := -speed * math.Sin(o.phase)
	vz := speed * math.Cos(o.phase)
	return mgl32.Vec3{float32(vx), float32(vz * math.Sin(o.inclination) * -1), float32(vz * math.Cos(o.inclination))}
}

// updateAccel publishes centripetal acceleration vectors for orbiting bodies
// above the configured threshold and clears entries that dropped below it.
func (e *Engine) updateAccel() {
	if e.accel == nil {
		return
	}
	threshold := e.cfg.AccelThreshold
	for id, o := range e.orbits {
		b, ok := e.bodies[id]
		if !ok || b.Status != body.StatusActive {
			e.accel.Remove(id)
			continue
		}
		mag := 4 * math.Pi * math.Pi * o.radius / (o.periodS * o.periodS)
		if mag < threshold {
			e.accel.Remove(id)
			continue
		}
		// Centripetal: points from the body toward its orbit center.
		dir := orbitOffset(o).Mul(-1)
		if l := dir.Len(); l > 0 {
			dir = dir.Mul(1 / l)
		}
		e.accel.Set(id, dir.Mul(float32(mag)))
	}
}

func (e *Engine) publish() {
	if e.objects == nil {
		return
	}
	snap := make(map[string]body.Body, len(e.bodies))
	for id, b := range e.bodies {
		snap[id] = b.Clone()
	}
	e.objects.Replace(snap)
}
