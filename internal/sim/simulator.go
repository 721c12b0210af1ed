// Simulator orchestrating the universe engine and scene synchronization ticks
package sim

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"orrery-sim/internal/body"
	"orrery-sim/internal/config"
	"orrery-sim/internal/gfx"
	"orrery-sim/internal/renderers"
	"orrery-sim/internal/scenario"
	"orrery-sim/internal/scene"
	"orrery-sim/internal/store"
	"orrery-sim/internal/telemetry"
	"orrery-sim/internal/universe"
)

// Simulator drives the full pipeline each tick: the universe engine advances
// the authoritative store, the synchronizer reconciles the scene, and the
// resulting frame stats and scene events fan out to the configured writers.
type Simulator struct {
	mu       sync.Mutex
	systemID string
	cfg      *config.SimulationConfig
	log      *slog.Logger

	objects     *store.ObjectStore
	destruction *store.DestructionChannel
	accel       *store.AccelStore
	engine      *universe.Engine
	gfxScene    *gfx.Scene
	provider    *FrameProvider
	syncer      *scene.Synchronizer

	writer       StatsWriter
	eventWriter  EventWriter
	recorder     *Recorder
	arc          *scenario.Runner
	destroyed    int
	tickInterval time.Duration
	elapsed      float64
	prevStatus   map[string]body.Status
	now          func() time.Time
}

// NewSimulator builds the store, universe engine, scene graph, and
// synchronizer from config and wires them together.
func NewSimulator(systemID string, cfg *config.SimulationConfig, writer StatsWriter, eventWriter EventWriter, tickInterval time.Duration, log *slog.Logger) (*Simulator, error) {
	if log == nil {
		log = slog.Default()
	}

	objects := store.NewObjectStore()
	destruction := store.NewDestructionChannel()
	accel := store.NewAccelStore()

	engine, err := universe.NewEngine(log, cfg, objects, destruction, accel)
	if err != nil {
		return nil, fmt.Errorf("building universe: %w", err)
	}

	gfxScene := gfx.NewScene()
	provider := NewFrameProvider(gfxScene, cfg.Camera)
	provider.Advance(0)

	scale := cfg.LODDistanceScale
	if scale <= 0 {
		scale = 1
	}

	syncer := scene.New(scene.Config{
		Scene:       gfxScene,
		Lights:      gfx.NewSceneLights(),
		Labels:      gfx.NewSceneLabels(),
		Registry:    renderers.NewRegistry(log),
		Store:       objects,
		Accel:       accel,
		Destruction: destruction,
		Provider:    provider,
		TierOptions: scene.TierOptions{DistanceScale: float32(scale)},
		Logger:      log,
	})

	return &Simulator{
		systemID:     systemID,
		cfg:          cfg,
		log:          log,
		objects:      objects,
		destruction:  destruction,
		accel:        accel,
		engine:       engine,
		gfxScene:     gfxScene,
		provider:     provider,
		syncer:       syncer,
		writer:       writer,
		eventWriter:  eventWriter,
		tickInterval: tickInterval,
		prevStatus:   make(map[string]body.Status),
		now:          time.Now,
	}, nil
}

// SetRecorder attaches a snapshot recorder; pass nil to disable.
func (s *Simulator) SetRecorder(r *Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// SetScenario attaches a cataclysm arc runner and applies its opening phase.
func (s *Simulator) SetScenario(r *scenario.Runner) {
	s.mu.Lock()
	s.arc = r
	s.mu.Unlock()
	if r != nil {
		s.applyDirectives(r.Directives())
	}
}

// tick advances the simulation by one interval and reports stats and events.
func (s *Simulator) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.now()
	dt := s.tickInterval.Seconds()
	s.elapsed += dt

	s.engine.Step(dt)
	s.provider.Advance(s.elapsed)
	s.syncer.Update(s.elapsed, s.engine.Lights(), s.provider.FrameContext())

	snap := s.objects.Snapshot()
	events := s.diffEvents(snap)

	stats := s.syncer.CollectStats()
	if stats.Fallbacks > 0 {
		events = append(events, telemetry.SceneEventRow{
			SystemID:  s.systemID,
			EventType: telemetry.SceneEventFallback,
			Detail:    fmt.Sprintf("%d placeholder fallbacks", stats.Fallbacks),
			Timestamp: s.now().UTC(),
		})
	}

	if s.arc != nil {
		for _, e := range events {
			if e.EventType == telemetry.SceneEventDestroy {
				s.destroyed++
			}
		}
		advanced := s.arc.Observe(scenario.Event{Type: scenario.EventTimeElapsed, Value: int(s.elapsed)})
		if s.arc.Observe(scenario.Event{Type: scenario.EventBodiesDestroyed, Value: s.destroyed}) {
			advanced = true
		}
		if advanced {
			s.log.Info("scenario phase change", "phase", s.arc.Current())
			s.applyDirectives(s.arc.Directives())
		}
	}

	lensing := 0
	for _, v := range s.syncer.Snapshot() {
		if v.Lensing {
			lensing++
		}
	}

	row := telemetry.FrameStatsRow{
		SystemID:    s.systemID,
		Visuals:     s.syncer.VisualCount(),
		Adds:        stats.Adds,
		Updates:     stats.Updates,
		Removes:     stats.Removes,
		Fallbacks:   stats.Fallbacks,
		TierSwaps:   stats.TierSwaps,
		Debris:      s.syncer.DebrisCount(),
		Lensing:     lensing,
		FrameMillis: float64(s.now().Sub(start)) / float64(time.Millisecond),
		ChaosMode:   s.engine.Chaos(),
		Timestamp:   s.now().UTC(),
	}

	if s.writer != nil {
		if err := s.writer.WriteStats(row); err != nil {
			s.log.Error("stats write failed", "err", err)
		}
	}
	if len(events) > 0 && s.eventWriter != nil {
		if bw, ok := s.eventWriter.(batchEventWriter); ok {
			if err := bw.WriteEvents(events); err != nil {
				s.log.Error("event batch write failed", "err", err)
			}
		} else {
			for _, e := range events {
				if err := s.eventWriter.WriteEvent(e); err != nil {
					s.log.Error("event write failed", "err", err)
				}
			}
		}
	}

	if s.recorder != nil {
		if err := s.recorder.Record(s.elapsed, snap); err != nil {
			s.log.Error("snapshot record failed", "err", err)
		}
	}
}

// diffEvents derives scene lifecycle events from consecutive store snapshots.
func (s *Simulator) diffEvents(snap map[string]body.Body) []telemetry.SceneEventRow {
	var events []telemetry.SceneEventRow
	ts := s.now().UTC()

	for id, b := range snap {
		prev, seen := s.prevStatus[id]
		switch {
		case !seen && b.Status == body.StatusActive:
			events = append(events, telemetry.SceneEventRow{
				SystemID: s.systemID, EventType: telemetry.SceneEventAdd,
				BodyID: id, BodyName: b.Name, BodyType: string(b.Type), Timestamp: ts,
			})
		case seen && prev == body.StatusActive && b.Status != body.StatusActive:
			events = append(events, telemetry.SceneEventRow{
				SystemID: s.systemID, EventType: telemetry.SceneEventDestroy,
				BodyID: id, BodyName: b.Name, BodyType: string(b.Type),
				Detail: string(b.Status), Timestamp: ts,
			})
		}
		s.prevStatus[id] = b.Status
	}
	for id := range s.prevStatus {
		if _, ok := snap[id]; ok {
			continue
		}
		if s.prevStatus[id] == body.StatusActive {
			events = append(events, telemetry.SceneEventRow{
				SystemID: s.systemID, EventType: telemetry.SceneEventRemove,
				BodyID: id, Timestamp: ts,
			})
		}
		delete(s.prevStatus, id)
	}
	return events
}

// applyDirectives enacts the active scenario phase through the universe
// engine. Chaos directives are level-triggered; destroy picks one matching
// active body per application.
func (s *Simulator) applyDirectives(ds []scenario.Directive) {
	for _, d := range ds {
		switch d.Action {
		case "chaos-on":
			if !s.engine.Chaos() {
				s.engine.ToggleChaos()
			}
		case "chaos-off":
			if s.engine.Chaos() {
				s.engine.ToggleChaos()
			}
		case "destroy":
			s.destroyMatching(d.Target)
		default:
			s.log.Warn("unknown scenario directive", "action", d.Action)
		}
	}
}

func (s *Simulator) destroyMatching(target string) {
	for id, b := range s.objects.Snapshot() {
		if b.Status != body.StatusActive {
			continue
		}
		if target == "" || string(b.Type) == target {
			if err := s.engine.Destroy(id); err != nil {
				s.log.Warn("scenario destroy failed", "body_id", id, "err", err)
			}
			return
		}
	}
}

// ToggleChaos flips chaos mode and emits a scene event for the flip.
func (s *Simulator) ToggleChaos() bool {
	on := s.engine.ToggleChaos()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eventWriter != nil {
		detail := "off"
		if on {
			detail = "on"
		}
		_ = s.eventWriter.WriteEvent(telemetry.SceneEventRow{
			SystemID:  s.systemID,
			EventType: telemetry.SceneEventChaosFlip,
			Detail:    detail,
			Timestamp: s.now().UTC(),
		})
	}
	return on
}

// Chaos returns whether chaos mode is active.
func (s *Simulator) Chaos() bool { return s.engine.Chaos() }

// Destroy destroys a body by id through the universe engine.
func (s *Simulator) Destroy(id string) error { return s.engine.Destroy(id) }

// SpawnRogue injects an extra body at runtime.
func (s *Simulator) SpawnRogue(spec config.BodySpec) (string, error) {
	return s.engine.SpawnRogue(spec)
}

// SceneSnapshot returns the current visual set for admin and TUI consumers.
func (s *Simulator) SceneSnapshot() []scene.VisualInfo { return s.syncer.Snapshot() }

// Camera returns the current observer camera.
func (s *Simulator) Camera() gfx.Camera { return s.provider.Camera() }

// GetConfig returns the simulation configuration.
func (s *Simulator) GetConfig() *config.SimulationConfig { return s.cfg }

// SystemID returns the configured system identifier.
func (s *Simulator) SystemID() string { return s.systemID }

// Close tears down the scene pipeline.
func (s *Simulator) Close() {
	s.syncer.Dispose()
}
