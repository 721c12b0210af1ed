package scene

import (
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/gfx"
	"orrery-sim/internal/store"
)

// Subscribable is the slice of the object store the synchronizer consumes.
type Subscribable interface {
	Subscribe(store.SnapshotFunc) func()
}

// Config wires the synchronizer's collaborators. Store handles are injected
// here; no component reaches into globals (see DESIGN.md).
type Config struct {
	Scene       *gfx.Scene
	Lights      gfx.LightManager
	Labels      gfx.LabelManager
	Registry    *Registry
	Store       Subscribable
	Accel       *store.AccelStore
	Destruction *store.DestructionChannel
	Provider    gfx.ContextProvider // optional, used for attach-time effects
	TierOptions TierOptions
	Logger      *slog.Logger
}

// FrameStats accumulates diff and frame counters between collections.
type FrameStats struct {
	Adds      int
	Updates   int
	Removes   int
	Fallbacks int
	TierSwaps int
}

// Synchronizer reconciles the authoritative body store with the live scene
// graph: diffing snapshots into add/update/remove operations, driving LOD
// selection, renderer animation, and effect lifecycles every frame.
//
// Execution is cooperative and frame driven. Store callbacks and Update calls
// must be serialized by the caller; the internal mutex only guards against
// accidental cross-goroutine delivery, it is not a concurrency contract.
type Synchronizer struct {
	mu  sync.Mutex
	cfg Config
	log *slog.Logger

	visuals map[string]*Visual
	lod     LODSelector
	effects *EffectCoordinator
	debris  *DebrisPool

	unsubStore  func()
	unsubDestr  func()
	lastTime    float64
	hasLastTime bool
	stats       FrameStats
	disposed    bool
}

// New creates a synchronizer and subscribes it to the configured stores. The
// initial snapshot is delivered synchronously during construction.
func New(cfg Config) *Synchronizer {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Synchronizer{
		cfg:     cfg,
		log:     log,
		visuals: make(map[string]*Visual),
		effects: NewEffectCoordinator(log, cfg.Accel),
		debris:  NewDebrisPool(log, cfg.Scene, nil),
	}
	if cfg.Destruction != nil {
		s.unsubDestr = cfg.Destruction.Subscribe(func(ev store.DestructionEvent) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.disposed {
				return
			}
			s.debris.SpawnFromEvent(ev)
		})
	}
	if cfg.Store != nil {
		s.unsubStore = cfg.Store.Subscribe(s.OnStoreSnapshot)
	}
	return s
}

// OnStoreSnapshot diffs a full store snapshot against the live visual set.
// Re-delivering an identical snapshot is a no-op beyond transform refreshes.
func (s *Synchronizer) OnStoreSnapshot(objects map[string]body.Body) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}

	for id, b := range objects {
		v, exists := s.visuals[id]
		switch {
		case b.Status != body.StatusActive:
			// Destroyed or annihilated bodies short-circuit straight to
			// removal even though the id is still present in the snapshot.
			if exists {
				s.removeVisual(id)
			}
		case exists:
			v.ApplyTransform(b)
			if s.cfg.Lights != nil && v.hasLight {
				s.cfg.Lights.AddLight(id, b.Position)
			}
			s.stats.Updates++
		default:
			s.addVisual(b)
		}
	}

	for id := range s.visuals {
		if _, ok := objects[id]; !ok {
			s.removeVisual(id)
		}
	}
}

// addVisual resolves a strategy and builds the full tier set for a body.
// Resolution or construction failure degrades to a placeholder representation
// and never aborts the snapshot diff.
func (s *Synchronizer) addVisual(b body.Body) {
	var (
		strat     Strategy
		key       string
		tiers     []DetailTier
		fallback  bool
		resolveOK bool
	)
	strat, key, resolveOK = s.cfg.Registry.Resolve(b)
	if !resolveOK {
		s.log.Warn("no renderer for body type, using placeholder", "body_id", b.ID, "type", b.Type)
		fallback = true
	} else {
		var err error
		tiers, err = strat.BuildDetailTiers(b, s.cfg.TierOptions)
		if err != nil {
			s.log.Warn("tier construction failed, using placeholder", "body_id", b.ID, "type", b.Type, "err", err)
			fallback = true
		}
	}
	if fallback {
		strat = placeholderStrategy{}
		key = ""
		tiers, _ = strat.BuildDetailTiers(b, s.cfg.TierOptions)
		s.stats.Fallbacks++
	}

	root := gfx.NewNode("body:" + b.ID)
	root.Position = b.Position
	root.Orientation = b.Orientation
	for i := range tiers {
		tiers[i].Node.SetVisible(i == 0)
		root.AddChild(tiers[i].Node)
	}
	if s.cfg.Scene != nil {
		s.cfg.Scene.Add(root)
	}

	v := &Visual{
		ID:          b.ID,
		Body:        b,
		Strategy:    strat,
		strategyKey: key,
		Root:        root,
		Tiers:       tiers,
		ActiveTier:  0,
		Placeholder: fallback,
	}

	if b.Type == body.TypeStar && s.cfg.Lights != nil {
		s.cfg.Lights.AddLight(b.ID, b.Position)
		v.hasLight = true
	}
	if s.cfg.Labels != nil {
		name := b.Name
		if name == "" {
			name = b.ID
		}
		s.cfg.Labels.CreateLabel(b.ID, name, root)
	}

	s.visuals[b.ID] = v
	s.stats.Adds++

	var fc *gfx.FrameContext
	if s.cfg.Provider != nil {
		fc = s.cfg.Provider.FrameContext()
	}
	s.effects.Attach(v, fc)
}

// removeVisual releases everything a visual owns, then drops the entry.
// Idempotent: removing an absent id is a no-op. Each sub-resource disposal is
// isolated so one failure cannot strand its siblings.
func (s *Synchronizer) removeVisual(id string) {
	v, ok := s.visuals[id]
	if !ok {
		return
	}
	s.effects.Detach(id)
	if s.cfg.Labels != nil {
		s.cfg.Labels.RemoveLabel(id)
	}
	if s.cfg.Lights != nil && v.hasLight {
		s.cfg.Lights.RemoveLight(id)
	}
	v.dispose()
	s.cfg.Registry.ReleaseID(id)
	delete(s.visuals, id)
	s.stats.Removes++
}

// Update is the single per-frame entry point. Order is significant: LOD
// selection, renderer animation, effect tick, debris tick. Never propagates a
// failure out; all degradation is logged.
func (s *Synchronizer) Update(time float64, lights map[string]body.LightSource, fc *gfx.FrameContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}

	var cam *gfx.Camera
	if fc != nil {
		cam = fc.Camera
	}

	if cam != nil {
		for _, v := range s.visuals {
			if s.lod.Apply(v, distanceFor(v, s.visuals, cam)) {
				s.stats.TierSwaps++
			}
		}
	}

	for _, v := range s.visuals {
		v.Strategy.Animate(v, time, lights, cam)
	}

	s.effects.Tick(s.visuals, fc)

	dt := 0.0
	if s.hasLastTime && time > s.lastTime {
		dt = time - s.lastTime
	}
	s.lastTime = time
	s.hasLastTime = true
	s.debris.Tick(dt)
}

// Dispose unsubscribes from all inputs first, so no late callback can touch
// freed state, then tears down every visual and transient effect. Synchronous
// and fully unwound on return.
func (s *Synchronizer) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	if s.unsubStore != nil {
		s.unsubStore()
	}
	if s.unsubDestr != nil {
		s.unsubDestr()
	}
	for id := range s.visuals {
		s.removeVisual(id)
	}
	s.effects.Dispose()
	s.debris.Dispose()
	s.cfg.Registry.Dispose()
	s.disposed = true
}

// VisualHandle exposes the root node for an id, for sparing external
// injection of auxiliary scene content. Returns nil for unknown ids.
func (s *Synchronizer) VisualHandle(id string) *gfx.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.visuals[id]; ok {
		return v.Root
	}
	return nil
}

// VisualCount returns the number of live visuals.
func (s *Synchronizer) VisualCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visuals)
}

// DebrisCount returns the number of live debris effects.
func (s *Synchronizer) DebrisCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debris.Len()
}

// ActiveTierCounts returns a histogram of active tier indices across visuals.
func (s *Synchronizer) ActiveTierCounts() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]int)
	for _, v := range s.visuals {
		out[v.ActiveTier]++
	}
	return out
}

// Snapshot returns a lightweight view of every visual for external viewers.
func (s *Synchronizer) Snapshot() []VisualInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]VisualInfo, 0, len(s.visuals))
	for _, v := range s.visuals {
		out = append(out, VisualInfo{
			ID:          v.ID,
			Name:        v.Body.Name,
			Type:        v.Body.Type,
			Position:    v.Root.Position,
			Radius:      v.Body.Radius,
			ActiveTier:  v.ActiveTier,
			TierCount:   len(v.Tiers),
			Placeholder: v.Placeholder,
			Lensing:     s.effects.HasLensing(v.ID),
		})
	}
	return out
}

// CollectStats returns the accumulated diff counters and resets them.
func (s *Synchronizer) CollectStats() FrameStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.stats
	s.stats = FrameStats{}
	return out
}

// VisualInfo is the external, read-only view of one visual.
type VisualInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        body.Type  `json:"type"`
	Position    mgl32.Vec3 `json:"position"`
	Radius      float32    `json:"radius"`
	ActiveTier  int        `json:"active_tier"`
	TierCount   int        `json:"tier_count"`
	Placeholder bool       `json:"placeholder"`
	Lensing     bool       `json:"lensing"`
}
