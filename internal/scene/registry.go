package scene

import (
	"fmt"
	"log/slog"

	"orrery-sim/internal/body"
)

// StrategyFactory constructs a strategy for a body. Factories may inspect the
// properties bag to pick a variant (e.g. compact stars).
type StrategyFactory func(b body.Body) Strategy

// Registry resolves and caches renderer strategies. Resolution keys follow the
// body type: stars key by object id (each star derives unique parameters),
// gas giants by their appearance class, planets, moons, and dwarf planets
// share one general-purpose strategy, everything else keys by type.
type Registry struct {
	log       *slog.Logger
	factories map[body.Type]StrategyFactory
	cache     map[string]Strategy
}

// NewRegistry creates an empty registry. Factories are registered per type.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		log:       log,
		factories: make(map[body.Type]StrategyFactory),
		cache:     make(map[string]Strategy),
	}
}

// Register installs a factory for a body type, replacing any previous one.
func (r *Registry) Register(t body.Type, f StrategyFactory) {
	r.factories[t] = f
}

// Resolve returns the strategy for a body, creating and caching it on first
// use. The second result is false when no factory matches the body's type;
// callers fall back to a placeholder representation. Resolve never panics.
func (r *Registry) Resolve(b body.Body) (Strategy, string, bool) {
	key := r.keyFor(b)
	if s, ok := r.cache[key]; ok {
		return s, key, true
	}
	f, ok := r.factories[b.Type]
	if !ok {
		return nil, "", false
	}
	s := f(b)
	if s == nil {
		return nil, "", false
	}
	r.cache[key] = s
	return s, key, true
}

// ReleaseID drops and disposes any per-id cache entry for the given object.
// Shared (type- or class-keyed) strategies stay cached until Dispose.
func (r *Registry) ReleaseID(id string) {
	key := idKey(id)
	if s, ok := r.cache[key]; ok {
		s.Dispose()
		delete(r.cache, key)
	}
}

// Dispose releases every cached strategy.
func (r *Registry) Dispose() {
	for key, s := range r.cache {
		s.Dispose()
		delete(r.cache, key)
	}
}

// CachedCount returns the number of live cache entries.
func (r *Registry) CachedCount() int { return len(r.cache) }

func (r *Registry) keyFor(b body.Body) string {
	switch b.Type {
	case body.TypeStar:
		return idKey(b.ID)
	case body.TypeGasGiant:
		return "gas-giant/" + b.Property("class", "II")
	case body.TypePlanet, body.TypeMoon, body.TypeDwarfPlanet:
		return "planet"
	default:
		return string(b.Type)
	}
}

func idKey(id string) string {
	return fmt.Sprintf("id/%s", id)
}
