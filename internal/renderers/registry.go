package renderers

import (
	"log/slog"

	"orrery-sim/internal/body"
	"orrery-sim/internal/scene"
)

// NewRegistry returns a strategy registry with every celestial renderer
// installed. Bodies of type "other" or with unrecognized types resolve to
// nothing; the synchronizer falls back to its placeholder.
func NewRegistry(log *slog.Logger) *scene.Registry {
	r := scene.NewRegistry(log)
	r.Register(body.TypeStar, func(b body.Body) scene.Strategy {
		if b.IsCompact() {
			return NewBlackHoleStrategy(b)
		}
		return NewStarStrategy(b)
	})
	r.Register(body.TypePlanet, func(b body.Body) scene.Strategy { return NewPlanetStrategy(b) })
	r.Register(body.TypeMoon, func(b body.Body) scene.Strategy { return NewPlanetStrategy(b) })
	r.Register(body.TypeDwarfPlanet, func(b body.Body) scene.Strategy { return NewPlanetStrategy(b) })
	r.Register(body.TypeGasGiant, func(b body.Body) scene.Strategy { return NewGasGiantStrategy(b) })
	r.Register(body.TypeRingSystem, func(b body.Body) scene.Strategy { return NewRingStrategy(b) })
	r.Register(body.TypeAsteroidField, func(b body.Body) scene.Strategy { return NewAsteroidFieldStrategy(b) })
	r.Register(body.TypeOortCloud, func(b body.Body) scene.Strategy { return NewOortCloudStrategy(b) })
	return r
}
