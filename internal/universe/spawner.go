package universe

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"orrery-sim/internal/body"
	"orrery-sim/internal/config"
)

// orbit holds the stepping state for one body. Orbits are circular and
// parent-relative; the engine recomputes absolute positions top down.
type orbit struct {
	parentID    string
	origin      mgl32.Vec3 // orbit center when there is no parent
	radius      float64
	periodS     float64
	inclination float64 // radians
	phase       float64 // radians, advanced each step
}

// spawnSystems instantiates every configured system into bodies and orbits.
// Parent references are resolved by name within the same system; stars without
// a parent become the system's light anchors.
func spawnSystems(cfg *config.SimulationConfig) (map[string]body.Body, map[string]*orbit, error) {
	bodies := make(map[string]body.Body)
	orbits := make(map[string]*orbit)

	for _, sys := range cfg.Systems {
		origin := mgl32.Vec3{float32(sys.OriginX), float32(sys.OriginY), float32(sys.OriginZ)}
		idsByName := make(map[string]string, len(sys.Bodies))
		var primaryStarID string

		for _, spec := range sys.Bodies {
			b, err := bodyFromSpec(spec, sys.Name)
			if err != nil {
				return nil, nil, err
			}
			idsByName[spec.Name] = b.ID
			if b.Type == body.TypeStar && primaryStarID == "" {
				primaryStarID = b.ID
			}
			bodies[b.ID] = b
		}

		for _, spec := range sys.Bodies {
			id := idsByName[spec.Name]
			b := bodies[id]
			if spec.Parent != "" {
				parentID, ok := idsByName[spec.Parent]
				if !ok {
					return nil, nil, fmt.Errorf("system %s: body %s references unknown parent %s", sys.Name, spec.Name, spec.Parent)
				}
				b.ParentID = parentID
			}
			if primaryStarID != "" && id != primaryStarID {
				b.PrimaryLightID = primaryStarID
			}
			if spec.OrbitRadius > 0 && spec.OrbitPeriodS > 0 {
				orbits[id] = &orbit{
					parentID:    b.ParentID,
					origin:      origin,
					radius:      spec.OrbitRadius,
					periodS:     spec.OrbitPeriodS,
					inclination: spec.InclinationDeg * math.Pi / 180,
					phase:       phaseFromName(spec.Name),
				}
			}
			b.Position = origin
			bodies[id] = b
		}
	}
	return bodies, orbits, nil
}

func bodyFromSpec(spec config.BodySpec, systemName string) (body.Body, error) {
	t := body.Type(spec.Type)
	switch t {
	case body.TypeStar, body.TypePlanet, body.TypeMoon, body.TypeGasGiant,
		body.TypeRingSystem, body.TypeAsteroidField, body.TypeDwarfPlanet,
		body.TypeOortCloud, body.TypeOther:
	default:
		return body.Body{}, fmt.Errorf("system %s: body %s has unknown type %q", systemName, spec.Name, spec.Type)
	}

	props := make(map[string]string, len(spec.Properties)+2)
	for k, v := range spec.Properties {
		props[k] = v
	}
	switch t {
	case body.TypeStar:
		if spec.Class != "" {
			props["spectral_class"] = spec.Class
		}
	case body.TypeGasGiant:
		if spec.Class != "" {
			props["class"] = spec.Class
		}
	}
	if spec.Surface != "" {
		props["surface"] = spec.Surface
	}

	return body.Body{
		ID:          uuid.New().String(),
		Name:        spec.Name,
		Type:        t,
		Status:      body.StatusActive,
		Orientation: mgl32.QuatIdent(),
		Radius:      float32(spec.Radius),
		Properties:  props,
	}, nil
}

// phaseFromName spreads initial orbit phases deterministically so co-orbiting
// bodies do not all start on the same ray.
func phaseFromName(name string) float64 {
	var h uint32
	for _, c := range name {
		h = h*31 + uint32(c)
	}
	return float64(h%360) * math.Pi / 180
}
