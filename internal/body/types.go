// Celestial body data model shared between simulation and scene layers
package body

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Type classifies a celestial body for renderer selection.
type Type string

const (
	TypeStar          Type = "star"
	TypePlanet        Type = "planet"
	TypeMoon          Type = "moon"
	TypeGasGiant      Type = "gas-giant"
	TypeRingSystem    Type = "ring-system"
	TypeAsteroidField Type = "asteroid-field"
	TypeDwarfPlanet   Type = "dwarf-planet"
	TypeOortCloud     Type = "oort-cloud"
	TypeOther         Type = "other"
)

// Status tracks a body's lifecycle in the authoritative store.
type Status string

const (
	StatusActive      Status = "active"
	StatusDestroyed   Status = "destroyed"
	StatusAnnihilated Status = "annihilated"
)

// Body is one authoritative celestial object. The scene layer treats it as
// read-only; only the universe engine mutates bodies, and only through the store.
type Body struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        Type       `json:"type"`
	Status      Status     `json:"status"`
	Position    mgl32.Vec3 `json:"position"`
	Orientation mgl32.Quat `json:"orientation"`
	Radius      float32    `json:"radius"`

	// ParentID links moons and rings to their primary for hierarchical LOD.
	ParentID string `json:"parent_id,omitempty"`

	// PrimaryLightID names the star whose light dominates this body.
	PrimaryLightID string `json:"primary_light_id,omitempty"`

	// Properties carries type-specific parameters (spectral class, gas giant
	// class, compactness). Opaque to the scene core; renderer strategies read it.
	Properties map[string]string `json:"properties,omitempty"`
}

// Property returns a named property or the given default.
func (b *Body) Property(key, def string) string {
	if v, ok := b.Properties[key]; ok {
		return v
	}
	return def
}

// IsCompact reports whether the body is a compact object (black hole, neutron
// star) that bends light enough to warrant a lensing effect.
func (b *Body) IsCompact() bool {
	return b.Property("compact", "") == "true"
}

// Clone returns a deep copy, so store snapshots cannot alias live state.
func (b Body) Clone() Body {
	if b.Properties != nil {
		props := make(map[string]string, len(b.Properties))
		for k, v := range b.Properties {
			props[k] = v
		}
		b.Properties = props
	}
	return b
}

// LightSource describes an active light for renderer animation.
type LightSource struct {
	Position  mgl32.Vec3 `json:"position"`
	Color     mgl32.Vec3 `json:"color"`
	Intensity float32    `json:"intensity"`
}
