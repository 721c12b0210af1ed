// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BodySpec describes one celestial body of a system.
type BodySpec struct {
	Name           string            `yaml:"name"`
	Type           string            `yaml:"type"`
	Class          string            `yaml:"class"`
	Surface        string            `yaml:"surface"`
	Parent         string            `yaml:"parent"`
	Radius         float64           `yaml:"radius"`
	OrbitRadius    float64           `yaml:"orbit_radius"`
	OrbitPeriodS   float64           `yaml:"orbit_period_s"`
	InclinationDeg float64           `yaml:"inclination_deg"`
	Properties     map[string]string `yaml:"properties"`
}

// System is a named group of bodies sharing an origin offset.
type System struct {
	Name    string     `yaml:"name"`
	OriginX float64    `yaml:"origin_x"`
	OriginY float64    `yaml:"origin_y"`
	OriginZ float64    `yaml:"origin_z"`
	Bodies  []BodySpec `yaml:"bodies"`
}

// Camera configures the simulated observer orbit.
type Camera struct {
	Distance  float64 `yaml:"distance"`
	Elevation float64 `yaml:"elevation"`
	PeriodS   float64 `yaml:"period_s"`
}

// Destruction configures random catastrophic events.
type Destruction struct {
	Enabled       bool    `yaml:"enabled"`
	MeanIntervalS float64 `yaml:"mean_interval_s"`
}

// SimulationConfig is the root configuration for systems, camera, and events.
type SimulationConfig struct {
	Systems          []System    `yaml:"systems"`
	Camera           Camera      `yaml:"camera"`
	Destruction      Destruction `yaml:"destruction"`
	LODDistanceScale float64     `yaml:"lod_distance_scale"`
	AccelThreshold   float64     `yaml:"accel_threshold"`
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Systems) == 0 {
		return nil, fmt.Errorf("no systems defined in %s", configPath)
	}

	return &cfg, nil
}
