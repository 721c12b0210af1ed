package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
systems:
  - name: sol-prime
    bodies:
      - name: Helios
        type: star
        class: G
        radius: 12
      - name: Tethys
        type: planet
        surface: ocean
        parent: Helios
        radius: 2
        orbit_radius: 80
        orbit_period_s: 240
camera:
  distance: 150
  period_s: 600
destruction:
  enabled: true
  mean_interval_s: 45
lod_distance_scale: 1.0
`

func TestLoadConfig_Valid(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "simulation.yaml")
	if err := os.WriteFile(cfgPath, []byte(sampleYAML), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := Load(cfgPath, "../../schemas/simulation.cue")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(cfg.Systems) != 1 || cfg.Systems[0].Name != "sol-prime" {
		t.Errorf("unexpected system data: %+v", cfg.Systems)
	}
	if len(cfg.Systems[0].Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(cfg.Systems[0].Bodies))
	}
	moon := cfg.Systems[0].Bodies[1]
	if moon.Parent != "Helios" || moon.OrbitPeriodS != 240 {
		t.Errorf("unexpected body data: %+v", moon)
	}
	if !cfg.Destruction.Enabled || cfg.Destruction.MeanIntervalS != 45 {
		t.Errorf("unexpected destruction settings: %+v", cfg.Destruction)
	}
}

func TestLoadConfig_NoSystems(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "simulation.yaml")
	if err := os.WriteFile(cfgPath, []byte("systems: []\n"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if _, err := Load(cfgPath, "../../schemas/simulation.cue"); err == nil {
		t.Error("expected error for empty systems list")
	}
}
