package sim

import (
	"testing"
	"time"

	"orrery-sim/internal/config"
	"orrery-sim/internal/scenario"
	"orrery-sim/internal/telemetry"
)

func testSimConfig() *config.SimulationConfig {
	return &config.SimulationConfig{
		Systems: []config.System{{
			Name: "test",
			Bodies: []config.BodySpec{
				{Name: "Sun", Type: "star", Class: "G", Radius: 10},
				{Name: "Terra", Type: "planet", Surface: "ocean", Parent: "Sun", Radius: 2, OrbitRadius: 50, OrbitPeriodS: 100},
			},
		}},
		Camera: config.Camera{Distance: 100, PeriodS: 60},
	}
}

func newTestSimulator(t *testing.T, stats StatsWriter, events EventWriter) *Simulator {
	t.Helper()
	s, err := NewSimulator("test-system", testSimConfig(), stats, events, 100*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

func TestSimulator_TickWritesStats(t *testing.T) {
	sw := &collectStatsWriter{}
	ew := &collectEventWriter{}
	s := newTestSimulator(t, sw, ew)
	defer s.Close()

	s.tick()
	if len(sw.rows) != 1 {
		t.Fatalf("expected 1 stats row, got %d", len(sw.rows))
	}
	row := sw.rows[0]
	if row.SystemID != "test-system" {
		t.Errorf("system id = %q", row.SystemID)
	}
	if row.Visuals != 2 {
		t.Errorf("visuals = %d, want 2", row.Visuals)
	}

	// First tick reports an add event per body.
	adds := 0
	for _, e := range ew.events {
		if e.EventType == telemetry.SceneEventAdd {
			adds++
		}
	}
	if adds != 2 {
		t.Errorf("add events = %d, want 2", adds)
	}

	// A second tick with no changes produces no further lifecycle events.
	before := len(ew.events)
	s.tick()
	if len(ew.events) != before {
		t.Errorf("unexpected events on steady-state tick: %+v", ew.events[before:])
	}
}

func TestSimulator_DestroyEmitsEventAndDebris(t *testing.T) {
	sw := &collectStatsWriter{}
	ew := &collectEventWriter{}
	s := newTestSimulator(t, sw, ew)
	defer s.Close()

	s.tick()
	var terraID string
	for _, v := range s.SceneSnapshot() {
		if v.Name == "Terra" {
			terraID = v.ID
		}
	}
	if terraID == "" {
		t.Fatal("Terra not in scene snapshot")
	}

	if err := s.Destroy(terraID); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	s.tick()

	found := false
	for _, e := range ew.events {
		if e.EventType == telemetry.SceneEventDestroy && e.BodyID == terraID {
			found = true
		}
	}
	if !found {
		t.Error("no destroy event emitted")
	}
	last := sw.rows[len(sw.rows)-1]
	if last.Debris == 0 {
		t.Error("expected live debris after destruction")
	}
	if last.Visuals != 1 {
		t.Errorf("visuals = %d after destruction, want 1", last.Visuals)
	}
}

func TestSimulator_ToggleChaos(t *testing.T) {
	ew := &collectEventWriter{}
	s := newTestSimulator(t, &collectStatsWriter{}, ew)
	defer s.Close()

	if !s.ToggleChaos() {
		t.Fatal("expected chaos on after first toggle")
	}
	if !s.Chaos() {
		t.Fatal("Chaos() = false after toggle on")
	}
	if s.ToggleChaos() {
		t.Fatal("expected chaos off after second toggle")
	}
	flips := 0
	for _, e := range ew.events {
		if e.EventType == telemetry.SceneEventChaosFlip {
			flips++
		}
	}
	if flips != 2 {
		t.Errorf("chaos flip events = %d, want 2", flips)
	}
}

func TestSimulator_ScenarioDrivesChaos(t *testing.T) {
	s := newTestSimulator(t, &collectStatsWriter{}, &collectEventWriter{})
	defer s.Close()

	sc := &scenario.Scenario{
		Phases: []scenario.Phase{
			{
				Name:     "calm",
				Triggers: []scenario.Trigger{{Event: scenario.EventTimeElapsed, Value: 1, Next: "storm"}},
			},
			{
				Name:       "storm",
				Directives: []scenario.Directive{{Action: "chaos-on"}, {Action: "destroy", Target: "planet"}},
			},
		},
	}
	s.SetScenario(scenario.NewRunner(sc))

	// Tick past the 1s trigger (tick interval is 100ms).
	for i := 0; i < 11; i++ {
		s.tick()
	}
	if !s.Chaos() {
		t.Error("scenario did not enable chaos in storm phase")
	}
	if got := len(s.SceneSnapshot()); got != 1 {
		t.Errorf("visuals = %d, want 1 after scenario destroyed the planet", got)
	}
}

func TestSimulator_CompactStarCountsLensing(t *testing.T) {
	cfg := testSimConfig()
	cfg.Systems[0].Bodies = append(cfg.Systems[0].Bodies, config.BodySpec{
		Name: "Gorgon", Type: "star", Class: "O", Radius: 5,
		Properties: map[string]string{"compact": "true"},
	})
	sw := &collectStatsWriter{}
	s, err := NewSimulator("test-system", cfg, sw, nil, 100*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	defer s.Close()

	s.tick()
	if sw.rows[0].Lensing != 1 {
		t.Errorf("lensing count = %d, want 1 for compact star", sw.rows[0].Lensing)
	}
}
