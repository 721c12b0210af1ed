package scenario

import "testing"

func TestScenarioTransition(t *testing.T) {
	s := Scenario{
		Phases: []Phase{{
			Name:     "calm",
			Triggers: []Trigger{{Event: EventTimeElapsed, Value: 10, Next: "storm"}},
		}, {
			Name: "storm",
		}},
	}

	next, ok := s.NextPhase("calm", Event{Type: EventTimeElapsed, Value: 10})
	if !ok || next != "storm" {
		t.Fatalf("expected transition to storm, got %s", next)
	}
	if _, ok := s.NextPhase("calm", Event{Type: EventTimeElapsed, Value: 5}); ok {
		t.Fatal("transition fired below trigger value")
	}
	if _, ok := s.NextPhase("storm", Event{Type: EventTimeElapsed, Value: 100}); ok {
		t.Fatal("terminal phase should not transition")
	}
}

func TestLoadScenario(t *testing.T) {
	sc, err := Load("testdata/simple.yaml")
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if sc.Name != "example" {
		t.Fatalf("unexpected name %s", sc.Name)
	}
	if len(sc.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(sc.Phases))
	}
	if sc.Phases[1].Directives[0].Action != "chaos-on" {
		t.Fatalf("unexpected directive %+v", sc.Phases[1].Directives)
	}
}

func TestBuiltInArcs(t *testing.T) {
	arcs := BuiltIn()
	for _, n := range []string{"slow-decay", "cataclysm", "rogue-encounter"} {
		arc, ok := arcs[n]
		if !ok {
			t.Fatalf("arc %s not found", n)
		}
		if arc.Description == "" {
			t.Fatalf("arc %s missing description", n)
		}
		if arc.Phases[0].Name != "setup" {
			t.Fatalf("arc %s does not start at setup", n)
		}
		last := arc.Phases[len(arc.Phases)-1]
		if len(last.Triggers) != 0 {
			t.Fatalf("arc %s final phase has outgoing triggers", n)
		}
	}
}

func TestRunner(t *testing.T) {
	sc := BuiltIn()["cataclysm"]
	r := NewRunner(&sc)
	if r.Current() != "setup" {
		t.Fatalf("initial phase = %s", r.Current())
	}
	if r.Observe(Event{Type: EventTimeElapsed, Value: 5}) {
		t.Fatal("advanced too early")
	}
	if !r.Observe(Event{Type: EventTimeElapsed, Value: 20}) {
		t.Fatal("did not advance to climax")
	}
	if r.Current() != "climax" || r.Done() {
		t.Fatalf("phase = %s done = %v", r.Current(), r.Done())
	}
	if !r.Observe(Event{Type: EventBodiesDestroyed, Value: 4}) {
		t.Fatal("did not advance to resolution")
	}
	if !r.Done() {
		t.Fatal("resolution should be terminal")
	}
}
