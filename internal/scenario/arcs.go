package scenario

// BuiltIn returns predefined cataclysm arcs.
func BuiltIn() map[string]Scenario {
	return map[string]Scenario{
		"slow-decay": {
			Name:        "Slow Decay",
			Description: "An aging system sheds its inner bodies one impact at a time.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "The system drifts in equilibrium.",
					Triggers:    []Trigger{{Event: EventTimeElapsed, Value: 60, Next: "escalation"}},
				},
				{
					Name:        "escalation",
					Description: "Occasional impacts pick off small bodies.",
					Directives:  []Directive{{Action: "destroy", Target: "moon"}},
					Triggers:    []Trigger{{Event: EventBodiesDestroyed, Value: 2, Next: "climax"}},
				},
				{
					Name:        "climax",
					Description: "Collisions cascade through the inner system.",
					Directives:  []Directive{{Action: "chaos-on"}},
					Triggers:    []Trigger{{Event: EventBodiesDestroyed, Value: 5, Next: "resolution"}},
				},
				{
					Name:        "resolution",
					Description: "Debris settles around the surviving giants.",
					Directives:  []Directive{{Action: "chaos-off"}},
				},
			},
		},
		"cataclysm": {
			Name:        "Cataclysm",
			Description: "A short violent arc that tears the system apart.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "A brief calm before the event.",
					Triggers:    []Trigger{{Event: EventTimeElapsed, Value: 20, Next: "climax"}},
				},
				{
					Name:        "climax",
					Description: "Everything breakable breaks.",
					Directives:  []Directive{{Action: "chaos-on"}, {Action: "destroy", Target: "planet"}},
					Triggers:    []Trigger{{Event: EventBodiesDestroyed, Value: 4, Next: "resolution"}},
				},
				{
					Name:        "resolution",
					Description: "Only the stars and the debris fields remain.",
					Directives:  []Directive{{Action: "chaos-off"}},
				},
			},
		},
		"rogue-encounter": {
			Name:        "Rogue Encounter",
			Description: "A wandering body passes through and leaves wreckage behind.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "The rogue approaches from the outer dark.",
					Triggers:    []Trigger{{Event: EventTimeElapsed, Value: 45, Next: "escalation"}},
				},
				{
					Name:        "escalation",
					Description: "Close passes destabilize the outer moons.",
					Directives:  []Directive{{Action: "destroy", Target: "moon"}},
					Triggers:    []Trigger{{Event: EventBodiesDestroyed, Value: 1, Next: "climax"}},
				},
				{
					Name:        "climax",
					Description: "The rogue plows through the inner system.",
					Directives:  []Directive{{Action: "chaos-on"}},
					Triggers:    []Trigger{{Event: EventTimeElapsed, Value: 180, Next: "resolution"}},
				},
				{
					Name:        "resolution",
					Description: "The rogue departs; the system licks its wounds.",
					Directives:  []Directive{{Action: "chaos-off"}},
				},
			},
		},
	}
}
