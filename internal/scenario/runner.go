package scenario

// Runner tracks scenario progress across simulation ticks. It is fed events by
// the simulation loop and reports the directives of the active phase.
type Runner struct {
	sc      *Scenario
	current string
}

// NewRunner starts a scenario at its first phase.
func NewRunner(sc *Scenario) *Runner {
	r := &Runner{sc: sc}
	if len(sc.Phases) > 0 {
		r.current = sc.Phases[0].Name
	}
	return r
}

// Current returns the active phase name.
func (r *Runner) Current() string { return r.current }

// Directives returns the directives of the active phase.
func (r *Runner) Directives() []Directive {
	p, ok := r.sc.Phase(r.current)
	if !ok {
		return nil
	}
	return p.Directives
}

// Observe feeds an event; it returns true when the event advanced the
// scenario to a new phase.
func (r *Runner) Observe(ev Event) bool {
	next, ok := r.sc.NextPhase(r.current, ev)
	if !ok {
		return false
	}
	r.current = next
	return true
}

// Done reports whether the active phase has no outgoing triggers.
func (r *Runner) Done() bool {
	p, ok := r.sc.Phase(r.current)
	return !ok || len(p.Triggers) == 0
}
