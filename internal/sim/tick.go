package sim

import (
	"context"
	"time"

	"orrery-sim/internal/logging"
)

// Run starts the simulation loop and stops when the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "tick_interval", s.tickInterval, "system_id", s.systemID)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-ctx.Done():
			log.Info("stopping simulator")
			s.Close()
			return
		}
	}
}
