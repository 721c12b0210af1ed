package sim

import (
	"orrery-sim/internal/telemetry"
)

// StatsWriter is an interface to support different frame-stats output writers.
type StatsWriter interface {
	WriteStats(telemetry.FrameStatsRow) error
}

// EventWriter handles scene lifecycle events.
type EventWriter interface {
	WriteEvent(telemetry.SceneEventRow) error
}

// Optional: writers can also support batch mode
type batchStatsWriter interface {
	WriteStatsBatch([]telemetry.FrameStatsRow) error
}

// Optional: event writers may support batch mode
type batchEventWriter interface {
	WriteEvents([]telemetry.SceneEventRow) error
}

// AdminStatusWriter allows writers to receive admin server status updates.
type AdminStatusWriter interface {
	SetAdminStatus(listening bool)
}
