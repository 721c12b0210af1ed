package sim

import (
	"orrery-sim/internal/telemetry"
)

// MultiWriter fans frame stats and scene events out to multiple writers.
type MultiWriter struct {
	statsWriters []StatsWriter
	eventWriters []EventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(sws []StatsWriter, ews []EventWriter) *MultiWriter {
	return &MultiWriter{statsWriters: sws, eventWriters: ews}
}

// WriteStats sends a frame stats row to all writers.
func (mw *MultiWriter) WriteStats(row telemetry.FrameStatsRow) error {
	for _, w := range mw.statsWriters {
		if err := w.WriteStats(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteStatsBatch sends multiple stats rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteStatsBatch(rows []telemetry.FrameStatsRow) error {
	for _, w := range mw.statsWriters {
		if bw, ok := w.(batchStatsWriter); ok {
			if err := bw.WriteStatsBatch(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteStats(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetAdminStatus forwards admin server status to writers that display it.
func (mw *MultiWriter) SetAdminStatus(active bool) {
	for _, w := range mw.statsWriters {
		if aw, ok := w.(AdminStatusWriter); ok {
			aw.SetAdminStatus(active)
		}
	}
}

// WriteEvent sends a scene event to all event writers.
func (mw *MultiWriter) WriteEvent(e telemetry.SceneEventRow) error {
	for _, w := range mw.eventWriters {
		if err := w.WriteEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvents sends multiple scene events to all event writers, using batch if supported.
func (mw *MultiWriter) WriteEvents(rows []telemetry.SceneEventRow) error {
	for _, w := range mw.eventWriters {
		if bw, ok := w.(batchEventWriter); ok {
			if err := bw.WriteEvents(rows); err != nil {
				return err
			}
			continue
		}
		for _, e := range rows {
			if err := w.WriteEvent(e); err != nil {
				return err
			}
		}
	}
	return nil
}
