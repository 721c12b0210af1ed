package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"orrery-sim/internal/telemetry"
)

// JSONStdoutWriter prints frame stats and scene events as JSON to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteStats outputs a frame stats row in JSON format.
func (w *JSONStdoutWriter) WriteStats(row telemetry.FrameStatsRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteStatsBatch outputs multiple frame stats rows in JSON format.
func (w *JSONStdoutWriter) WriteStatsBatch(rows []telemetry.FrameStatsRow) error {
	for _, r := range rows {
		_ = w.WriteStats(r)
	}
	return nil
}

// WriteEvent outputs a scene event in JSON format.
func (w *JSONStdoutWriter) WriteEvent(e telemetry.SceneEventRow) error {
	data, _ := json.Marshal(e)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteEvents outputs multiple scene events in JSON format.
func (w *JSONStdoutWriter) WriteEvents(rows []telemetry.SceneEventRow) error {
	for _, e := range rows {
		_ = w.WriteEvent(e)
	}
	return nil
}
