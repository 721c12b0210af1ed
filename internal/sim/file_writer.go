package sim

import (
	"encoding/json"
	"os"

	"orrery-sim/internal/telemetry"
)

// FileWriter writes frame stats and scene events to JSONL files.
type FileWriter struct {
	statsFile *os.File
	eventFile *os.File
	statsEnc  *json.Encoder
	eventEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. eventPath may be empty to skip the event log.
func NewFileWriter(statsPath, eventPath string) (*FileWriter, error) {
	sf, err := os.Create(statsPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{statsFile: sf, statsEnc: json.NewEncoder(sf)}
	if eventPath != "" {
		ef, err := os.Create(eventPath)
		if err != nil {
			sf.Close()
			return nil, err
		}
		fw.eventFile = ef
		fw.eventEnc = json.NewEncoder(ef)
	}
	return fw, nil
}

// WriteStats logs a single frame stats row.
func (f *FileWriter) WriteStats(row telemetry.FrameStatsRow) error {
	return f.statsEnc.Encode(row)
}

// WriteStatsBatch logs multiple frame stats rows.
func (f *FileWriter) WriteStatsBatch(rows []telemetry.FrameStatsRow) error {
	for _, r := range rows {
		if err := f.WriteStats(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvent logs a single scene event row, if enabled.
func (f *FileWriter) WriteEvent(e telemetry.SceneEventRow) error {
	if f.eventEnc == nil {
		return nil
	}
	return f.eventEnc.Encode(e)
}

// WriteEvents logs multiple scene event rows.
func (f *FileWriter) WriteEvents(rows []telemetry.SceneEventRow) error {
	for _, e := range rows {
		if err := f.WriteEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.statsFile != nil {
		if e := f.statsFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.eventFile != nil {
		if e := f.eventFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
