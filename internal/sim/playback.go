package sim

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"orrery-sim/internal/body"
	"orrery-sim/internal/store"
)

// ReplayFrame is one recorded store snapshot.
type ReplayFrame struct {
	Elapsed   float64     `json:"elapsed"`
	Timestamp time.Time   `json:"ts"`
	Bodies    []body.Body `json:"bodies"`
}

// Recorder writes store snapshots as JSONL for later replay.
type Recorder struct {
	file *os.File
	enc  *json.Encoder
	now  func() time.Time
}

// NewRecorder creates a recorder writing to path.
func NewRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Recorder{file: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

// Record appends one snapshot frame.
func (r *Recorder) Record(elapsed float64, snap map[string]body.Body) error {
	frame := ReplayFrame{Elapsed: elapsed, Timestamp: r.now().UTC()}
	frame.Bodies = make([]body.Body, 0, len(snap))
	for _, b := range snap {
		frame.Bodies = append(frame.Bodies, b)
	}
	return r.enc.Encode(frame)
}

// Close closes the underlying file.
func (r *Recorder) Close() error {
	return r.file.Close()
}

// ReplayLog feeds recorded frames from r into the object store. A speed >0
// replays with the original inter-frame timing divided by speed; if speed <= 0,
// no artificial delay is inserted.
func ReplayLog(r io.Reader, objects *store.ObjectStore, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var frame ReplayFrame
		if err := dec.Decode(&frame); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !prev.IsZero() && speed > 0 {
			diff := frame.Timestamp.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		snap := make(map[string]body.Body, len(frame.Bodies))
		for _, b := range frame.Bodies {
			snap[b.ID] = b
		}
		objects.Replace(snap)
		prev = frame.Timestamp
	}
}

// ReplayLogFile opens a file and replays its frames into the store.
func ReplayLogFile(path string, objects *store.ObjectStore, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(f, objects, speed)
}
