package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"orrery-sim/internal/sim"
	"orrery-sim/internal/telemetry"
)

func TestNewWritersJSON(t *testing.T) {
	sw, ew, cleanup, err := newWriters(nil, "json", "", nil)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := sw.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", sw)
	}
	if _, ok := ew.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", ew)
	}
}

func TestNewWritersDefaultColor(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	sw, _, cleanup, err := newWriters(nil, "", "", nil)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := sw.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected *sim.ColorStdoutWriter, got %T", sw)
	}
}

func TestNewWritersUnknownMode(t *testing.T) {
	if _, _, _, err := newWriters(nil, "csv", "", nil); err == nil {
		t.Fatalf("expected error for unknown output mode")
	}
}

func TestNewWritersGreptimeMissingEndpoint(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	if _, _, _, err := newWriters(nil, "greptime", "", nil); err == nil {
		t.Fatalf("expected error when GREPTIMEDB_ENDPOINT is unset")
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frames.log")
	sw, ew, cleanup, err := newWriters(nil, "json", path, nil)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := sw.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", sw)
	}

	row := telemetry.FrameStatsRow{SystemID: "sys-1", Visuals: 3, Timestamp: time.Now()}
	if err := sw.WriteStats(row); err != nil {
		t.Fatalf("write stats failed: %v", err)
	}
	ev := telemetry.SceneEventRow{SystemID: "sys-1", EventType: telemetry.SceneEventAdd, BodyID: "b1", Timestamp: time.Now()}
	if err := ew.WriteEvent(ev); err != nil {
		t.Fatalf("write event failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected frame log to be non-empty")
	}
	evInfo, err := os.Stat(path + ".events")
	if err != nil {
		t.Fatalf("stat events failed: %v", err)
	}
	if evInfo.Size() == 0 {
		t.Fatalf("expected event log to be non-empty")
	}
}
