package main

import (
	"fmt"
	"os"

	"orrery-sim/internal/config"
	"orrery-sim/internal/scene"
	"orrery-sim/internal/sim"
)

// newWriters sets up stats and event writers based on the output mode and env
// vars. snapshot feeds the TUI body table and may be nil for other modes. The
// returned cleanup closes any resources the writers hold.
func newWriters(cfg *config.SimulationConfig, output, logFile string, snapshot func() []scene.VisualInfo) (sim.StatsWriter, sim.EventWriter, func(), error) {
	sw, ew, cleanup, err := baseWriters(cfg, output, snapshot)
	if err != nil {
		return nil, nil, nil, err
	}
	if logFile == "" {
		return sw, ew, cleanup, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".events")
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	mw := sim.NewMultiWriter([]sim.StatsWriter{sw, fw}, []sim.EventWriter{ew, fw})
	base := cleanup
	cleanup = func() {
		fw.Close()
		base()
	}
	return mw, mw, cleanup, nil
}

// baseWriters chooses the underlying writers. An empty output picks GreptimeDB
// when GREPTIMEDB_ENDPOINT is set and falls back to colorized stdout otherwise.
func baseWriters(cfg *config.SimulationConfig, output string, snapshot func() []scene.VisualInfo) (sim.StatsWriter, sim.EventWriter, func(), error) {
	noop := func() {}
	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	if output == "" {
		if endpoint != "" {
			output = "greptime"
		} else {
			output = "color"
		}
	}

	switch output {
	case "json":
		w := sim.NewJSONStdoutWriter()
		return w, w, noop, nil
	case "color":
		w := sim.NewColorStdoutWriter(cfg)
		return w, w, noop, nil
	case "tui":
		w := sim.NewTUIWriter(cfg, snapshot)
		return w, w, func() { w.Close() }, nil
	case "greptime":
		if endpoint == "" {
			return nil, nil, nil, fmt.Errorf("GREPTIMEDB_ENDPOINT not set")
		}
		db := os.Getenv("GREPTIMEDB_DATABASE")
		if db == "" {
			db = "public"
		}
		w, err := sim.NewGreptimeDBWriter(endpoint, db)
		if err != nil {
			return nil, nil, nil, err
		}
		return w, w, noop, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown output mode %q", output)
	}
}
