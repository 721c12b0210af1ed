package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"orrery-sim/internal/body"
	"orrery-sim/internal/sim"
	"orrery-sim/internal/store"
	"orrery-sim/internal/telemetry"
)

var (
	replayInput  string
	replaySpeed  float64
	replayOutput string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded snapshot log",
	Long:  "replay feeds recorded store snapshots back through an object store and emits frame stats for each frame.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}

		systemID := os.Getenv("SYSTEM_ID")
		if systemID == "" {
			systemID = "orrery-replay"
		}

		writer, _, cleanup, err := newWriters(nil, replayOutput, "", nil)
		if err != nil {
			return err
		}
		defer cleanup()

		objects := store.NewObjectStore()
		prev := map[string]body.Body{}
		unsubscribe := objects.Subscribe(func(snap map[string]body.Body) {
			row := telemetry.FrameStatsRow{
				SystemID:  systemID,
				Timestamp: time.Now(),
			}
			for id, b := range snap {
				if b.Status == body.StatusActive {
					row.Visuals++
				}
				if _, ok := prev[id]; !ok {
					row.Adds++
				}
			}
			for id := range prev {
				if _, ok := snap[id]; !ok {
					row.Removes++
				}
			}
			prev = snap
			if err := writer.WriteStats(row); err != nil {
				fmt.Fprintln(os.Stderr, "write stats:", err)
			}
		})
		defer unsubscribe()

		return sim.ReplayLogFile(replayInput, objects, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to snapshot log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().StringVar(&replayOutput, "output", "json", "Output mode: json, color or greptime")
	replayCmd.MarkFlagRequired("input")
}
