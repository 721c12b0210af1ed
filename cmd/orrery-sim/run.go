package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"orrery-sim/internal/admin"
	"orrery-sim/internal/config"
	"orrery-sim/internal/logging"
	"orrery-sim/internal/scenario"
	"orrery-sim/internal/scene"
	"orrery-sim/internal/sim"
)

var (
	runConfigPath string
	runSchemaPath string
	runTick       time.Duration
	runOutput     string
	runLogFile    string
	runRecordPath string
	runScenario   string
	runAdminAddr  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the real-time scene simulator",
	Long:  "run starts a planetary-system simulator that keeps a render scene in sync with the object store and emits per-frame stats and scene events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()

		cfg, err := config.Load(runConfigPath, runSchemaPath)
		if err != nil {
			return err
		}

		systemID := os.Getenv("SYSTEM_ID")
		if systemID == "" {
			systemID = "orrery-01"
		}

		tickInterval := runTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return fmt.Errorf("invalid TICK_INTERVAL: %w", err)
			}
			tickInterval = d
		}

		// The TUI body table reads from the simulator, which does not exist
		// until the writers do. The closure breaks the cycle.
		var simulator *sim.Simulator
		snapshot := func() []scene.VisualInfo {
			if simulator == nil {
				return nil
			}
			return simulator.SceneSnapshot()
		}

		writer, eventWriter, cleanup, err := newWriters(cfg, runOutput, runLogFile, snapshot)
		if err != nil {
			return err
		}
		defer cleanup()

		simulator, err = sim.NewSimulator(systemID, cfg, writer, eventWriter, tickInterval, log)
		if err != nil {
			return err
		}

		if runRecordPath != "" {
			rec, err := sim.NewRecorder(runRecordPath)
			if err != nil {
				return err
			}
			defer rec.Close()
			simulator.SetRecorder(rec)
		}

		if runScenario != "" {
			sc, err := loadScenario(runScenario)
			if err != nil {
				return err
			}
			simulator.SetScenario(scenario.NewRunner(sc))
			log.Info("scenario attached", "name", sc.Name)
		}

		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		srv := admin.NewServer(simulator)
		go func() {
			log.Info("admin server listening", "addr", runAdminAddr)
			if err := srv.Start(runAdminAddr); err != nil {
				log.Error("admin server failed", "error", err)
			}
		}()
		if aw, ok := writer.(sim.AdminStatusWriter); ok {
			aw.SetAdminStatus(true)
		}

		go simulator.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		log.Info("simulation stopped", "system", systemID)
		return nil
	},
}

// loadScenario resolves a built-in arc by name or loads a YAML file.
func loadScenario(name string) (*scenario.Scenario, error) {
	if sc, ok := scenario.BuiltIn()[name]; ok {
		return &sc, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("scenario %q: not a built-in arc and not a file", name)
	}
	return scenario.Load(name)
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	runCmd.Flags().StringVar(&runSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	runCmd.Flags().DurationVar(&runTick, "tick", time.Second, "Frame tick interval (e.g. 500ms, 2s)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "Output mode: json, color, tui or greptime (default: greptime if GREPTIMEDB_ENDPOINT is set, else color)")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Path to export frame stats and scene events (JSONL)")
	runCmd.Flags().StringVar(&runRecordPath, "record", "", "Path to record store snapshots for later replay (JSONL)")
	runCmd.Flags().StringVar(&runScenario, "scenario", "", "Built-in arc name (slow-decay, cataclysm, rogue-encounter) or scenario YAML path")
	runCmd.Flags().StringVar(&runAdminAddr, "admin-addr", ":8080", "Admin server listen address")
}
