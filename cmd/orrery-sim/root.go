package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orrery-sim",
	Short: "Celestial scene simulation toolkit",
	Long:  "Orrery-Sim runs a planetary-system simulator with a live render scene, frame telemetry and replay utilities.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
}
