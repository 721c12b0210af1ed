// Frame statistics structs with greptime tags
package telemetry

import (
	"os"
	"time"
)

// FrameStatsRow represents one per-frame scene statistics record for GreptimeDB.
type FrameStatsRow struct {
	SystemID    string    `json:"system_id"`    // TAG
	Visuals     int       `json:"visuals"`      // FIELD
	Adds        int       `json:"adds"`         // FIELD
	Updates     int       `json:"updates"`      // FIELD
	Removes     int       `json:"removes"`      // FIELD
	Fallbacks   int       `json:"fallbacks"`    // FIELD
	TierSwaps   int       `json:"tier_swaps"`   // FIELD
	Debris      int       `json:"debris"`       // FIELD
	Lensing     int       `json:"lensing"`      // FIELD
	FrameMillis float64   `json:"frame_millis"` // FIELD
	ChaosMode   bool      `json:"chaos_mode"`   // FIELD
	Timestamp   time.Time `json:"ts"`           // TIME INDEX
}

// FrameStatsTableName holds the table name used when writing to GreptimeDB.
// It defaults to "scene_frame_stats" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var FrameStatsTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "scene_frame_stats"
}()

func (FrameStatsRow) TableName() string {
	return FrameStatsTableName
}
