// Scene lifecycle event structs with greptime tags
package telemetry

import (
	"os"
	"time"
)

// Scene event type constants.
const (
	SceneEventAdd       = "add"
	SceneEventRemove    = "remove"
	SceneEventDestroy   = "destroy"
	SceneEventFallback  = "fallback"
	SceneEventTierSwap  = "tier_swap"
	SceneEventChaosFlip = "chaos_flip"
)

// SceneEventRow represents one scene lifecycle event for GreptimeDB.
type SceneEventRow struct {
	SystemID  string    `json:"system_id"`  // TAG
	EventType string    `json:"event_type"` // TAG
	BodyID    string    `json:"body_id"`    // FIELD
	BodyName  string    `json:"body_name"`  // FIELD
	BodyType  string    `json:"body_type"`  // FIELD
	Detail    string    `json:"detail"`     // FIELD
	Timestamp time.Time `json:"ts"`         // TIME INDEX
}

// SceneEventTableName holds the table name used when writing scene events to
// GreptimeDB, overridable via GREPTIMEDB_EVENT_TABLE.
var SceneEventTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_EVENT_TABLE"); env != "" {
		return env
	}
	return "scene_events"
}()

func (SceneEventRow) TableName() string {
	return SceneEventTableName
}
