package sim

import (
	"context"
	"log"

	"orrery-sim/internal/telemetry"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter writes frame stats and scene events to GreptimeDB via the
// ingester client
type GreptimeDBWriter struct {
	client     *greptime.Client
	db         string
	statsTable string
	eventTable string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	// Table creation must be done outside this code (via SQL API or
	// manually); the ingester client cannot execute DDL. The intended
	// schemas are:
	//
	// CREATE TABLE IF NOT EXISTS <FrameStatsTableName> (
	//   system_id STRING TAG,
	//   visuals BIGINT,
	//   adds BIGINT,
	//   updates BIGINT,
	//   removes BIGINT,
	//   fallbacks BIGINT,
	//   tier_swaps BIGINT,
	//   debris BIGINT,
	//   lensing BIGINT,
	//   frame_millis DOUBLE,
	//   chaos_mode BOOLEAN,
	//   ts TIMESTAMP TIME INDEX
	// ) WITH (ttl='30d')
	//
	// CREATE TABLE IF NOT EXISTS <SceneEventTableName> (
	//   system_id STRING TAG,
	//   event_type STRING TAG,
	//   body_id STRING,
	//   body_name STRING,
	//   body_type STRING,
	//   detail STRING,
	//   ts TIMESTAMP TIME INDEX
	// ) WITH (ttl='30d')

	return &GreptimeDBWriter{
		client:     client,
		db:         database,
		statsTable: telemetry.FrameStatsTableName,
		eventTable: telemetry.SceneEventTableName,
	}, nil
}

// WriteStats inserts a single frame stats row.
func (w *GreptimeDBWriter) WriteStats(row telemetry.FrameStatsRow) error {
	return w.WriteStatsBatch([]telemetry.FrameStatsRow{row})
}

// WriteStatsBatch inserts multiple frame stats rows.
func (w *GreptimeDBWriter) WriteStatsBatch(rows []telemetry.FrameStatsRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := context.Background()

	tbl, err := table.New(w.statsTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("system_id", types.STRING)
	tbl.AddFieldColumn("visuals", types.INT64)
	tbl.AddFieldColumn("adds", types.INT64)
	tbl.AddFieldColumn("updates", types.INT64)
	tbl.AddFieldColumn("removes", types.INT64)
	tbl.AddFieldColumn("fallbacks", types.INT64)
	tbl.AddFieldColumn("tier_swaps", types.INT64)
	tbl.AddFieldColumn("debris", types.INT64)
	tbl.AddFieldColumn("lensing", types.INT64)
	tbl.AddFieldColumn("frame_millis", types.FLOAT64)
	tbl.AddFieldColumn("chaos_mode", types.BOOLEAN)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		err := tbl.AddRow(
			r.SystemID,
			int64(r.Visuals),
			int64(r.Adds),
			int64(r.Updates),
			int64(r.Removes),
			int64(r.Fallbacks),
			int64(r.TierSwaps),
			int64(r.Debris),
			int64(r.Lensing),
			r.FrameMillis,
			r.ChaosMode,
			r.Timestamp,
		)
		if err != nil {
			return err
		}
	}

	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Printf("[GreptimeDBWriter] stats write failed: %v", err)
		return err
	}
	return nil
}

// WriteEvent inserts a single scene event row.
func (w *GreptimeDBWriter) WriteEvent(e telemetry.SceneEventRow) error {
	return w.WriteEvents([]telemetry.SceneEventRow{e})
}

// WriteEvents inserts multiple scene event rows.
func (w *GreptimeDBWriter) WriteEvents(rows []telemetry.SceneEventRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := context.Background()

	tbl, err := table.New(w.eventTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("system_id", types.STRING)
	tbl.AddTagColumn("event_type", types.STRING)
	tbl.AddFieldColumn("body_id", types.STRING)
	tbl.AddFieldColumn("body_name", types.STRING)
	tbl.AddFieldColumn("body_type", types.STRING)
	tbl.AddFieldColumn("detail", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, e := range rows {
		err := tbl.AddRow(
			e.SystemID,
			e.EventType,
			e.BodyID,
			e.BodyName,
			e.BodyType,
			e.Detail,
			e.Timestamp,
		)
		if err != nil {
			return err
		}
	}

	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Printf("[GreptimeDBWriter] event write failed: %v", err)
		return err
	}
	return nil
}
