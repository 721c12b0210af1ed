package telemetry

import "testing"

func TestTableNames(t *testing.T) {
	if got := (FrameStatsRow{}).TableName(); got != FrameStatsTableName {
		t.Errorf("FrameStatsRow table = %q, want %q", got, FrameStatsTableName)
	}
	if got := (SceneEventRow{}).TableName(); got != SceneEventTableName {
		t.Errorf("SceneEventRow table = %q, want %q", got, SceneEventTableName)
	}
}
