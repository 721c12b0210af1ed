package sim

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"

	"orrery-sim/internal/body"
	"orrery-sim/internal/scene"
	"orrery-sim/internal/telemetry"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{
		program:  p,
		snapshot: func() []scene.VisualInfo { return []scene.VisualInfo{{ID: "a", Name: "A"}} },
	}
	row := telemetry.FrameStatsRow{SystemID: "s", Visuals: 1, Timestamp: time.Unix(0, 0).UTC()}
	if err := w.WriteStats(row); err != nil {
		t.Fatalf("write stats: %v", err)
	}
	if _, ok := p.msgs[0].(statsMsg); !ok {
		t.Fatalf("expected statsMsg, got %T", p.msgs[0])
	}
	if _, ok := p.msgs[1].(sceneMsg); !ok {
		t.Fatalf("expected sceneMsg, got %T", p.msgs[1])
	}
	if err := w.WriteEvent(telemetry.SceneEventRow{EventType: telemetry.SceneEventAdd, BodyName: "A", Timestamp: time.Unix(0, 0).UTC()}); err != nil {
		t.Fatalf("write event: %v", err)
	}
	if _, ok := p.msgs[2].(eventMsg); !ok {
		t.Fatalf("expected eventMsg, got %T", p.msgs[2])
	}
	w.SetAdminStatus(true)
	if _, ok := p.msgs[3].(adminMsg); !ok {
		t.Fatalf("expected adminMsg, got %T", p.msgs[3])
	}
}

func TestTUIModelTableAndHeader(t *testing.T) {
	m := newTUIModel(testSimConfig())
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = mi.(tuiModel)

	mi, _ = m.Update(statsMsg{telemetry.FrameStatsRow{SystemID: "s", Visuals: 2, ChaosMode: true}})
	m = mi.(tuiModel)
	mi, _ = m.Update(sceneMsg{visuals: []scene.VisualInfo{
		{ID: "b", Name: "Beta", Type: body.TypePlanet, ActiveTier: 1, TierCount: 3},
		{ID: "a", Name: "Alpha", Type: body.TypeStar, TierCount: 3, Lensing: true},
	}})
	m = mi.(tuiModel)

	view := m.View()
	if !strings.Contains(view, "CHAOS") {
		t.Error("header missing chaos indicator")
	}
	if !strings.Contains(view, "visuals=2") {
		t.Error("header missing visual count")
	}
	rows := m.table.Rows()
	if len(rows) != 2 || rows[0][0] != "Alpha" || rows[1][0] != "Beta" {
		t.Errorf("table rows not sorted by name: %v", rows)
	}
	if rows[0][3] != "lensing" {
		t.Errorf("lensing flag missing: %v", rows[0])
	}
}

func TestTUIModelMapMarkers(t *testing.T) {
	m := newTUIModel(testSimConfig())
	m.visuals = []scene.VisualInfo{
		{ID: "s", Name: "Sun", Type: body.TypeStar, Position: mgl32.Vec3{}},
		{ID: "p", Name: "P", Type: body.TypePlanet, ActiveTier: 2, Position: mgl32.Vec3{50, 0, 0}},
	}
	out := m.renderMap()
	if !strings.Contains(out, "*") {
		t.Error("map missing star marker")
	}
	if !strings.Contains(out, "3") {
		t.Error("map missing tier marker for active tier 2")
	}
}

func TestTUIModelEventLogWrap(t *testing.T) {
	m := newTUIModel(testSimConfig())
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 30})
	m = mi.(tuiModel)
	long := "alpha beta gamma delta epsilon zeta eta theta"
	mi, _ = m.Update(eventMsg{line: long})
	m = mi.(tuiModel)
	if got := m.vp.View(); !strings.Contains(got, "alpha") {
		t.Fatalf("log line missing from viewport: %q", got)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	m = mi.(tuiModel)
	if !m.wrap {
		t.Error("wrap not toggled by key")
	}
}
