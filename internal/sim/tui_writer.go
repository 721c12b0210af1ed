package sim

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"orrery-sim/internal/config"
	"orrery-sim/internal/scene"
	"orrery-sim/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// statsMsg carries a frame stats update.
type statsMsg struct{ telemetry.FrameStatsRow }

// eventMsg carries a scene event log line.
type eventMsg struct{ line string }

// sceneMsg carries the current visual set for the body table and map.
type sceneMsg struct{ visuals []scene.VisualInfo }

// adminMsg reports admin server status.
type adminMsg struct{ active bool }

// TUIWriter renders frame stats and scene state using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	snapshot   func() []scene.VisualInfo
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter. snapshot
// supplies the visual set rendered in the body table; it may be nil.
func NewTUIWriter(cfg *config.SimulationConfig, snapshot func() []scene.VisualInfo) *TUIWriter {
	w := &TUIWriter{snapshot: snapshot, done: make(chan struct{})}
	w.sendSignal.Store(true)
	m := newTUIModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteStats implements StatsWriter.
func (w *TUIWriter) WriteStats(row telemetry.FrameStatsRow) error {
	w.program.Send(statsMsg{row})
	if w.snapshot != nil {
		w.program.Send(sceneMsg{visuals: w.snapshot()})
	}
	return nil
}

// WriteStatsBatch outputs multiple stats rows.
func (w *TUIWriter) WriteStatsBatch(rows []telemetry.FrameStatsRow) error {
	for _, r := range rows {
		_ = w.WriteStats(r)
	}
	return nil
}

// WriteEvent implements EventWriter.
func (w *TUIWriter) WriteEvent(e telemetry.SceneEventRow) error {
	c, ok := eventPalette[e.EventType]
	if !ok {
		c = colorBlue
	}
	line := fmt.Sprintf("%s[%s]%s %s%-10s%s %s %s%s%s",
		colorGray, e.Timestamp.Format(time.RFC3339), colorReset,
		c, e.EventType, colorReset,
		e.BodyName,
		colorGray, e.Detail, colorReset)
	w.program.Send(eventMsg{line: line})
	return nil
}

// WriteEvents outputs multiple scene events.
func (w *TUIWriter) WriteEvents(rows []telemetry.SceneEventRow) error {
	for _, e := range rows {
		_ = w.WriteEvent(e)
	}
	return nil
}

// SetAdminStatus updates the admin server indicator.
func (w *TUIWriter) SetAdminStatus(active bool) {
	w.program.Send(adminMsg{active: active})
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	chaosStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	adminStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type tuiModel struct {
	cfg        *config.SimulationConfig
	table      table.Model
	vp         viewport.Model
	logs       []string
	stats      telemetry.FrameStatsRow
	visuals    []scene.VisualInfo
	admin      bool
	wrap       bool
	autoscroll bool
	showMap    bool
	width      int
	height     int
}

func newTUIModel(cfg *config.SimulationConfig) tuiModel {
	cols := []table.Column{
		{Title: "Body", Width: 18},
		{Title: "Type", Width: 14},
		{Title: "Tier", Width: 8},
		{Title: "Flags", Width: 16},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(12))
	vp := viewport.New(0, 0)
	return tuiModel{
		cfg:        cfg,
		table:      t,
		vp:         vp,
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "s":
			m.autoscroll = !m.autoscroll
		case "m":
			m.showMap = !m.showMap
			m.updateViewportHeight()
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case statsMsg:
		m.stats = msg.FrameStatsRow
	case sceneMsg:
		m.visuals = msg.visuals
		m.refreshTable()
	case eventMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > 500 {
			m.logs = m.logs[len(m.logs)-500:]
		}
		m.refreshViewport()
	case adminMsg:
		m.admin = msg.active
	}
	return m, nil
}

func (m *tuiModel) updateViewportHeight() {
	h := m.height - m.table.Height() - 4
	if m.showMap {
		h -= mapHeight + 1
	}
	if h < 3 {
		h = 3
	}
	m.vp.Height = h
}

func (m *tuiModel) refreshTable() {
	sorted := make([]scene.VisualInfo, len(m.visuals))
	copy(sorted, m.visuals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	rows := make([]table.Row, 0, len(sorted))
	for _, v := range sorted {
		var flags []string
		if v.Placeholder {
			flags = append(flags, "placeholder")
		}
		if v.Lensing {
			flags = append(flags, "lensing")
		}
		rows = append(rows, table.Row{
			v.Name,
			string(v.Type),
			fmt.Sprintf("%d/%d", v.ActiveTier+1, v.TierCount),
			strings.Join(flags, ","),
		})
	}
	m.table.SetRows(rows)
}

func (m *tuiModel) refreshViewport() {
	lines := m.logs
	if m.wrap && m.vp.Width > 0 {
		wrapped := make([]string, 0, len(lines))
		for _, l := range lines {
			wrapped = append(wrapped, wordwrap.String(l, m.vp.Width))
		}
		lines = wrapped
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) renderHeader() string {
	s := m.stats
	line := fmt.Sprintf("visuals=%d adds=%d updates=%d removes=%d fallbacks=%d swaps=%d debris=%d lensing=%d frame=%.2fms",
		s.Visuals, s.Adds, s.Updates, s.Removes, s.Fallbacks, s.TierSwaps, s.Debris, s.Lensing, s.FrameMillis)
	header := headerStyle.Render("orrery-sim "+s.SystemID) + "  " + statStyle.Render(line)
	if s.ChaosMode {
		header += "  " + chaosStyle.Render("CHAOS")
	}
	if m.admin {
		header += "  " + adminStyle.Render("admin")
	}
	return header
}

const (
	mapWidth  = 72
	mapHeight = 18
)

// renderMap draws a top-down ASCII projection of the visual set. The marker is
// the active tier digit; stars render as '*' regardless of tier.
func (m tuiModel) renderMap() string {
	if len(m.visuals) == 0 {
		return ""
	}
	var maxR float64 = 1
	for _, v := range m.visuals {
		x := math.Abs(float64(v.Position.X()))
		z := math.Abs(float64(v.Position.Z()))
		if x > maxR {
			maxR = x
		}
		if z > maxR {
			maxR = z
		}
	}
	grid := make([][]rune, mapHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", mapWidth))
	}
	for _, v := range m.visuals {
		col := int((float64(v.Position.X())/maxR + 1) / 2 * float64(mapWidth-1))
		row := int((float64(v.Position.Z())/maxR + 1) / 2 * float64(mapHeight-1))
		if col < 0 || col >= mapWidth || row < 0 || row >= mapHeight {
			continue
		}
		marker := rune('1' + v.ActiveTier)
		if v.Type == "star" {
			marker = '*'
		}
		grid[row][col] = marker
	}
	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m tuiModel) View() string {
	parts := []string{m.renderHeader(), m.table.View()}
	if m.showMap {
		parts = append(parts, m.renderMap())
	}
	parts = append(parts, m.vp.View())
	parts = append(parts, statStyle.Render("q quit  w wrap  s autoscroll  m map"))
	return strings.Join(parts, "\n")
}
