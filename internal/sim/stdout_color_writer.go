// ColorStdoutWriter prints human-friendly, colorized frame stats to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"orrery-sim/internal/config"
	"orrery-sim/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// eventPalette assigns a color per scene event type.
var eventPalette = map[string]string{
	telemetry.SceneEventAdd:       colorGreen,
	telemetry.SceneEventRemove:    colorGray,
	telemetry.SceneEventDestroy:   colorRed,
	telemetry.SceneEventFallback:  colorYellow,
	telemetry.SceneEventChaosFlip: colorMagenta,
}

// ColorStdoutWriter prints frame stats and events using ANSI colors.
type ColorStdoutWriter struct {
	cfg   *config.SimulationConfig
	out   io.Writer
	once  sync.Once
	width int
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.SimulationConfig) *ColorStdoutWriter {
	w := &ColorStdoutWriter{cfg: cfg, out: os.Stdout, width: 120}
	if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
		w.width = tw
	}
	return w
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Simulation Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Systems:\t%d\n", len(w.cfg.Systems))
	total := 0
	for _, sys := range w.cfg.Systems {
		total += len(sys.Bodies)
	}
	fmt.Fprintf(tw, "Bodies:\t%d\n", total)
	fmt.Fprintf(tw, "LOD Distance Scale:\t%.2f\n", w.cfg.LODDistanceScale)
	fmt.Fprintf(tw, "Destruction Enabled:\t%v\n", w.cfg.Destruction.Enabled)
	fmt.Fprintf(tw, "Camera Distance:\t%.0f\n", w.cfg.Camera.Distance)
	tw.Flush()
	fmt.Fprintln(w.out)
}

// WriteStats prints one colorized stats line.
func (w *ColorStdoutWriter) WriteStats(row telemetry.FrameStatsRow) error {
	w.once.Do(w.printOverview)

	chaos := ""
	if row.ChaosMode {
		chaos = fmt.Sprintf(" %schaos%s", colorRed, colorReset)
	}
	line := fmt.Sprintf("%s[%s]%s %ssystem=%s%s %svisuals=%d%s %sadds=%d%s %supdates=%d%s %sremoves=%d%s %sfallbacks=%d%s %sswaps=%d%s %sdebris=%d%s %slensing=%d%s %sframe=%.2fms%s%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, row.SystemID, colorReset,
		colorGreen, row.Visuals, colorReset,
		colorCyan, row.Adds, colorReset,
		colorGray, row.Updates, colorReset,
		colorYellow, row.Removes, colorReset,
		colorRed, row.Fallbacks, colorReset,
		colorMagenta, row.TierSwaps, colorReset,
		colorYellow, row.Debris, colorReset,
		colorMagenta, row.Lensing, colorReset,
		colorGray, row.FrameMillis, colorReset,
		chaos,
	)
	fmt.Fprintln(w.out, line)
	return nil
}

// WriteEvent prints one colorized scene event line.
func (w *ColorStdoutWriter) WriteEvent(e telemetry.SceneEventRow) error {
	w.once.Do(w.printOverview)

	c, ok := eventPalette[e.EventType]
	if !ok {
		c = colorBlue
	}
	line := fmt.Sprintf("%s[%s]%s %s%-10s%s %s %s %s%s%s",
		colorGray, e.Timestamp.Format(time.RFC3339), colorReset,
		c, e.EventType, colorReset,
		e.BodyName, e.BodyID,
		colorGray, e.Detail, colorReset,
	)
	fmt.Fprintln(w.out, line)
	return nil
}
