package render

import (
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/aircher/ion/internal/ui"
	"github.com/aircher/ion/internal/wrap"
)

// DefaultPendingTail is how many trailing lines of an in-flight response
// stay visible in the control region while it streams.
const DefaultPendingTail = 6

// Region models the control region: the reserved rows at the bottom of the
// managed area holding the streaming tail, an optional status line and the
// input prompt. It renders to plain styled lines; placement is the render
// loop's job.
type Region struct {
	styles *ui.Styles
	spin   *ui.SpinnerFrames

	pendingTail []string
	status      string
	input       string
	busy        bool

	maxTail int
}

// NewRegion creates a control region using the given styles.
func NewRegion(styles *ui.Styles, maxTail int) *Region {
	if maxTail <= 0 {
		maxTail = DefaultPendingTail
	}
	return &Region{
		styles:  styles,
		spin:    ui.NewSpinnerFrames(),
		maxTail: maxTail,
	}
}

// SetPending replaces the streaming tail, keeping at most maxTail trailing
// lines. The full content is committed elsewhere on finalize.
func (g *Region) SetPending(lines []string) {
	if len(lines) > g.maxTail {
		lines = lines[len(lines)-g.maxTail:]
	}
	g.pendingTail = lines
}

// ClearPending drops the streaming tail.
func (g *Region) ClearPending() {
	g.pendingTail = nil
}

func (g *Region) SetStatus(s string) { g.status = s }
func (g *Region) SetInput(s string)  { g.input = s }
func (g *Region) SetBusy(b bool)     { g.busy = b }
func (g *Region) Busy() bool         { return g.busy }

// TickSpinner advances the spinner animation.
func (g *Region) TickSpinner() {
	g.spin.Advance()
}

// SpinnerInterval returns how often TickSpinner should be called while busy.
func (g *Region) SpinnerInterval() time.Duration {
	return g.spin.Interval()
}

// Lines renders the region at the given width, truncating each line to fit
// and capping the result at maxHeight rows (oldest rows dropped first).
func (g *Region) Lines(width, maxHeight int) []string {
	out := make([]string, 0, len(g.pendingTail)+2)
	for _, line := range g.pendingTail {
		out = append(out, g.styles.Muted.Render("│ ")+line)
	}
	if g.busy || g.status != "" {
		line := ""
		if g.busy {
			line = g.styles.Spinner.Render(g.spin.Current()) + " "
		}
		if g.status != "" {
			line += g.styles.Status.Render(g.status)
		}
		out = append(out, line)
	}
	out = append(out, g.styles.Prompt.Render("> ")+g.input)

	for i, line := range out {
		if wrap.Width(line) > width {
			out[i] = ansi.Truncate(line, width, "…")
		}
	}
	if maxHeight > 0 && len(out) > maxHeight {
		out = out[len(out)-maxHeight:]
	}
	return out
}

// InputCol returns the column where the text cursor belongs on the input
// line, clamped to the terminal width.
func (g *Region) InputCol(width int) int {
	col := wrap.Width("> " + g.input)
	if col > width-1 {
		col = width - 1
	}
	return col
}
