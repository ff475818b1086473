// Package wrap converts logical message content into width-wrapped visual
// lines. Width is measured in terminal cells, not bytes or runes: wide (CJK)
// runes count as two cells, combining marks and ANSI escape sequences as
// zero. Wrapping is deterministic, so a resize-driven full reprint produces
// byte-identical output to a cold-start render at the same width.
package wrap

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	reflowwrap "github.com/muesli/reflow/wrap"
)

// VisualLine is a single already-wrapped line of output, tagged with the
// message it came from and its position within that message's wrap.
// Immutable once created at a given width; the whole set is discarded and
// regenerated when the width changes.
type VisualLine struct {
	MessageID int64
	Seq       int
	Text      string
}

// Lines wraps content to the given width and returns plain strings.
// Word wrapping is attempted first; tokens wider than the terminal are then
// force-broken at cell boundaries, since rendering must always produce
// output that fits.
func Lines(content string, width int) []string {
	if width < 1 {
		width = 1
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return []string{""}
	}

	wrapped := wordwrap.String(content, width)
	wrapped = reflowwrap.String(wrapped, width)
	return strings.Split(wrapped, "\n")
}

// Width returns the display width of s in terminal cells, ignoring ANSI
// escape sequences.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// CountLines reports how many terminal rows rendered occupies at the given
// width, accounting for hard newlines and cell-width line wrapping.
func CountLines(rendered string, width int) int {
	if rendered == "" {
		return 0
	}
	total := 0
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		if i == len(lines)-1 && line == "" {
			continue
		}
		w := ansi.StringWidth(line)
		switch {
		case w == 0:
			total++
		case width > 0:
			total += (w + width - 1) / width
		default:
			total++
		}
	}
	return total
}
