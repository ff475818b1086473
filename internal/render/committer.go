package render

import (
	"github.com/aircher/ion/internal/term"
)

// Committer turns tracker actions into escape sequences on a frame writer.
// It assumes the caller has already cleared the control region for this
// frame: rows freed by scrolling must be blank so that no stale region
// pixels end up in native scrollback.
type Committer struct {
	w *term.Writer
}

// NewCommitter creates a committer writing through w.
func NewCommitter(w *term.Writer) *Committer {
	return &Committer{w: w}
}

// Commit scrolls `scroll` rows into native scrollback and prints lines into
// the content area, which spans rows 0..contentRows-1.
//
// When the batch fits the content area it is printed at startRow. When it
// does not, the visible content has already been fully evicted by the
// initial scroll (the tracker caps scroll at the visible content height),
// so the leading overflow lines are cycled through the top of the blank
// screen in content-area-sized chunks, each chunk scrolled into scrollback
// before the next, preserving line order. The final contentRows lines land
// on screen.
//
// Returns the total number of rows pushed into scrollback.
func (c *Committer) Commit(lines []string, scroll, startRow, contentRows int) int {
	if contentRows < 1 {
		contentRows = 1
	}
	c.w.WriteString(term.ScrollUp(scroll))
	total := scroll

	skip := len(lines) - contentRows
	if skip > 0 {
		head := lines[:skip]
		for len(head) > 0 {
			n := len(head)
			if n > contentRows {
				n = contentRows
			}
			c.printAt(0, head[:n])
			c.w.WriteString(term.ScrollUp(n))
			total += n
			head = head[n:]
		}
		c.printAt(0, lines[skip:])
		return total
	}

	if startRow < 0 {
		startRow = 0
	}
	c.printAt(startRow, lines)
	return total
}

// printAt writes lines at consecutive rows starting at row, erasing each
// target row first so shorter lines don't leave stale cells behind.
func (c *Committer) printAt(row int, lines []string) {
	for i, line := range lines {
		c.w.WriteString(term.CursorTo(row+i, 0))
		c.w.WriteString(term.EraseLine)
		c.w.WriteString(line)
	}
}
