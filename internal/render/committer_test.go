package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aircher/ion/internal/term"
)

func commitToString(t *testing.T, lines []string, scroll, startRow, contentRows int) (string, int) {
	t.Helper()
	var buf bytes.Buffer
	w := term.NewWriter(&buf, false)
	c := NewCommitter(w)
	w.BeginFrame()
	total := c.Commit(lines, scroll, startRow, contentRows)
	if err := w.EndFrame(); err != nil {
		t.Fatalf("end frame: %v", err)
	}
	return buf.String(), total
}

func TestCommitInPlace(t *testing.T) {
	got, total := commitToString(t, []string{"a", "b"}, 0, 5, 10)
	want := term.CursorTo(5, 0) + term.EraseLine + "a" +
		term.CursorTo(6, 0) + term.EraseLine + "b"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if total != 0 {
		t.Fatalf("total scrolled = %d, want 0", total)
	}
}

func TestCommitScrollThenPrint(t *testing.T) {
	got, total := commitToString(t, []string{"x"}, 3, 7, 12)
	want := term.ScrollUp(3) +
		term.CursorTo(7, 0) + term.EraseLine + "x"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if total != 3 {
		t.Fatalf("total scrolled = %d, want 3", total)
	}
}

func TestCommitOversizeBatchPreservesOrder(t *testing.T) {
	// Five lines through a three-row content area: the two overflow lines
	// cycle through the top of the screen and into scrollback before the
	// tail is printed, so scrollback reads top to bottom in message order.
	lines := []string{"l1", "l2", "l3", "l4", "l5"}
	got, total := commitToString(t, lines, 3, -2, 3)

	want := term.ScrollUp(3) +
		term.CursorTo(0, 0) + term.EraseLine + "l1" +
		term.CursorTo(1, 0) + term.EraseLine + "l2" +
		term.ScrollUp(2) +
		term.CursorTo(0, 0) + term.EraseLine + "l3" +
		term.CursorTo(1, 0) + term.EraseLine + "l4" +
		term.CursorTo(2, 0) + term.EraseLine + "l5"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if total != 5 {
		t.Fatalf("total scrolled = %d, want 5", total)
	}

	last := -1
	for _, l := range lines {
		idx := strings.Index(got, l)
		if idx <= last {
			t.Fatalf("line %s out of order", l)
		}
		last = idx
	}
}

func TestCommitOversizeMultipleChunks(t *testing.T) {
	// Seven overflow lines and a two-row content area force several
	// chunk cycles.
	lines := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	got, total := commitToString(t, lines, 2, 0, 2)
	if total != 2+7 {
		t.Fatalf("total scrolled = %d, want 9", total)
	}
	last := -1
	for _, l := range lines {
		idx := strings.Index(got, l)
		if idx <= last {
			t.Fatalf("line %s out of order in %q", l, got)
		}
		last = idx
	}
}

func TestCommitNegativeStartRowClamped(t *testing.T) {
	got, _ := commitToString(t, []string{"z"}, 0, -4, 10)
	if !strings.HasPrefix(got, term.CursorTo(0, 0)) {
		t.Fatalf("expected print clamped to row 0, got %q", got)
	}
}

func TestCommitNoLines(t *testing.T) {
	got, total := commitToString(t, nil, 2, 0, 10)
	if got != term.ScrollUp(2) {
		t.Fatalf("got %q", got)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
}
