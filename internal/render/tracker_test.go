package render

import "testing"

func TestTrackerInPlaceWhileFitting(t *testing.T) {
	tr := NewTracker(15)
	act := tr.Advance(10, 3)
	if act.Kind != ActionPrintInPlace || act.StartRow != 0 || act.Scroll != 0 {
		t.Fatalf("unexpected action %+v", act)
	}
	if tr.Anchor() != 10 {
		t.Fatalf("anchor = %d, want 10", tr.Anchor())
	}
	if tr.Mode() != ModeRowTracking {
		t.Fatalf("mode = %v", tr.Mode())
	}
}

func TestTrackerTransitionArithmetic(t *testing.T) {
	// anchor 10, 5 new lines, region 3, 15 rows: three rows must scroll
	// into scrollback and the new lines start at row 7.
	tr := NewTracker(15)
	tr.Advance(10, 3)

	act := tr.Advance(5, 3)
	if act.Kind != ActionTransition {
		t.Fatalf("kind = %v, want transition", act.Kind)
	}
	if act.Scroll != 3 {
		t.Fatalf("scroll = %d, want 3", act.Scroll)
	}
	if act.StartRow != 7 {
		t.Fatalf("start row = %d, want 7", act.StartRow)
	}
	if tr.Mode() != ModeScroll {
		t.Fatal("expected scroll mode after transition")
	}
}

func TestTrackerExactFitDoesNotTransition(t *testing.T) {
	tr := NewTracker(15)
	act := tr.Advance(12, 3) // 12 + 3 == 15, boundary included
	if act.Kind != ActionPrintInPlace {
		t.Fatalf("kind = %v, want in-place", act.Kind)
	}
	if tr.Anchor() != 12 {
		t.Fatalf("anchor = %d, want 12", tr.Anchor())
	}
}

func TestTrackerSingleTransitionOverManyAppends(t *testing.T) {
	// 24 rows, 3-row region: 21 content rows. One-line appends fit
	// through the 21st; the 22nd transitions; the rest scroll.
	tr := NewTracker(24)
	transitions := 0
	for i := 0; i < 30; i++ {
		act := tr.Advance(1, 3)
		switch {
		case i < 21:
			if act.Kind != ActionPrintInPlace {
				t.Fatalf("append %d: kind = %v, want in-place", i, act.Kind)
			}
		case i == 21:
			if act.Kind != ActionTransition || act.Scroll != 1 {
				t.Fatalf("append %d: %+v, want transition scrolling 1", i, act)
			}
		default:
			if act.Kind != ActionScrollAppend || act.Scroll != 1 {
				t.Fatalf("append %d: %+v, want scroll append of 1", i, act)
			}
		}
		if act.Kind == ActionTransition {
			transitions++
		}
	}
	if transitions != 1 {
		t.Fatalf("transitions = %d, want exactly 1", transitions)
	}
}

func TestTrackerScrollNeverExceedsVisibleContent(t *testing.T) {
	// A batch far larger than the content area: the initial scroll is
	// capped at the rows actually holding content, the committer cycles
	// the rest through the screen.
	tr := NewTracker(15)
	tr.Advance(4, 3)

	act := tr.Advance(40, 3)
	if act.Kind != ActionTransition {
		t.Fatalf("kind = %v, want transition", act.Kind)
	}
	if act.Scroll != 4 {
		t.Fatalf("scroll = %d, want 4 (the visible content)", act.Scroll)
	}
}

func TestTrackerScrollModeCapsAtContentArea(t *testing.T) {
	tr := NewTracker(15)
	tr.Advance(12, 3)
	tr.Advance(5, 3) // transition

	act := tr.Advance(40, 3)
	if act.Kind != ActionScrollAppend {
		t.Fatalf("kind = %v, want scroll append", act.Kind)
	}
	if act.Scroll != 12 {
		t.Fatalf("scroll = %d, want 12 (content area)", act.Scroll)
	}
}

func TestTrackerRegionRow(t *testing.T) {
	tr := NewTracker(20)
	tr.Advance(5, 2)
	if got := tr.RegionRow(2); got != 5 {
		t.Fatalf("row-tracking region row = %d, want anchor 5", got)
	}
	tr.Advance(40, 2) // force transition
	if got := tr.RegionRow(2); got != 18 {
		t.Fatalf("scroll-mode region row = %d, want 18", got)
	}
}

func TestTrackerResetKeepsScrollMode(t *testing.T) {
	tr := NewTracker(10)
	tr.Advance(20, 1) // transition
	tr.Reset(10)
	if tr.Mode() != ModeScroll {
		t.Fatal("reset must not leave scroll mode")
	}
	if tr.Anchor() != 0 {
		t.Fatalf("anchor = %d after reset", tr.Anchor())
	}
}

func TestTrackerHeightShrinkForcesTransition(t *testing.T) {
	tr := NewTracker(12)
	tr.Advance(8, 1)
	tr.SetRows(6)

	act := tr.Advance(0, 1)
	if act.Kind != ActionTransition {
		t.Fatalf("kind = %v, want transition", act.Kind)
	}
	if act.Scroll != 3 { // 8 + 0 + 1 - 6
		t.Fatalf("scroll = %d, want 3", act.Scroll)
	}
}
