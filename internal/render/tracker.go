package render

// Mode is the rendering strategy currently in effect. A session starts in
// row tracking and may transition to scroll mode exactly once; there is no
// way back, since content committed to native scrollback cannot be recalled.
type Mode int

const (
	// ModeRowTracking places content at absolute rows while everything
	// still fits above the control region.
	ModeRowTracking Mode = iota
	// ModeScroll pushes committed content into the terminal's native
	// scrollback and keeps the control region pinned at the bottom.
	ModeScroll
)

func (m Mode) String() string {
	if m == ModeScroll {
		return "scroll"
	}
	return "row-tracking"
}

// ActionKind classifies what a tracker advance decided.
type ActionKind int

const (
	// ActionPrintInPlace prints at the anchor; nothing enters scrollback.
	ActionPrintInPlace ActionKind = iota
	// ActionTransition is the one-time switch to scroll mode.
	ActionTransition
	// ActionScrollAppend is a normal scroll-mode append.
	ActionScrollAppend
)

// Action tells the committer how to place a batch of new lines.
//
// Scroll is capped at the number of rows of visible content, so a single
// scroll never pushes blank rows into scrollback. When the new batch itself
// exceeds the content area the committer cycles the remainder through the
// screen in chunks; StartRow is only meaningful when the batch fits.
type Action struct {
	Kind     ActionKind
	StartRow int
	Scroll   int
}

// Tracker owns the placement arithmetic. The anchor is the 0-based screen
// row where the next content line goes, which equals the number of content
// rows currently on screen. Only valid in row-tracking mode.
type Tracker struct {
	mode   Mode
	anchor int
	rows   int
}

// NewTracker creates a tracker for a terminal with the given row count.
func NewTracker(rows int) *Tracker {
	return &Tracker{rows: rows}
}

func (t *Tracker) Mode() Mode  { return t.mode }
func (t *Tracker) Anchor() int { return t.anchor }
func (t *Tracker) Rows() int   { return t.rows }

// SetRows records a new terminal height. Whether the new geometry still
// fits is decided by the next Advance.
func (t *Tracker) SetRows(rows int) {
	if rows > 0 {
		t.rows = rows
	}
}

// Reset rewinds the anchor to the top of the screen ahead of a full
// reprint. The mode is kept: scroll mode is permanent.
func (t *Tracker) Reset(rows int) {
	t.SetRows(rows)
	t.anchor = 0
}

// RegionRow returns the row where a control region of the given height
// belongs under the current mode.
func (t *Tracker) RegionRow(regionHeight int) int {
	if t.mode == ModeScroll {
		return t.rows - regionHeight
	}
	return t.anchor
}

// Advance accounts for newLines content lines about to be printed with a
// control region of regionHeight rows below them, and returns the placement
// action. Crossing the capacity boundary flips the tracker to scroll mode
// permanently.
func (t *Tracker) Advance(newLines, regionHeight int) Action {
	contentRows := t.rows - regionHeight
	if t.mode == ModeScroll {
		scroll := newLines
		if scroll > contentRows {
			scroll = contentRows
		}
		return Action{
			Kind:     ActionScrollAppend,
			StartRow: contentRows - newLines,
			Scroll:   scroll,
		}
	}

	if t.anchor+newLines+regionHeight <= t.rows {
		a := Action{Kind: ActionPrintInPlace, StartRow: t.anchor}
		t.anchor += newLines
		return a
	}

	overflow := t.anchor + newLines + regionHeight - t.rows
	scroll := overflow
	if scroll > t.anchor {
		scroll = t.anchor
	}
	t.mode = ModeScroll
	return Action{
		Kind:     ActionTransition,
		StartRow: t.anchor - overflow,
		Scroll:   scroll,
	}
}
