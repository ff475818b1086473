package term

import "fmt"

// Named constants for the ANSI/DEC escape sequences the renderer emits.
// Using constants makes the intent clear and avoids scattered string literals.
const (
	// Synchronized output (DEC private mode 2026). Tells the terminal to
	// buffer writes and apply them atomically, preventing flicker. Terminals
	// that don't implement the mode ignore both sequences.
	SyncBegin = "\x1b[?2026h"
	SyncEnd   = "\x1b[?2026l"

	// EraseBelow clears from the cursor to the end of the screen (CSI J).
	// This is the only screen clear the renderer ever uses: CSI 3J would
	// destroy the user's scrollback and is never emitted.
	EraseBelow = "\x1b[J"

	// EraseLine clears the entire current line.
	EraseLine = "\x1b[2K"

	ShowCursor = "\x1b[?25h"
	HideCursor = "\x1b[?25l"
)

// CursorTo returns the sequence moving the cursor to an absolute position.
// Row and col are 0-based here; the CUP sequence itself is 1-indexed.
func CursorTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row+1, col+1)
}

// ScrollUp returns the sequence scrolling the viewport up by n rows (CSI S).
// The top n rows are pushed into the terminal's native scrollback buffer.
// Returns "" if n <= 0.
func ScrollUp(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dS", n)
}
