package term

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Default dimensions used when the terminal size cannot be determined
// (output redirected, exotic TTY). Rendering must still produce output,
// so size queries never fail outward.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// Size holds the last known terminal dimensions.
type Size struct {
	Cols int
	Rows int
}

// Capabilities describes what was detected about the output terminal at
// startup. All fields degrade gracefully: a wrong guess means visual
// artifacts at worst, never a crash.
type Capabilities struct {
	Size       Size
	SyncOutput bool
	Profile    termenv.Profile
	IsTTY      bool
}

// Probe queries the terminal attached to f. It never returns an error:
// when the size query fails it falls back to DefaultCols x DefaultRows.
func Probe(f *os.File) Capabilities {
	caps := Capabilities{
		Size:  Size{Cols: DefaultCols, Rows: DefaultRows},
		IsTTY: term.IsTerminal(int(f.Fd())),
	}

	if caps.IsTTY {
		if cols, rows, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 && rows > 0 {
			caps.Size = Size{Cols: cols, Rows: rows}
		}
	}

	out := termenv.NewOutput(f)
	caps.Profile = out.ColorProfile()
	caps.SyncOutput = detectSyncOutput()

	return caps
}

// QuerySize re-reads the terminal size, e.g. after SIGWINCH. Falls back to
// the previous size when the query fails.
func QuerySize(f *os.File, prev Size) Size {
	if cols, rows, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 && rows > 0 {
		return Size{Cols: cols, Rows: rows}
	}
	return prev
}

// detectSyncOutput guesses whether the terminal implements synchronized
// output (DEC 2026) from the environment. There is no reliable in-band query
// that works everywhere without blocking on a response, and emitting the
// sequences to a terminal that ignores them is harmless, so the heuristic
// errs toward true on anything modern.
func detectSyncOutput() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "ghostty", "rio", "vscode":
		return true
	case "Apple_Terminal":
		return false
	}
	termName := os.Getenv("TERM")
	switch {
	case termName == "dumb", termName == "":
		return false
	case strings.HasPrefix(termName, "alacritty"),
		strings.HasPrefix(termName, "foot"),
		strings.HasPrefix(termName, "xterm-kitty"),
		strings.HasPrefix(termName, "xterm-ghostty"),
		strings.HasPrefix(termName, "wezterm"):
		return true
	}
	// tmux >= 3.4 passes 2026 through to the outer terminal.
	if os.Getenv("TMUX") != "" {
		return true
	}
	return false
}
