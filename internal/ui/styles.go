package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the renderer
type Theme struct {
	Primary   lipgloss.Color // main accent color (user prompt, highlights)
	Secondary lipgloss.Color // secondary accent (headers, separators)

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Muted   lipgloss.Color // dimmed/secondary text
	Text    lipgloss.Color // primary text

	Spinner lipgloss.Color
	Border  lipgloss.Color
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#b8bb26"), // gruvbox green
		Secondary: lipgloss.Color("#83a598"), // gruvbox aqua
		Success:   lipgloss.Color("#b8bb26"),
		Error:     lipgloss.Color("#fb4934"), // gruvbox red
		Warning:   lipgloss.Color("#fabd2f"), // gruvbox yellow
		Muted:     lipgloss.Color("#928374"), // gruvbox gray
		Text:      lipgloss.Color("#ebdbb2"), // gruvbox foreground
		Spinner:   lipgloss.Color("#d3869b"), // gruvbox purple
		Border:    lipgloss.Color("#83a598"),
	}
}

// ThemeConfig mirrors config.ThemeConfig for applying overrides
type ThemeConfig struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Muted     string
	Text      string
	Spinner   string
}

// ThemeFromConfig creates a theme with config overrides applied
func ThemeFromConfig(cfg ThemeConfig) *Theme {
	theme := DefaultTheme()

	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Secondary != "" {
		theme.Secondary = lipgloss.Color(cfg.Secondary)
		theme.Border = lipgloss.Color(cfg.Secondary) // border follows secondary
	}
	if cfg.Success != "" {
		theme.Success = lipgloss.Color(cfg.Success)
	}
	if cfg.Error != "" {
		theme.Error = lipgloss.Color(cfg.Error)
	}
	if cfg.Warning != "" {
		theme.Warning = lipgloss.Color(cfg.Warning)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Text != "" {
		theme.Text = lipgloss.Color(cfg.Text)
	}
	if cfg.Spinner != "" {
		theme.Spinner = lipgloss.Color(cfg.Spinner)
	}

	return theme
}

// currentTheme is the active theme instance
var currentTheme = DefaultTheme()

// GetTheme returns the current active theme
func GetTheme() *Theme {
	return currentTheme
}

// SetTheme sets the current active theme
func SetTheme(t *Theme) {
	currentTheme = t
}

// InitTheme initializes the theme from config
func InitTheme(cfg ThemeConfig) {
	SetTheme(ThemeFromConfig(cfg))
}

// Styles returns styled text helpers bound to a renderer
type Styles struct {
	renderer *lipgloss.Renderer
	theme    *Theme

	Prompt  lipgloss.Style // "> " marker before user messages
	Input   lipgloss.Style // echoed user input text
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Status  lipgloss.Style // status line in the control region
	Error   lipgloss.Style
	Warning lipgloss.Style
	Spinner lipgloss.Style
	Bold    lipgloss.Style
}

// NewStyles creates a new Styles instance for the given output
func NewStyles(output io.Writer) *Styles {
	return NewStylesWithTheme(output, currentTheme)
}

// NewStylesWithTheme creates styles with a specific theme
func NewStylesWithTheme(output io.Writer, theme *Theme) *Styles {
	r := lipgloss.NewRenderer(output)

	return &Styles{
		renderer: r,
		theme:    theme,

		Prompt: r.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Input: r.NewStyle().
			Foreground(theme.Text),

		Title: r.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Status: r.NewStyle().
			Foreground(theme.Muted),

		Error: r.NewStyle().
			Foreground(theme.Error),

		Warning: r.NewStyle().
			Foreground(theme.Warning),

		Spinner: r.NewStyle().
			Foreground(theme.Spinner),

		Bold: r.NewStyle().
			Bold(true),
	}
}

// DefaultStyles returns styles for stdout
func DefaultStyles() *Styles {
	return NewStyles(os.Stdout)
}

// Theme returns the theme used by these styles
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Truncate shortens a string to maxLen with ellipsis
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// GlamourStyle returns a glamour StyleConfig based on the current theme
func GlamourStyle() ansi.StyleConfig {
	return GlamourStyleFromTheme(currentTheme)
}

// GlamourStyleFromTheme creates a glamour StyleConfig from the given theme
func GlamourStyleFromTheme(theme *Theme) ansi.StyleConfig {
	primary := string(theme.Primary)
	secondary := string(theme.Secondary)
	success := string(theme.Success)
	warning := string(theme.Warning)
	muted := string(theme.Muted)
	text := string(theme.Text)

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: &text,
			},
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:  &warning,
				Italic: boolPtr(true),
			},
			Indent: uintPtr(2),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: &text,
				},
			},
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockPrefix: "\n",
				Color:       &secondary,
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "# ",
			},
		},
		H2: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "## ",
			},
		},
		H3: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "### ",
			},
		},
		Strikethrough: ansi.StylePrimitive{
			CrossedOut: boolPtr(true),
		},
		Emph: ansi.StylePrimitive{
			Color:  &warning,
			Italic: boolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Bold:  boolPtr(true),
			Color: &primary,
		},
		HorizontalRule: ansi.StylePrimitive{
			Color:  &muted,
			Format: "\n--------\n",
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
			Color:       &secondary,
		},
		Link: ansi.StylePrimitive{
			Color:     &secondary,
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: &primary,
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: &primary,
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: &text,
				},
				Margin: uintPtr(2),
			},
			Chroma: &ansi.Chroma{
				Text: ansi.StylePrimitive{
					Color: &text,
				},
				Comment: ansi.StylePrimitive{
					Color: &muted,
				},
				Keyword: ansi.StylePrimitive{
					Color: &primary,
				},
				KeywordType: ansi.StylePrimitive{
					Color: &secondary,
				},
				NameFunction: ansi.StylePrimitive{
					Color: &success,
				},
				NameBuiltin: ansi.StylePrimitive{
					Color: &secondary,
				},
				LiteralNumber: ansi.StylePrimitive{
					Color: &secondary,
				},
				LiteralString: ansi.StylePrimitive{
					Color: &warning,
				},
				LiteralStringEscape: ansi.StylePrimitive{
					Color: &primary,
				},
				Background: ansi.StylePrimitive{},
			},
		},
		Table: ansi.StyleTable{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{},
			},
			CenterSeparator: stringPtr("┼"),
			ColumnSeparator: stringPtr("│"),
			RowSeparator:    stringPtr("─"),
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func uintPtr(u uint) *uint {
	return &u
}

func stringPtr(s string) *string {
	return &s
}
