package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aircher/ion/internal/config"
	"github.com/aircher/ion/internal/ui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ion",
	Short: "Inline chat renderer for the terminal",
	Long: `ion renders streaming chat sessions inline: finalized messages become
ordinary terminal output you can scroll back through and copy, while the
in-flight response, status and prompt live in a small region at the bottom.

Examples:
  ion chat                   # start a new session
  ion chat --resume 3        # continue session 3
  ion sessions list          # list stored sessions`,
	Version:           Version,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies the theme.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	ui.InitTheme(ui.ThemeConfig{
		Primary:   cfg.Theme.Primary,
		Secondary: cfg.Theme.Secondary,
		Success:   cfg.Theme.Success,
		Error:     cfg.Theme.Error,
		Warning:   cfg.Theme.Warning,
		Muted:     cfg.Theme.Muted,
		Text:      cfg.Theme.Text,
		Spinner:   cfg.Theme.Spinner,
	})
	return cfg, nil
}
