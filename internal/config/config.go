// Package config loads ion's configuration from the XDG config directory
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Render     RenderConfig     `mapstructure:"render"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Transcript TranscriptConfig `mapstructure:"transcript"`
	Debug      DebugConfig      `mapstructure:"debug"`
}

// RenderConfig tunes the inline renderer.
type RenderConfig struct {
	Markdown    bool   `mapstructure:"markdown"`     // render assistant messages as markdown
	PendingTail int    `mapstructure:"pending_tail"` // visible lines of an in-flight response
	SyncOutput  string `mapstructure:"sync_output"`  // "auto", "on" or "off"
}

// ThemeConfig allows customization of UI colors.
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Primary   string `mapstructure:"primary"`   // main accent (prompt, highlights)
	Secondary string `mapstructure:"secondary"` // secondary accent (headers, separators)
	Success   string `mapstructure:"success"`
	Error     string `mapstructure:"error"`
	Warning   string `mapstructure:"warning"`
	Muted     string `mapstructure:"muted"`
	Text      string `mapstructure:"text"`
	Spinner   string `mapstructure:"spinner"`
}

// TranscriptConfig configures session persistence.
type TranscriptConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // defaults to <data dir>/transcript.db
}

// DebugConfig configures the frame statistics log.
type DebugConfig struct {
	FrameLog string `mapstructure:"frame_log"` // JSONL path, empty disables
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("ION")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("render.markdown", true)
	viper.SetDefault("render.pending_tail", 6)
	viper.SetDefault("render.sync_output", "auto")
	viper.SetDefault("transcript.enabled", true)

	// Read config file (optional - won't error if missing)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Transcript.Path == "" {
		dataDir, err := GetDataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get data dir: %w", err)
		}
		cfg.Transcript.Path = filepath.Join(dataDir, "transcript.db")
	}

	return &cfg, nil
}

// SyncOutputOverride maps render.sync_output to the renderer's override:
// nil means autodetect.
func (c *RenderConfig) SyncOutputOverride() *bool {
	switch strings.ToLower(c.SyncOutput) {
	case "on", "true", "1":
		v := true
		return &v
	case "off", "false", "0":
		v := false
		return &v
	}
	return nil
}

// GetConfigDir returns the XDG config directory for ion.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "ion"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "ion"), nil
}

// GetDataDir returns the XDG data directory for ion.
// Uses $XDG_DATA_HOME if set, otherwise ~/.local/share
func GetDataDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "ion"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "ion"), nil
}
