// Package config handles configuration loading and validation for songbook.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/songbook/internal/core/styles"
)

// ErrConfigExists is returned by Write when the target file already exists.
var ErrConfigExists = errors.New("config file already exists")

// Built-in action names for keybindings.
const (
	ActionUp            = "up"
	ActionDown          = "down"
	ActionNext          = "next"
	ActionBack          = "back"
	ActionPageUp        = "page_up"
	ActionPageDown      = "page_down"
	ActionColSizeInc    = "col_size_inc"
	ActionColSizeDec    = "col_size_dec"
	ActionTransposeUp   = "transpose_up"
	ActionTransposeDown = "transpose_down"
	ActionSearch        = "search"
	ActionReload        = "reload"
	ActionQuit          = "quit"
)

// Actions lists every action a keybinding may target.
var Actions = []string{
	ActionUp, ActionDown, ActionNext, ActionBack,
	ActionPageUp, ActionPageDown,
	ActionColSizeInc, ActionColSizeDec,
	ActionTransposeUp, ActionTransposeDown,
	ActionSearch, ActionReload, ActionQuit,
}

// DefaultKeybindings returns the built-in action to keys mapping.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionUp:            {"up", "k"},
		ActionDown:          {"down", "j"},
		ActionNext:          {"right", "enter", "l"},
		ActionBack:          {"left", "backspace", "h"},
		ActionPageUp:        {"pgup"},
		ActionPageDown:      {"pgdown"},
		ActionColSizeInc:    {"end"},
		ActionColSizeDec:    {"home"},
		ActionTransposeUp:   {"+", "="},
		ActionTransposeDown: {"-"},
		ActionSearch:        {"/"},
		ActionReload:        {"R"},
		ActionQuit:          {"ctrl+c"},
	}
}

// Config holds the application configuration.
type Config struct {
	// Library is the directory scanned for songs and playlists.
	Library string `yaml:"library"`
	Theme   string `yaml:"theme"`
	// AutoSelectSong opens the highlighted song while moving through the list.
	AutoSelectSong bool `yaml:"auto_select_song"`
	// WatchLibrary reloads the browser when files under Library change.
	WatchLibrary bool `yaml:"watch_library"`
	// ExtraColumnSize is the slack added to the median line width when wrapping.
	ExtraColumnSize int    `yaml:"extra_column_size"`
	ColumnPadding   int    `yaml:"column_padding"`
	SongPattern     string `yaml:"song_pattern"`
	PlaylistPattern string `yaml:"playlist_pattern"`
	// Colors overrides song style colors by name (title, comment, chord, lyrics, selected).
	Colors map[string]string `yaml:"colors,omitempty"`
	// Keybindings maps an action to the keys that trigger it.
	Keybindings map[string][]string `yaml:"keybindings,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Library:         ".",
		Theme:           styles.DefaultTheme,
		ExtraColumnSize: 15,
		ColumnPadding:   2,
		SongPattern:     "**/*.txt",
		PlaylistPattern: "**/*.lst",
		Keybindings:     DefaultKeybindings(),
	}
}

// Load reads configuration from the given path. A missing file yields the
// defaults. A non-empty library overrides the configured library directory.
func Load(configPath, library string) (*Config, error) {
	cfg := DefaultConfig()
	user := map[string][]string{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			cfg.Keybindings = nil
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
			if cfg.Keybindings != nil {
				user = cfg.Keybindings
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if library != "" {
		cfg.Library = library
	}

	// User keybindings replace the defaults of the same action.
	cfg.Keybindings = mergeKeybindings(DefaultKeybindings(), user)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Library == "" {
		c.Library = defaults.Library
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.SongPattern == "" {
		c.SongPattern = defaults.SongPattern
	}
	if c.PlaylistPattern == "" {
		c.PlaylistPattern = defaults.PlaylistPattern
	}
	c.Library = expandHome(c.Library)
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same action.
func mergeKeybindings(defaults, user map[string][]string) map[string][]string {
	result := make(map[string][]string, len(defaults)+len(user))
	for action, keys := range defaults {
		result[action] = keys
	}
	for action, keys := range user {
		result[action] = keys
	}
	return result
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.Library == "" {
		return fmt.Errorf("library cannot be empty")
	}

	if c.ExtraColumnSize < 0 {
		return fmt.Errorf("extra_column_size must not be negative")
	}

	if c.ColumnPadding < 0 {
		return fmt.Errorf("column_padding must not be negative")
	}

	for action, keys := range c.Keybindings {
		if len(keys) == 0 {
			return fmt.Errorf("keybinding %q must have at least one key", action)
		}
	}

	return nil
}

// Write marshals cfg to path, creating parent directories. It refuses to
// replace an existing file.
func Write(path string, cfg Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	return Write(path, DefaultConfig())
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
