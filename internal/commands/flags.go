package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/songbook/internal/core/catalog"
	"github.com/colonyops/songbook/internal/core/config"
	"github.com/colonyops/songbook/pkg/logutils"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Library    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	catalog *catalog.Catalog
}

// Catalog scans the configured library on first use and returns the same
// catalog afterwards.
func (f *Flags) Catalog() (*catalog.Catalog, error) {
	if f.catalog != nil {
		return f.catalog, nil
	}
	if f.Config == nil {
		return nil, fmt.Errorf("config not loaded")
	}

	cat, err := catalog.Open(f.Config.Library, catalog.Options{
		SongPattern:     f.Config.SongPattern,
		PlaylistPattern: f.Config.PlaylistPattern,
	}, logutils.Component(log.Logger, "catalog"))
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}

	f.catalog = cat
	return cat, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "songbook", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/songbook/songbook.log
// On Linux: $XDG_STATE_HOME/songbook/songbook.log (defaults to ~/.local/state/songbook/songbook.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "songbook", "songbook.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "songbook", "songbook.log")
	}

	return filepath.Join(home, ".local", "state", "songbook", "songbook.log")
}
