package config

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/songbook/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including file access, theme and color names, glob patterns and
// keybindings. The configPath argument specifies the config file location
// to validate (empty string skips the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("theme", c.Theme, isKnownTheme),
		c.validateColors(),
		c.validatePatterns(),
		c.validateKeybindings(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.SongPattern == c.PlaylistPattern {
		warnings = append(warnings, ValidationWarning{
			Category: "Patterns",
			Item:     c.SongPattern,
			Message:  "song_pattern and playlist_pattern are identical, playlists will shadow songs",
		})
	}

	for _, action := range sortedKeys(c.Keybindings) {
		if action == ActionQuit {
			continue
		}
		if slices.Contains(c.Keybindings[action], "ctrl+c") {
			warnings = append(warnings, ValidationWarning{
				Category: "Keybindings",
				Item:     action,
				Message:  "ctrl+c is bound to an action other than quit",
			})
		}
	}

	return warnings
}

// validateFileAccess checks the config file and library directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("library", c.Library, isDirectory),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectory validates that a path exists and is a directory.
func isDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isKnownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func (c *Config) validateColors() error {
	var errs criterio.FieldErrorsBuilder
	for _, name := range sortedKeys(c.Colors) {
		field := fmt.Sprintf("colors.%s", name)
		if !slices.Contains(styles.ColorNames, name) {
			errs = errs.Append(field, fmt.Errorf("unknown color name (available: %v)", styles.ColorNames))
			continue
		}
		if _, err := styles.ParseHex(c.Colors[name]); err != nil {
			errs = errs.Append(field, err)
		}
	}
	return errs.ToError()
}

func (c *Config) validatePatterns() error {
	var errs criterio.FieldErrorsBuilder
	for _, p := range []struct{ field, pattern string }{
		{"song_pattern", c.SongPattern},
		{"playlist_pattern", c.PlaylistPattern},
	} {
		if !doublestar.ValidatePattern(p.pattern) {
			errs = errs.Append(p.field, fmt.Errorf("invalid glob %q", p.pattern))
		}
	}
	return errs.ToError()
}

// validateKeybindings checks that every action is known and that no key
// triggers two actions.
func (c *Config) validateKeybindings() error {
	var errs criterio.FieldErrorsBuilder
	owner := make(map[string]string)

	for _, action := range sortedKeys(c.Keybindings) {
		field := fmt.Sprintf("keybindings.%s", action)
		if !slices.Contains(Actions, action) {
			errs = errs.Append(field, fmt.Errorf("unknown action %q", action))
			continue
		}
		for _, k := range c.Keybindings[action] {
			if prev, ok := owner[k]; ok {
				errs = errs.Append(field, fmt.Errorf("key %q is already bound to %q", k, prev))
				continue
			}
			owner[k] = action
		}
	}

	return errs.ToError()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
