package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/songbook/internal/core/config"
)

// actionHelp is the help text shown for each action.
var actionHelp = map[string]string{
	config.ActionUp:            "up",
	config.ActionDown:          "down",
	config.ActionNext:          "open",
	config.ActionBack:          "back",
	config.ActionPageUp:        "page up",
	config.ActionPageDown:      "page down",
	config.ActionColSizeInc:    "wider",
	config.ActionColSizeDec:    "narrower",
	config.ActionTransposeUp:   "key up",
	config.ActionTransposeDown: "key down",
	config.ActionSearch:        "search",
	config.ActionReload:        "reload",
	config.ActionQuit:          "quit",
}

// KeyMap holds the bindings of the song browser. It implements help.KeyMap.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Next          key.Binding
	Back          key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	ColSizeInc    key.Binding
	ColSizeDec    key.Binding
	TransposeUp   key.Binding
	TransposeDown key.Binding
	Search        key.Binding
	Reload        key.Binding
	Quit          key.Binding
}

// NewKeyMap builds a KeyMap from an action to keys mapping. Actions missing
// from bindings fall back to the defaults.
func NewKeyMap(bindings map[string][]string) KeyMap {
	defaults := config.DefaultKeybindings()
	binding := func(action string) key.Binding {
		keys, ok := bindings[action]
		if !ok || len(keys) == 0 {
			keys = defaults[action]
		}
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], actionHelp[action]),
		)
	}

	return KeyMap{
		Up:            binding(config.ActionUp),
		Down:          binding(config.ActionDown),
		Next:          binding(config.ActionNext),
		Back:          binding(config.ActionBack),
		PageUp:        binding(config.ActionPageUp),
		PageDown:      binding(config.ActionPageDown),
		ColSizeInc:    binding(config.ActionColSizeInc),
		ColSizeDec:    binding(config.ActionColSizeDec),
		TransposeUp:   binding(config.ActionTransposeUp),
		TransposeDown: binding(config.ActionTransposeDown),
		Search:        binding(config.ActionSearch),
		Reload:        binding(config.ActionReload),
		Quit:          binding(config.ActionQuit),
	}
}

// ShortHelp returns the bindings shown in the help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Next, k.Back, k.TransposeUp, k.TransposeDown, k.ColSizeInc, k.ColSizeDec, k.Quit}
}

// FullHelp returns all bindings grouped by concern.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Next, k.Back, k.Search, k.Reload},
		{k.TransposeUp, k.TransposeDown, k.ColSizeInc, k.ColSizeDec},
		{k.Quit},
	}
}
