package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/songbook/internal/core/config"
	"github.com/colonyops/songbook/pkg/tuitest"
)

func TestNewKeyMap_Defaults(t *testing.T) {
	km := NewKeyMap(nil)

	tests := []struct {
		name    string
		msg     tea.KeyPressMsg
		binding key.Binding
	}{
		{name: "down arrow", msg: tuitest.KeyCode(tea.KeyDown), binding: km.Down},
		{name: "j", msg: tuitest.KeyPress('j'), binding: km.Down},
		{name: "right", msg: tuitest.KeyCode(tea.KeyRight), binding: km.Next},
		{name: "page down", msg: tuitest.KeyCode(tea.KeyPgDown), binding: km.PageDown},
		{name: "end", msg: tuitest.KeyCode(tea.KeyEnd), binding: km.ColSizeInc},
		{name: "home", msg: tuitest.KeyCode(tea.KeyHome), binding: km.ColSizeDec},
		{name: "slash", msg: tuitest.KeyPress('/'), binding: km.Search},
		{name: "plus", msg: tuitest.KeyPress('+'), binding: km.TransposeUp},
		{name: "ctrl+c", msg: tuitest.KeyCtrl('c'), binding: km.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestNewKeyMap_Overrides(t *testing.T) {
	km := NewKeyMap(map[string][]string{
		config.ActionQuit:   {"q"},
		config.ActionSearch: {},
	})

	assert.True(t, key.Matches(tuitest.KeyPress('q'), km.Quit))
	assert.False(t, key.Matches(tuitest.KeyCtrl('c'), km.Quit))
	assert.True(t, key.Matches(tuitest.KeyPress('/'), km.Search), "empty list falls back to defaults")
	assert.Equal(t, "q", km.Quit.Help().Key)
	assert.Equal(t, "quit", km.Quit.Help().Desc)
}

func TestKeyMap_Help(t *testing.T) {
	km := NewKeyMap(config.DefaultKeybindings())

	assert.NotEmpty(t, km.ShortHelp())
	total := 0
	for _, group := range km.FullHelp() {
		total += len(group)
	}
	assert.Equal(t, len(config.Actions), total)
}
