// Package tui implements the interactive song browser.
package tui

import (
	"errors"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/songbook/internal/core/catalog"
	"github.com/colonyops/songbook/internal/core/styles"
)

// Options configures the browser.
type Options struct {
	AutoSelectSong  bool
	ExtraColumnSize int
	ColumnPadding   int
	Keybindings     map[string][]string
	// Changes, when set, triggers a reload whenever it delivers.
	Changes <-chan struct{}
}

// reloadedMsg reports the end of a catalog rescan.
type reloadedMsg struct {
	err error
}

// libraryChangedMsg reports a change seen by the library watcher.
type libraryChangedMsg struct{}

// Model is the root bubbletea model: entry list and search box on the left,
// the selected song on the right.
type Model struct {
	cat     *catalog.Catalog
	opts    Options
	keys    KeyMap
	help    help.Model
	browser *Browser
	song    *SongView
	log     zerolog.Logger

	width    int
	height   int
	status   string
	quitting bool
}

// New creates the browser model for cat.
func New(cat *catalog.Catalog, opts Options, logger zerolog.Logger) Model {
	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = styles.HelpStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle

	return Model{
		cat:     cat,
		opts:    opts,
		keys:    NewKeyMap(opts.Keybindings),
		help:    h,
		browser: NewBrowser(cat),
		song:    NewSongView(opts.ExtraColumnSize, opts.ColumnPadding),
		log:     logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.browser.SetHeight(m.listRows())
		return m, nil
	case reloadedMsg:
		return m.handleReloaded(msg)
	case libraryChangedMsg:
		m.log.Debug().Msg("library changed")
		return m, tea.Batch(m.reload(), m.waitForChange())
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.browser.Searching() {
		return m.handleSearchKey(msg)
	}

	return m.handleNormalKey(msg)
}

// handleSearchKey routes keys while the search input has focus. Arrow keys
// still move through the results; everything else edits the query.
func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.browser.CancelSearch()
		return m, nil
	case "enter":
		m.browser.StopSearch()
		m.open()
		return m, nil
	case "up":
		m.move(-1)
		return m, nil
	case "down":
		m.move(1)
		return m, nil
	case "pgup":
		m.move(-pageSize)
		return m, nil
	case "pgdown":
		m.move(pageSize)
		return m, nil
	}

	return m, m.browser.UpdateSearch(msg)
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-pageSize)
	case key.Matches(msg, m.keys.PageDown):
		m.move(pageSize)
	case key.Matches(msg, m.keys.Next):
		m.open()
	case key.Matches(msg, m.keys.Back):
		m.browser.Back()
	case key.Matches(msg, m.keys.Search):
		return m, m.browser.StartSearch()
	case key.Matches(msg, m.keys.TransposeUp):
		m.transpose(1)
	case key.Matches(msg, m.keys.TransposeDown):
		m.transpose(-1)
	case key.Matches(msg, m.keys.ColSizeInc):
		m.song.AdjustSlack(1)
	case key.Matches(msg, m.keys.ColSizeDec):
		m.song.AdjustSlack(-1)
	case key.Matches(msg, m.keys.Reload):
		m.status = "reloading..."
		return m, m.reload()
	case msg.String() == "esc":
		m.browser.CancelSearch()
	}

	return m, nil
}

// move moves the cursor and, with auto-select on, opens the song under it.
func (m *Model) move(n int) {
	m.browser.Move(n)
	if !m.opts.AutoSelectSong {
		return
	}
	if e, ok := m.browser.Selected(); ok && e.Kind == catalog.KindSong {
		m.load(e.Name, 0)
	}
}

// open enters the selected folder or playlist, or shows the selected song.
func (m *Model) open() {
	if e, ok := m.browser.Enter(); ok {
		m.load(e.Name, 0)
	}
}

// load shows the song named name. Songs the catalog does not know are
// replaced by a placeholder.
func (m *Model) load(name string, transpose int) {
	song, err := m.cat.Load(name, transpose)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			m.log.Debug().Str("song", name).Msg("song not found")
		} else {
			m.log.Error().Err(err).Str("song", name).Msg("load song")
		}
		song = catalog.Placeholder()
	}

	m.song.Set(name, song, transpose)
}

// transpose shifts the shown song by n semitones.
func (m *Model) transpose(n int) {
	if !m.song.Loaded() {
		return
	}
	m.load(m.song.Name(), m.song.Transpose()+n)
}

func (m Model) reload() tea.Cmd {
	cat := m.cat
	return func() tea.Msg {
		return reloadedMsg{err: cat.Reload()}
	}
}

// waitForChange blocks on the watcher channel. It returns nil when no
// watcher is configured.
func (m Model) waitForChange() tea.Cmd {
	changes := m.opts.Changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return libraryChangedMsg{}
	}
}

func (m Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("reload catalog")
		m.status = "reload failed: " + msg.err.Error()
		return m, nil
	}

	m.status = ""
	m.browser.Refresh()
	if m.song.Loaded() {
		m.load(m.song.Name(), m.song.Transpose())
	}
	return m, nil
}
