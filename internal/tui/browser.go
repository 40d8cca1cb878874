package tui

import (
	"path"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/songbook/internal/core/catalog"
	"github.com/colonyops/songbook/internal/core/styles"
)

// pageSize is how far page up and page down move the cursor.
const pageSize = 20

// location is a place in the library the browser can show.
type location struct {
	dir      string // folder relative to the library root
	playlist string // playlist path, empty when showing a folder
	title    string
	cursor   int
}

// Browser is the searchable entry list on the left of the screen. It shows
// one folder or playlist at a time and remembers how it got there.
type Browser struct {
	cat     *catalog.Catalog
	here    location
	history []location
	entries []catalog.Entry
	cursor  int
	offset  int
	height  int

	searching bool
	results   bool // entries hold search results rather than a location
	input     textinput.Model
	err       error
}

// NewBrowser creates a browser showing the library root.
func NewBrowser(cat *catalog.Catalog) *Browser {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = ""
	ti.CharLimit = 100

	b := &Browser{
		cat:    cat,
		here:   location{dir: ".", title: "Songs"},
		input:  ti,
		height: 1,
	}
	b.load()
	return b
}

// load lists the current location.
func (b *Browser) load() {
	b.results = false
	b.err = nil

	if b.here.playlist != "" {
		title, entries, err := b.cat.Playlist(b.here.playlist)
		b.here.title = title
		b.entries, b.err = entries, err
	} else {
		b.entries, b.err = b.cat.List(b.here.dir)
	}

	b.cursor = b.here.cursor
	b.clamp()
}

// Refresh re-reads the current location or search after a catalog reload.
func (b *Browser) Refresh() {
	if b.results {
		b.entries = b.cat.Search(b.input.Value())
		b.clamp()
		return
	}
	b.here.cursor = b.cursor
	b.load()
}

// SetHeight sets the number of visible list rows.
func (b *Browser) SetHeight(h int) {
	b.height = max(h, 1)
	b.clamp()
}

// Entries returns the entries currently listed.
func (b *Browser) Entries() []catalog.Entry {
	return b.entries
}

// Err returns the error of the last listing, if any.
func (b *Browser) Err() error {
	return b.err
}

// Selected returns the entry under the cursor.
func (b *Browser) Selected() (catalog.Entry, bool) {
	if len(b.entries) == 0 {
		return catalog.Entry{}, false
	}
	return b.entries[b.cursor], true
}

// Move moves the cursor by n rows, stopping at either end.
func (b *Browser) Move(n int) {
	b.cursor += n
	b.clamp()
}

// Enter opens the selected folder or playlist. For a song it returns the
// entry and true, leaving the listing unchanged.
func (b *Browser) Enter() (catalog.Entry, bool) {
	e, ok := b.Selected()
	if !ok {
		return catalog.Entry{}, false
	}

	switch e.Kind {
	case catalog.KindSong:
		return e, true
	case catalog.KindFolder:
		b.push(location{dir: e.Path, title: e.Name})
	case catalog.KindPlaylist:
		b.push(location{dir: path.Dir(e.Path), playlist: e.Path, title: e.Name})
	}

	return catalog.Entry{}, false
}

func (b *Browser) push(next location) {
	if !b.results {
		b.here.cursor = b.cursor
	}
	b.history = append(b.history, b.here)
	b.stopSearch()
	b.here = next
	b.load()
}

// Back leaves search results, or returns to the previous location. It
// reports whether anything changed.
func (b *Browser) Back() bool {
	if b.results || b.searching {
		b.CancelSearch()
		return true
	}
	if len(b.history) == 0 {
		return false
	}

	b.here = b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.load()
	return true
}

// StartSearch focuses the search input. Results replace the listing as the
// query is typed.
func (b *Browser) StartSearch() tea.Cmd {
	if !b.results {
		b.here.cursor = b.cursor
	}
	b.searching = true
	b.results = true
	b.entries = b.cat.Search(b.input.Value())
	b.cursor = 0
	b.clamp()
	return b.input.Focus()
}

// StopSearch unfocuses the search input and keeps the results listed.
func (b *Browser) StopSearch() {
	b.searching = false
	b.input.Blur()
}

func (b *Browser) stopSearch() {
	b.StopSearch()
	b.input.SetValue("")
}

// CancelSearch clears the query and lists the current location again.
func (b *Browser) CancelSearch() {
	b.stopSearch()
	b.load()
}

// Searching reports whether the search input has focus.
func (b *Browser) Searching() bool {
	return b.searching
}

// Query returns the current search query.
func (b *Browser) Query() string {
	return b.input.Value()
}

// UpdateSearch forwards a message to the search input and refreshes the
// results when the query changed.
func (b *Browser) UpdateSearch(msg tea.Msg) tea.Cmd {
	before := b.input.Value()

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)

	if q := b.input.Value(); q != before {
		b.entries = b.cat.Search(q)
		b.cursor = 0
		b.offset = 0
		b.clamp()
	}

	return cmd
}

// Title names what the browser shows.
func (b *Browser) Title() string {
	if b.results {
		return "Search"
	}
	return b.here.title
}

func (b *Browser) clamp() {
	if b.cursor >= len(b.entries) {
		b.cursor = len(b.entries) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+b.height {
		b.offset = b.cursor - b.height + 1
	}
	if b.offset < 0 {
		b.offset = 0
	}
}

// View renders the list pane. width and height are the outer size
// including the border.
func (b *Browser) View(width, height int) string {
	inner := max(width-2, 1)
	rows := max(height-2, 1)

	lines := make([]string, 0, rows)
	lines = append(lines, truncateOrPad(styles.PaneTitleStyle.Render(b.Title()), inner))

	listHeight := rows - 1
	if b.err != nil {
		lines = append(lines, truncateOrPad(styles.ErrorStyle.Render(b.err.Error()), inner))
	}
	if len(b.entries) == 0 && b.err == nil {
		lines = append(lines, truncateOrPad(styles.StatusStyle.Render("nothing here"), inner))
	}

	for i := b.offset; i < len(b.entries) && i < b.offset+listHeight; i++ {
		lines = append(lines, b.renderEntry(b.entries[i], i == b.cursor, inner))
	}

	empty := strings.Repeat(" ", inner)
	for len(lines) < rows {
		lines = append(lines, empty)
	}

	return styles.PaneStyle.Render(strings.Join(lines[:rows], "\n"))
}

func (b *Browser) renderEntry(e catalog.Entry, selected bool, width int) string {
	icon, style := styles.IconSong, styles.NormalItemStyle
	switch {
	case e.Missing:
		icon, style = styles.IconMissing, styles.StatusStyle
	case e.Kind == catalog.KindFolder:
		icon, style = styles.IconFolder, styles.FolderItemStyle
	case e.Kind == catalog.KindPlaylist:
		icon, style = styles.IconPlaylist, styles.PlaylistItemStyle
	}
	if selected {
		style = styles.SelectedItemStyle
	}

	text := ansi.Truncate(icon+" "+e.Name, width, "…")
	return style.Render(truncateOrPad(text, width))
}

// SearchView renders the search box below the list.
func (b *Browser) SearchView(width int) string {
	inner := max(width-2, 1)
	b.input.SetWidth(inner)

	pane := styles.PaneStyle
	if b.searching {
		pane = styles.PaneFocusedStyle
	}
	return pane.Render(truncateOrPad(b.input.View(), inner))
}

// truncateOrPad fits s to exactly width display cells.
func truncateOrPad(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "…")
	}
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
