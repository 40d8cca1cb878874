package tui

import (
	"fmt"
	"strings"

	"github.com/colonyops/songbook/internal/core/chordpro"
	"github.com/colonyops/songbook/internal/core/layout"
	"github.com/colonyops/songbook/internal/core/styles"
)

// SongView lays out the loaded song in columns on the right of the screen.
type SongView struct {
	song      *chordpro.Song
	name      string
	transpose int
	slack     int
	padding   int
	hidden    int // columns that did not fit in the last render
}

// NewSongView creates an empty song view.
func NewSongView(slack, padding int) *SongView {
	return &SongView{slack: slack, padding: padding}
}

// Set shows song, loaded under name with the given extra transposition.
func (s *SongView) Set(name string, song chordpro.Song, transpose int) {
	s.song = &song
	s.name = name
	s.transpose = transpose
}

// Loaded reports whether a song is shown.
func (s *SongView) Loaded() bool {
	return s.song != nil
}

// Name returns the catalog name the song was loaded under.
func (s *SongView) Name() string {
	return s.name
}

// Transpose returns the extra transposition applied on load.
func (s *SongView) Transpose() int {
	return s.transpose
}

// Slack returns the extra column size added to the median width.
func (s *SongView) Slack() int {
	return s.slack
}

// AdjustSlack changes the extra column size, never below zero.
func (s *SongView) AdjustSlack(delta int) {
	s.slack = max(s.slack+delta, 0)
}

// Columns lays the song out for a pane of the given outer size.
func (s *SongView) Columns(width, height int) []layout.Column {
	if s.song == nil {
		return nil
	}
	return layout.Layout(s.song.Content, layout.Options{
		Width:  max(width-2, 1),
		Height: height,
		Slack:  s.slack,
	})
}

// Header describes the song: title, key and transposition.
func (s *SongView) Header() string {
	if s.song == nil {
		return styles.StatusStyle.Render("No song selected")
	}

	parts := []string{styles.TitleStyle.Render(s.song.Title)}
	if k := s.song.DisplayKey; k != nil {
		parts = append(parts, styles.StatusStyle.Render("key "+k.String()))
	}
	if s.transpose != 0 {
		parts = append(parts, styles.StatusStyle.Render(fmt.Sprintf("%+d", s.transpose)))
	}
	if s.hidden > 0 {
		parts = append(parts, styles.ErrorStyle.Render(fmt.Sprintf("%d more columns", s.hidden)))
	}
	return strings.Join(parts, "  ")
}

// View renders the header line and the bordered column pane.
func (s *SongView) View(width, height int) string {
	paneHeight := max(height-1, layout.BorderRows+1)
	inner := max(width-2, 1)
	rows := paneHeight - layout.BorderRows

	cols := s.Columns(width, paneHeight)
	n := layout.Fit(cols, inner, s.padding)
	s.hidden = len(cols) - n

	rendered := make([][]string, n)
	widths := make([]int, n)
	for i, col := range cols[:n] {
		rendered[i] = s.renderColumn(col, i > 0)
		widths[i] = col.Width()
		if i > 0 {
			widths[i] += s.padding
		}
	}

	lines := make([]string, rows)
	for r := range lines {
		var sb strings.Builder
		for i, col := range rendered {
			if r < len(col) {
				sb.WriteString(col[r])
			} else {
				sb.WriteString(strings.Repeat(" ", widths[i]))
			}
		}
		lines[r] = truncateOrPad(sb.String(), inner)
	}

	header := truncateOrPad(s.Header(), width)
	pane := styles.PaneStyle.Render(strings.Join(lines, "\n"))
	return header + "\n" + pane
}

// renderColumn styles each row of col, padded to the column width. Columns
// after the first are indented by the configured padding.
func (s *SongView) renderColumn(col layout.Column, indent bool) []string {
	w := col.Width()
	prefix := ""
	if indent {
		prefix = strings.Repeat(" ", s.padding)
	}

	rows := col.Rows()
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, prefix+truncateOrPad(styles.Row(row), w))
	}
	return out
}
