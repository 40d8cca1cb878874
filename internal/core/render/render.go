// Package render turns parsed song lines into styled rows, placing every
// chord directly above the lyric it belongs to.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/colonyops/songbook/internal/core/chordpro"
)

// ChorusMarker prefixes both rows of a chorus line.
const ChorusMarker = "| "

// Style tags a span. The presentation layer decides what each tag looks like.
type Style uint8

const (
	StylePlain Style = iota
	StyleChord
	StyleComment
	StyleTitle
)

func (s Style) String() string {
	switch s {
	case StylePlain:
		return "plain"
	case StyleChord:
		return "chord"
	case StyleComment:
		return "comment"
	case StyleTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Span is a run of text with a single style.
type Span struct {
	Text  string
	Style Style
}

// Row is one terminal row.
type Row []Span

// Width returns the display width of the row in terminal cells.
func (r Row) Width() int {
	w := 0
	for _, s := range r {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// String returns the row text without styling.
func (r Row) String() string {
	var sb strings.Builder
	for _, s := range r {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// buffer accumulates spans and tracks their width and last rune.
type buffer struct {
	spans Row
	width int
	last  rune
}

func (b *buffer) add(text string, style Style) {
	if text == "" {
		return
	}
	b.spans = append(b.spans, Span{Text: text, Style: style})
	b.width += runewidth.StringWidth(text)
	b.last, _ = utf8.DecodeLastRuneInString(text)
}

func (b *buffer) empty() bool {
	return len(b.spans) == 0
}

// Format renders a line. It returns a chord row followed by a text row when
// the line holds chords, and only the text row otherwise. The text row is
// always present, so a blank line still takes up one row.
func Format(line chordpro.SongLine) []Row {
	var (
		chords    buffer
		text      buffer
		hasChords bool
	)

	for _, block := range line.Blocks {
		for _, s := range block {
			switch s.Kind {
			case chordpro.KindChord:
				hasChords = true
				switch diff := text.width - chords.width; {
				case diff < 0:
					text.add(strings.Repeat(filler(text), -diff), StylePlain)
				case diff > 0:
					chords.add(strings.Repeat(" ", diff), StylePlain)
				}
				chords.add(s.Text+" ", StyleChord)
			case chordpro.KindComment:
				text.add(s.Text, StyleComment)
			case chordpro.KindTitle:
				text.add(s.Text, StyleTitle)
			default:
				text.add(s.Text, StylePlain)
			}
		}
	}

	if line.Chorus && (!chords.empty() || !text.empty()) {
		marker := Span{Text: ChorusMarker, Style: StyleComment}
		chords.spans = append(Row{marker}, chords.spans...)
		text.spans = append(Row{marker}, text.spans...)
	}

	if !hasChords {
		return []Row{text.spans}
	}
	return []Row{chords.spans, text.spans}
}

// filler returns the character used to stretch lyrics under a chord that is
// wider than them. A dash signals the word continues after the chord.
func filler(text buffer) string {
	if text.empty() || unicode.IsSpace(text.last) {
		return " "
	}
	switch text.last {
	case ',', '.', ':', ';':
		return " "
	}
	return "-"
}

// Width returns the width of the widest row of the formatted line.
func Width(line chordpro.SongLine) int {
	w := 0
	for _, r := range Format(line) {
		w = max(w, r.Width())
	}
	return w
}

// Height returns the number of rows the formatted line takes up.
func Height(line chordpro.SongLine) int {
	for _, b := range line.Blocks {
		if b.HasChords() {
			return 2
		}
	}
	return 1
}

// BlockWidth returns the width a block takes up when formatted on its own.
func BlockWidth(block chordpro.SongBlock) int {
	return Width(chordpro.SongLine{Blocks: []chordpro.SongBlock{block}})
}

// Lines formats a sequence of lines into rows.
func Lines(lines []chordpro.SongLine) []Row {
	var rows []Row
	for _, l := range lines {
		rows = append(rows, Format(l)...)
	}
	return rows
}
