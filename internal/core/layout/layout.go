// Package layout wraps song lines and packs them into columns that fit a
// viewport.
//
// The wrap width is the median line width plus a slack allowance, so a few
// long lines get wrapped instead of widening every column. Packing is a single
// greedy pass over the wrapped lines.
package layout

import (
	"slices"

	"github.com/colonyops/songbook/internal/core/chordpro"
	"github.com/colonyops/songbook/internal/core/render"
)

// BorderRows is the number of rows of the viewport height reserved for the
// frame drawn around the columns.
const BorderRows = 2

// Options describes the viewport a song is laid out in.
type Options struct {
	// Width is the usable width of the viewport. Zero means unbounded.
	Width int
	// Height is the height of the viewport including its border rows.
	Height int
	// Slack is added to the median line width to get the wrap width.
	Slack int
}

// Column is a run of lines displayed in one viewport slot.
type Column struct {
	Lines []chordpro.SongLine
}

// Width returns the width of the widest line in the column.
func (c Column) Width() int {
	w := 0
	for _, l := range c.Lines {
		w = max(w, render.Width(l))
	}
	return w
}

// Height returns the number of rows the column takes up.
func (c Column) Height() int {
	h := 0
	for _, l := range c.Lines {
		h += render.Height(l)
	}
	return h
}

// Rows formats the column.
func (c Column) Rows() []render.Row {
	return render.Lines(c.Lines)
}

// Fit returns how many leading columns fit side by side in width when
// padding separates neighbours. The first column is always placed.
func Fit(cols []Column, width, padding int) int {
	used := 0
	for i, c := range cols {
		w := c.Width()
		if i > 0 {
			w += padding
			if used+w > width {
				return i
			}
		}
		used += w
	}
	return len(cols)
}

// Layout wraps lines that are too wide and packs the result into columns.
func Layout(lines []chordpro.SongLine, opts Options) []Column {
	if len(lines) == 0 {
		return nil
	}

	width := WrapWidth(lines, opts)

	var wrapped []chordpro.SongLine
	for _, l := range lines {
		wrapped = append(wrapped, Wrap(l, width)...)
	}

	return pack(wrapped, opts.Height-BorderRows)
}

// WrapWidth returns the width lines are wrapped at: the median line width plus
// the slack, capped at the viewport width.
func WrapWidth(lines []chordpro.SongLine, opts Options) int {
	width := Median(lines) + opts.Slack
	if opts.Width > 0 {
		width = min(width, opts.Width)
	}
	return width
}

// Median returns the median formatted width of lines. For an even number of
// lines the upper middle element is used.
func Median(lines []chordpro.SongLine) int {
	if len(lines) == 0 {
		return 0
	}

	widths := make([]int, len(lines))
	for i, l := range lines {
		widths[i] = render.Width(l)
	}
	slices.Sort(widths)

	return widths[len(widths)/2]
}

// Wrap splits a line that is wider than width into several lines. Blocks are
// never split: a block wider than width is put on a line of its own and left
// to overflow.
func Wrap(line chordpro.SongLine, width int) []chordpro.SongLine {
	if render.Width(line) <= width {
		return []chordpro.SongLine{line}
	}

	marker := 0
	if line.Chorus {
		marker = len(render.ChorusMarker)
	}

	var (
		result  []chordpro.SongLine
		current []chordpro.SongBlock
		total   int
	)

	for _, block := range line.Blocks {
		bw := render.BlockWidth(block)

		if len(current) > 0 && total+bw+marker >= width {
			result = append(result, chordpro.SongLine{Blocks: current, Chorus: line.Chorus})
			current, total = nil, 0
		}

		current = append(current, block)
		total += bw
	}

	if len(current) > 0 {
		result = append(result, chordpro.SongLine{Blocks: current, Chorus: line.Chorus})
	}

	return result
}

// pack fills columns top to bottom. A line that does not fit in the current
// column starts the next one; a line taller than a whole column gets a column
// to itself.
func pack(lines []chordpro.SongLine, height int) []Column {
	var (
		columns []Column
		current []chordpro.SongLine
		used    int
	)

	for _, l := range lines {
		h := render.Height(l)

		if len(current) > 0 && used+h > height {
			columns = append(columns, Column{Lines: current})
			current, used = nil, 0
		}

		current = append(current, l)
		used += h
	}

	return append(columns, Column{Lines: current})
}
