package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/songbook/internal/core/chordpro"
	"github.com/colonyops/songbook/internal/core/render"
)

const sampleSong = `{t:Amazing Grace}
{st:John Newton}
{key:G}

A[G]maz-ing [G7]grace, how [C]sweet the [G]sound
That [G]saved a wretch like [D]me
I [G]once was [G7]lost, but [C]now am [G]found
Was [Em]blind but [D]now I [G]see

{soc}
[C]Through many dangers, toils and snares, I have already [G]come
{eoc}
`

func parse(t *testing.T, doc string) []chordpro.SongLine {
	t.Helper()
	return chordpro.Parse(doc, nil).Content
}

func blockTexts(lines []chordpro.SongLine) []string {
	var out []string
	for _, l := range lines {
		for _, b := range l.Blocks {
			var sb strings.Builder
			for _, s := range b {
				sb.WriteString(s.Text)
			}
			out = append(out, sb.String())
		}
	}
	return out
}

func flatten(cols []Column) []chordpro.SongLine {
	var out []chordpro.SongLine
	for _, c := range cols {
		out = append(out, c.Lines...)
	}
	return out
}

func TestLayout_Empty(t *testing.T) {
	assert.Empty(t, Layout(nil, Options{Width: 80, Height: 24, Slack: 15}))
}

func TestMedian(t *testing.T) {
	lines := parse(t, "aaaa\nbb\ncccccc\nd")

	// widths sorted: 1 2 4 6 -> upper middle
	assert.Equal(t, 4, Median(lines))
	assert.Equal(t, 0, Median(nil))
}

func TestWrap_FitsUnchanged(t *testing.T) {
	line := parse(t, "short line")[0]

	assert.Equal(t, []chordpro.SongLine{line}, Wrap(line, 10))
}

func TestWrap_BreaksBetweenBlocks(t *testing.T) {
	line := parse(t, "one two three four five")[0]

	wrapped := Wrap(line, 10)

	require.Len(t, wrapped, 3)
	assert.Equal(t, "one two ", render.Format(wrapped[0])[0].String())
	assert.Equal(t, "three ", render.Format(wrapped[1])[0].String())
	assert.Equal(t, "four five", render.Format(wrapped[2])[0].String())
}

func TestWrap_WideBlockAlone(t *testing.T) {
	line := parse(t, "a supercalifragilistic b")[0]

	wrapped := Wrap(line, 5)

	assert.Equal(t, []string{"a ", "supercalifragilistic ", "b"}, blockTexts(wrapped))
	require.Len(t, wrapped, 3)
	for _, w := range wrapped {
		assert.NotEmpty(t, w.Blocks)
	}
}

func TestWrap_KeepsChorus(t *testing.T) {
	song := chordpro.Parse("{soc}\nla la la la la la la la\n{eoc}", nil)
	require.Len(t, song.Content, 1)

	wrapped := Wrap(song.Content[0], 10)

	require.Greater(t, len(wrapped), 1)
	for _, w := range wrapped {
		assert.True(t, w.Chorus)
		assert.LessOrEqual(t, render.Width(w), 10)
	}
}

func TestLayout_NeverSplitsBlocks(t *testing.T) {
	lines := parse(t, sampleSong)

	for _, width := range []int{8, 20, 40, 200} {
		for _, slack := range []int{0, 5, 15} {
			t.Run(fmt.Sprintf("w%d_s%d", width, slack), func(t *testing.T) {
				cols := Layout(lines, Options{Width: width, Height: 10, Slack: slack})
				assert.Equal(t, blockTexts(lines), blockTexts(flatten(cols)))
			})
		}
	}
}

func TestLayout_Deterministic(t *testing.T) {
	lines := parse(t, sampleSong)
	opts := Options{Width: 30, Height: 8, Slack: 3}

	first := Layout(lines, opts)
	for range 5 {
		assert.Equal(t, first, Layout(lines, opts))
	}
}

func TestLayout_ColumnsFitHeight(t *testing.T) {
	lines := parse(t, sampleSong)
	opts := Options{Width: 80, Height: 8, Slack: 15}

	cols := Layout(lines, opts)

	require.Greater(t, len(cols), 1)
	for _, c := range cols {
		assert.LessOrEqual(t, c.Height(), opts.Height-BorderRows)
		assert.NotEmpty(t, c.Lines)
	}
}

func TestLayout_SingleColumnWhenTall(t *testing.T) {
	lines := parse(t, sampleSong)

	cols := Layout(lines, Options{Width: 200, Height: 100, Slack: 100})

	require.Len(t, cols, 1)
	assert.Equal(t, lines, cols[0].Lines)
}

func TestLayout_TallLineGetsOwnColumn(t *testing.T) {
	lines := parse(t, "[C]one\n[G]two")

	// usable height of 1 is less than a chord line needs
	cols := Layout(lines, Options{Width: 80, Height: 3})

	require.Len(t, cols, 2)
	for _, c := range cols {
		assert.Len(t, c.Lines, 1)
	}
}

func TestLayout_BlankLineTakesOneRow(t *testing.T) {
	lines := parse(t, "one\n\ntwo")
	require.Len(t, lines, 3)
	require.True(t, lines[1].IsBlank())

	assert.Equal(t, 1, render.Height(lines[1]))

	cols := Layout(lines, Options{Width: 80, Height: 5})
	require.Len(t, cols, 1)
	assert.Equal(t, 3, cols[0].Height())
}

func TestLayout_WrapsAtMedianPlusSlack(t *testing.T) {
	lines := parse(t, "abc\nabc\nabc\none two three four five six seven")

	cols := Layout(lines, Options{Width: 100, Height: 50, Slack: 10})

	require.Len(t, cols, 1)
	for _, l := range cols[0].Lines {
		assert.LessOrEqual(t, render.Width(l), 13)
	}
	assert.Greater(t, len(cols[0].Lines), len(lines))
}

func TestColumn_Width(t *testing.T) {
	col := Column{Lines: parse(t, "[Cmaj7]a\nlonger line")}

	assert.Equal(t, 11, col.Width())
	assert.Len(t, col.Rows(), 3)
}

func TestFit(t *testing.T) {
	col := func(text string) Column {
		return Column{Lines: parse(t, text)}
	}
	cols := []Column{col("aaaa"), col("bbbbbb"), col("cc")}

	tests := []struct {
		name    string
		width   int
		padding int
		want    int
	}{
		{name: "all fit", width: 20, padding: 2, want: 3},
		{name: "exact fit", width: 16, padding: 2, want: 3},
		{name: "third overflows", width: 15, padding: 2, want: 2},
		{name: "padding pushes out", width: 11, padding: 2, want: 1},
		{name: "first always placed", width: 1, padding: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fit(cols, tt.width, tt.padding))
		})
	}

	assert.Equal(t, 0, Fit(nil, 10, 2))
}
