package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allNames = []string{
	"C", "C#", "Db", "D", "D#", "Eb", "E", "F", "F#", "Gb",
	"G", "G#", "Ab", "A", "A#", "Bb", "B", "Cb", "E#", "B#", "Fb",
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Class
	}{
		{"C", C},
		{"C#", CSharp},
		{"Db", CSharp},
		{"E", E},
		{"Fb", E},
		{"E#", F},
		{"Bb", ASharp},
		{"B#", C},
		{"Cb", B},
		{"G", G},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromName_Invalid(t *testing.T) {
	for _, name := range []string{"", "H", "c", "C##", "Cm", "maj7", "X#"} {
		t.Run(name, func(t *testing.T) {
			_, err := FromName(name)
			require.ErrorIs(t, err, ErrUnknownPitch)
		})
	}
}

func TestTransposedBy_Periodic(t *testing.T) {
	for _, name := range allNames {
		c := MustParse(name)
		assert.Equal(t, c, c.TransposedBy(12), name)
		assert.Equal(t, c, c.TransposedBy(-12), name)
		assert.Equal(t, c, c.TransposedBy(120), name)
	}
}

func TestTransposedBy(t *testing.T) {
	assert.Equal(t, D, C.TransposedBy(2))
	assert.Equal(t, ASharp, C.TransposedBy(-2))
	assert.Equal(t, C, B.TransposedBy(1))
	assert.Equal(t, B, C.TransposedBy(-13))
	assert.Equal(t, "G#", E.TransposedBy(4).String())
}

func TestInterval(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"C", "D", 2},
		{"D", "C", -2},
		{"C", "C", 0},
		{"C", "F#", 6},
		{"C", "G", -5},
		{"A", "C", 3},
		{"Bb", "A", -1},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			from, to := MustParse(tt.from), MustParse(tt.to)
			got := Interval(from, to)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, to, from.TransposedBy(got))
		})
	}
}

func TestTransposeChord(t *testing.T) {
	tests := []struct {
		chord string
		n     int
		want  string
	}{
		{"C", 2, "D"},
		{"Am7", 3, "C7"},
		{"Cmaj7/G", 2, "Dmaj7/A"},
		{"Bbsus4", 1, "Bsus4"},
		{"F#m", -1, "Fm"},
		{"Ebdim", 12, "D#dim"},
		{"n.c.", 5, "n.c."},
		{"%", 3, "%"},
		{"x", 7, "x"},
		{"", 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.chord, func(t *testing.T) {
			assert.Equal(t, tt.want, TransposeChord(tt.chord, tt.n))
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("H") })
}
