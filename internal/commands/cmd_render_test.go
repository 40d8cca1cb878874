package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/songbook/internal/core/chordpro"
	"github.com/colonyops/songbook/internal/core/pitch"
	"github.com/colonyops/songbook/pkg/tuitest"
)

func newRenderApp(t *testing.T, stdin string, terminal bool) (*testApp, *Flags) {
	t.Helper()
	flags := newFlags(t)
	app := newTestApp()

	cmd := NewRenderCmd(flags)
	cmd.stdin = strings.NewReader(stdin)
	cmd.isTerminal = func() bool { return terminal }
	cmd.termSize = func() (int, int, error) { return 0, 0, errors.New("not a terminal") }
	cmd.Register(app.root)

	return app, flags
}

func outputLines(app *testApp) []string {
	return strings.Split(strings.TrimRight(app.stdout.String(), "\n"), "\n")
}

func TestRender_File(t *testing.T) {
	app, _ := newRenderApp(t, "", true)
	file := filepath.Join(t.TempDir(), "song.txt")
	require.NoError(t, os.WriteFile(file, []byte(libraryFiles["amazing.txt"]), 0o644))

	require.NoError(t, app.run(t, "render", "--width", "40", "--height", "20", file))

	assert.Equal(t, []string{
		"Amazing Grace  key G",
		"",
		"G       C",
		"Amazing grace",
	}, outputLines(app))
}

func TestRender_Stdin(t *testing.T) {
	app, _ := newRenderApp(t, "{t:Hello}\n[C]Hello [G]world\n", false)

	require.NoError(t, app.run(t, "render", "--transpose", "2"))

	assert.Equal(t, []string{
		"Hello  +2",
		"",
		"D     A",
		"Hello world",
	}, outputLines(app))
}

func TestRender_StdinTerminal(t *testing.T) {
	app, _ := newRenderApp(t, "", true)

	err := app.run(t, "render")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin is a terminal")
}

func TestRender_LibrarySongForcedKey(t *testing.T) {
	app, _ := newRenderApp(t, "", true)

	require.NoError(t, app.run(t, "render", "--song", "Amazing Grace [A]"))

	lines := outputLines(app)
	require.Len(t, lines, 4)
	assert.Equal(t, "Amazing Grace  key A +2", lines[0])
	assert.Equal(t, "A       D", lines[2])
}

func TestRender_KeyFlagBeatsForcedKey(t *testing.T) {
	app, _ := newRenderApp(t, "", true)

	require.NoError(t, app.run(t, "render", "--song", "Amazing Grace [A]", "--key", "F"))

	assert.Equal(t, "Amazing Grace  key F -2", outputLines(app)[0])
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown song", args: []string{"render", "--song", "Nope"}, want: "not found"},
		{name: "bad key", args: []string{"render", "--key", "H", "-"}, want: "parse --key"},
		{name: "file and song", args: []string{"render", "--song", "Amazing Grace", "song.txt"}, want: "not both"},
		{name: "missing file", args: []string{"render", "does-not-exist.txt"}, want: "read song"},
		{name: "negative padding", args: []string{"render", "--padding=-1", "-"}, want: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newRenderApp(t, "", false)

			err := app.run(t, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRenderCmd_Size(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		term          func() (int, int, error)
		wantW, wantH  int
	}{
		{
			name: "flags win", width: 50, height: 10,
			term:  func() (int, int, error) { return 120, 40, nil },
			wantW: 50, wantH: 10,
		},
		{
			name:  "terminal size",
			term:  func() (int, int, error) { return 120, 40, nil },
			wantW: 120, wantH: 40,
		},
		{
			name: "mixed", width: 60,
			term:  func() (int, int, error) { return 120, 40, nil },
			wantW: 60, wantH: 40,
		},
		{
			name:  "fallback",
			term:  func() (int, int, error) { return 0, 0, errors.New("no tty") },
			wantW: fallbackWidth, wantH: fallbackHeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &RenderCmd{width: tt.width, height: tt.height, termSize: tt.term}
			w, h := cmd.size()
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestWriteSong_Columns(t *testing.T) {
	song := chordpro.Parse("{t:List}\none\ntwo\nthree\nfour\n", nil)

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{
			name:  "side by side",
			width: 100,
			want:  "List\n\none  three\ntwo  four\n",
		},
		{
			name:  "bands when narrow",
			width: 6,
			want:  "List\n\none\ntwo\n\nthree\nfour\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			err := writeSong(&sb, song, renderOptions{Width: tt.width, Height: 4, Padding: 2})
			require.NoError(t, err)
			assert.Equal(t, tt.want, sb.String())
		})
	}
}

func TestWriteSong_Color(t *testing.T) {
	song := chordpro.Parse(libraryFiles["amazing.txt"], nil)

	var plain, colored strings.Builder
	require.NoError(t, writeSong(&plain, song, renderOptions{Width: 80, Height: 24}))
	require.NoError(t, writeSong(&colored, song, renderOptions{Width: 80, Height: 24, Color: true}))

	assert.Equal(t, tuitest.StripANSI(plain.String()), tuitest.StripANSI(colored.String()))
}

func TestSongHeader(t *testing.T) {
	g := pitch.MustParse("G")

	assert.Equal(t, "Untitled", songHeader(chordpro.Song{}, false))
	assert.Equal(t, "Song  key G", songHeader(chordpro.Song{Title: "Song", DisplayKey: &g}, false))
	assert.Equal(t, "Song  -3", songHeader(chordpro.Song{Title: "Song", Transposition: -3}, false))
}
