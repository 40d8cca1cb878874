package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/songbook/internal/core/catalog"
	"github.com/colonyops/songbook/pkg/tuitest"
)

func newLsApp(t *testing.T) *testApp {
	t.Helper()
	app := newTestApp()
	NewLsCmd(newFlags(t)).Register(app.root)
	return app
}

func TestLs_Table(t *testing.T) {
	app := newLsApp(t)

	require.NoError(t, app.run(t, "ls"))

	lines := strings.Split(strings.TrimSpace(app.stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"KIND", "NAME", "PATH"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"song", "Amazing", "Grace", "amazing.txt"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"playlist", "sunday", "hymns/sunday.lst"}, strings.Fields(lines[3]))
}

func TestLs_Query(t *testing.T) {
	app := newLsApp(t)

	require.NoError(t, app.run(t, "ls", "VISION"))

	assert.Contains(t, app.stdout.String(), "Be Thou My Vision")
	assert.NotContains(t, app.stdout.String(), "Amazing Grace")
}

func TestLs_NoMatch(t *testing.T) {
	app := newLsApp(t)

	require.NoError(t, app.run(t, "ls", "zzz"))

	assert.Empty(t, app.stdout.String())
	assert.Contains(t, tuitest.StripANSI(app.stderr.String()), "No songs found")
}

func TestLs_JSON(t *testing.T) {
	app := newLsApp(t)

	require.NoError(t, app.run(t, "ls", "--json", "grace"))

	lines := strings.Split(strings.TrimSpace(app.stdout.String()), "\n")
	require.Len(t, lines, 2, "the song and the playlist referencing it")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, map[string]any{"kind": "song", "name": "Amazing Grace", "path": "amazing.txt"}, got)
}

func TestLs_Playlist(t *testing.T) {
	app := newLsApp(t)

	require.NoError(t, app.run(t, "ls", "--playlist", "hymns/sunday.lst"))

	assert.Contains(t, tuitest.StripANSI(app.stderr.String()), "Sunday Morning")
	out := app.stdout.String()
	assert.Contains(t, out, "Amazing Grace [A]")
	assert.Contains(t, out, "(missing)")
}

func TestLs_PlaylistJSON(t *testing.T) {
	app := newLsApp(t)

	require.NoError(t, app.run(t, "ls", "--json", "--playlist", "hymns/sunday.lst"))

	var entries []catalog.Entry
	for _, line := range strings.Split(strings.TrimSpace(app.stdout.String()), "\n") {
		var e struct {
			Name    string `json:"name"`
			Missing bool   `json:"missing"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		entries = append(entries, catalog.Entry{Name: e.Name, Missing: e.Missing})
	}
	assert.Equal(t, []catalog.Entry{
		{Name: "Amazing Grace [A]"},
		{Name: "No Such Song", Missing: true},
	}, entries)
	assert.Empty(t, app.stderr.String())
}

func TestLs_UnknownPlaylist(t *testing.T) {
	app := newLsApp(t)

	err := app.run(t, "ls", "--playlist", "nope.lst")

	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
