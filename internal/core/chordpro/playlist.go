package chordpro

import (
	"regexp"
	"strings"

	"github.com/colonyops/songbook/internal/core/pitch"
)

// reForcedKey matches the key suffix of a playlist entry, as in
// "Amazing Grace [D]".
var reForcedKey = regexp.MustCompile(` \[([ABCDEFG][b#]?)\]`)

// Playlist is an ordered list of song references. A reference is a song
// name, optionally followed by a forced key in brackets.
type Playlist struct {
	Title string
	Songs []string
}

// ParsePlaylist reads a playlist file: the first line is the title, every
// following non-blank line names a song.
func ParsePlaylist(text string) Playlist {
	lines := splitLines(reNewlines.ReplaceAllString(text, "\n"))
	if len(lines) == 0 {
		return Playlist{}
	}

	pl := Playlist{Title: strings.TrimSpace(lines[0])}
	for _, line := range lines[1:] {
		if ref := strings.TrimSpace(line); ref != "" {
			pl.Songs = append(pl.Songs, ref)
		}
	}

	return pl
}

// SplitForcedKey separates a playlist reference into the song name and the
// key it should be played in. key is nil when the reference has no suffix.
func SplitForcedKey(ref string) (name string, key *pitch.Class) {
	loc := reForcedKey.FindStringSubmatchIndex(ref)
	if loc == nil {
		return ref, nil
	}

	c, err := pitch.FromName(ref[loc[2]:loc[3]])
	if err != nil {
		return ref, nil
	}

	return ref[:loc[0]] + ref[loc[1]:], &c
}
