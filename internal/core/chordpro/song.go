// Package chordpro parses chord-sheet documents written in a ChordPro-like
// tag format into a Song: an ordered list of lines made of word blocks, each
// block holding chord, lyric and comment fragments in source order.
package chordpro

import (
	"github.com/colonyops/songbook/internal/core/pitch"
)

// Kind identifies what a SongString holds.
type Kind uint8

const (
	KindText Kind = iota
	KindChord
	KindComment
	KindTitle
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindChord:
		return "chord"
	case KindComment:
		return "comment"
	case KindTitle:
		return "title"
	default:
		return "unknown"
	}
}

// SongString is a single fragment of a block.
type SongString struct {
	Kind Kind
	Text string
}

// Chord returns a chord fragment.
func Chord(s string) SongString { return SongString{Kind: KindChord, Text: s} }

// Text returns a lyric fragment.
func Text(s string) SongString { return SongString{Kind: KindText, Text: s} }

// Comment returns a comment fragment.
func Comment(s string) SongString { return SongString{Kind: KindComment, Text: s} }

// Title returns a title fragment.
func Title(s string) SongString { return SongString{Kind: KindTitle, Text: s} }

// SongBlock is one word of a source line, including the space that followed
// it. Wrapping may break between blocks but never inside one.
type SongBlock []SongString

// HasChords reports whether the block holds at least one chord.
func (b SongBlock) HasChords() bool {
	for _, s := range b {
		if s.Kind == KindChord {
			return true
		}
	}
	return false
}

// SongLine is a rendered line of a song.
type SongLine struct {
	Blocks []SongBlock
	Chorus bool
}

// IsBlank reports whether the line carries no blocks.
func (l SongLine) IsBlank() bool {
	return len(l.Blocks) == 0
}

// Song is a parsed chord sheet.
type Song struct {
	Title    string
	Subtitle string

	// Transposition is the net semitone offset applied to every chord.
	Transposition int

	// Key is the first key declared by a {key} tag, if any.
	Key *pitch.Class

	// DisplayKey is Key moved by Transposition: the key the chords are
	// rendered in.
	DisplayKey *pitch.Class

	Content []SongLine
}

// Name returns the display name used in lists: title and subtitle joined by
// a dash, or just the title.
func (s Song) Name() string {
	if s.Subtitle == "" {
		return s.Title
	}
	return s.Title + " - " + s.Subtitle
}
