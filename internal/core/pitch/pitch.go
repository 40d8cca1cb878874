// Package pitch models the twelve chromatic pitch classes and the semitone
// arithmetic used to transpose chord symbols.
package pitch

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnknownPitch is returned when a string does not name a pitch class.
var ErrUnknownPitch = errors.New("unknown pitch")

// Class is one of the twelve chromatic pitch classes, C = 0 through B = 11.
type Class uint8

const (
	C Class = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// names holds the output spelling of each class. Sharps are preferred.
var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// naturals maps a letter name to its class.
var naturals = map[byte]Class{
	'C': C,
	'D': D,
	'E': E,
	'F': F,
	'G': G,
	'A': A,
	'B': B,
}

// RootPattern matches the root note of a chord symbol: a letter A-G with an
// optional sharp or flat.
var RootPattern = regexp.MustCompile(`[ABCDEFG][b#]?`)

// FromName parses a note name such as "C", "F#" or "Bb".
func FromName(name string) (Class, error) {
	if len(name) == 0 || len(name) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPitch, name)
	}

	c, ok := naturals[name[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPitch, name)
	}

	if len(name) == 2 {
		switch name[1] {
		case '#':
			return c.TransposedBy(1), nil
		case 'b':
			return c.TransposedBy(-1), nil
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownPitch, name)
		}
	}

	return c, nil
}

// MustParse is like FromName but panics on an invalid name. Use it for
// constants only.
func MustParse(name string) Class {
	c, err := FromName(name)
	if err != nil {
		panic(err)
	}
	return c
}

// TransposedBy returns the class n semitones away. n may be negative or larger
// than an octave.
func (c Class) TransposedBy(n int) Class {
	return Class(normalize(int(c) + n))
}

// String returns the sharp spelling of the class.
func (c Class) String() string {
	return names[c%12]
}

// Interval returns the shortest signed number of semitones that moves from to
// to. The result is in [-5, 6].
func Interval(from, to Class) int {
	d := normalize(int(to) - int(from))
	if d > 6 {
		d -= 12
	}
	return d
}

// TransposeChord rewrites every root note in a chord symbol by n semitones.
// Qualifiers and anything that is not a root note are left as-is, so "Cmaj7/G"
// moved up two semitones becomes "Dmaj7/A".
func TransposeChord(chord string, n int) string {
	return RootPattern.ReplaceAllStringFunc(chord, func(root string) string {
		c, err := FromName(root)
		if err != nil {
			return root
		}
		return c.TransposedBy(n).String()
	})
}

func normalize(n int) int {
	return ((n % 12) + 12) % 12
}
