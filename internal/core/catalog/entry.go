package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Kind distinguishes catalog entries.
type Kind uint8

const (
	KindFolder Kind = iota
	KindSong
	KindPlaylist
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindSong:
		return "song"
	case KindPlaylist:
		return "playlist"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one item of a listing.
type Entry struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
	// Path is slash-separated and relative to the library root. It is empty
	// for playlist references the library cannot resolve.
	Path    string `json:"path,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

// SortEntries orders folders first, then by case-insensitive name.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if (a.Kind == KindFolder) != (b.Kind == KindFolder) {
			if a.Kind == KindFolder {
				return -1
			}
			return 1
		}
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
}
