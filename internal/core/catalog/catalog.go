// Package catalog indexes a library directory of chord sheets and playlists.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/songbook/internal/core/chordpro"
	"github.com/colonyops/songbook/pkg/kv"
)

// ErrNotFound is returned when a song or playlist is not in the catalog.
var ErrNotFound = errors.New("not found")

// notFoundDocument is shown in place of songs a playlist references but the
// library does not contain.
const notFoundDocument = "{t:Song not found}"

// Options configures which files the catalog indexes.
type Options struct {
	SongPattern     string
	PlaylistPattern string
}

type document struct {
	entry Entry
	text  string
}

// Catalog is an in-memory index of a library directory. Songs are keyed by
// their display name, playlists by their path.
type Catalog struct {
	root      string
	fsys      fs.FS
	opts      Options
	songs     *kv.Store[string, document]
	playlists *kv.Store[string, document]
	log       zerolog.Logger
}

// Open indexes the library rooted at root.
func Open(root string, opts Options, logger zerolog.Logger) (*Catalog, error) {
	c := &Catalog{
		root:      root,
		fsys:      os.DirFS(root),
		opts:      opts,
		songs:     kv.New[string, document](),
		playlists: kv.New[string, document](),
		log:       logger,
	}

	if err := c.Reload(); err != nil {
		return nil, err
	}

	return c, nil
}

// Root returns the library directory.
func (c *Catalog) Root() string {
	return c.root
}

// Len returns the number of indexed songs and playlists.
func (c *Catalog) Len() int {
	return c.songs.Len() + c.playlists.Len()
}

// Reload rescans the library. On error the previous index is kept.
func (c *Catalog) Reload() error {
	songs, err := c.scan(c.opts.SongPattern, func(p, text string) Entry {
		return Entry{
			Kind: KindSong,
			Name: chordpro.ExtractTitle(text, baseName(p)),
			Path: p,
		}
	})
	if err != nil {
		return fmt.Errorf("scan songs: %w", err)
	}

	playlists, err := c.scan(c.opts.PlaylistPattern, func(p, _ string) Entry {
		return Entry{Kind: KindPlaylist, Name: baseName(p), Path: p}
	})
	if err != nil {
		return fmt.Errorf("scan playlists: %w", err)
	}

	songsByName := make(map[string]document, len(songs))
	for _, doc := range songs {
		if prev, ok := songsByName[doc.entry.Name]; ok {
			c.log.Warn().
				Str("name", doc.entry.Name).
				Str("path", doc.entry.Path).
				Str("shadowed", prev.entry.Path).
				Msg("duplicate song name")
		}
		songsByName[doc.entry.Name] = doc
	}

	playlistsByPath := make(map[string]document, len(playlists))
	for _, doc := range playlists {
		playlistsByPath[doc.entry.Path] = doc
	}

	c.songs.Replace(songsByName)
	c.playlists.Replace(playlistsByPath)

	c.log.Debug().
		Str("root", c.root).
		Int("songs", len(songsByName)).
		Int("playlists", len(playlistsByPath)).
		Msg("catalog indexed")

	return nil
}

// scan reads every file matching pattern, in lexical path order.
func (c *Catalog) scan(pattern string, toEntry func(p, text string) Entry) ([]document, error) {
	var docs []document

	err := doublestar.GlobWalk(c.fsys, pattern, func(p string, d fs.DirEntry) error {
		if isHidden(p) {
			return nil
		}

		data, err := fs.ReadFile(c.fsys, p)
		if err != nil {
			c.log.Warn().Err(err).Str("path", p).Msg("skipping unreadable file")
			return nil
		}

		text := string(data)
		docs = append(docs, document{entry: toEntry(p, text), text: text})
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	slices.SortFunc(docs, func(a, b document) int {
		return strings.Compare(a.entry.Path, b.entry.Path)
	})

	return docs, nil
}

// List returns the folders, songs and playlists directly inside dir, a
// slash-separated path relative to the library root. Folders come first,
// then everything else by name.
func (c *Catalog) List(dir string) ([]Entry, error) {
	dir = cleanDir(dir)

	dirents, err := fs.ReadDir(c.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}

	var entries []Entry
	for _, d := range dirents {
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		entries = append(entries, Entry{
			Kind: KindFolder,
			Name: d.Name(),
			Path: path.Join(dir, d.Name()),
		})
	}

	inDir := func(_ string, doc document) bool {
		return path.Dir(doc.entry.Path) == dir
	}
	for _, doc := range c.songs.Filter(inDir) {
		entries = append(entries, doc.entry)
	}
	for _, doc := range c.playlists.Filter(inDir) {
		entries = append(entries, doc.entry)
	}

	SortEntries(entries)
	return entries, nil
}

// Search returns songs and playlists whose name or content contains query,
// ignoring case. An empty query matches everything.
func (c *Catalog) Search(query string) []Entry {
	q := strings.ToLower(query)
	match := func(_ string, doc document) bool {
		return strings.Contains(strings.ToLower(doc.entry.Name), q) ||
			strings.Contains(strings.ToLower(doc.text), q)
	}

	var entries []Entry
	for _, doc := range c.songs.Filter(match) {
		entries = append(entries, doc.entry)
	}
	for _, doc := range c.playlists.Filter(match) {
		entries = append(entries, doc.entry)
	}

	SortEntries(entries)
	return entries
}

// Playlist returns the title of the playlist at path and one song entry per
// reference. References the library cannot resolve are marked Missing.
func (c *Catalog) Playlist(p string) (string, []Entry, error) {
	doc, ok := c.playlists.Get(p)
	if !ok {
		return "", nil, fmt.Errorf("playlist %q: %w", p, ErrNotFound)
	}

	pl := chordpro.ParsePlaylist(doc.text)
	title := pl.Title
	if title == "" {
		title = doc.entry.Name
	}

	entries := make([]Entry, 0, len(pl.Songs))
	for _, ref := range pl.Songs {
		e := Entry{Kind: KindSong, Name: ref}
		if song, ok := c.resolve(ref); ok {
			e.Path = song.entry.Path
		} else {
			e.Missing = true
		}
		entries = append(entries, e)
	}

	return title, entries, nil
}

// Load parses the song referenced by name, shifted by transpose semitones.
// A name carrying a forced key suffix, as in "Amazing Grace [D]", is played
// in that key.
func (c *Catalog) Load(name string, transpose int) (chordpro.Song, error) {
	doc, ok := c.songs.Get(name)
	opts := chordpro.Options{Transpose: transpose}

	if !ok {
		base, key := chordpro.SplitForcedKey(name)
		if key == nil {
			return chordpro.Song{}, fmt.Errorf("song %q: %w", name, ErrNotFound)
		}
		if doc, ok = c.songs.Get(base); !ok {
			return chordpro.Song{}, fmt.Errorf("song %q: %w", name, ErrNotFound)
		}
		opts.Key = key
	}

	return chordpro.ParseWith(doc.text, opts), nil
}

// Text returns the raw document of the song named name.
func (c *Catalog) Text(name string) (string, error) {
	doc, ok := c.resolve(name)
	if !ok {
		return "", fmt.Errorf("song %q: %w", name, ErrNotFound)
	}
	return doc.text, nil
}

func (c *Catalog) resolve(ref string) (document, bool) {
	if doc, ok := c.songs.Get(ref); ok {
		return doc, true
	}
	if base, key := chordpro.SplitForcedKey(ref); key != nil {
		return c.songs.Get(base)
	}
	return document{}, false
}

// Placeholder returns the song shown in place of a missing one.
func Placeholder() chordpro.Song {
	return chordpro.Parse(notFoundDocument, nil)
}

func baseName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

func cleanDir(dir string) string {
	dir = path.Clean(filepath.ToSlash(dir))
	if dir == "/" || dir == "" {
		return "."
	}
	return strings.TrimPrefix(dir, "/")
}

func isHidden(p string) bool {
	for _, part := range strings.Split(p, "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}
