package chordpro

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/colonyops/songbook/internal/core/pitch"
)

var (
	reNewlines = regexp.MustCompile(`\n\r?|\r\n?`)
	reSpaces   = regexp.MustCompile(`[ \t]+`)
	reTags     = regexp.MustCompile(`\{([^{}\n]+?)(?::([^{}\n]+))?\}`)
	reChords   = regexp.MustCompile(`\[([^\n\[\]]*)\]`)
	reBlocks   = regexp.MustCompile(`[^ \n]+ *`)
)

// Options controls how a document is parsed.
type Options struct {
	// Key is the key the song should be displayed in. It only has an effect
	// on songs that declare their own key with a {key} tag.
	Key *pitch.Class

	// Transpose is an additional offset in semitones applied to every chord.
	Transpose int
}

// Parse parses a chord-sheet document. When target is non-nil, chords are
// moved from the key declared in the document to target.
func Parse(document string, target *pitch.Class) Song {
	return ParseWith(document, Options{Key: target})
}

// ParseWith parses a chord-sheet document with the given options. Parsing
// never fails: malformed tags are rendered as text and invalid key or capo
// values are ignored.
func ParseWith(document string, opts Options) Song {
	p := &parser{
		target:        opts.Key,
		transposition: opts.Transpose,
	}

	for _, line := range splitLines(normalize(document)) {
		p.parseLine(line)
	}

	p.song.Transposition = p.transposition
	if p.song.Key != nil {
		k := p.song.Key.TransposedBy(p.transposition)
		p.song.DisplayKey = &k
	}

	return p.song
}

// lineAction tells the line loop what to do after a directive.
type lineAction int

const (
	actionContinue lineAction = iota // keep parsing the rest of the line
	actionConsume                    // ignore the rest of the line
	actionDrop                       // ignore the whole line
)

// parser holds the state carried from one source line to the next.
type parser struct {
	song   Song
	target *pitch.Class

	chorus        bool
	header        bool
	transposition int
}

func (p *parser) parseLine(line string) {
	var (
		blocks []SongBlock
		tagged bool
	)

segments:
	for _, seg := range splitKeep(reTags, line) {
		if seg.groups == nil {
			blocks = append(blocks, p.parseContent(seg.text)...)
			continue
		}

		tagged = true
		name := strings.ToLower(strings.TrimSpace(seg.groups[1]))
		switch p.directive(name, seg.groups[2], &blocks) {
		case actionConsume:
			break segments
		case actionDrop:
			blocks = nil
			break segments
		}
	}

	if len(blocks) > 0 || !tagged {
		p.song.Content = append(p.song.Content, SongLine{Blocks: blocks, Chorus: p.chorus})
	}
}

func (p *parser) directive(name, value string, blocks *[]SongBlock) lineAction {
	switch name {
	case "t", "title":
		p.song.Title = strings.TrimSpace(value)
		return actionDrop
	case "st", "subtitle":
		p.song.Subtitle = strings.TrimSpace(value)
		if title := words(p.song.Subtitle, Title); len(title) > 0 {
			p.song.Content = append(p.song.Content, SongLine{Blocks: title})
		}
		return actionDrop
	case "key":
		declared, err := pitch.FromName(strings.TrimSpace(value))
		if err != nil {
			return actionConsume
		}
		if p.target != nil {
			p.transposition += pitch.Interval(declared, *p.target)
		}
		if p.song.Key == nil {
			p.song.Key = &declared
		}
		return actionConsume
	case "capo", "capo-bass_guitar":
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 0 {
			p.transposition -= n
		}
		return actionConsume
	case "c", "comment":
		*blocks = append(*blocks, words(value, Comment)...)
		return actionContinue
	case "soc", "start_of_chorus":
		p.chorus = true
		return actionConsume
	case "eoc", "end_of_chorus":
		p.chorus = false
		return actionContinue
	case "soh":
		p.header = true
		return actionConsume
	case "eoh":
		p.header = false
		return actionConsume
	default:
		return actionContinue
	}
}

func (p *parser) parseContent(content string) []SongBlock {
	if p.header {
		return words(content, Comment)
	}

	var blocks []SongBlock
	for _, word := range reBlocks.FindAllString(content, -1) {
		blocks = append(blocks, p.parseBlock(word))
	}
	return blocks
}

func (p *parser) parseBlock(word string) SongBlock {
	segs := splitKeep(reChords, word)
	block := make(SongBlock, 0, len(segs))
	for _, seg := range segs {
		if seg.groups == nil {
			block = append(block, Text(seg.text))
			continue
		}
		block = append(block, Chord(p.transpose(seg.groups[1])))
	}
	return block
}

func (p *parser) transpose(chord string) string {
	if p.transposition%12 == 0 {
		return chord
	}
	return pitch.TransposeChord(chord, p.transposition)
}

// words splits s on spaces into blocks of a single fragment each.
func words(s string, fragment func(string) SongString) []SongBlock {
	var blocks []SongBlock
	for _, w := range reBlocks.FindAllString(s, -1) {
		blocks = append(blocks, SongBlock{fragment(w)})
	}
	return blocks
}

// normalize converts every line ending to \n and collapses runs of spaces.
func normalize(document string) string {
	document = reNewlines.ReplaceAllString(document, "\n")
	return reSpaces.ReplaceAllString(document, " ")
}

// splitLines splits on \n. A trailing newline does not produce an extra empty
// line and an empty document has no lines.
func splitLines(document string) []string {
	if document == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(document, "\n"), "\n")
}

// segment is a piece of text produced by splitKeep. groups is nil for text
// between matches and holds the submatches for a match.
type segment struct {
	text   string
	groups []string
}

// splitKeep splits text around the matches of re, keeping the matches.
func splitKeep(re *regexp.Regexp, text string) []segment {
	var (
		result []segment
		last   int
	)

	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			result = append(result, segment{text: text[last:loc[0]]})
		}

		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[loc[2*i]:loc[2*i+1]]
			}
		}
		result = append(result, segment{text: text[loc[0]:loc[1]], groups: groups})
		last = loc[1]
	}

	if last < len(text) {
		result = append(result, segment{text: text[last:]})
	}

	return result
}
