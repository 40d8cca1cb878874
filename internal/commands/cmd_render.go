package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/songbook/internal/core/chordpro"
	"github.com/colonyops/songbook/internal/core/layout"
	"github.com/colonyops/songbook/internal/core/pitch"
	"github.com/colonyops/songbook/internal/core/render"
	"github.com/colonyops/songbook/internal/core/styles"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

type RenderCmd struct {
	flags *Flags

	// flags
	song      string
	key       string
	transpose int
	width     int
	height    int
	slack     int
	padding   int
	color     bool

	stdin      io.Reader
	isTerminal func() bool
	termSize   func() (int, int, error)
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	fd := int(os.Stdout.Fd())
	return &RenderCmd{
		flags:      flags,
		stdin:      os.Stdin,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		termSize:   func() (int, int, error) { return term.GetSize(fd) },
	}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Print a song laid out in columns",
		UsageText: "songbook render [options] [FILE]",
		Description: `Parses a chord sheet and prints it with chords aligned above the lyrics,
wrapped and packed into columns that fit the terminal.

The song is read from FILE, from the library with --song, or from stdin.
A song name may carry a forced key suffix such as "Amazing Grace [D]".`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "song",
				Aliases:     []string{"s"},
				Usage:       "render a song from the library by name",
				Destination: &cmd.song,
			},
			&cli.StringFlag{
				Name:        "key",
				Aliases:     []string{"k"},
				Usage:       "display key for songs that declare one (e.g. D, Bb, F#)",
				Destination: &cmd.key,
			},
			&cli.IntFlag{
				Name:        "transpose",
				Aliases:     []string{"t"},
				Usage:       "extra semitones to transpose by",
				Destination: &cmd.transpose,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "output width (defaults to the terminal width)",
				Destination: &cmd.width,
			},
			&cli.IntFlag{
				Name:        "height",
				Usage:       "output height (defaults to the terminal height)",
				Destination: &cmd.height,
			},
			&cli.IntFlag{
				Name:        "slack",
				Usage:       "extra column size added to the median line width (defaults to extra_column_size)",
				Destination: &cmd.slack,
			},
			&cli.IntFlag{
				Name:        "padding",
				Usage:       "spaces between columns (defaults to column_padding)",
				Destination: &cmd.padding,
			},
			&cli.BoolFlag{
				Name:        "color",
				Usage:       "style chords, comments and titles",
				Destination: &cmd.color,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if !c.IsSet("slack") {
		cmd.slack = cfg.ExtraColumnSize
	}
	if !c.IsSet("padding") {
		cmd.padding = cfg.ColumnPadding
	}
	if cmd.slack < 0 || cmd.padding < 0 {
		return fmt.Errorf("--slack and --padding must not be negative")
	}

	opts := chordpro.Options{Transpose: cmd.transpose}
	if cmd.key != "" {
		k, err := pitch.FromName(cmd.key)
		if err != nil {
			return fmt.Errorf("parse --key: %w", err)
		}
		opts.Key = &k
	}

	doc, forced, err := cmd.document(c.Args().First())
	if err != nil {
		return err
	}
	if opts.Key == nil {
		opts.Key = forced
	}

	song := chordpro.ParseWith(doc, opts)
	width, height := cmd.size()

	log.Debug().
		Str("title", song.Title).
		Int("transposition", song.Transposition).
		Int("width", width).
		Int("height", height).
		Msg("render song")

	return writeSong(c.Root().Writer, song, renderOptions{
		Width:   width,
		Height:  height,
		Slack:   cmd.slack,
		Padding: cmd.padding,
		Color:   cmd.color,
	})
}

// document returns the source text to render and the key forced by a
// library song reference.
func (cmd *RenderCmd) document(file string) (string, *pitch.Class, error) {
	switch {
	case cmd.song != "" && file != "":
		return "", nil, fmt.Errorf("use either FILE or --song, not both")
	case cmd.song != "":
		cat, err := cmd.flags.Catalog()
		if err != nil {
			return "", nil, err
		}
		name, key := chordpro.SplitForcedKey(cmd.song)
		doc, err := cat.Text(name)
		if err != nil {
			// a title may itself end in brackets
			if doc, err = cat.Text(cmd.song); err != nil {
				return "", nil, err
			}
			key = nil
		}
		return doc, key, nil
	case file != "" && file != "-":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", nil, fmt.Errorf("read song: %w", err)
		}
		return string(data), nil, nil
	}

	if cmd.isTerminal() {
		return "", nil, fmt.Errorf("no input provided (stdin is a terminal); pass FILE, use --song, or pipe a song")
	}
	data, err := io.ReadAll(cmd.stdin)
	if err != nil {
		return "", nil, fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil, nil
}

// size resolves the output size from the flags, then the terminal.
func (cmd *RenderCmd) size() (int, int) {
	width, height := cmd.width, cmd.height
	if width > 0 && height > 0 {
		return width, height
	}

	tw, th, err := cmd.termSize()
	if err != nil || tw <= 0 || th <= 0 {
		tw, th = fallbackWidth, fallbackHeight
	}
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = th
	}
	return width, height
}

type renderOptions struct {
	Width   int
	Height  int
	Slack   int
	Padding int
	Color   bool
}

// writeSong prints a header line, a blank line and the song's columns. When
// the columns are wider than the output they continue in further bands
// below.
func writeSong(w io.Writer, song chordpro.Song, opts renderOptions) error {
	rowString := render.Row.String
	if opts.Color {
		rowString = styles.Row
	}

	var out strings.Builder
	out.WriteString(songHeader(song, opts.Color))
	out.WriteString("\n")

	// header and blank line stand in for the border rows
	cols := layout.Layout(song.Content, layout.Options{
		Width:  opts.Width,
		Height: opts.Height,
		Slack:  opts.Slack,
	})

	for len(cols) > 0 {
		n := layout.Fit(cols, opts.Width, opts.Padding)
		out.WriteString("\n")
		for _, line := range joinColumns(cols[:n], opts.Padding, rowString) {
			out.WriteString(line)
			out.WriteString("\n")
		}
		cols = cols[n:]
	}

	_, err := io.WriteString(w, out.String())
	return err
}

func songHeader(song chordpro.Song, color bool) string {
	title := song.Title
	if title == "" {
		title = "Untitled"
	}

	meta := ""
	if song.DisplayKey != nil {
		meta = "key " + song.DisplayKey.String()
	}
	if song.Transposition != 0 {
		meta = strings.TrimSpace(fmt.Sprintf("%s %+d", meta, song.Transposition))
	}

	if color {
		title = styles.TitleStyle.Render(title)
		if meta != "" {
			meta = styles.StatusStyle.Render(meta)
		}
	}
	if meta == "" {
		return title
	}
	return title + "  " + meta
}

// joinColumns places cols side by side. Every row of a column is padded to
// the column width so later columns stay aligned.
func joinColumns(cols []layout.Column, padding int, rowString func(render.Row) string) []string {
	height := 0
	for _, col := range cols {
		height = max(height, col.Height())
	}

	lines := make([]string, height)
	for i, col := range cols {
		gap := ""
		if i > 0 {
			gap = strings.Repeat(" ", padding)
		}
		width := col.Width()
		rows := col.Rows()
		for r := range lines {
			cell := strings.Repeat(" ", width)
			if r < len(rows) {
				cell = rowString(rows[r]) + strings.Repeat(" ", max(width-rows[r].Width(), 0))
			}
			lines[r] += gap + cell
		}
	}

	for r := range lines {
		lines[r] = strings.TrimRight(lines[r], " ")
	}
	return lines
}
