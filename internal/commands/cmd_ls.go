package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/songbook/internal/core/catalog"
	"github.com/colonyops/songbook/internal/printer"
	"github.com/colonyops/songbook/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	playlist   string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List songs and playlists in the library",
		UsageText: "songbook ls [--json] [--playlist PATH] [QUERY]",
		Description: `Displays a table of the songs and playlists in the library.

QUERY filters by name or content, ignoring case.
Use --playlist to list the songs of one playlist; unresolved references are marked missing.
Use --json for one JSON document per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "playlist",
				Aliases:     []string{"p"},
				Usage:       "list the songs of the playlist at PATH (relative to the library)",
				Destination: &cmd.playlist,
			},
		},
		ShellComplete: SongNameCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	cat, err := cmd.flags.Catalog()
	if err != nil {
		return err
	}

	var entries []catalog.Entry
	if cmd.playlist != "" {
		var title string
		title, entries, err = cat.Playlist(cmd.playlist)
		if err != nil {
			return fmt.Errorf("list playlist: %w", err)
		}
		if !cmd.jsonOutput {
			p.Section(title)
		}
	} else {
		entries = cat.Search(c.Args().First())
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteLines(out, entries)
	}

	if len(entries) == 0 {
		p.Infof("No songs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tNAME\tPATH")
	for _, e := range entries {
		path := e.Path
		if e.Missing {
			path = "(missing)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.Kind, e.Name, path)
	}
	return w.Flush()
}
