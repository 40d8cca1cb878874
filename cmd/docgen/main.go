// Command docgen generates CLI reference documentation from the songbook
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/songbook/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "songbook",
		Usage:     "Browse, transpose and print chord sheets",
		UsageText: "songbook [global options] command [command options]",
		Description: `Songbook renders plain-text chord sheets with chords aligned above the
lyrics, wrapped into as many columns as the terminal fits.

Run 'songbook' with no arguments to browse the library interactively.
Run 'songbook render FILE' to print a single song.
Run 'songbook syntax' for the file format.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("SONGBOOK_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (empty discards logs)",
				Sources: cli.EnvVars("SONGBOOK_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("SONGBOOK_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "library",
				Aliases: []string{"l"},
				Usage:   "song library directory (overrides the config file)",
				Sources: cli.EnvVars("SONGBOOK_LIBRARY"),
			},
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	root = commands.NewRenderCmd(flags).Register(root)
	root = commands.NewLsCmd(flags).Register(root)
	root = commands.NewConfigCmd(flags).Register(root)
	root = commands.NewSyntaxCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
