package commands

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/songbook/internal/core/styles"
)

//go:embed syntax.md
var syntaxGuide string

type SyntaxCmd struct {
	flags *Flags

	raw   bool
	width int
}

// NewSyntaxCmd creates a new syntax command
func NewSyntaxCmd(flags *Flags) *SyntaxCmd {
	return &SyntaxCmd{flags: flags}
}

// Register adds the syntax command to the application
func (cmd *SyntaxCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "syntax",
		Usage:       "Show a cheat sheet of the chord sheet format",
		UsageText:   "songbook syntax [--raw]",
		Description: "Prints the song and playlist file format, rendered for the terminal.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print the markdown source",
				Destination: &cmd.raw,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "word wrap width",
				Value:       80,
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *SyntaxCmd) run(_ context.Context, c *cli.Command) error {
	w := c.Root().Writer
	if cmd.raw {
		_, err := io.WriteString(w, syntaxGuide)
		return err
	}

	out, err := renderMarkdown(syntaxGuide, cmd.width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
