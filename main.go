package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/songbook/internal/commands"
	"github.com/colonyops/songbook/internal/core/config"
	"github.com/colonyops/songbook/internal/core/styles"
	"github.com/colonyops/songbook/internal/printer"
	"github.com/colonyops/songbook/pkg/logutils"
)

var (
	// Build information, set with -ldflags at release time.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// ldflags aren't set by `go install`; fall back to the module version
	// and VCS metadata Go records in the binary.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := printer.NewContext(context.Background(), printer.New(os.Stderr))

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "songbook",
		Usage:     "Browse, transpose and print chord sheets",
		UsageText: "songbook [global options] command [command options]",
		Description: `Songbook renders plain-text chord sheets with chords aligned above the
lyrics, wrapped into as many columns as the terminal fits.

Run 'songbook' with no arguments to browse the library interactively.
Run 'songbook render FILE' to print a single song.
Run 'songbook syntax' for the file format.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SONGBOOK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (empty discards logs)",
				Sources:     cli.EnvVars("SONGBOOK_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SONGBOOK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "library",
				Aliases:     []string{"l"},
				Usage:       "song library directory (overrides the config file)",
				Sources:     cli.EnvVars("SONGBOOK_LIBRARY"),
				Destination: &flags.Library,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.Library)
			if err != nil {
				// config subcommands report load errors themselves
				if c.Args().First() != "config" {
					return ctx, fmt.Errorf("load config: %w", err)
				}
				log.Warn().Err(err).Msg("using default config")
				defaults := config.DefaultConfig()
				cfg = &defaults
			}
			flags.Config = cfg

			// Unknown names fall back to the default theme; config validate reports them.
			palette, ok := styles.GetPalette(cfg.Theme)
			if !ok {
				log.Warn().Str("theme", cfg.Theme).Msg("unknown theme")
				palette, _ = styles.GetPalette(styles.DefaultTheme)
			}
			styles.SetTheme(palette)

			for _, name := range styles.ColorNames {
				hex, ok := cfg.Colors[name]
				if !ok {
					continue
				}
				if err := styles.SetColor(name, hex); err != nil {
					log.Warn().Err(err).Str("color", name).Msg("ignoring color override")
				}
			}

			log.Debug().
				Str("config", flags.ConfigPath).
				Str("library", cfg.Library).
				Str("theme", cfg.Theme).
				Msg("config loaded")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewRenderCmd(flags).Register(app)
	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = commands.NewSyntaxCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'songbook --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
