package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/songbook/internal/core/catalog"
	"github.com/colonyops/songbook/internal/tui"
	"github.com/colonyops/songbook/pkg/logutils"
	"github.com/colonyops/songbook/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags

	profilerPort int
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("SONGBOOK_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cat, err := cmd.flags.Catalog()
	if err != nil {
		return err
	}

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort, logutils.Component(log.Logger, "profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	cfg := cmd.flags.Config
	opts := tui.Options{
		AutoSelectSong:  cfg.AutoSelectSong,
		ExtraColumnSize: cfg.ExtraColumnSize,
		ColumnPadding:   cfg.ColumnPadding,
		Keybindings:     cfg.Keybindings,
	}

	if cfg.WatchLibrary {
		w, err := catalog.Watch(cat.Root(), catalog.DefaultDebounce, logutils.Component(log.Logger, "watcher"))
		if err != nil {
			return fmt.Errorf("watch library: %w", err)
		}
		defer func() { _ = w.Close() }()
		opts.Changes = w.Changes()
	}

	m := tui.New(cat, opts, logutils.Component(log.Logger, "tui"))

	log.Info().Str("library", cat.Root()).Int("entries", cat.Len()).Msg("starting browser")

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
