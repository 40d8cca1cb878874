package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/songbook/internal/core/catalog"
)

// SongNameCompleter returns a ShellCompleteFunc that suggests song titles
// from the library as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func SongNameCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		cat, err := flags.Catalog()
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, e := range cat.Search("") {
			if e.Kind != catalog.KindSong {
				continue
			}
			_, _ = fmt.Fprintln(w, e.Name)
		}
	}
}
