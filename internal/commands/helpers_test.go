package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/songbook/internal/core/config"
	"github.com/colonyops/songbook/internal/printer"
)

var libraryFiles = map[string]string{
	"amazing.txt":       "{t:Amazing Grace}\n{key:G}\n[G]Amazing [C]grace\n",
	"hymns/be-thou.txt": "{title:Be Thou My Vision}\n[D]Be thou my vision\n",
	"hymns/sunday.lst":  "Sunday Morning\nAmazing Grace [A]\nNo Such Song\n",
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// newFlags returns flags with a default config pointing at a fresh library.
func newFlags(t *testing.T) *Flags {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, libraryFiles)

	cfg := config.DefaultConfig()
	cfg.Library = root
	return &Flags{
		LogLevel:   "info",
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		Config:     &cfg,
	}
}

type testApp struct {
	root   *cli.Command
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newTestApp() *testApp {
	a := &testApp{}
	a.root = &cli.Command{
		Name:      "songbook",
		Writer:    &a.stdout,
		ErrWriter: &a.stderr,
		// keep cli.Exit from terminating the test binary
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	return a
}

func (a *testApp) run(t *testing.T, args ...string) error {
	t.Helper()
	ctx := printer.NewContext(context.Background(), printer.New(&a.stderr))
	return a.root.Run(ctx, append([]string{"songbook"}, args...))
}
