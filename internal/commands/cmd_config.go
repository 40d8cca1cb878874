package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/songbook/internal/core/config"
	"github.com/colonyops/songbook/internal/core/styles"
	"github.com/colonyops/songbook/internal/printer"
	"github.com/colonyops/songbook/pkg/iojson"
)

type ConfigCmd struct {
	flags *Flags

	// init flags
	yes     bool
	library string

	// validate flags
	format string

	prompt func(cfg *config.Config) error
}

// NewConfigCmd creates the config command group.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags, prompt: promptConfig}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Write a new configuration file",
				UsageText: "songbook config init [options]",
				Description: `Writes a configuration file to the --config path.

An interactive form asks for the library directory, theme and list behavior.
Use --yes to write the defaults without prompts. An existing file is never overwritten.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "accept defaults without prompting",
						Destination: &cmd.yes,
					},
					&cli.StringFlag{
						Name:        "library",
						Usage:       "library directory to store in the config",
						Destination: &cmd.library,
					},
				},
				Action: cmd.runInit,
			},
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "songbook config validate [options]",
				Description: "Validates the configuration file, checking the library directory, theme, colors, glob patterns and keybindings.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runInit(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	cfg := config.DefaultConfig()
	if cmd.library != "" {
		cfg.Library = cmd.library
	}

	if !cmd.yes {
		if err := cmd.prompt(&cfg); err != nil {
			return fmt.Errorf("config form: %w", err)
		}
	}

	err := config.Write(cmd.flags.ConfigPath, cfg)
	if errors.Is(err, config.ErrConfigExists) {
		return fmt.Errorf("config exists at %s; remove it first or edit it directly", cmd.flags.ConfigPath)
	}
	if err != nil {
		return err
	}

	p.Successf("Created config: %s", cmd.flags.ConfigPath)
	return nil
}

func promptConfig(cfg *config.Config) error {
	themes := styles.ThemeNames()

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Library directory").
				Description("Directory containing your songs and playlists").
				Value(&cfg.Library),
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(themes...)...).
				Value(&cfg.Theme),
			huh.NewConfirm().
				Title("Open songs while moving through the list?").
				Value(&cfg.AutoSelectSong),
			huh.NewConfirm().
				Title("Reload when library files change?").
				Value(&cfg.WatchLibrary),
		),
	).Run()
}

// validationIssue is one failed check in the validate output.
type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationIssue          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	report := cmd.validate()

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, report); err != nil {
			return err
		}
	} else {
		printReport(printer.Ctx(ctx), cmd.flags.ConfigPath, report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

// validate reloads the file so load errors are reported like field errors.
func (cmd *ConfigCmd) validate() validationReport {
	cfg, err := config.Load(cmd.flags.ConfigPath, cmd.flags.Library)
	if err == nil {
		err = cfg.ValidateDeep(cmd.flags.ConfigPath)
	}

	if err != nil {
		return validationReport{Errors: issues(err)}
	}

	return validationReport{Valid: true, Warnings: cfg.Warnings()}
}

func issues(err error) []validationIssue {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	out := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}

func printReport(p *printer.Printer, path string, report validationReport) {
	for _, w := range report.Warnings {
		p.Warnf("%s: %s", w.Category, w.Message)
		if w.Item != "" {
			p.Printf("  Item: %s", w.Item)
		}
	}

	for _, e := range report.Errors {
		if e.Field != "" {
			p.Errorf("%s: %s", e.Field, e.Message)
		} else {
			p.Errorf("%s", e.Message)
		}
	}

	if report.Valid {
		p.Successf("Configuration is valid: %s", path)
		return
	}
	p.Errorf("%d error(s) found", len(report.Errors))
}
