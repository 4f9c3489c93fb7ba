package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"keymirror/internal/adapters/keybindings"
	"keymirror/internal/config"
	"keymirror/internal/logging"
	"keymirror/internal/services"
	"keymirror/internal/theme"
)

// ConvertCmd rewrites Ctrl keybindings as Command keybindings
type ConvertCmd struct {
	Format    string `help:"Input format: auto, json or hjson" default:"auto" env:"KEYMIRROR_INPUT_FORMAT"`
	Indent    int    `help:"Spaces per indentation level in the output (0 = compact)" default:"2" env:"KEYMIRROR_OUTPUT_INDENT"`
	Input     string `arg:"" optional:"" help:"Keybindings file to read, or - for stdin" default:"keys/default.json"`
	NoHistory bool   `help:"Do not record this run in the history database"`
	Output    string `help:"File to write, or - for stdout" short:"o" default:"-"`
	Policy    string `help:"What to do with bindings without Ctrl: drop or passthrough" default:"drop" env:"KEYMIRROR_POLICY"`
	Workers   int    `help:"Parallel remap workers (0 = one per CPU)" default:"0" env:"KEYMIRROR_WORKERS"`
}

// Run executes the convert command
func (c *ConvertCmd) Run(cli *CLI) error {
	settings := cli.loadedSettings()
	c.applySettings(settings)

	policy, err := services.ParseRemapPolicy(c.Policy)
	if err != nil {
		return err
	}
	format, err := keybindings.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	historyLimit := config.DefaultHistoryLimit
	if settings.HistoryLimit != nil {
		historyLimit = *settings.HistoryLimit
	}

	logging.Logger.Debug("Convert options resolved",
		"input", c.Input,
		"output", c.Output,
		"format", format,
		"policy", policy,
		"workers", c.Workers,
		"indent", c.Indent)

	keymap := cli.Container.NewKeymapService(
		services.NewRemapper(policy, c.Workers),
		settings.HistoryEnabled(),
		historyLimit,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := keymap.Convert(ctx, services.ConvertParams{
		NoHistory: c.NoHistory,
		Sink:      keybindings.NewFileSink(c.Output, c.Indent, cli.out()),
		Source:    keybindings.NewFileSource(c.Input, format, cli.in()),
	})
	if err != nil {
		return err
	}

	// stdout carries the bindings themselves
	if c.Output == keybindings.StdioPath {
		return nil
	}

	out := cli.out()
	fmt.Fprintf(out, "Wrote %d keybindings to %s\n", result.Stats.Output, c.Output)
	fmt.Fprintf(out, "  %s %d  %s %d  %s %d\n",
		theme.RemappedStyle.Render("remapped"), result.Stats.Remapped,
		theme.DroppedStyle.Render("dropped"), result.Stats.Dropped,
		theme.PassedThroughStyle.Render("passthrough"), result.Stats.PassedThrough)
	if result.RunID != "" {
		fmt.Fprintf(out, "  %s %s\n", theme.LabelStyle.Render("run"), result.RunID)
	}
	return nil
}

// applySettings fills flags still at their default from settings.json,
// unless the matching environment variable is set
func (c *ConvertCmd) applySettings(settings *config.Settings) {
	applyString(&c.Format, config.DefaultInputFormat, "KEYMIRROR_INPUT_FORMAT", settings.InputFormat)
	applyInt(&c.Indent, config.DefaultOutputIndent, "KEYMIRROR_OUTPUT_INDENT", settings.OutputIndent)
	applyString(&c.Policy, config.DefaultPolicy, "KEYMIRROR_POLICY", settings.Policy)
	applyInt(&c.Workers, config.DefaultWorkers, "KEYMIRROR_WORKERS", settings.Workers)
}

func applyString(flag *string, defaultValue, env, setting string) {
	if *flag != defaultValue || setting == "" {
		return
	}
	if _, hasEnv := os.LookupEnv(env); hasEnv {
		return
	}
	*flag = setting
}

func applyInt(flag *int, defaultValue int, env string, setting *int) {
	if *flag != defaultValue || setting == nil {
		return
	}
	if _, hasEnv := os.LookupEnv(env); hasEnv {
		return
	}
	*flag = *setting
}
