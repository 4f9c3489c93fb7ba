package cmd

import (
	"encoding/json"
	"fmt"

	"keymirror/internal/adapters/keybindings"
	"keymirror/internal/config"
	"keymirror/internal/services"
	"keymirror/internal/theme"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
	Set  SettingsSetCmd  `cmd:"set" help:"Set one option in settings.json (rewrites the file as plain JSON)"`
	Show SettingsShowCmd `cmd:"show" help:"Show the options currently set in settings.json"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	out := cli.out()

	if s.Format == formatJSON {
		return printJSON(out, map[string]any{
			"settings_file": settingsFile,
			"format":        config.GetSettingsExample(),
		})
	}

	fmt.Fprintf(out, "Settings file: %s\n\n", settingsFile)
	fmt.Fprintln(out, theme.HeadingStyle.Render("Example settings.json:"))
	fmt.Fprintln(out)

	w := newTabWriter(out)
	for _, field := range config.GetSettingsFields() {
		data, err := json.Marshal(field.Example)
		if err != nil {
			return fmt.Errorf("failed to marshal example for %s: %w", field.Name, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", field.Name, field.Type, data)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Create or edit this file to configure keymirror. Comments and trailing commas are allowed.")
	fmt.Fprintln(out, "All settings are optional and have sensible defaults.")

	return nil
}

// SettingsShowCmd prints the loaded settings
type SettingsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	settings := cli.loadedSettings()
	out := cli.out()

	if s.Format == formatJSON {
		return printJSON(out, settings)
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	var set map[string]json.RawMessage
	if err := json.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	fmt.Fprintf(out, "Settings file: %s\n\n", config.GetSettingsPath())
	if len(set) == 0 {
		fmt.Fprintln(out, theme.MutedStyle.Render("No settings configured; defaults apply."))
		return nil
	}

	w := newTabWriter(out)
	for _, field := range config.GetSettingsFields() {
		if value, ok := set[field.Name]; ok {
			fmt.Fprintf(w, "%s\t%s\n", field.Name, value)
		}
	}
	return w.Flush()
}

// SettingsSetCmd sets one option
type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name (e.g., policy, workers, history)"`
	Value string `arg:"" help:"New value"`
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	switch s.Key {
	case "policy":
		if _, err := services.ParseRemapPolicy(s.Value); err != nil {
			return err
		}
	case "input_format":
		if _, err := keybindings.ParseFormat(s.Value); err != nil {
			return err
		}
	}

	// Start from the file on disk
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if err := settings.SetField(s.Key, s.Value); err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return err
	}

	cli.SetSettings(settings)
	fmt.Fprintf(cli.out(), "Set %s = %s in %s\n", s.Key, s.Value, config.GetSettingsPath())
	return nil
}
