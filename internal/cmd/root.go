package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"keymirror/internal/config"
	"keymirror/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Version     kong.VersionFlag `help:"Show version information"`

	Convert  ConvertCmd  `cmd:"" help:"Convert Ctrl keybindings into Command keybindings (default)" default:"withargs"`
	Parse    ParseCmd    `cmd:"" help:"Show how chord sequences are parsed and remapped"`
	Check    CheckCmd    `cmd:"" help:"Report keys the parser silently normalizes"`
	History  HistoryCmd  `cmd:"" help:"Inspect recorded conversion runs (list, show, delete, prune)"`
	Settings SettingsCmd `cmd:"" help:"Manage settings (meta)"`

	// Internal fields (not flags)
	Container    *Container       `kong:"-"`
	buildVersion string           `kong:"-"`
	settings     *config.Settings `kong:"-"`
	stdin        io.Reader        `kong:"-"`
	stdout       io.Writer        `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// SetBuildVersion records the version reported to tracing backends
func (c *CLI) SetBuildVersion(version string) {
	c.buildVersion = version
}

// SetIO replaces stdin and stdout for commands; nil keeps the process streams
func (c *CLI) SetIO(stdin io.Reader, stdout io.Writer) {
	c.stdin = stdin
	c.stdout = stdout
}

func (c *CLI) in() io.Reader {
	if c.stdin == nil {
		return os.Stdin
	}
	return c.stdin
}

func (c *CLI) out() io.Writer {
	if c.stdout == nil {
		return os.Stdout
	}
	return c.stdout
}

// loadedSettings returns the loaded settings, never nil
func (c *CLI) loadedSettings() *config.Settings {
	if c.settings == nil {
		return &config.Settings{}
	}
	return c.settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// Settings apply only while the flag holds its default and no env var is set.
	if c.settings != nil {
		if c.MaxLogFiles == config.DefaultMaxLogFiles {
			if _, hasEnv := os.LookupEnv("KEYMIRROR_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("KEYMIRROR_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	if _, err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		DebugFile:   c.DebugFile,
		MaxLogFiles: c.MaxLogFiles,
	}); err != nil {
		return err
	}

	// Created after logging so the GORM logger writes to the real handler
	container, err := NewContainer(ContainerOptions{
		HomePath: config.GetKeymirrorHome(),
		Version:  c.buildVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
