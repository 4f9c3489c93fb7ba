package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/hjson"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults applied when neither a flag, an environment variable nor
// settings.json provide a value
const (
	DefaultHistoryLimit = 50
	DefaultInputFormat  = "auto"
	DefaultMaxLogFiles  = 1000
	DefaultOutputIndent = 2
	DefaultPolicy       = "drop"
	DefaultWorkers      = 0 // one per CPU
)

// Settings represents the structure of $KEYMIRROR_HOME/settings.json.
// The file may use HJSON syntax (comments, trailing commas).
type Settings struct {
	Debug        *bool  `json:"debug,omitempty"`
	History      *bool  `json:"history,omitempty"`
	HistoryLimit *int   `json:"history_limit,omitempty"`
	InputFormat  string `json:"input_format,omitempty"`
	MaxLogFiles  *int   `json:"max_log_files,omitempty"`
	OutputIndent *int   `json:"output_indent,omitempty"`
	Policy       string `json:"policy,omitempty"`
	Workers      *int   `json:"workers,omitempty"`
}

// HistoryEnabled reports whether runs should be recorded (default true)
func (s *Settings) HistoryEnabled() bool {
	return s == nil || s.History == nil || *s.History
}

// LoadSettings loads settings from $KEYMIRROR_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from path
func LoadSettingsFrom(path string) (*Settings, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), hjson.Parser()); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	var settings Settings
	if err := k.UnmarshalWithConf("", &settings, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $KEYMIRROR_HOME/settings.json
func SaveSettings(settings *Settings) error {
	return SaveSettingsTo(GetSettingsPath(), settings)
}

// SaveSettingsTo saves settings as indented JSON to path
func SaveSettingsTo(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
