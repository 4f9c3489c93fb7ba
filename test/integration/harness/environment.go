package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated test environment with its own KEYMIRROR_HOME.
type TestEnvironment struct {
	KeymirrorHome string
	extraEnv      map[string]string
	tb            testing.TB
	workDir       string
}

// NewTestEnvironment creates an isolated test environment with a temp KEYMIRROR_HOME
// and a separate working directory for input and output files.
// The temp directories are automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		KeymirrorHome: tb.TempDir(),
		extraEnv:      make(map[string]string),
		tb:            tb,
		workDir:       tb.TempDir(),
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out KEYMIRROR_* and OTEL_* variables and sets:
//   - KEYMIRROR_HOME to the temp directory
//   - KEYMIRROR_DEBUG to empty string (disables debug logging)
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+2+len(e.extraEnv))

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "KEYMIRROR_") || strings.HasPrefix(key, "OTEL_") {
			continue
		}
		if _, overridden := e.extraEnv[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"KEYMIRROR_HOME="+e.KeymirrorHome,
		"KEYMIRROR_DEBUG=",
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// DBPath returns the path to the run history database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.KeymirrorHome, "history.db")
}

// SettingsPath returns the path to settings.json.
func (e *TestEnvironment) SettingsPath() string {
	return filepath.Join(e.KeymirrorHome, "settings.json")
}

// WorkDir returns the directory commands run in.
func (e *TestEnvironment) WorkDir() string {
	return e.workDir
}

// WriteFile writes content to a path relative to the working directory
// and returns the absolute path.
func (e *TestEnvironment) WriteFile(name, content string) string {
	e.tb.Helper()

	path := filepath.Join(e.workDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.tb.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.tb.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// ReadFile reads a path relative to the working directory.
func (e *TestEnvironment) ReadFile(name string) string {
	e.tb.Helper()

	data, err := os.ReadFile(filepath.Join(e.workDir, name))
	if err != nil {
		e.tb.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}
