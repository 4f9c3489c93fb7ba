package integration_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"keymirror/test/integration/harness"
)

const vscodeBindings = `[
  {"key": "ctrl+c", "command": "editor.action.clipboardCopyAction", "when": "textInputFocus"},
  {"key": "alt+up", "command": "editor.action.moveLinesUpAction"},
  {"key": "ctrl+k ctrl+c", "command": "editor.action.addCommentLine", "args": {"b": 2, "a": 1}},
  {"key": "shift+ctrl+z", "command": "redo"}
]`

func TestConvert(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		files     map[string]string
		stdin     string
		wantPairs []string
		wantErr   string
	}{
		{
			name:  "default input path",
			args:  []string{},
			files: map[string]string{"keys/default.json": vscodeBindings},
			wantPairs: []string{
				"ctrl+c -> -editor.action.clipboardCopyAction",
				"meta+c -> editor.action.clipboardCopyAction",
				"ctrl+k ctrl+c -> -editor.action.addCommentLine",
				"meta+k meta+c -> editor.action.addCommentLine",
				"ctrl+shift+z -> -redo",
				"meta+shift+z -> redo",
			},
		},
		{
			name:  "explicit convert command with passthrough",
			args:  []string{"convert", "in.json", "--policy", "passthrough"},
			files: map[string]string{"in.json": vscodeBindings},
			wantPairs: []string{
				"ctrl+c -> -editor.action.clipboardCopyAction",
				"meta+c -> editor.action.clipboardCopyAction",
				"alt+up -> editor.action.moveLinesUpAction",
				"ctrl+k ctrl+c -> -editor.action.addCommentLine",
				"meta+k meta+c -> editor.action.addCommentLine",
				"ctrl+shift+z -> -redo",
				"meta+shift+z -> redo",
			},
		},
		{
			name:      "stdin",
			args:      []string{"-"},
			stdin:     `[{"key": "Ctrl+Alt+Delete", "command": "reboot"}]`,
			wantPairs: []string{"alt+ctrl+delete -> -reboot", "meta+alt+delete -> reboot"},
		},
		{
			name:      "hjson with comments",
			args:      []string{"keybindings.jsonc"},
			files:     map[string]string{"keybindings.jsonc": "// Place your key bindings in this file\n[\n  {\"key\": \"ctrl+s\", \"command\": \"save\"},\n]\n"},
			wantPairs: []string{"ctrl+s -> -save", "meta+s -> save"},
		},
		{
			name:      "empty array",
			args:      []string{"in.json"},
			files:     map[string]string{"in.json": "[]"},
			wantPairs: []string{},
		},
		{
			name:    "missing input",
			args:    []string{"missing.json"},
			wantErr: "failed to load keybindings from missing.json",
		},
		{
			name:    "not an array",
			args:    []string{"in.json"},
			files:   map[string]string{"in.json": `{"key": "ctrl+c"}`},
			wantErr: "keybindings must be a JSON array",
		},
		{
			name:    "unknown policy",
			args:    []string{"in.json", "--policy", "mirror"},
			files:   map[string]string{"in.json": "[]"},
			wantErr: "mirror",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)
			for name, content := range tt.files {
				env.WriteFile(name, content)
			}

			result := harness.RunCommandWithInput(t, env, tt.stdin, tt.args...)

			if tt.wantErr != "" {
				harness.AssertFailure(t, result)
				harness.AssertStderrContains(t, result, tt.wantErr)
				assert.Empty(t, result.Stdout)
				return
			}

			harness.AssertSuccess(t, result)
			assert.Equal(t, tt.wantPairs, harness.DecodeRecords(t, result.Stdout))
		})
	}
}

func TestConvert_PrettyOutput(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.WriteFile("in.json", `[{"key":"ctrl+a","command":"selectAll","args":{"text":"<&>"}}]`)

	result := harness.RunCommand(t, env, "in.json")

	harness.AssertSuccess(t, result)
	want := `[
  {
    "key": "ctrl+a",
    "command": "-selectAll",
    "args": {
      "text": "<&>"
    }
  },
  {
    "key": "meta+a",
    "command": "selectAll",
    "args": {
      "text": "<&>"
    }
  }
]
`
	assert.Equal(t, want, result.Stdout)
}

func TestConvert_OutputFile(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.WriteFile("in.json", vscodeBindings)

	result := harness.RunCommand(t, env, "in.json", "-o", filepath.Join("mac", "keybindings.json"), "--indent", "4")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Wrote 6 keybindings to mac/keybindings.json")
	harness.AssertStdoutContains(t, result, "remapped 3")
	harness.AssertStdoutContains(t, result, "dropped 1")

	written := env.ReadFile(filepath.Join("mac", "keybindings.json"))
	assert.True(t, strings.HasPrefix(written, "[\n    {\n        \"key\": \"ctrl+c\""), written)
	assert.Len(t, harness.DecodeRecords(t, written), 6)
}

func TestConvert_SettingsPolicy(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.WriteFile("in.json", `[{"key": "alt+x", "command": "cut"}]`)

	harness.AssertSuccess(t, harness.RunCommand(t, env, "settings", "set", "policy", "passthrough"))

	result := harness.RunCommand(t, env, "in.json")
	harness.AssertSuccess(t, result)
	assert.Equal(t, []string{"alt+x -> cut"}, harness.DecodeRecords(t, result.Stdout))

	// Environment beats settings.json
	env.SetEnv("KEYMIRROR_POLICY", "drop")
	result = harness.RunCommand(t, env, "in.json")
	harness.AssertSuccess(t, result)
	assert.Equal(t, []string{}, harness.DecodeRecords(t, result.Stdout))

	// Flags beat the environment
	result = harness.RunCommand(t, env, "in.json", "--policy", "passthrough")
	harness.AssertSuccess(t, result)
	assert.Equal(t, []string{"alt+x -> cut"}, harness.DecodeRecords(t, result.Stdout))
}
