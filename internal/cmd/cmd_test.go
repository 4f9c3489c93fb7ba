package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymirror/internal/config"
	"keymirror/internal/domain"
)

const sampleBindings = `[
  {"key": "ctrl+c", "command": "copy", "when": "editorFocus"},
  {"key": "alt+x", "command": "cut"},
  {"key": "ctrl+k ctrl+s", "command": "save", "args": {"b": 1, "a": [true, null]}}
]`

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("KEYMIRROR_HOME", home)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	container, err := NewContainer(ContainerOptions{HomePath: home, Version: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	var out bytes.Buffer
	cli := &CLI{Container: container}
	cli.SetSettings(&config.Settings{})
	cli.SetIO(strings.NewReader(""), &out)
	return cli, &out
}

func defaultConvertCmd(input, output string) *ConvertCmd {
	return &ConvertCmd{
		Format:  config.DefaultInputFormat,
		Indent:  config.DefaultOutputIndent,
		Input:   input,
		Output:  output,
		Policy:  config.DefaultPolicy,
		Workers: config.DefaultWorkers,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConvertCmd_Stdout(t *testing.T) {
	cli, out := newTestCLI(t)
	input := writeFile(t, "keybindings.json", sampleBindings)

	require.NoError(t, defaultConvertCmd(input, "-").Run(cli))

	want := `[
  {
    "key": "ctrl+c",
    "command": "-copy",
    "when": "editorFocus"
  },
  {
    "key": "meta+c",
    "command": "copy",
    "when": "editorFocus"
  },
  {
    "key": "ctrl+k ctrl+s",
    "command": "-save",
    "args": {
      "b": 1,
      "a": [
        true,
        null
      ]
    }
  },
  {
    "key": "meta+k meta+s",
    "command": "save",
    "args": {
      "b": 1,
      "a": [
        true,
        null
      ]
    }
  }
]
`
	assert.Equal(t, want, out.String())
}

func TestConvertCmd_Stdin(t *testing.T) {
	cli, out := newTestCLI(t)
	cli.SetIO(strings.NewReader(`[{"key":"ctrl+a","command":"all"}]`), out)

	cmd := defaultConvertCmd("-", "-")
	cmd.Indent = 0
	require.NoError(t, cmd.Run(cli))

	assert.Equal(t, `[{"key":"ctrl+a","command":"-all"},{"key":"meta+a","command":"all"}]`+"\n", out.String())
}

func TestConvertCmd_FileRecordsHistory(t *testing.T) {
	cli, out := newTestCLI(t)
	input := writeFile(t, "keybindings.json", sampleBindings)
	output := filepath.Join(t.TempDir(), "mac", "keybindings.json")

	cmd := defaultConvertCmd(input, output)
	cmd.Policy = "passthrough"
	require.NoError(t, cmd.Run(cli))

	assert.Contains(t, out.String(), "Wrote 5 keybindings to "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var records []domain.Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 5)
	assert.Equal(t, "alt+x", records[2].Key)
	assert.Equal(t, "cut", records[2].Command)

	history, err := cli.Container.History()
	require.NoError(t, err)
	runs, err := history.List(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "passthrough", runs[0].Policy)
	assert.Equal(t, 3, runs[0].Stats.Input)
	assert.Equal(t, 1, runs[0].Stats.PassedThrough)
	assert.Contains(t, out.String(), runs[0].ID)
}

func TestConvertCmd_NoHistory(t *testing.T) {
	cli, _ := newTestCLI(t)
	input := writeFile(t, "keybindings.json", sampleBindings)

	cmd := defaultConvertCmd(input, "-")
	cmd.NoHistory = true
	require.NoError(t, cmd.Run(cli))

	history, err := cli.Container.History()
	require.NoError(t, err)
	runs, err := history.List(t.Context(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestConvertCmd_SettingsApplyBelowFlags(t *testing.T) {
	cli, out := newTestCLI(t)
	history := false
	cli.SetSettings(&config.Settings{Policy: "passthrough", History: &history})
	input := writeFile(t, "keybindings.json", `[{"key":"alt+x","command":"cut"}]`)

	cmd := defaultConvertCmd(input, "-")
	cmd.Indent = 0
	require.NoError(t, cmd.Run(cli))
	assert.Equal(t, `[{"key":"alt+x","command":"cut"}]`+"\n", out.String())

	out.Reset()
	cmd = defaultConvertCmd(input, "-")
	cmd.Policy = "drop"
	cmd.Indent = 0
	// "drop" equals the default, so the setting still wins
	require.NoError(t, cmd.Run(cli))
	assert.Equal(t, `[{"key":"alt+x","command":"cut"}]`+"\n", out.String())

	out.Reset()
	cmd = defaultConvertCmd(input, "-")
	cmd.Policy = "pass-through"
	cmd.Indent = 0
	require.NoError(t, cmd.Run(cli))
	assert.Equal(t, `[{"key":"alt+x","command":"cut"}]`+"\n", out.String())
}

func TestConvertCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mutate  func(c *ConvertCmd)
		wantErr string
		isErr   error
	}{
		{
			name:    "unknown policy",
			input:   `[]`,
			mutate:  func(c *ConvertCmd) { c.Policy = "mirror" },
			wantErr: "mirror",
			isErr:   domain.ErrUnknownPolicy,
		},
		{
			name:    "unknown format",
			input:   `[]`,
			mutate:  func(c *ConvertCmd) { c.Format = "yaml" },
			wantErr: "yaml",
			isErr:   domain.ErrUnknownFormat,
		},
		{
			name:    "not an array",
			input:   `{"key": "ctrl+a"}`,
			wantErr: "failed to load keybindings",
			isErr:   domain.ErrNotAnArray,
		},
		{
			name:    "missing command",
			input:   `[{"key": "ctrl+a"}]`,
			wantErr: `record 0`,
			isErr:   domain.ErrMissingField,
		},
		{
			name:    "negative indent",
			input:   `[]`,
			mutate:  func(c *ConvertCmd) { c.Indent = -1 },
			wantErr: "indent must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out := newTestCLI(t)
			input := writeFile(t, "keybindings.json", tt.input)
			cmd := defaultConvertCmd(input, "-")
			if tt.mutate != nil {
				tt.mutate(cmd)
			}

			err := cmd.Run(cli)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
			assert.Empty(t, out.String())
		})
	}
}

func TestParseCmd_JSON(t *testing.T) {
	cli, out := newTestCLI(t)

	cmd := &ParseCmd{
		Format:    formatJSON,
		Policy:    config.DefaultPolicy,
		Sequences: []string{"Ctrl+Shift+K", "alt+x", "a b c"},
	}
	require.NoError(t, cmd.Run(cli))

	var got []parseOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "ctrl+shift+k", got[0].Canonical)
	assert.Equal(t, "remapped", got[0].Outcome)
	assert.Equal(t, "meta+shift+k", got[0].Remapped)
	assert.Equal(t, []chordOutput{{Label: "k", Modifiers: []string{"Control", "Shift"}}}, got[0].Chords)
	assert.Empty(t, got[0].Issues)

	assert.Equal(t, "dropped", got[1].Outcome)
	assert.Empty(t, got[1].Remapped)

	assert.Equal(t, "a b", got[2].Canonical)
	require.Len(t, got[2].Issues, 1)
	assert.Equal(t, string(domain.IssueExtraChords), got[2].Issues[0].Code)
	assert.Zero(t, got[2].Issues[0].Chord)
}

func TestParseCmd_Table(t *testing.T) {
	cli, out := newTestCLI(t)

	cmd := &ParseCmd{
		Format:    formatTable,
		Policy:    "passthrough",
		Sequences: []string{"ctrl+k ctrl+s", "shift+a", "hyper+"},
	}
	require.NoError(t, cmd.Run(cli))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "INPUT")
	assert.Contains(t, lines[1], "meta+k meta+s")
	assert.Contains(t, lines[1], "Control / Control")
	assert.Contains(t, lines[1], "remapped")
	assert.Contains(t, lines[2], "passthrough")
	assert.Contains(t, lines[3], "none")
	assert.Contains(t, lines[4], "dangling_modifier")
}

func TestCheckCmd(t *testing.T) {
	cli, out := newTestCLI(t)
	input := writeFile(t, "keybindings.json", `[
  {"key": "ctrl+c", "command": "copy"},
  {"key": "a+b", "command": "odd"},
  {"key": "", "command": "empty"}
]`)

	cmd := &CheckCmd{Format: formatJSON, Input: input, InputFormat: config.DefaultInputFormat}
	require.NoError(t, cmd.Run(cli))

	var got []recordIssuesOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, string(domain.IssueDiscardedLabel), got[0].Issues[0].Code)
	assert.Equal(t, 1, got[0].Issues[0].Chord)
	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, string(domain.IssueEmptySequence), got[1].Issues[0].Code)

	out.Reset()
	cmd.Strict = true
	cmd.Format = formatTable
	err := cmd.Run(cli)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 keybindings")
	assert.Contains(t, out.String(), "discarded_label")
}

func TestCheckCmd_Clean(t *testing.T) {
	cli, out := newTestCLI(t)
	input := writeFile(t, "keybindings.hjson", "[\n  // comment\n  {key: \"ctrl+c\", command: \"copy\"},\n]")

	cmd := &CheckCmd{Format: formatTable, Input: input, InputFormat: config.DefaultInputFormat, Strict: true}
	require.NoError(t, cmd.Run(cli))
	assert.Equal(t, "No issues found in "+input+"\n", out.String())
}

func TestHistoryCmds(t *testing.T) {
	cli, out := newTestCLI(t)
	input := writeFile(t, "keybindings.json", sampleBindings)
	output := filepath.Join(t.TempDir(), "out.json")

	for range 3 {
		require.NoError(t, defaultConvertCmd(input, output).Run(cli))
	}
	history, err := cli.Container.History()
	require.NoError(t, err)
	runs, err := history.List(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	out.Reset()
	require.NoError(t, (&HistoryListCmd{Format: formatTable, Limit: 2}).Run(cli))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[1], input)

	out.Reset()
	require.NoError(t, (&HistoryShowCmd{Format: formatJSON, ID: runs[0].ID}).Run(cli))
	var shown runOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, runs[0].ID, shown.ID)
	require.Len(t, shown.Records, 4)
	assert.Equal(t, "meta+k meta+s", shown.Records[3].Key)
	assert.Equal(t, 2, shown.Stats.Remapped)
	assert.Equal(t, 1, shown.Stats.Dropped)

	out.Reset()
	require.NoError(t, (&HistoryShowCmd{Format: formatTable, ID: runs[0].ID}).Run(cli))
	assert.Contains(t, out.String(), "Policy: drop")
	assert.Contains(t, out.String(), `{"b":1,"a":[true,null]}`)

	out.Reset()
	require.NoError(t, (&HistoryDeleteCmd{ID: runs[0].ID}).Run(cli))
	assert.Equal(t, "Deleted run "+runs[0].ID+"\n", out.String())

	err = (&HistoryShowCmd{Format: formatJSON, ID: runs[0].ID}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	out.Reset()
	require.NoError(t, (&HistoryPruneCmd{Keep: 1}).Run(cli))
	assert.Equal(t, "Removed 1 runs, kept the newest 1\n", out.String())

	remaining, err := history.List(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, runs[1].ID, remaining[0].ID)
}

func TestHistoryListCmd_Empty(t *testing.T) {
	cli, out := newTestCLI(t)

	require.NoError(t, (&HistoryListCmd{Format: formatTable, Limit: 20}).Run(cli))
	assert.Equal(t, "No runs recorded\n", out.String())

	out.Reset()
	require.NoError(t, (&HistoryListCmd{Format: formatJSON, Limit: 20}).Run(cli))
	assert.Equal(t, "[]\n", out.String())
}

func TestHistory_Unavailable(t *testing.T) {
	container, err := NewContainer(ContainerOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })
	cli := &CLI{Container: container}

	err = (&HistoryListCmd{Format: formatTable}).Run(cli)
	assert.ErrorIs(t, err, errHistoryUnavailable)
}

func TestSettingsCmds(t *testing.T) {
	cli, out := newTestCLI(t)

	require.NoError(t, (&SettingsSetCmd{Key: "policy", Value: "passthrough"}).Run(cli))
	assert.Contains(t, out.String(), "Set policy = passthrough")

	err := (&SettingsSetCmd{Key: "policy", Value: "mirror"}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)

	err = (&SettingsSetCmd{Key: "colour", Value: "red"}).Run(cli)
	assert.Error(t, err)

	loaded, err := config.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "passthrough", loaded.Policy)

	out.Reset()
	require.NoError(t, (&SettingsShowCmd{Format: formatTable}).Run(cli))
	assert.Contains(t, out.String(), `policy  "passthrough"`)

	out.Reset()
	require.NoError(t, (&SettingsMetaCmd{Format: formatJSON}).Run(cli))
	var meta map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &meta))
	assert.Equal(t, config.GetSettingsPath(), meta["settings_file"])
	assert.Contains(t, meta["format"], "history_limit")
}
