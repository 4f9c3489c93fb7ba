package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymirror/internal/domain"
)

// AssertSuccess verifies the command succeeded with exit code 0.
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Equal(tb, 0, result.ExitCode,
		"Expected success (exit 0), got %d.\nStdout: %s\nStderr: %s",
		result.ExitCode, result.Stdout, result.Stderr)
}

// AssertFailure verifies the command failed with exit code 1 and an
// "Error:" line on stderr.
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Equal(tb, 1, result.ExitCode,
		"Expected failure (exit 1), got %d.\nStdout: %s",
		result.ExitCode, result.Stdout)
	assert.Contains(tb, result.Stderr, "Error: ")
}

// AssertStdoutContains verifies stdout contains the expected string.
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected,
		"Expected stdout to contain %q.\nActual stdout: %s",
		expected, result.Stdout)
}

// AssertStdoutNotContains verifies stdout does not contain the string.
func AssertStdoutNotContains(tb testing.TB, result CommandResult, unexpected string) {
	tb.Helper()
	assert.NotContains(tb, result.Stdout, unexpected,
		"Expected stdout NOT to contain %q.\nActual stdout: %s",
		unexpected, result.Stdout)
}

// AssertStderrContains verifies stderr contains the expected string.
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected,
		"Expected stderr to contain %q.\nActual stderr: %s",
		expected, result.Stderr)
}

// AssertValidJSON verifies stdout is valid JSON and unmarshals it into target.
func AssertValidJSON(tb testing.TB, result CommandResult, target any) {
	tb.Helper()
	err := json.Unmarshal([]byte(result.Stdout), target)
	require.NoError(tb, err, "Expected valid JSON.\nStdout: %s", result.Stdout)
}

// DecodeRecords parses a keybindings array and returns "key -> command"
// pairs in output order.
func DecodeRecords(tb testing.TB, data string) []string {
	tb.Helper()
	var records []domain.Record
	require.NoError(tb, json.Unmarshal([]byte(data), &records), "Expected keybindings JSON.\nGot: %s", data)

	pairs := make([]string, len(records))
	for i, r := range records {
		pairs[i] = r.Key + " -> " + r.Command
	}
	return pairs
}
