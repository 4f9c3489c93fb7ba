// Package harness provides utilities for integration testing the keymirror CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - KEYMIRROR_HOME: Isolated per test (temp directory)
//   - KEYMIRROR_DEBUG: Disabled to reduce noise
//   - OTEL_EXPORTER_OTLP_ENDPOINT: Cleared so no spans are exported
package harness
