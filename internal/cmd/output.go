package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Output formats shared by the read-only commands
const (
	formatJSON  = "json"
	formatTable = "table"
)

// printJSON writes v as indented JSON without HTML escaping, so chords
// such as "ctrl+<" print as typed
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
