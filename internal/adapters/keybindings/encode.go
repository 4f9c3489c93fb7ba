package keybindings

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"keymirror/internal/domain"
)

// DefaultIndent is the number of spaces per nesting level in output
const DefaultIndent = 2

// Encode writes records as a JSON array followed by a newline.
// indent <= 0 writes compact JSON. HTML characters are not escaped.
func Encode(w io.Writer, records []domain.Record, indent int) error {
	if records == nil {
		records = []domain.Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode keybindings: %w", err)
	}
	return nil
}
