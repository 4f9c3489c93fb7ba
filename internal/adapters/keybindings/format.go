package keybindings

import (
	"fmt"
	"path/filepath"
	"strings"

	"keymirror/internal/domain"
)

// Format selects how input bytes are decoded
type Format string

const (
	// FormatAuto decodes .hjson and .jsonc files as HJSON and anything else
	// as JSON, falling back to HJSON on a JSON syntax error
	FormatAuto  Format = "auto"
	FormatHJSON Format = "hjson"
	FormatJSON  Format = "json"
)

// ParseFormat resolves a format name. An empty name selects FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatHJSON, "jsonc":
		return FormatHJSON, nil
	}
	return "", fmt.Errorf("%w: %q (expected auto, json or hjson)", domain.ErrUnknownFormat, name)
}

// resolve narrows FormatAuto by file extension
func (f Format) resolve(path string) Format {
	if f != FormatAuto {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hjson", ".jsonc":
		return FormatHJSON
	}
	return FormatAuto
}
