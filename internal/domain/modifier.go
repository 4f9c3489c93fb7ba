package domain

import "strings"

// Modifier is a set of keyboard modifier flags
type Modifier uint8

const (
	ModNone    Modifier = 0
	ModShift   Modifier = 1 << 0
	ModControl Modifier = 1 << 1
	ModCommand Modifier = 1 << 2
	ModOption  Modifier = 1 << 3
)

// modifierOrder is the canonical display order
var modifierOrder = []struct {
	mod    Modifier
	prefix string
	name   string
}{
	{ModCommand, "meta+", "Command"},
	{ModOption, "alt+", "Option"},
	{ModControl, "ctrl+", "Control"},
	{ModShift, "shift+", "Shift"},
}

// Has reports whether every flag in mod is set
func (m Modifier) Has(mod Modifier) bool {
	return mod != ModNone && m&mod == mod
}

// With returns m with mod added
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m with mod removed
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty reports whether no modifier is set
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Prefix returns the display prefix, e.g. "meta+ctrl+"
func (m Modifier) Prefix() string {
	var b strings.Builder
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			b.WriteString(o.prefix)
		}
	}
	return b.String()
}

// Names returns the human-readable flag names in display order
func (m Modifier) Names() []string {
	names := make([]string, 0, len(modifierOrder))
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			names = append(names, o.name)
		}
	}
	return names
}

// String returns a human-readable representation like "Command+Shift"
func (m Modifier) String() string {
	if m.IsEmpty() {
		return ""
	}
	return strings.Join(m.Names(), "+")
}

// modifierPieces maps a lowercase "+"-inclusive chord piece to its flag.
// super, cmd, meta and win are aliases of the same flag.
var modifierPieces = map[string]Modifier{
	"ctrl+":  ModControl,
	"shift+": ModShift,
	"super+": ModCommand,
	"cmd+":   ModCommand,
	"meta+":  ModCommand,
	"win+":   ModCommand,
	"alt+":   ModOption,
}

// modifierFromPiece returns the flag for a chord piece, or ModNone
func modifierFromPiece(piece string) Modifier {
	return modifierPieces[piece]
}
