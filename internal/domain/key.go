package domain

import "strings"

// Key is one chord: a modifier set plus a lowercase base key label.
// An empty Label means "unspecified key".
type Key struct {
	Label     string
	Modifiers Modifier
}

// AnyKey returns the placeholder key with no modifiers and no label
func AnyKey() Key {
	return Key{}
}

// HasControl reports whether the chord includes Control
func (k Key) HasControl() bool {
	return k.Modifiers.Has(ModControl)
}

// HasCommand reports whether the chord includes Command
func (k Key) HasCommand() bool {
	return k.Modifiers.Has(ModCommand)
}

// SwapControlForCommand replaces Control with Command when Control is set
// and Command is not. Any other chord is returned unchanged.
func (k Key) SwapControlForCommand() Key {
	if !k.HasControl() || k.HasCommand() {
		return k
	}
	return Key{
		Label:     k.Label,
		Modifiers: k.Modifiers.Without(ModControl).With(ModCommand),
	}
}

// String returns the canonical display form, e.g. "meta+shift+k"
func (k Key) String() string {
	return k.Modifiers.Prefix() + k.Label
}

// ParseKey parses a single chord token such as "Ctrl+Shift+K".
// It never fails: unrecognized pieces become the label and the last
// non-modifier piece wins.
func ParseKey(token string) Key {
	var key Key
	for _, piece := range splitChord(token) {
		if mod := modifierFromPiece(piece); mod != ModNone {
			key.Modifiers = key.Modifiers.With(mod)
			continue
		}
		key.Label = piece
	}
	return key
}

// splitChord lowercases a token and splits it after every "+",
// keeping the "+" on each piece ("ctrl++" -> "ctrl+", "+").
func splitChord(token string) []string {
	pieces := strings.SplitAfter(strings.ToLower(token), "+")
	// SplitAfter yields a trailing "" when the token ends in "+"
	if n := len(pieces); n > 0 && pieces[n-1] == "" {
		pieces = pieces[:n-1]
	}
	return pieces
}
