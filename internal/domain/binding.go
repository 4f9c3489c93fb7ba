package domain

import "strings"

// DisableMarker prefixes a command name to mark its binding as disabled
const DisableMarker = "-"

// Binding associates a chord sequence with a command.
// When and Args are opaque and carried through unexamined.
type Binding struct {
	Args    *Value
	Command string
	Keys    KeySequence
	When    *string
}

// IsDisabled reports whether the command carries the disable marker
func (b Binding) IsDisabled() bool {
	return strings.HasPrefix(b.Command, DisableMarker)
}

// Disabled returns a copy of b with the disable marker on its command.
// Disabling an already disabled binding returns it unchanged.
func (b Binding) Disabled() Binding {
	if b.IsDisabled() {
		return b
	}
	b.Command = DisableMarker + b.Command
	return b
}

// WithKeys returns a copy of b bound to keys
func (b Binding) WithKeys(keys KeySequence) Binding {
	b.Keys = keys
	return b
}

// HasControl reports whether the first chord includes Control
func (b Binding) HasControl() bool {
	return b.Keys.First.HasControl()
}
