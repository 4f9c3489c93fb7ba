package domain

import "strings"

// KeySequence is one mandatory chord plus an optional second chord,
// e.g. "ctrl+k ctrl+s".
type KeySequence struct {
	First  Key
	Second *Key
}

// NewKeySequence builds a sequence from one or two chords
func NewKeySequence(first Key, second ...Key) KeySequence {
	seq := KeySequence{First: first}
	if len(second) > 0 {
		s := second[0]
		seq.Second = &s
	}
	return seq
}

// Len returns the number of chords (1 or 2)
func (s KeySequence) Len() int {
	if s.Second == nil {
		return 1
	}
	return 2
}

// Chords returns the chords in order
func (s KeySequence) Chords() []Key {
	if s.Second == nil {
		return []Key{s.First}
	}
	return []Key{s.First, *s.Second}
}

// Map applies fn to every chord independently
func (s KeySequence) Map(fn func(Key) Key) KeySequence {
	out := KeySequence{First: fn(s.First)}
	if s.Second != nil {
		second := fn(*s.Second)
		out.Second = &second
	}
	return out
}

// Equal reports whether both sequences hold the same chords
func (s KeySequence) Equal(other KeySequence) bool {
	if s.First != other.First {
		return false
	}
	if s.Second == nil || other.Second == nil {
		return s.Second == nil && other.Second == nil
	}
	return *s.Second == *other.Second
}

// String returns the canonical display form: the chords joined by one space
func (s KeySequence) String() string {
	if s.Second == nil {
		return s.First.String()
	}
	return s.First.String() + " " + s.Second.String()
}

// ParseSequence parses a whitespace-separated chord sequence.
// Chords beyond the second are discarded; an empty input yields AnyKey.
func ParseSequence(code string) KeySequence {
	tokens := splitSequence(code)
	if len(tokens) == 0 {
		return KeySequence{First: AnyKey()}
	}
	seq := KeySequence{First: ParseKey(tokens[0])}
	if len(tokens) > 1 {
		second := ParseKey(tokens[1])
		seq.Second = &second
	}
	return seq
}

// splitSequence splits on ASCII whitespace only
func splitSequence(code string) []string {
	return strings.FieldsFunc(code, isASCIISpace)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
