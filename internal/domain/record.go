package domain

import (
	"encoding/json"
	"fmt"
)

// Record is the persisted shape of one binding, as found in a
// keybindings.json file. Field order is the output order.
type Record struct {
	Key     string  `json:"key"`
	Command string  `json:"command"`
	When    *string `json:"when,omitempty"`
	Args    *Value  `json:"args,omitempty"`
}

// NewRecord converts a binding to its persisted form
func NewRecord(b Binding) Record {
	return Record{
		Key:     b.Keys.String(),
		Command: b.Command,
		When:    b.When,
		Args:    b.Args,
	}
}

// Binding parses the record's key into a Binding
func (r Record) Binding() Binding {
	return Binding{
		Args:    r.Args,
		Command: r.Command,
		Keys:    ParseSequence(r.Key),
		When:    r.When,
	}
}

// UnmarshalJSON rejects records without key or command. A null when or
// args is treated as absent.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key     *string `json:"key"`
		Command *string `json:"command"`
		When    *string `json:"when"`
		Args    *Value  `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Key == nil {
		return fmt.Errorf("%w %q", ErrMissingField, "key")
	}
	if raw.Command == nil {
		return fmt.Errorf("%w %q", ErrMissingField, "command")
	}
	*r = Record{
		Key:     *raw.Key,
		Command: *raw.Command,
		When:    raw.When,
		Args:    raw.Args,
	}
	return nil
}
