package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		input     string
		label     string
		modifiers Modifier
	}{
		{"ctrl+shift+k", "k", ModControl | ModShift},
		{"Ctrl+Shift+K", "k", ModControl | ModShift},
		{"cmd+k", "k", ModCommand},
		{"meta+k", "k", ModCommand},
		{"super+k", "k", ModCommand},
		{"win+k", "k", ModCommand},
		{"alt+f4", "f4", ModOption},
		{"k", "k", ModNone},
		{"", "", ModNone},
		{"ctrl+", "", ModControl},
		{"ctrl++", "+", ModControl},
		{"hyper+k", "k", ModNone},
		{"ctrl+hyper+", "hyper+", ModControl},
		{"a+ctrl+", "a+", ModControl},
		{"k+j", "j", ModNone},
		{"cmd+meta+k", "k", ModCommand},
		{"shift+alt+ctrl+cmd+escape", "escape", ModShift | ModOption | ModControl | ModCommand},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key := ParseKey(tt.input)
			assert.Equal(t, tt.label, key.Label)
			assert.Equal(t, tt.modifiers, key.Modifiers)
		})
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{Key{Label: "k", Modifiers: ModControl | ModShift}, "ctrl+shift+k"},
		{Key{Label: "k", Modifiers: ModShift | ModControl | ModOption | ModCommand}, "meta+alt+ctrl+shift+k"},
		{Key{Label: "", Modifiers: ModControl}, "ctrl+"},
		{AnyKey(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.String())
		})
	}
}

func TestKeySwapControlForCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"control only", "ctrl+k", "meta+k"},
		{"keeps other modifiers", "ctrl+shift+alt+k", "meta+alt+shift+k"},
		{"control and command", "cmd+ctrl+k", "meta+ctrl+k"},
		{"no control", "shift+k", "shift+k"},
		{"command only", "cmd+k", "meta+k"},
		{"empty label", "ctrl+", "meta+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseKey(tt.input).SwapControlForCommand().String())
		})
	}
}

func TestModifier(t *testing.T) {
	m := ModControl.With(ModShift)

	assert.True(t, m.Has(ModControl))
	assert.True(t, m.Has(ModControl|ModShift))
	assert.False(t, m.Has(ModCommand))
	assert.False(t, m.Has(ModNone))
	assert.Equal(t, ModShift, m.Without(ModControl))
	assert.Equal(t, m, m.Without(ModOption))
	assert.Equal(t, "Control+Shift", m.String())
	assert.Equal(t, []string{"Command", "Option"}, (ModOption | ModCommand).Names())
	assert.True(t, ModNone.IsEmpty())
	assert.Equal(t, "", ModNone.String())
}
