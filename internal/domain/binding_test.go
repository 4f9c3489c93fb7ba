package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindingDisabled(t *testing.T) {
	when := "editorTextFocus"
	args := StringValue("x")
	b := Binding{Keys: ParseSequence("ctrl+k"), Command: "foo", When: &when, Args: &args}

	disabled := b.Disabled()
	assert.Equal(t, "-foo", disabled.Command)
	assert.True(t, disabled.IsDisabled())
	assert.True(t, disabled.Keys.Equal(b.Keys))
	assert.Same(t, b.When, disabled.When)
	assert.Same(t, b.Args, disabled.Args)

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, disabled, disabled.Disabled())
	})

	t.Run("original untouched", func(t *testing.T) {
		assert.Equal(t, "foo", b.Command)
		assert.False(t, b.IsDisabled())
	})
}

func TestBindingHasControl(t *testing.T) {
	tests := []struct {
		keys     string
		expected bool
	}{
		{"ctrl+k", true},
		{"ctrl+shift+k", true},
		{"shift+k", false},
		{"shift+k ctrl+s", false},
		{"ctrl+k s", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			b := Binding{Keys: ParseSequence(tt.keys), Command: "foo"}
			assert.Equal(t, tt.expected, b.HasControl())
		})
	}
}
