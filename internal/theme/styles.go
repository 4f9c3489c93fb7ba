package theme

import "github.com/charmbracelet/lipgloss"

// Text styles
var (
	ChordStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarn)
)

// Remap outcome styles
var (
	DroppedStyle = lipgloss.NewStyle().
			Foreground(ColorDropped)

	PassedThroughStyle = lipgloss.NewStyle().
				Foreground(ColorPassedThrough)

	RemappedStyle = lipgloss.NewStyle().
			Foreground(ColorRemapped).
			Bold(true)
)

// Outcome renders the remap outcome word for a chord sequence
func Outcome(remapped bool, passthrough bool) string {
	switch {
	case remapped:
		return RemappedStyle.Render("remapped")
	case passthrough:
		return PassedThroughStyle.Render("passthrough")
	}
	return DroppedStyle.Render("dropped")
}
