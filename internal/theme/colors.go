package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - headings
	ColorSecondary Color = "86" // Cyan - chords
)

// Remap outcome colors
const (
	ColorDropped       Color = "8" // Gray - no output
	ColorPassedThrough Color = "3" // Yellow - kept unchanged
	ColorRemapped      Color = "2" // Green - disabled + swapped
)

// UI semantic colors
const (
	ColorError  Color = "196" // Bright red
	ColorMuted  Color = "241" // Gray - secondary text
	ColorSubtle Color = "245" // Light gray - labels
	ColorWarn   Color = "214" // Orange - diagnostics
)
