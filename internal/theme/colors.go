package theme

import "github.com/charmbracelet/lipgloss"

// Accent colors. ApplyTheme overwrites these when the theme changes.
var (
	ColorAccent    = lipgloss.Color("#5FD7FF") // Current pane frame
	ColorSecondary = lipgloss.Color("#AF87FF") // Titles
	ColorSuccess   = lipgloss.Color("#87D787") // Commit outcome, running command
	ColorError     = lipgloss.Color("#FF5F5F") // Load and exit errors
	ColorWarning   = lipgloss.Color("#FFD75F") // Swipe disabled, cancel outcome
)

// Background colors
var (
	BgBase      = lipgloss.Color("#121212")
	BgStatusBar = lipgloss.Color("#1C1C1C")
)

// Text colors, from bright to dim
var (
	TextPrimary   = lipgloss.Color("#EEEEEE")
	TextSecondary = lipgloss.Color("#BCBCBC")
	TextMuted     = lipgloss.Color("#808080")
	TextDim       = lipgloss.Color("#4E4E4E") // Resting pane frame
)
