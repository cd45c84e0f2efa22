package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the visual configuration for the application.
type Theme struct {
	Name   string
	Colors ColorPalette
}

// ColorPalette holds all color definitions.
type ColorPalette struct {
	Accent    lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color

	BgBase      lipgloss.Color
	BgStatusBar lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextDim       lipgloss.Color
}

// DefaultTheme returns the first theme in the list.
func DefaultTheme() *Theme {
	return HarborTheme()
}

// ApplyTheme sets all the global color variables to match the theme.
func ApplyTheme(t *Theme) {
	ColorAccent = t.Colors.Accent
	ColorSecondary = t.Colors.Secondary
	ColorSuccess = t.Colors.Success
	ColorError = t.Colors.Error
	ColorWarning = t.Colors.Warning

	BgBase = t.Colors.BgBase
	BgStatusBar = t.Colors.BgStatusBar

	TextPrimary = t.Colors.TextPrimary
	TextSecondary = t.Colors.TextSecondary
	TextMuted = t.Colors.TextMuted
	TextDim = t.Colors.TextDim

	regenerateStyles()
}
