package theme

import "github.com/charmbracelet/lipgloss"

// Available themes
var (
	themes       []*Theme
	currentIndex int
)

func init() {
	themes = []*Theme{
		HarborTheme(),
		EmberTheme(),
		MossTheme(),
		PaperTheme(),
	}
	currentIndex = 0
	ApplyTheme(themes[0])
}

// AllThemes returns all available themes.
func AllThemes() []*Theme {
	return themes
}

// CurrentTheme returns the currently active theme.
func CurrentTheme() *Theme {
	return themes[currentIndex]
}

// CurrentThemeIndex returns the index of the current theme.
func CurrentThemeIndex() int {
	return currentIndex
}

// NextTheme cycles to the next theme and applies it.
func NextTheme() *Theme {
	currentIndex = (currentIndex + 1) % len(themes)
	ApplyTheme(themes[currentIndex])
	return themes[currentIndex]
}

// SetThemeIndex sets the current theme by index and applies it.
// Returns false if index is out of bounds.
func SetThemeIndex(index int) bool {
	if index < 0 || index >= len(themes) {
		return false
	}
	currentIndex = index
	ApplyTheme(themes[currentIndex])
	return true
}

// HarborTheme - cool blues on charcoal
func HarborTheme() *Theme {
	return &Theme{
		Name: "Harbor",
		Colors: ColorPalette{
			Accent:        lipgloss.Color("#5FD7FF"),
			Secondary:     lipgloss.Color("#AF87FF"),
			Success:       lipgloss.Color("#87D787"),
			Error:         lipgloss.Color("#FF5F5F"),
			Warning:       lipgloss.Color("#FFD75F"),
			BgBase:        lipgloss.Color("#121212"),
			BgStatusBar:   lipgloss.Color("#1C1C1C"),
			TextPrimary:   lipgloss.Color("#EEEEEE"),
			TextSecondary: lipgloss.Color("#BCBCBC"),
			TextMuted:     lipgloss.Color("#808080"),
			TextDim:       lipgloss.Color("#4E4E4E"),
		},
	}
}

// EmberTheme - warm oranges
func EmberTheme() *Theme {
	return &Theme{
		Name: "Ember",
		Colors: ColorPalette{
			Accent:        lipgloss.Color("#FF8700"),
			Secondary:     lipgloss.Color("#FFAF5F"),
			Success:       lipgloss.Color("#AFD75F"),
			Error:         lipgloss.Color("#D70000"),
			Warning:       lipgloss.Color("#FFD700"),
			BgBase:        lipgloss.Color("#1C1008"),
			BgStatusBar:   lipgloss.Color("#2A1A0E"),
			TextPrimary:   lipgloss.Color("#FFF5E6"),
			TextSecondary: lipgloss.Color("#E4C9A8"),
			TextMuted:     lipgloss.Color("#9E7E5C"),
			TextDim:       lipgloss.Color("#5C4330"),
		},
	}
}

// MossTheme - muted greens
func MossTheme() *Theme {
	return &Theme{
		Name: "Moss",
		Colors: ColorPalette{
			Accent:        lipgloss.Color("#A7C957"),
			Secondary:     lipgloss.Color("#81B29A"),
			Success:       lipgloss.Color("#6A994E"),
			Error:         lipgloss.Color("#BC4749"),
			Warning:       lipgloss.Color("#F2CC8F"),
			BgBase:        lipgloss.Color("#0B1A0F"),
			BgStatusBar:   lipgloss.Color("#132A18"),
			TextPrimary:   lipgloss.Color("#E8F5E9"),
			TextSecondary: lipgloss.Color("#B8D4BA"),
			TextMuted:     lipgloss.Color("#7A9E7E"),
			TextDim:       lipgloss.Color("#4A6B4E"),
		},
	}
}

// PaperTheme - dark ink for light terminals
func PaperTheme() *Theme {
	return &Theme{
		Name: "Paper",
		Colors: ColorPalette{
			Accent:        lipgloss.Color("#005F87"),
			Secondary:     lipgloss.Color("#5F00AF"),
			Success:       lipgloss.Color("#008700"),
			Error:         lipgloss.Color("#AF0000"),
			Warning:       lipgloss.Color("#AF5F00"),
			BgBase:        lipgloss.Color("#FFFFFF"),
			BgStatusBar:   lipgloss.Color("#E4E4E4"),
			TextPrimary:   lipgloss.Color("#1C1C1C"),
			TextSecondary: lipgloss.Color("#3A3A3A"),
			TextMuted:     lipgloss.Color("#6C6C6C"),
			TextDim:       lipgloss.Color("#A8A8A8"),
		},
	}
}
