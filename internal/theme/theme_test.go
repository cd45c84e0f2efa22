package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.Equal(t, "Harbor", theme.Name)
	assert.NotEmpty(t, theme.Colors.Accent)
	assert.NotEmpty(t, theme.Colors.Error)
}

func TestThemeCycling(t *testing.T) {
	t.Cleanup(func() { SetThemeIndex(0) })
	require.True(t, SetThemeIndex(0))

	for i := 1; i <= len(AllThemes()); i++ {
		next := NextTheme()
		want := AllThemes()[i%len(AllThemes())]
		assert.Equal(t, want.Name, next.Name)
		assert.Equal(t, i%len(AllThemes()), CurrentThemeIndex())
	}
}

func TestSetThemeIndex(t *testing.T) {
	t.Cleanup(func() { SetThemeIndex(0) })

	assert.False(t, SetThemeIndex(-1))
	assert.False(t, SetThemeIndex(len(AllThemes())))

	require.True(t, SetThemeIndex(2))
	assert.Equal(t, "Moss", CurrentTheme().Name)
	assert.Equal(t, CurrentTheme().Colors.Accent, ColorAccent, "palette variables follow the theme")
}

func TestFormatScrollIndicator(t *testing.T) {
	assert.Equal(t, "42%", FormatScrollIndicator(42.7))
	assert.Empty(t, FormatScrollIndicator(100))
	assert.Empty(t, FormatScrollIndicator(-1))
}

func TestFormatStatusIndicator(t *testing.T) {
	assert.Equal(t, StatusRunning, FormatStatusIndicator(true))
	assert.Equal(t, StatusIdle, FormatStatusIndicator(false))
}

func TestRenderPanelWithTitle(t *testing.T) {
	t.Run("every line has the frame width", func(t *testing.T) {
		for _, current := range []bool{true, false} {
			out := RenderPanelWithTitle("hello\nworld with a very long line indeed", PanelTitleOptions{
				Title:         "notes.md",
				ShowStatus:    true,
				StatusRunning: true,
				ScrollPercent: 30,
				BottomHints:   "↑↓ scroll",
			}, 24, 6, current)

			lines := strings.Split(out, "\n")
			require.Len(t, lines, 6)
			for _, l := range lines {
				assert.Equal(t, 24, ansi.StringWidth(l))
			}
			assert.Contains(t, ansi.Strip(out), "notes.md")
			assert.Contains(t, ansi.Strip(out), "hello")
		}
	})

	t.Run("current pane uses the heavy border", func(t *testing.T) {
		out := ansi.Strip(RenderPanelWithTitle("", PanelTitleOptions{Title: "a"}, 10, 3, true))
		assert.True(t, strings.HasPrefix(out, CurrentBorder.TopLeft))

		out = ansi.Strip(RenderPanelWithTitle("", PanelTitleOptions{Title: "a"}, 10, 3, false))
		assert.True(t, strings.HasPrefix(out, RestingBorder.TopLeft))
	})

	t.Run("narrow frames shorten the title", func(t *testing.T) {
		out := RenderPanelWithTitle("", PanelTitleOptions{Title: "a-rather-long-title", ShowStatus: true}, 12, 3, true)

		for _, l := range strings.Split(out, "\n") {
			assert.Equal(t, 12, ansi.StringWidth(l))
		}
		assert.Contains(t, ansi.Strip(out), "…")
	})

	t.Run("too small renders nothing", func(t *testing.T) {
		assert.Empty(t, RenderPanelWithTitle("x", PanelTitleOptions{}, 3, 5, true))
		assert.Empty(t, RenderPanelWithTitle("x", PanelTitleOptions{}, 10, 1, true))
	})
}
