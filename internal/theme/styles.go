package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Pane frame borders
var (
	// CurrentBorder uses heavy lines for the pane in front
	CurrentBorder = lipgloss.Border{
		Top:         "━",
		Bottom:      "━",
		Left:        "┃",
		Right:       "┃",
		TopLeft:     "┏",
		TopRight:    "┓",
		BottomLeft:  "┗",
		BottomRight: "┛",
	}

	// RestingBorder uses rounded corners for the pane waiting off-screen
	RestingBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "╰",
		BottomRight: "╯",
	}
)

// Status indicators
const (
	StatusRunning = "●"
	StatusIdle    = "○"
)

// Text styles
var (
	TextTitle      lipgloss.Style
	TextBody       lipgloss.Style
	TextMutedStyle lipgloss.Style
	TextDimStyle   lipgloss.Style
	TextErrorStyle lipgloss.Style
)

// Status bar styles
var (
	StatusBarStyle     lipgloss.Style
	StatusBarSection   lipgloss.Style
	StatusBarHighlight lipgloss.Style
	StatusBarOK        lipgloss.Style
	StatusBarWarn      lipgloss.Style
)

// HelpStyle renders the key help line.
var HelpStyle lipgloss.Style

// regenerateStyles rebuilds all style variables based on current color values.
// Called when theme changes.
func regenerateStyles() {
	TextTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	TextBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	TextMutedStyle = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	TextDimStyle = lipgloss.NewStyle().
		Foreground(TextDim).
		Faint(true)

	TextErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgStatusBar)

	StatusBarSection = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgStatusBar).
		Padding(0, 1)

	StatusBarHighlight = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Background(BgStatusBar).
		Bold(true).
		Padding(0, 1)

	StatusBarOK = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Background(BgStatusBar).
		Padding(0, 1)

	StatusBarWarn = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Background(BgStatusBar).
		Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)
}

// FormatScrollIndicator returns a formatted scroll percentage indicator.
// Returns empty string if percent is 100 (at bottom) or invalid.
func FormatScrollIndicator(percent float64) string {
	if percent >= 99.9 || percent < 0 {
		return ""
	}
	return fmt.Sprintf("%d%%", int(percent))
}

// FormatStatusIndicator returns a running/idle status indicator.
func FormatStatusIndicator(running bool) string {
	if running {
		return StatusRunning
	}
	return StatusIdle
}

// PanelTitleOptions configures what to show in a pane frame.
type PanelTitleOptions struct {
	Title         string
	StatusRunning bool    // ● vs ○
	ShowStatus    bool    // Whether to show status at all
	ScrollPercent float64 // Scroll position (0-100), negative to hide
	BottomHints   string
}

// RenderPanelWithTitle renders content in a frame with the title embedded
// in the top border. Every line of the result is exactly width cells wide.
func RenderPanelWithTitle(content string, opts PanelTitleOptions, width, height int, current bool) string {
	if width < 4 || height < 2 {
		return ""
	}

	border := RestingBorder
	borderColor := TextDim
	titleColor := TextMuted
	if current {
		border = CurrentBorder
		borderColor = ColorAccent
		titleColor = ColorSecondary
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(TextDim)
	if opts.StatusRunning {
		statusStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	}

	innerWidth := width - 2
	contentHeight := height - 2

	lines := make([]string, 0, height)
	lines = append(lines, buildTopBorder(border, borderStyle, titleStyle, statusStyle, opts, innerWidth))

	contentLines := strings.Split(content, "\n")
	for i := 0; i < contentHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = ansi.Truncate(contentLines[i], innerWidth, "")
		}
		if w := ansi.StringWidth(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		lines = append(lines, borderStyle.Render(border.Left)+line+borderStyle.Render(border.Right))
	}

	lines = append(lines, buildBottomBorder(border, borderStyle, opts.BottomHints, innerWidth))
	return strings.Join(lines, "\n")
}

// buildTopBorder creates the top border with title and optional scroll/status
// indicators, dropping the indicators and then shortening the title when the
// frame is narrow.
func buildTopBorder(border lipgloss.Border, borderStyle, titleStyle, statusStyle lipgloss.Style, opts PanelTitleOptions, innerWidth int) string {
	const leftFiller = 1

	title := opts.Title
	var suffix string
	if opts.ShowStatus {
		suffix = " " + statusStyle.Render(FormatStatusIndicator(opts.StatusRunning))
	}
	if s := FormatScrollIndicator(opts.ScrollPercent); s != "" {
		suffix += " " + TextDimStyle.Render(s)
	}

	// "[ " + title + suffix + " ]"
	room := innerWidth - leftFiller - 4
	if ansi.StringWidth(title)+ansi.StringWidth(suffix) > room {
		suffix = ""
	}
	if ansi.StringWidth(title) > room {
		title = ansi.Truncate(title, room, "…")
	}

	var segment string
	if room > 0 {
		segment = "[ " + titleStyle.Render(title) + suffix + " ]"
	}
	fill := innerWidth - leftFiller - ansi.StringWidth(segment)
	if fill < 0 {
		fill = 0
	}

	var b strings.Builder
	b.WriteString(borderStyle.Render(border.TopLeft))
	b.WriteString(borderStyle.Render(strings.Repeat(border.Top, leftFiller)))
	b.WriteString(segment)
	b.WriteString(borderStyle.Render(strings.Repeat(border.Top, fill)))
	b.WriteString(borderStyle.Render(border.TopRight))
	return b.String()
}

// buildBottomBorder creates the bottom border with optional key hints.
func buildBottomBorder(border lipgloss.Border, borderStyle lipgloss.Style, hints string, innerWidth int) string {
	var segment string
	if hints != "" && ansi.StringWidth(hints)+5 <= innerWidth {
		segment = "[ " + TextMutedStyle.Render(hints) + " ]"
	}
	fill := innerWidth - 1 - ansi.StringWidth(segment)
	if segment == "" {
		fill = innerWidth
	}

	var b strings.Builder
	b.WriteString(borderStyle.Render(border.BottomLeft))
	if segment != "" {
		b.WriteString(borderStyle.Render(border.Bottom))
		b.WriteString(segment)
	}
	b.WriteString(borderStyle.Render(strings.Repeat(border.Bottom, fill)))
	b.WriteString(borderStyle.Render(border.BottomRight))
	return b.String()
}
