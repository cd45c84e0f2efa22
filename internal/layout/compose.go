package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Layer is one pane frame positioned in the container. Blank layers occupy
// their rectangle but draw only spaces.
type Layer struct {
	Left, Top     int
	Width, Height int
	Content       string
	Blank         bool
}

// Compose draws layers onto a width x height canvas in order, later layers
// on top. Anything outside the canvas is clipped.
func Compose(width, height int, layers []Layer) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	blank := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = blank
	}

	for _, l := range layers {
		from := max(l.Left, 0)
		to := min(l.Left+l.Width, width)
		if from >= to || l.Height <= 0 {
			continue
		}

		var lines []string
		if !l.Blank {
			lines = strings.Split(l.Content, "\n")
		}
		for i := 0; i < l.Height; i++ {
			y := l.Top + i
			if y < 0 || y >= height {
				continue
			}
			var line string
			if i < len(lines) {
				line = lines[i]
			}
			rows[y] = overlay(rows[y], line, l.Left, from, to, width)
		}
	}

	return strings.Join(rows, "\n")
}

// overlay replaces columns [from, to) of row with the matching columns of
// line, where line starts at column left.
func overlay(row, line string, left, from, to, width int) string {
	seg := ansi.Cut(line, from-left, to-left)
	if w := ansi.StringWidth(seg); w < to-from {
		seg += strings.Repeat(" ", to-from-w)
	}

	var b strings.Builder
	b.WriteString(ansi.Cut(row, 0, from))
	b.WriteString(seg)
	b.WriteString(ansi.ResetStyle)
	b.WriteString(ansi.Cut(row, to, width))
	return b.String()
}
