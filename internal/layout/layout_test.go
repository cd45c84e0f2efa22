package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		width         int
		height        int
		helpLines     int
		wantContainer int
		wantHelp      int
	}{
		{
			name:          "short help",
			width:         100,
			height:        40,
			helpLines:     1,
			wantContainer: 38, // 40 - status - help
			wantHelp:      1,
		},
		{
			name:          "full help",
			width:         100,
			height:        40,
			helpLines:     4,
			wantContainer: 35,
			wantHelp:      4,
		},
		{
			name:          "tiny terminal squeezes help first",
			width:         30,
			height:        6,
			helpLines:     4,
			wantContainer: 3,
			wantHelp:      2,
		},
		{
			name:          "degenerate terminal",
			width:         0,
			height:        1,
			helpLines:     1,
			wantContainer: 0,
			wantHelp:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Calculate(tt.width, tt.height, tt.helpLines)

			assert.Equal(t, tt.width, l.ContainerWidth)
			assert.Equal(t, tt.wantContainer, l.ContainerHeight)
			assert.Equal(t, tt.wantHelp, l.HelpHeight)
		})
	}
}

func TestBounds(t *testing.T) {
	l := Calculate(80, 24, 1)

	x, y, w, h := l.ContainerBounds()
	assert.Equal(t, []int{0, 0, 80, 22}, []int{x, y, w, h})

	x, y, w, h = l.PaneBounds(3)
	assert.Equal(t, []int{3, 0, 77, 22}, []int{x, y, w, h})

	x, y, w, h = l.StatusBarBounds()
	assert.Equal(t, []int{0, 22, 80, 1}, []int{x, y, w, h})

	x, y, w, h = l.HelpBounds()
	assert.Equal(t, []int{0, 23, 80, 1}, []int{x, y, w, h})

	assert.True(t, l.Usable())
	assert.False(t, Calculate(2, 24, 1).Usable())
}

func TestContentSize(t *testing.T) {
	l := Calculate(80, 24, 1)

	assert.Equal(t, 78, l.ContentWidth(80, 1))
	assert.Equal(t, 0, l.ContentHeight(1, 1))
}

func block(ch string, w, h int) string {
	row := strings.Repeat(ch, w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func TestCompose(t *testing.T) {
	const w, h = 10, 2

	t.Run("pane at rest fills the canvas", func(t *testing.T) {
		out := Compose(w, h, []Layer{{Width: w, Height: h, Content: block("a", w, h)}})

		assert.Equal(t, block("a", w, h), ansi.Strip(out))
	})

	t.Run("pane parked at the right edge contributes nothing", func(t *testing.T) {
		out := Compose(w, h, []Layer{{Left: w, Width: w, Height: h, Content: block("b", w, h)}})

		assert.Equal(t, block(" ", w, h), ansi.Strip(out))
	})

	t.Run("pane half off the left edge shows its right half at column 0", func(t *testing.T) {
		content := "0123456789\nabcdefghij"
		out := Compose(w, h, []Layer{{Left: -w / 2, Width: w, Height: h, Content: content}})

		assert.Equal(t, "56789     \nfghij     ", ansi.Strip(out))
	})

	t.Run("two panes mid swipe", func(t *testing.T) {
		out := Compose(w, h, []Layer{
			{Left: 4, Width: w, Height: h, Content: block("a", w, h)},
			{Left: 4 - w, Width: w, Height: h, Content: block("b", w, h)},
		})

		assert.Equal(t, block("bbbbaaaaaa", 1, 1)+"\n"+"bbbbaaaaaa", ansi.Strip(out))
	})

	t.Run("later layers draw on top", func(t *testing.T) {
		out := Compose(w, 1, []Layer{
			{Width: w, Height: 1, Content: block("a", w, 1)},
			{Left: 2, Width: 3, Height: 1, Content: "bbb"},
		})

		assert.Equal(t, "aabbbaaaaa", ansi.Strip(out))
	})

	t.Run("blank layers cover what is below", func(t *testing.T) {
		out := Compose(w, 1, []Layer{
			{Width: w, Height: 1, Content: block("a", w, 1)},
			{Left: 5, Width: w, Height: 1, Content: "ignored", Blank: true},
		})

		assert.Equal(t, "aaaaa     ", ansi.Strip(out))
	})

	t.Run("styled content keeps its width", func(t *testing.T) {
		styled := "\x1b[31mred text!!\x1b[0m"
		out := Compose(w, 1, []Layer{{Left: 3, Width: w, Height: 1, Content: styled}})

		require.Equal(t, w, ansi.StringWidth(out))
		assert.Equal(t, "   red tex", ansi.Strip(out))
	})

	t.Run("empty canvas", func(t *testing.T) {
		assert.Empty(t, Compose(0, 5, nil))
	})
}
