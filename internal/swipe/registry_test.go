package swipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWidth = 1000

func newPanes(width int, margins ...int) (*Pane, *Pane) {
	var ma, mb int
	if len(margins) > 0 {
		ma = margins[0]
	}
	if len(margins) > 1 {
		mb = margins[1]
	}
	a := NewPane("a", ma)
	b := NewPane("b", mb)
	a.Place(ma, 0, width-ma, 20)
	b.Place(mb, 0, width-mb, 20)
	return a, b
}

func TestRegisterChildCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"no panes", 0},
		{"one pane", 1},
		{"three panes", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			children := make([]*Pane, tt.count)
			for i := range children {
				children[i] = NewPane("p", 0)
			}

			err := c.Layout(Bounds{Width: testWidth}, children)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrChildCount))
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.count, cfgErr.Count)
			assert.False(t, c.IsSwipeEnabled())
			assert.Nil(t, c.Current())
		})
	}
}

func TestRegisterNoCurrentPane(t *testing.T) {
	c := New()
	a, b := newPanes(testWidth)
	a.SetVisibility(Hidden)
	b.SetVisibility(Hidden)

	err := c.Layout(Bounds{Width: testWidth}, []*Pane{a, b})

	assert.ErrorIs(t, err, ErrNoCurrentPane)
	assert.Contains(t, err.Error(), "current pane must be added")
}

func TestRegisterClassification(t *testing.T) {
	tests := []struct {
		name          string
		visA, visB    Visibility
		wantCurrent   string
		wantAvailable string
		wantEnabled   bool
	}{
		{"both visible", Visible, Visible, "a", "b", true},
		{"first hidden", Hidden, Visible, "b", "a", false},
		{"second hidden", Visible, Hidden, "a", "b", false},
		{"first collapsed", Collapsed, Visible, "a", "b", true},
		{"second collapsed", Visible, Collapsed, "a", "b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			a, b := newPanes(testWidth)
			a.SetVisibility(tt.visA)
			b.SetVisibility(tt.visB)

			require.NoError(t, c.Layout(Bounds{Width: testWidth}, []*Pane{a, b}))

			assert.Equal(t, tt.wantCurrent, c.Current().ID)
			assert.Equal(t, tt.wantAvailable, c.Available().ID)
			assert.Equal(t, tt.wantEnabled, c.IsSwipeEnabled())
			assert.Equal(t, testWidth, c.Available().Left(), "available parked off-screen right")
			assert.Equal(t, PhaseIdle, c.Phase())
		})
	}
}

func TestRegisterAppliesMargin(t *testing.T) {
	c := New()
	a, b := newPanes(testWidth, 2, 3)

	require.NoError(t, c.Layout(Bounds{Width: testWidth}, []*Pane{a, b}))

	assert.Equal(t, 2, a.Left(), "current keeps its host placement")
	assert.Equal(t, testWidth+3, b.Left())
}

func TestRegisterIdempotent(t *testing.T) {
	c := New()
	a, b := newPanes(testWidth, 0, 4)
	children := []*Pane{a, b}

	require.NoError(t, c.Layout(Bounds{Width: testWidth}, children))
	firstCurrent, firstAvailable := c.Current(), c.Available()
	firstA, firstB := a.Left(), b.Left()

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Layout(Bounds{Width: testWidth}, children))
	}

	assert.Same(t, firstCurrent, c.Current())
	assert.Same(t, firstAvailable, c.Available())
	assert.Equal(t, firstA, a.Left())
	assert.Equal(t, firstB, b.Left())
}

func TestVisibility(t *testing.T) {
	t.Run("names round trip", func(t *testing.T) {
		for _, v := range []Visibility{Visible, Collapsed, Hidden} {
			assert.Equal(t, v, ParseVisibility(v.String()))
		}
	})

	t.Run("unknown names are visible", func(t *testing.T) {
		assert.Equal(t, Visible, ParseVisibility("bogus"))
		assert.Equal(t, "unknown", Visibility(42).String())
	})

	t.Run("next cycles", func(t *testing.T) {
		assert.Equal(t, Collapsed, Visible.Next())
		assert.Equal(t, Hidden, Collapsed.Next())
		assert.Equal(t, Visible, Hidden.Next())
	})
}

func TestPaneGeometry(t *testing.T) {
	p := NewPane("p", 1)
	p.Place(5, 2, 10, 4)

	assert.Equal(t, 15, p.Right())
	assert.True(t, p.Contains(5, 2))
	assert.True(t, p.Contains(14, 5))
	assert.False(t, p.Contains(15, 2))
	assert.False(t, p.Contains(5, 6))

	p.OffsetLeftAndRight(-7)
	p.OffsetTopAndBottom(1)
	assert.Equal(t, -2, p.Left())
	assert.Equal(t, 3, p.Top())
	assert.Equal(t, 1, p.LeftMargin())
}
