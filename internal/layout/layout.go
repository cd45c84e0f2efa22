// Package layout computes the screen regions and composites pane frames
// into the swipe container.
package layout

// Layout constants
const (
	StatusBarHeight = 1
	MinPanelWidth   = 4
	MinPanelHeight  = 3
)

// Layout holds calculated dimensions for the screen regions. The container
// fills the terminal above the status bar and help lines.
type Layout struct {
	TotalWidth  int
	TotalHeight int

	ContainerWidth  int
	ContainerHeight int

	StatusHeight int
	HelpHeight   int
}

// Calculate computes the layout for a terminal of width x height with
// helpLines rows of key help under the status bar.
func Calculate(width, height, helpLines int) Layout {
	l := Layout{
		TotalWidth:   max(width, 0),
		TotalHeight:  max(height, 0),
		StatusHeight: StatusBarHeight,
		HelpHeight:   max(helpLines, 0),
	}

	l.ContainerWidth = l.TotalWidth
	l.ContainerHeight = max(l.TotalHeight-l.StatusHeight-l.HelpHeight, 0)

	// A tiny terminal gives the container priority over help.
	if l.ContainerHeight < MinPanelHeight && l.HelpHeight > 0 {
		l.HelpHeight = max(l.TotalHeight-l.StatusHeight-MinPanelHeight, 0)
		l.ContainerHeight = max(l.TotalHeight-l.StatusHeight-l.HelpHeight, 0)
	}
	return l
}

// ContentWidth returns the inner width for content (excluding borders).
func (l Layout) ContentWidth(panelWidth int, borderWidth int) int {
	return max(panelWidth-borderWidth*2, 0)
}

// ContentHeight returns the inner height for content (excluding borders).
func (l Layout) ContentHeight(panelHeight int, borderHeight int) int {
	return max(panelHeight-borderHeight*2, 0)
}

// ContainerBounds returns the position and size of the swipe container.
func (l Layout) ContainerBounds() (x, y, width, height int) {
	return 0, 0, l.ContainerWidth, l.ContainerHeight
}

// PaneBounds returns the resting placement of a pane with the given left
// margin.
func (l Layout) PaneBounds(leftMargin int) (x, y, width, height int) {
	return leftMargin, 0, max(l.ContainerWidth-leftMargin, 0), l.ContainerHeight
}

// StatusBarBounds returns the position and size of the status bar.
func (l Layout) StatusBarBounds() (x, y, width, height int) {
	return 0, l.ContainerHeight, l.TotalWidth, l.StatusHeight
}

// HelpBounds returns the position and size of the help lines.
func (l Layout) HelpBounds() (x, y, width, height int) {
	return 0, l.ContainerHeight + l.StatusHeight, l.TotalWidth, l.HelpHeight
}

// Usable reports whether panes can be drawn at all.
func (l Layout) Usable() bool {
	return l.ContainerWidth >= MinPanelWidth && l.ContainerHeight >= MinPanelHeight
}
