package swipe

// Visibility is the layout visibility of a pane.
type Visibility int

const (
	// Visible panes take space and draw.
	Visible Visibility = iota
	// Collapsed panes take space but draw nothing.
	Collapsed
	// Hidden panes take no space and never draw.
	Hidden
)

// String returns the visibility name used in config and state files.
func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Collapsed:
		return "collapsed"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// ParseVisibility converts a config name into a Visibility.
// Unknown names map to Visible.
func ParseVisibility(s string) Visibility {
	switch s {
	case "collapsed":
		return Collapsed
	case "hidden":
		return Hidden
	default:
		return Visible
	}
}

// Next cycles visible -> collapsed -> hidden -> visible.
func (v Visibility) Next() Visibility {
	switch v {
	case Visible:
		return Collapsed
	case Collapsed:
		return Hidden
	default:
		return Visible
	}
}

// Pane is a handle to one of the two stacked visual elements. The host owns
// it; the controller only moves it horizontally and reads its visibility.
// Coordinates are container-relative cells.
type Pane struct {
	ID string

	left       int
	top        int
	width      int
	height     int
	leftMargin int
	visibility Visibility
}

// NewPane creates a pane with the given id and left margin.
func NewPane(id string, leftMargin int) *Pane {
	return &Pane{ID: id, leftMargin: leftMargin}
}

// Left returns the pane's left edge.
func (p *Pane) Left() int { return p.left }

// Top returns the pane's top edge.
func (p *Pane) Top() int { return p.top }

// Right returns the pane's right edge (exclusive).
func (p *Pane) Right() int { return p.left + p.width }

// Width returns the pane's width.
func (p *Pane) Width() int { return p.width }

// Height returns the pane's height.
func (p *Pane) Height() int { return p.height }

// LeftMargin returns the margin applied whenever the pane is offset.
func (p *Pane) LeftMargin() int { return p.leftMargin }

// Visibility returns the pane's layout visibility.
func (p *Pane) Visibility() Visibility { return p.visibility }

// SetVisibility changes the pane's visibility. The controller notices the
// change on the next layout pass.
func (p *Pane) SetVisibility(v Visibility) { p.visibility = v }

// Visible reports whether the pane draws anything.
func (p *Pane) Visible() bool { return p.visibility == Visible }

// Contains reports whether (x, y) lies inside the pane's bounds.
func (p *Pane) Contains(x, y int) bool {
	return x >= p.left && x < p.left+p.width && y >= p.top && y < p.top+p.height
}

// OffsetLeftAndRight moves the pane horizontally by dx.
func (p *Pane) OffsetLeftAndRight(dx int) { p.left += dx }

// OffsetTopAndBottom moves the pane vertically by dy.
func (p *Pane) OffsetTopAndBottom(dy int) { p.top += dy }

// Place sets the pane's frame. Hosts call it during their layout pass.
func (p *Pane) Place(left, top, width, height int) {
	p.left = left
	p.top = top
	p.width = width
	p.height = height
}

// offsetWithMargin moves the pane by offset plus its left margin.
func offsetWithMargin(p *Pane, offset int) {
	p.OffsetLeftAndRight(offset + p.leftMargin)
}
