// Package swipe implements the two-pane swipe transition controller: pane
// classification, the drag/settle state machine, and the visibility monitor
// that keeps both in sync with externally toggled panes.
package swipe

import (
	"github.com/avitaltamir/swipedeck/internal/drag"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Phase is the transition state machine's state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseSettling
)

// String returns the phase name for logs and the status bar.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// Direction is the horizontal direction of a gesture.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

// OutcomeKind tags a GestureOutcome.
type OutcomeKind int

const (
	// OutcomeNone means the release had no net displacement.
	OutcomeNone OutcomeKind = iota
	OutcomeCommit
	OutcomeCancel
)

// GestureOutcome is the release decision of one drag session.
type GestureOutcome struct {
	Kind      OutcomeKind
	Direction Direction
}

// String renders the outcome for the status bar.
func (o GestureOutcome) String() string {
	switch o.Kind {
	case OutcomeCommit:
		if o.Direction == DirectionLeft {
			return "commit ←"
		}
		return "commit →"
	case OutcomeCancel:
		return "cancel"
	default:
		return "tap"
	}
}

// Rect is a container-relative region that needs repainting.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Bounds is the container's horizontal geometry.
type Bounds struct {
	// Left is the resting left position of the current pane.
	Left  int
	Width int
}

// Physics is the drag primitive the controller consumes. *drag.Helper
// implements it.
type Physics interface {
	ShouldIntercept(msg tea.MouseMsg, children []drag.View) bool
	ProcessMouse(msg tea.MouseMsg, children []drag.View)
	SettleCapturedViewAt(finalLeft, finalTop int) bool
	ContinueSettling(deferCallbacks bool) bool
	Abort()
}

// session is the per-drag bookkeeping, alive from capture to finalize.
type session struct {
	leftStart   int
	synced      bool
	switchViews bool
}

// State is everything the controller owns. Handlers mutate it only through
// the controller, on the host's event loop.
type State struct {
	children   [2]*Pane
	snapshot   [2]Visibility
	current    *Pane
	available  *Pane
	registered bool
	enabled    bool
	deferred   bool

	phase   Phase
	session session
	outcome GestureOutcome
}

// Controller drives a two-pane swipe transition.
type Controller struct {
	state      State
	bounds     Bounds
	physics    Physics
	frames     scheduler
	invalidate func(Rect)
	pending    tea.Cmd
	log        zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithFPS sets the settle frame rate.
func WithFPS(fps int) Option {
	return func(c *Controller) { c.frames = newScheduler(fps) }
}

// WithInvalidator registers a callback for repaint requests.
func WithInvalidator(fn func(Rect)) Option {
	return func(c *Controller) { c.invalidate = fn }
}

// New creates a controller. Attach a physics primitive with SetPhysics
// before routing input to it.
func New(opts ...Option) *Controller {
	c := &Controller{
		frames: newScheduler(DefaultFPS),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetPhysics attaches the drag primitive.
func (c *Controller) SetPhysics(p Physics) {
	c.physics = p
}

// Layout is the host's layout pass: it records the container geometry and
// (re)registers the panes. A transition in flight is abandoned, since the
// host has just re-placed both panes.
func (c *Controller) Layout(bounds Bounds, children []*Pane) error {
	if c.state.phase != PhaseIdle {
		c.frames.stop()
		if c.physics != nil {
			c.physics.Abort()
		}
		c.state.phase = PhaseIdle
		c.state.session = session{}
		c.pending = nil
		c.log.Debug().Msg("layout pass abandoned transition")
	}
	c.bounds = bounds
	return c.register(children)
}

// IsSwipeEnabled reports whether gestures are intercepted. It is true
// exactly when the registered available pane is not hidden.
func (c *Controller) IsSwipeEnabled() bool {
	return c.state.enabled
}

// Current returns the pane that holds the current role.
func (c *Controller) Current() *Pane { return c.state.current }

// Available returns the pane that holds the available role.
func (c *Controller) Available() *Pane { return c.state.available }

// Phase returns the state machine's phase.
func (c *Controller) Phase() Phase { return c.state.phase }

// LastOutcome returns the decision of the most recent release.
func (c *Controller) LastOutcome() GestureOutcome { return c.state.outcome }

// Bounds returns the container geometry from the last layout pass.
func (c *Controller) Bounds() Bounds { return c.bounds }

// HandleMouse offers a pointer event to the drag primitive. It reports
// false when the event should pass through to the host untouched.
func (c *Controller) HandleMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	if c.physics == nil || !c.state.registered {
		return false, nil
	}
	if !c.state.enabled && c.state.phase == PhaseIdle {
		return false, nil
	}
	views := c.hittable()
	if !c.physics.ShouldIntercept(msg, views) {
		return false, nil
	}

	c.physics.ProcessMouse(msg, views)

	cmd := c.pending
	c.pending = nil
	return true, cmd
}

// hittable returns the panes that take space, in draw order.
func (c *Controller) hittable() []drag.View {
	views := make([]drag.View, 0, 2)
	for _, child := range c.state.children {
		if child != nil && child.Visibility() != Hidden {
			views = append(views, child)
		}
	}
	return views
}

// TryCaptureView grants capture to the current pane only, and never while a
// settle is running.
func (c *Controller) TryCaptureView(v drag.View) bool {
	if c.state.phase == PhaseSettling {
		c.log.Debug().Msg("capture refused while settling")
		return false
	}
	p, ok := v.(*Pane)
	if !ok || p != c.state.current {
		return false
	}

	c.state.session = session{leftStart: p.Left()}
	c.state.phase = PhaseDragging
	c.log.Debug().Str("pane", p.ID).Int("left", p.Left()).Msg("capture")
	return true
}

// ClampViewPositionVertical keeps the captured pane on its original row.
func (c *Controller) ClampViewPositionVertical(_ drag.View, top, dy int) int {
	return top - dy
}

// ClampViewPositionHorizontal leaves horizontal motion unclamped.
func (c *Controller) ClampViewPositionHorizontal(_ drag.View, left, _ int) int {
	return left
}

// ViewHorizontalDragRange is the container width.
func (c *Controller) ViewHorizontalDragRange(drag.View) int {
	return c.bounds.Width
}

// OnViewPositionChanged moves the available pane along with the captured
// one. On the first movement of a session the available pane is first
// parked on the side the motion reveals it from.
func (c *Controller) OnViewPositionChanged(_ drag.View, _, _ int, dx, _ int) {
	if dx == 0 {
		return
	}
	s := &c.state
	available := s.available
	width := c.bounds.Width

	if !s.session.synced {
		if available.Left() < 0 && dx < 0 {
			offsetWithMargin(available, width-available.Left())
		} else if available.Left() > 0 && dx > 0 {
			offsetWithMargin(available, -available.Left()-width)
		}
		s.session.synced = true
	}

	available.OffsetLeftAndRight(dx)
	if c.invalidate != nil {
		c.invalidate(Rect{
			Left:   available.Left(),
			Top:    available.Top(),
			Right:  available.Right(),
			Bottom: available.Top() + available.Height(),
		})
	}
	c.log.Trace().Int("dx", dx).Int("available_left", available.Left()).Msg("position changed")
}

// OnViewReleased decides commit or cancel from how far the available pane
// has been revealed, then starts the settle toward the chosen target.
// Velocity seeds the physics only; it never affects the decision.
func (c *Controller) OnViewReleased(_ drag.View, xvel, _ float64) {
	s := &c.state
	current := s.current
	available := s.available
	width := c.bounds.Width

	dx := current.Left() - s.session.leftStart
	if dx == 0 {
		s.outcome = GestureOutcome{Kind: OutcomeNone}
		s.phase = PhaseIdle
		c.log.Debug().Msg("release without displacement")
		return
	}

	s.session.switchViews = false
	switch {
	case dx > 0 && available.Right() > available.Width()/5:
		s.session.switchViews = true
		s.outcome = GestureOutcome{Kind: OutcomeCommit, Direction: DirectionRight}
		c.startSettle(current, width)
	case dx < 0 && available.Left()+available.Width()/5 < width:
		s.session.switchViews = true
		s.outcome = GestureOutcome{Kind: OutcomeCommit, Direction: DirectionLeft}
		c.startSettle(current, -width)
	default:
		dir := DirectionRight
		if dx < 0 {
			dir = DirectionLeft
		}
		s.outcome = GestureOutcome{Kind: OutcomeCancel, Direction: dir}
		c.startSettle(current, c.bounds.Left)
	}

	c.log.Debug().
		Int("dx", dx).
		Float64("xvel", xvel).
		Str("outcome", s.outcome.String()).
		Msg("release")
}

func (c *Controller) startSettle(p *Pane, targetX int) {
	if c.physics != nil && c.physics.SettleCapturedViewAt(targetX+p.LeftMargin(), p.Top()) {
		c.state.phase = PhaseSettling
		c.pending = c.frames.start()
		return
	}
	// Already resting on the target.
	c.finalize()
}

// finalize swaps roles on commit and snaps both panes to their exact
// resting positions.
func (c *Controller) finalize() {
	s := &c.state
	if s.session.switchViews {
		s.current, s.available = s.available, s.current
		s.session.switchViews = false
	}

	width := c.bounds.Width
	offsetWithMargin(s.current, c.bounds.Left-s.current.Left())
	if s.available.Left() < 0 {
		offsetWithMargin(s.available, -s.available.Left()-width)
	} else {
		offsetWithMargin(s.available, width-s.available.Left())
	}
	s.phase = PhaseIdle

	c.log.Debug().
		Str("current", s.current.ID).
		Int("available_left", s.available.Left()).
		Msg("transition finalized")
}
