// Package drag is a terminal take on a view drag helper: it captures a view
// under the pointer, moves it as the mouse drags, tracks release velocity and
// settles the view toward a target with a spring.
package drag

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/rs/zerolog"
)

// Spring and settle defaults.
const (
	DefaultFPS             = 60
	DefaultFrequency       = 9.0
	DefaultDamping         = 1.0
	DefaultMaxSettleFrames = 600

	// restVelocity is the speed, in cells per second, below which a view
	// within half a cell of its target counts as settled.
	restVelocity = 1.0
)

// State is the helper's drag state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateSettling
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// View is something the helper can capture and move.
type View interface {
	Left() int
	Top() int
	Width() int
	Height() int
	Contains(x, y int) bool
	OffsetLeftAndRight(dx int)
	OffsetTopAndBottom(dy int)
}

// Callback lets the owner of the views decide capture, clamp motion and
// react to movement and release.
type Callback interface {
	TryCaptureView(v View) bool
	ClampViewPositionHorizontal(v View, left, dx int) int
	ClampViewPositionVertical(v View, top, dy int) int
	ViewHorizontalDragRange(v View) int
	OnViewPositionChanged(v View, left, top, dx, dy int)
	OnViewReleased(v View, xvel, yvel float64)
}

// Options tune a Helper. Zero values take the package defaults.
type Options struct {
	FPS             int
	Frequency       float64
	Damping         float64
	MaxSettleFrames int
	Clock           func() time.Time
	Logger          *zerolog.Logger
}

type settle struct {
	x, vx   float64
	targetX int
	targetY int
	frames  int
}

// Helper tracks one captured view at a time.
type Helper struct {
	cb    Callback
	state State

	captured  View
	lastX     int
	lastY     int
	tracker   velocityTracker
	releasing bool
	releaseVX float64

	spring    harmonica.Spring
	settle    settle
	maxFrames int

	now func() time.Time
	log zerolog.Logger
}

// New creates a helper reporting to cb.
func New(cb Callback, opts Options) *Helper {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Frequency <= 0 {
		opts.Frequency = DefaultFrequency
	}
	if opts.Damping <= 0 {
		opts.Damping = DefaultDamping
	}
	if opts.MaxSettleFrames <= 0 {
		opts.MaxSettleFrames = DefaultMaxSettleFrames
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Helper{
		cb:        cb,
		spring:    harmonica.NewSpring(harmonica.FPS(opts.FPS), opts.Frequency, opts.Damping),
		maxFrames: opts.MaxSettleFrames,
		now:       opts.Clock,
		log:       log,
	}
}

// State returns the current drag state.
func (h *Helper) State() State { return h.state }

// Captured returns the captured view, or nil.
func (h *Helper) Captured() View { return h.captured }

// ShouldIntercept reports whether the helper wants msg. A left press is
// taken only when it lands on one of children (or while a drag is still
// open); motion and release only while dragging. Wheel events are never
// intercepted.
func (h *Helper) ShouldIntercept(msg tea.MouseMsg, children []View) bool {
	if tea.MouseEvent(msg).IsWheel() {
		return false
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false
		}
		return h.state == StateDragging || topChildUnder(children, msg.X, msg.Y) != nil
	case tea.MouseActionMotion, tea.MouseActionRelease:
		return h.state == StateDragging
	}
	return false
}

// ProcessMouse feeds a pointer event through capture, drag and release.
// children are the candidate views in draw order; the last one is on top.
func (h *Helper) ProcessMouse(msg tea.MouseMsg, children []View) {
	now := h.now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if h.state == StateDragging {
			// The previous release never arrived.
			h.release(now)
		}
		v := topChildUnder(children, msg.X, msg.Y)
		if v == nil {
			return
		}
		h.tryCapture(v, msg.X, msg.Y, now)

	case tea.MouseActionMotion:
		if h.state != StateDragging {
			return
		}
		dx := msg.X - h.lastX
		dy := msg.Y - h.lastY
		h.dragTo(h.captured.Left()+dx, h.captured.Top()+dy, dx, dy)
		h.lastX, h.lastY = msg.X, msg.Y
		h.tracker.add(msg.X, msg.Y, now)

	case tea.MouseActionRelease:
		if h.state != StateDragging {
			return
		}
		h.tracker.add(msg.X, msg.Y, now)
		h.release(now)
	}
}

func (h *Helper) tryCapture(v View, x, y int, now time.Time) bool {
	if h.cb.ViewHorizontalDragRange(v) <= 0 {
		return false
	}
	if !h.cb.TryCaptureView(v) {
		return false
	}
	h.captured = v
	h.state = StateDragging
	h.lastX, h.lastY = x, y
	h.tracker.reset()
	h.tracker.add(x, y, now)
	h.log.Trace().Int("x", x).Int("y", y).Msg("view captured")
	return true
}

func (h *Helper) dragTo(left, top, dx, dy int) {
	v := h.captured
	oldLeft, oldTop := v.Left(), v.Top()

	clampedX := left
	if dx != 0 {
		clampedX = h.cb.ClampViewPositionHorizontal(v, left, dx)
		v.OffsetLeftAndRight(clampedX - oldLeft)
	}
	clampedY := top
	if dy != 0 {
		clampedY = h.cb.ClampViewPositionVertical(v, top, dy)
		v.OffsetTopAndBottom(clampedY - oldTop)
	}

	cdx, cdy := clampedX-oldLeft, clampedY-oldTop
	if cdx != 0 || cdy != 0 {
		h.cb.OnViewPositionChanged(v, clampedX, clampedY, cdx, cdy)
	}
}

func (h *Helper) release(now time.Time) {
	xvel, yvel := h.tracker.velocity(now)
	h.releaseVX = xvel

	h.releasing = true
	h.cb.OnViewReleased(h.captured, xvel, yvel)
	h.releasing = false

	if h.state == StateDragging {
		h.reset()
	}
	h.log.Trace().Float64("xvel", xvel).Str("state", h.state.String()).Msg("view released")
}

// SettleCapturedViewAt starts settling the captured view toward (finalLeft,
// finalTop). It is only valid from within OnViewReleased and reports false
// when the view already rests there.
func (h *Helper) SettleCapturedViewAt(finalLeft, finalTop int) bool {
	if !h.releasing || h.captured == nil {
		h.log.Warn().Msg("settle requested outside of release")
		return false
	}

	v := h.captured
	if v.Left() == finalLeft && v.Top() == finalTop {
		h.reset()
		return false
	}

	h.settle = settle{
		x:       float64(v.Left()),
		vx:      h.releaseVX,
		targetX: finalLeft,
		targetY: finalTop,
	}
	h.state = StateSettling
	return true
}

// ContinueSettling advances the settle by one frame and reports whether it
// is still running. Callbacks are always delivered synchronously, so the
// defer flag has no effect here.
func (h *Helper) ContinueSettling(_ bool) bool {
	if h.state != StateSettling {
		return false
	}

	s := &h.settle
	s.frames++
	s.x, s.vx = h.spring.Update(s.x, s.vx, float64(s.targetX))

	newLeft := int(math.Round(s.x))
	done := math.Abs(float64(s.targetX)-s.x) < 0.5 && math.Abs(s.vx) < restVelocity
	if done || s.frames >= h.maxFrames {
		newLeft = s.targetX
		done = true
	}

	v := h.captured
	dx := newLeft - v.Left()
	dy := s.targetY - v.Top()
	if dx != 0 {
		v.OffsetLeftAndRight(dx)
	}
	if dy != 0 {
		v.OffsetTopAndBottom(dy)
	}
	if dx != 0 || dy != 0 {
		h.cb.OnViewPositionChanged(v, v.Left(), v.Top(), dx, dy)
	}

	if done {
		h.log.Trace().Int("frames", s.frames).Msg("settle finished")
		h.reset()
		return false
	}
	return true
}

// Abort drops any capture or settle, leaving views where they are.
func (h *Helper) Abort() {
	h.reset()
}

func (h *Helper) reset() {
	h.state = StateIdle
	h.captured = nil
	h.settle = settle{}
	h.tracker.reset()
}

func topChildUnder(children []View, x, y int) View {
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].Contains(x, y) {
			return children[i]
		}
	}
	return nil
}
