package swipe

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the settle frame rate when none is configured.
const DefaultFPS = 60

// FrameMsg drives one settle animation frame. Frames from a loop that has
// since been stopped or replaced carry a stale Seq and are ignored.
type FrameMsg struct {
	Seq int
}

// TransitionMsg is emitted once a settle finishes and the transition has
// been finalized.
type TransitionMsg struct {
	Outcome GestureOutcome
	Current string
}

// scheduler owns the single settle loop of a controller.
type scheduler struct {
	interval time.Duration
	seq      int
	active   bool
}

func newScheduler(fps int) scheduler {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return scheduler{interval: time.Second / time.Duration(fps)}
}

// start begins a new loop, invalidating any frame still in flight.
func (s *scheduler) start() tea.Cmd {
	s.seq++
	s.active = true
	return s.tick()
}

func (s *scheduler) tick() tea.Cmd {
	seq := s.seq
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return FrameMsg{Seq: seq}
	})
}

func (s *scheduler) stop() {
	s.active = false
}

func (s *scheduler) accepts(msg FrameMsg) bool {
	return s.active && msg.Seq == s.seq
}

// HandleFrame advances the settle animation by one frame. It returns the
// command for the next frame while the physics primitive is still settling,
// and finalizes the transition exactly once when it stops.
func (c *Controller) HandleFrame(msg FrameMsg) tea.Cmd {
	if !c.frames.accepts(msg) {
		return nil
	}

	if c.physics != nil && c.physics.ContinueSettling(true) {
		return c.frames.tick()
	}

	c.frames.stop()
	c.finalize()

	done := TransitionMsg{Outcome: c.state.outcome, Current: c.state.current.ID}
	return func() tea.Msg { return done }
}

// Settling reports whether a settle loop is active.
func (c *Controller) Settling() bool {
	return c.frames.active
}
