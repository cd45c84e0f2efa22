package swipe

// OnGlobalLayout is the host's layout-pass hook. It compares both panes'
// visibility against the snapshot taken at registration and re-registers on
// any mismatch. While a drag or settle is in flight the re-registration
// waits for the first pass after the controller returns to idle.
func (c *Controller) OnGlobalLayout() error {
	s := &c.state
	if !s.registered || !c.visibilityChanged() {
		return nil
	}

	if s.phase != PhaseIdle {
		if !s.deferred {
			c.log.Debug().Str("phase", s.phase.String()).Msg("visibility changed mid-transition, deferring")
			s.deferred = true
		}
		return nil
	}

	c.log.Debug().
		Str("pane0", s.children[0].Visibility().String()).
		Str("pane1", s.children[1].Visibility().String()).
		Msg("visibility changed, re-registering")
	return c.register(s.children[:])
}

func (c *Controller) visibilityChanged() bool {
	for i, child := range c.state.children {
		if child.Visibility() != c.state.snapshot[i] {
			return true
		}
	}
	return false
}
