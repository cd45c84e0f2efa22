package swipe

// register classifies the two panes into current and available, records the
// visibility snapshot the monitor compares against, and parks the available
// pane just past the container's right edge.
func (c *Controller) register(children []*Pane) error {
	if len(children) != 2 {
		c.unregister()
		return &ConfigurationError{Reason: ErrChildCount, Count: len(children)}
	}

	var current, available *Pane
	var snapshot [2]Visibility
	for i, child := range children {
		snapshot[i] = child.Visibility()
		if current == nil && child.Visibility() != Hidden {
			current = child
		} else {
			available = child
		}
	}

	if current == nil {
		c.unregister()
		return &ConfigurationError{Reason: ErrNoCurrentPane, Count: len(children)}
	}
	if available == nil {
		c.unregister()
		return &ConfigurationError{Reason: ErrNoAvailablePane, Count: len(children)}
	}

	s := &c.state
	s.children = [2]*Pane{children[0], children[1]}
	s.snapshot = snapshot
	s.current = current
	s.available = available
	s.registered = true
	s.deferred = false
	s.enabled = available.Visibility() != Hidden

	offsetWithMargin(available, c.bounds.Width-available.Left())

	c.log.Debug().
		Str("current", current.ID).
		Str("available", available.ID).
		Bool("swipe_enabled", s.enabled).
		Msg("panes registered")
	return nil
}

func (c *Controller) unregister() {
	c.state.registered = false
	c.state.enabled = false
	c.state.current = nil
	c.state.available = nil
}
