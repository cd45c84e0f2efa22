package swipe

import "errors"

// Reasons a pane registration can fail.
var (
	ErrChildCount      = errors.New("swipe container needs exactly two panes")
	ErrNoCurrentPane   = errors.New("current pane must be added")
	ErrNoAvailablePane = errors.New("available pane must be added")
)

// ConfigurationError is returned when the host hands the controller a pane
// set it cannot classify. It is not recoverable without fixing the host.
type ConfigurationError struct {
	Reason error
	Count  int
}

func (e *ConfigurationError) Error() string {
	return "swipe: configuration error: " + e.Reason.Error()
}

// Unwrap exposes the reason so callers can errors.Is against it.
func (e *ConfigurationError) Unwrap() error {
	return e.Reason
}
