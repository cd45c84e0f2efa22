// Package state persists the small amount of UI state that outlives a
// session: the theme, each pane's visibility and which pane was current.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName    = "swipedeck"
	stateFileName = "state.json"
)

// State is the persisted UI state.
type State struct {
	ThemeIndex int `json:"theme_index"`
	// PaneVisibility holds one visibility name per pane, in child order.
	PaneVisibility []string `json:"pane_visibility,omitempty"`
	// LastCurrent is the index of the pane that was current on exit.
	LastCurrent int `json:"last_current"`
}

// DefaultState is the state of a first run.
func DefaultState() State {
	return State{}
}

// Visibilities returns the persisted visibility names when both panes
// have one.
func (s State) Visibilities() ([]string, bool) {
	if len(s.PaneVisibility) != 2 {
		return nil, false
	}
	return s.PaneVisibility, true
}

func (s *State) normalize() {
	if s.ThemeIndex < 0 {
		s.ThemeIndex = 0
	}
	if s.LastCurrent != 1 {
		s.LastCurrent = 0
	}
}

// Path is ~/.config/swipedeck/state.json.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home: %w", err)
	}
	return filepath.Join(home, ".config", appDirName, stateFileName), nil
}

// Load reads the state file. Any failure yields DefaultState; a bad state
// file never stops the program.
func Load() State {
	path, err := Path()
	if err != nil {
		return DefaultState()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultState()
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultState()
	}
	s.normalize()
	return s
}

// Save writes the state file through a temporary file in the same
// directory, so a crash mid-write leaves the previous state intact.
func Save(s State) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, stateFileName+".*")
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
