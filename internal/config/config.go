// Package config loads swipedeck configuration from TOML and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "swipedeck"

// Pane kinds.
const (
	KindFile    = "file"
	KindCommand = "command"
)

// Config holds application configuration.
type Config struct {
	Panes     []PaneConfig    `mapstructure:"panes" toml:"panes"`
	Animation AnimationConfig `mapstructure:"animation" toml:"animation"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`
}

// PaneConfig describes one of the two swipeable panes.
type PaneConfig struct {
	Title      string   `mapstructure:"title" toml:"title"`
	Kind       string   `mapstructure:"kind" toml:"kind"`
	Path       string   `mapstructure:"path" toml:"path,omitempty"`
	Command    string   `mapstructure:"command" toml:"command,omitempty"`
	Args       []string `mapstructure:"args" toml:"args,omitempty"`
	LeftMargin int      `mapstructure:"left_margin" toml:"left_margin"`
	Visibility string   `mapstructure:"visibility" toml:"visibility"`
}

// AnimationConfig tunes the settle spring.
type AnimationConfig struct {
	FPS       int     `mapstructure:"fps" toml:"fps"`
	Frequency float64 `mapstructure:"frequency" toml:"frequency"`
	Damping   float64 `mapstructure:"damping" toml:"damping"`
	MaxFrames int     `mapstructure:"max_frames" toml:"max_frames"`
}

// LogConfig holds logging settings. An empty file means the default state
// directory.
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	File   string `mapstructure:"file" toml:"file,omitempty"`
}

// DefaultConfig returns the built-in configuration: the working directory's
// README next to a directory listing.
func DefaultConfig() *Config {
	return &Config{
		Panes: []PaneConfig{defaultViewerPane(), {
			Title:      "ls -la",
			Kind:       KindCommand,
			Command:    "ls",
			Args:       []string{"-la"},
			Visibility: "visible",
		}},
		Animation: AnimationConfig{
			FPS:       60,
			Frequency: 9.0,
			Damping:   1.0,
			MaxFrames: 600,
		},
		Log: LogConfig{
			Level:  "disabled",
			Format: "json",
		},
	}
}

func defaultViewerPane() PaneConfig {
	p := PaneConfig{Title: "README", Kind: KindFile, Visibility: "visible"}
	if _, err := os.Stat("README.md"); err == nil {
		p.Path = "README.md"
		p.Title = "README.md"
	}
	return p
}

// ParsePaneArg turns a command line argument into a pane: "cmd:<line>"
// makes a command pane, anything else is a file path.
func ParsePaneArg(arg string) PaneConfig {
	if line, ok := strings.CutPrefix(arg, "cmd:"); ok {
		fields := strings.Fields(line)
		p := PaneConfig{Title: strings.TrimSpace(line), Kind: KindCommand, Visibility: "visible"}
		if len(fields) > 0 {
			p.Command = fields[0]
			p.Args = fields[1:]
		}
		return p
	}
	return PaneConfig{
		Title:      filepath.Base(arg),
		Kind:       KindFile,
		Path:       arg,
		Visibility: "visible",
	}
}

// ApplyArgs replaces configured panes with positional arguments, in order.
func (c *Config) ApplyArgs(args []string) {
	for i, arg := range args {
		if i >= len(c.Panes) {
			break
		}
		p := ParsePaneArg(arg)
		p.LeftMargin = c.Panes[i].LeftMargin
		c.Panes[i] = p
	}
}
