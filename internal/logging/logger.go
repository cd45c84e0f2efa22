// Package logging builds the zerolog logger. The TUI owns the terminal, so
// log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	appName = "swipedeck"
	logName = "swipedeck.log"

	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config holds logging configuration
type Config struct {
	Level  string
	Format string // "json" or "console"
	File   string
}

// DefaultConfig returns logging switched off.
func DefaultConfig() Config {
	return Config{
		Level:  "disabled",
		Format: FormatJSON,
	}
}

// DefaultFile returns $XDG_STATE_HOME/swipedeck/swipedeck.log, falling back
// to ~/.local/state.
func DefaultFile() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, appName, logName), nil
}

// ParseLevel accepts zerolog level names. An empty string means disabled.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.Disabled, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.Disabled, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger for cfg. The returned closer releases the log file
// and must be called on shutdown. A disabled level opens nothing.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	if level == zerolog.Disabled {
		return zerolog.Nop(), nopCloser{}, nil
	}

	path := cfg.File
	if path == "" {
		if path, err = DefaultFile(); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("resolve log file: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	return newLogger(file, cfg.Format, level), file, nil
}

func newLogger(out io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}
