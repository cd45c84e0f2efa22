package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/avitaltamir/swipedeck/internal/logging"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "SWIPEDECK"
	envConfig  = "SWIPEDECK_CONFIG"
	configName = "config.toml"
	filePerm   = 0o644
)

// Dir returns $XDG_CONFIG_HOME/swipedeck, falling back to ~/.config.
func Dir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

// File returns the config file path: SWIPEDECK_CONFIG when set, otherwise
// config.toml in Dir.
func File() (string, error) {
	if p := os.Getenv(envConfig); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName), nil
}

// Load reads configuration from path (or File when empty) and the
// environment. Env var overrides use prefix SWIPEDECK_. A missing file
// yields defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		var err error
		if path, err = File(); err != nil {
			return nil, fmt.Errorf("resolve config file: %w", err)
		}
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config file at %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config file at %s: %w", path, err)
	}
	if !v.IsSet("panes") {
		cfg.Panes = DefaultConfig().Panes
	}
	normalize(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("animation.fps", d.Animation.FPS)
	v.SetDefault("animation.frequency", d.Animation.Frequency)
	v.SetDefault("animation.damping", d.Animation.Damping)
	v.SetDefault("animation.max_frames", d.Animation.MaxFrames)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

func normalize(cfg *Config) {
	for i := range cfg.Panes {
		p := &cfg.Panes[i]
		p.Kind = strings.ToLower(strings.TrimSpace(p.Kind))
		if p.Kind == "" {
			if p.Command != "" {
				p.Kind = KindCommand
			} else {
				p.Kind = KindFile
			}
		}
		p.Visibility = strings.ToLower(strings.TrimSpace(p.Visibility))
		if p.Visibility == "" {
			p.Visibility = "visible"
		}
		if p.Title == "" {
			switch {
			case p.Kind == KindCommand:
				p.Title = strings.TrimSpace(p.Command + " " + strings.Join(p.Args, " "))
			case p.Path != "":
				p.Title = filepath.Base(p.Path)
			default:
				p.Title = fmt.Sprintf("pane %d", i+1)
			}
		}
	}
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if len(c.Panes) != 2 {
		problems = append(problems, fmt.Sprintf("panes must have exactly 2 entries, got %d", len(c.Panes)))
	}
	for i, p := range c.Panes {
		switch p.Kind {
		case KindFile:
		case KindCommand:
			if p.Command == "" {
				problems = append(problems, fmt.Sprintf("panes[%d].command is required for command panes", i))
			}
		default:
			problems = append(problems, fmt.Sprintf("panes[%d].kind must be %q or %q", i, KindFile, KindCommand))
		}
		if p.LeftMargin < 0 {
			problems = append(problems, fmt.Sprintf("panes[%d].left_margin must be non-negative", i))
		}
		switch p.Visibility {
		case "visible", "collapsed", "hidden":
		default:
			problems = append(problems, fmt.Sprintf("panes[%d].visibility must be visible, collapsed or hidden", i))
		}
	}

	if c.Animation.FPS < 1 || c.Animation.FPS > 240 {
		problems = append(problems, "animation.fps must be between 1 and 240")
	}
	if c.Animation.Frequency <= 0 {
		problems = append(problems, "animation.frequency must be positive")
	}
	if c.Animation.Damping <= 0 {
		problems = append(problems, "animation.damping must be positive")
	}
	if c.Animation.MaxFrames < 1 {
		problems = append(problems, "animation.max_frames must be at least 1")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, "log.level: "+err.Error())
	}
	switch c.Log.Format {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		problems = append(problems, "log.format must be json or console")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Logging converts the log section for the logging package.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		File:   c.Log.File,
	}
}

// Write encodes cfg as TOML at path, creating the directory if needed.
func Write(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
