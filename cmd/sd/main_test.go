package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/avitaltamir/swipedeck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")

	require.NoError(t, err)
	assert.Equal(t, "sd dev\n", out)
}

func TestTooManyPanes(t *testing.T) {
	_, err := execute(t, "a", "b", "c")

	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Panes, 2)
	assert.Equal(t, 60, cfg.Animation.FPS)

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("SWIPEDECK_CONFIG", "/tmp/elsewhere.toml")

	out, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.toml\n", out)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--fps", "30", "--log-level", "debug"}))

	cfg, err := loadConfig(cmd, []string{"cmd:top -d 1"})

	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Animation.FPS)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.KindCommand, cfg.Panes[0].Kind)
	assert.Equal(t, "top", cfg.Panes[0].Command)
	assert.Equal(t, []string{"-d", "1"}, cfg.Panes[0].Args)
	assert.Equal(t, "ls", cfg.Panes[1].Command, "second pane keeps its default")
}

func TestLoadConfigRejectsBadOverride(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "--fps", "0"}))

	_, err := loadConfig(cmd, nil)

	assert.ErrorContains(t, err, "validate config")
}
