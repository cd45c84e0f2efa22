package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	assert.Equal(t, 0, s.ThemeIndex, "default theme index should be 0")
	_, ok := s.Visibilities()
	assert.False(t, ok, "no persisted visibility on first run")
}

func TestStatePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "swipedeck", "state.json"), path)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	original := State{
		ThemeIndex:     2,
		PaneVisibility: []string{"visible", "collapsed"},
		LastCurrent:    1,
	}
	require.NoError(t, Save(original))

	loaded := Load()
	assert.Equal(t, original, loaded)

	vis, ok := loaded.Visibilities()
	assert.True(t, ok)
	assert.Equal(t, []string{"visible", "collapsed"}, vis)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		assert.Equal(t, DefaultState(), Load())
	})

	t.Run("invalid JSON", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		dir := filepath.Join(home, ".config", "swipedeck")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0644))

		assert.Equal(t, DefaultState(), Load())
	})

	t.Run("negative theme index", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		dir := filepath.Join(home, ".config", "swipedeck")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte(`{"theme_index": -3}`), 0644))

		assert.Equal(t, 0, Load().ThemeIndex)
	})
}

func TestVisibilitiesNeedsBothPanes(t *testing.T) {
	s := State{PaneVisibility: []string{"hidden"}}

	_, ok := s.Visibilities()
	assert.False(t, ok)
}

func TestSaveLeavesOnlyStateFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Save(State{ThemeIndex: 1}))
	require.NoError(t, Save(State{ThemeIndex: 3}))

	entries, err := os.ReadDir(filepath.Join(home, ".config", "swipedeck"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
	assert.Equal(t, 3, Load().ThemeIndex)
}

func TestLoadClampsLastCurrent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "swipedeck")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte(`{"last_current": 7}`), 0644))

	assert.Equal(t, 0, Load().LastCurrent)
}
