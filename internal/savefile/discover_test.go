package savefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProfileDirs(t *testing.T, base string, game Game, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(base, game.DataDir(), name), 0755))
	}
}

func TestDiscoverOrder(t *testing.T) {
	base := t.TempDir()
	makeProfileDirs(t, base, EldenRing, "ff01", "0a")
	makeProfileDirs(t, base, DarkSoulsIII, "beef")
	// ignored: wrong pattern, and a plain file matching the pattern
	makeProfileDirs(t, base, EldenRing, "NotHex", "0x12")
	require.NoError(t, os.WriteFile(filepath.Join(base, EldenRing.DataDir(), "abc"), nil, 0644))

	got, err := Discover(DiscoverConfig{Root: base})
	require.NoError(t, err)
	assert.Equal(t, []Location{
		{Game: DarkSoulsIII, Path: filepath.Join(base, "DarkSoulsIII", "beef", "DS30000.sl2")},
		{Game: EldenRing, Path: filepath.Join(base, "EldenRing", "0a", "ER0000.sl2")},
		{Game: EldenRing, Path: filepath.Join(base, "EldenRing", "ff01", "ER0000.sl2")},
	}, got)
}

func TestDiscoverFollowsSymlinkedProfiles(t *testing.T) {
	base := t.TempDir()
	makeProfileDirs(t, base, DarkSoulsIII)
	makeProfileDirs(t, base, EldenRing)
	target := filepath.Join(t.TempDir(), "real")
	require.NoError(t, os.MkdirAll(target, 0755))
	if err := os.Symlink(target, filepath.Join(base, EldenRing.DataDir(), "cafe")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Discover(DiscoverConfig{Root: base})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, EldenRing, got[0].Game)
}

func TestDiscoverMissingGameDirFails(t *testing.T) {
	base := t.TempDir()
	makeProfileDirs(t, base, EldenRing, "01")

	_, err := Discover(DiscoverConfig{Root: base})
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverNoBaseDir(t *testing.T) {
	_, err := Discover(DiscoverConfig{})
	require.ErrorIs(t, err, ErrNoBaseDir)
}

func TestLoadDiscoverConfig(t *testing.T) {
	t.Setenv("APPDATA", "/appdata")
	t.Setenv("ZOMBIERUN_SAVE_ROOT", "")

	cfg, err := LoadDiscoverConfig()
	require.NoError(t, err)
	base, err := cfg.BaseDir()
	require.NoError(t, err)
	assert.Equal(t, "/appdata", base)

	t.Setenv("ZOMBIERUN_SAVE_ROOT", "/override")
	cfg, err = LoadDiscoverConfig()
	require.NoError(t, err)
	base, err = cfg.BaseDir()
	require.NoError(t, err)
	assert.Equal(t, "/override", base)
}
