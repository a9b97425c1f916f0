package savefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v11"
)

// ErrNoBaseDir is returned by Discover when no save-data base directory is
// configured.
var ErrNoBaseDir = errors.New("no save-data base directory: set ZOMBIERUN_SAVE_ROOT or APPDATA")

// profileDirPattern matches the hexadecimal profile directory names games
// create under their data directory.
var profileDirPattern = regexp.MustCompile(`^[a-f0-9]+$`)

// DiscoverConfig locates the save-data base directory.
type DiscoverConfig struct {
	// Root overrides AppData when set.
	Root string `env:"ZOMBIERUN_SAVE_ROOT"`
	// AppData is the roaming application data directory on Windows.
	AppData string `env:"APPDATA"`
}

// LoadDiscoverConfig reads DiscoverConfig from the environment.
func LoadDiscoverConfig() (DiscoverConfig, error) {
	var cfg DiscoverConfig
	if err := env.Parse(&cfg); err != nil {
		return DiscoverConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BaseDir returns the resolved base directory.
func (c DiscoverConfig) BaseDir() (string, error) {
	switch {
	case c.Root != "":
		return c.Root, nil
	case c.AppData != "":
		return c.AppData, nil
	default:
		return "", ErrNoBaseDir
	}
}

// Discover returns every candidate save file location, grouped by game in
// the order of Games, then in directory listing order (sorted by name).
// It fails if the base directory is unresolved, or if any game's data
// directory cannot be listed.
func Discover(cfg DiscoverConfig) ([]Location, error) {
	base, err := cfg.BaseDir()
	if err != nil {
		return nil, err
	}

	var locations []Location
	for _, game := range Games {
		paths, err := discoverGame(base, game)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			locations = append(locations, Location{Game: game, Path: path})
		}
	}
	return locations, nil
}

func discoverGame(base string, game Game) ([]string, error) {
	root := filepath.Join(base, game.DataDir())
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s save directory: %w", game, err)
	}

	var paths []string
	for _, entry := range entries {
		if !profileDirPattern.MatchString(entry.Name()) {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if !isDir(dir, entry) {
			continue
		}
		paths = append(paths, filepath.Join(dir, game.FileName()))
	}
	return paths, nil
}

// isDir follows symlinks, which os.DirEntry.IsDir does not.
func isDir(path string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
