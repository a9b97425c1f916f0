package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func setHome(t *testing.T, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", dir)
	} else {
		t.Setenv("HOME", dir)
	}
}

func TestGetConfigPathEnvOverride(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/tmp/custom-config")

	got, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath returned error: %v", err)
	}
	if got != "/tmp/custom-config" {
		t.Fatalf("expected override path, got %q", got)
	}
}

func TestGetConfigPathDefault(t *testing.T) {
	dir := t.TempDir()
	setHome(t, dir)
	t.Setenv(ConfigEnvVar, "")

	got, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath returned error: %v", err)
	}
	if want := filepath.Join(dir, ".zombie-run", "config"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigEnvVar, filepath.Join(dir, "nested", "zr", "config"))

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir returned error: %v", err)
	}
	fi, err := os.Stat(filepath.Join(dir, "nested", "zr"))
	if err != nil {
		t.Fatalf("expected config dir to exist: %v", err)
	}
	if !fi.IsDir() {
		t.Fatalf("expected a directory")
	}
}

func TestGetLockPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigEnvVar, filepath.Join(dir, "config"))

	got, err := GetLockPath()
	if err != nil {
		t.Fatalf("GetLockPath returned error: %v", err)
	}
	if want := filepath.Join(dir, "zr.lock"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
