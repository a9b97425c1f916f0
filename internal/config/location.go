package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the configuration file path.
const ConfigEnvVar = "ZOMBIERUN_CONFIG"

// GetConfigPath returns the configuration file path: $ZOMBIERUN_CONFIG if
// set, otherwise ~/.zombie-run/config.
func GetConfigPath() (string, error) {
	if configPath := os.Getenv(ConfigEnvVar); configPath != "" {
		return configPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".zombie-run", "config"), nil
}

// EnsureConfigDir ensures that the configuration directory exists.
func EnsureConfigDir() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

// GetLockPath returns the single-instance lock file path, which lives next
// to the configuration file.
func GetLockPath() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "zr.lock"), nil
}
