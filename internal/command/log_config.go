package command

import (
	"fmt"

	"github.com/joeycumines/zombie-run/internal/config"
	"github.com/joeycumines/zombie-run/internal/logging"
)

// resolveLogOptions resolves logging for command from its flags, falling
// back to the environment, the config file and the defaults. Empty flags
// are unset.
func resolveLogOptions(flagPath, flagLevel, command string, cfg *config.Config) (logging.Options, error) {
	schema := config.DefaultSchema()
	var opts logging.Options

	levelStr := flagLevel
	if levelStr == "" {
		levelStr = schema.Resolve(cfg, command, config.KeyLogLevel)
	}
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return opts, err
	}
	opts.Level = level

	opts.Path = flagPath
	if opts.Path == "" {
		opts.Path = schema.Resolve(cfg, command, config.KeyLogFile)
	}

	if opts.MaxSizeMB, err = schema.ResolveInt(cfg, command, config.KeyLogMaxSizeMB); err != nil {
		return opts, err
	}
	if opts.MaxSizeMB <= 0 {
		return opts, fmt.Errorf("option %s must be positive", config.KeyLogMaxSizeMB)
	}
	// zero keeps no backups
	if opts.MaxFiles, err = schema.ResolveInt(cfg, command, config.KeyLogMaxFiles); err != nil {
		return opts, err
	}
	if opts.MaxFiles < 0 {
		return opts, fmt.Errorf("option %s must not be negative", config.KeyLogMaxFiles)
	}
	return opts, nil
}
