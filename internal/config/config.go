// Package config loads the zombie-run configuration file.
//
// The file uses a dnsmasq-style format: one "key value" per line, "#"
// comments, and optional [command] sections whose options shadow the
// global ones while that command runs:
//
//	log.level info
//	notify.enabled false
//
//	[run]
//	log.file /tmp/zr.log
package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
)

// Config holds the parsed file. The zero value is not usable, see NewConfig.
type Config struct {
	// Global options, set before the first section header.
	Global map[string]string
	// Sections maps a command name to the options of its [command] block.
	Sections map[string]map[string]string
	// Warnings lists problems found while loading, in file order. They never
	// stop a load: the affected line is skipped or the value kept as is.
	Warnings []string
}

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return &Config{
		Global:   make(map[string]string),
		Sections: make(map[string]map[string]string),
	}
}

// LoadFromPath reads the file at path. A missing file yields an empty
// Config. Symlinks are refused, since `zr config` rewrites the file in place.
func LoadFromPath(path string) (*Config, error) {
	fi, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlink not allowed in config path: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	c, err := LoadFromReader(f)
	if err != nil {
		return nil, err
	}
	for _, w := range c.Warnings {
		slog.Warn("config warning", "path", path, "issue", w)
	}
	return c, nil
}

// LoadFromReader parses r, then checks every option against DefaultSchema.
func LoadFromReader(r io.Reader) (*Config, error) {
	c := NewConfig()
	var (
		section string
		opts    = c.Global
	)
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue

		case strings.HasPrefix(line, "["):
			name, ok := strings.CutSuffix(line[1:], "]")
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				c.warn("line %d: malformed section header %q, ignoring until the next section", n, line)
				section, opts = "", nil
				continue
			}
			section, opts = name, c.section(name)
			continue

		case opts == nil:
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		value = strings.TrimSpace(value)
		if _, dup := opts[key]; dup {
			c.warn("line %d: %q repeated%s, the last value wins", n, key, where(section))
		}
		opts[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	c.Warnings = append(c.Warnings, ValidateConfig(c, DefaultSchema())...)
	return c, nil
}

func where(section string) string {
	if section == "" {
		return ""
	}
	return " in [" + section + "]"
}

func (c *Config) warn(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *Config) section(name string) map[string]string {
	opts := c.Sections[name]
	if opts == nil {
		opts = make(map[string]string)
		c.Sections[name] = opts
	}
	return opts
}

// Get returns the value of key for command: its [command] section first,
// then the global options. An empty command reads only the global options.
func (c *Config) Get(command, key string) (string, bool) {
	if command != "" {
		if v, ok := c.Sections[command][key]; ok {
			return v, true
		}
	}
	v, ok := c.Global[key]
	return v, ok
}

// Set stores key in the [command] section, or globally when command is
// empty. It changes only the in-memory Config, see SetKeyInFile.
func (c *Config) Set(command, key, value string) {
	if command == "" {
		c.Global[key] = value
		return
	}
	c.section(command)[key] = value
}

// SectionNames returns the names of every [command] section, sorted.
func (c *Config) SectionNames() []string {
	return slices.Sorted(maps.Keys(c.Sections))
}
