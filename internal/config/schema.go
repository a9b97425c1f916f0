package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// OptionType is the expected type of an option value.
type OptionType string

const (
	TypeString   OptionType = "string"
	TypeBool     OptionType = "bool"
	TypeInt      OptionType = "int"
	TypeDuration OptionType = "duration"
)

// Option declares a single configuration option.
type Option struct {
	// Key is the option name as it appears in the config file.
	Key         string
	Type        OptionType
	Default     string
	Description string
	// EnvVar, if set, overrides the config file value.
	EnvVar string
}

// Schema declares the known options. Every option may appear globally or in
// any [command] section, where it shadows the global value for that command.
type Schema struct {
	options []Option
	byKey   map[string]int
}

// NewSchema returns a schema declaring opts, in order. A repeated key
// replaces the earlier declaration.
func NewSchema(opts ...Option) *Schema {
	s := &Schema{byKey: make(map[string]int, len(opts))}
	for _, opt := range opts {
		if i, ok := s.byKey[opt.Key]; ok {
			s.options[i] = opt
			continue
		}
		s.byKey[opt.Key] = len(s.options)
		s.options = append(s.options, opt)
	}
	return s
}

// Lookup returns the option declared for key.
func (s *Schema) Lookup(key string) (Option, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return Option{}, false
	}
	return s.options[i], true
}

// Options returns every declared option, in declaration order.
func (s *Schema) Options() []Option {
	return slices.Clone(s.options)
}

// Resolve returns the effective value of key for command ("" for global):
// the declared environment variable when set (even to ""), then the
// [command] section, then the global option, then the default.
func (s *Schema) Resolve(c *Config, command, key string) string {
	opt, known := s.Lookup(key)
	if known && opt.EnvVar != "" {
		if v, ok := os.LookupEnv(opt.EnvVar); ok {
			return v
		}
	}
	if c != nil {
		if v, ok := c.Get(command, key); ok {
			return v
		}
	}
	return opt.Default
}

// ResolveBool is Resolve parsed as a bool.
func (s *Schema) ResolveBool(c *Config, command, key string) (bool, error) {
	v := s.Resolve(c, command, key)
	b, err := parseBool(v)
	if err != nil {
		return false, fmt.Errorf("option %s: %w", key, err)
	}
	return b, nil
}

// ResolveInt is Resolve parsed as an int.
func (s *Schema) ResolveInt(c *Config, command, key string) (int, error) {
	v := s.Resolve(c, command, key)
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option %s: expected int, got %q", key, v)
	}
	return i, nil
}

// ResolveDuration is Resolve parsed as a time.Duration.
func (s *Schema) ResolveDuration(c *Config, command, key string) (time.Duration, error) {
	v := s.Resolve(c, command, key)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("option %s: expected duration, got %q", key, v)
	}
	return d, nil
}

var boolWords = map[string]bool{
	"true": true, "1": true, "yes": true, "on": true,
	"false": false, "0": false, "no": false, "off": false,
}

// parseBool accepts true/false, 1/0, yes/no and on/off, ignoring case.
func parseBool(s string) (bool, error) {
	b, ok := boolWords[strings.ToLower(s)]
	if !ok {
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
	return b, nil
}

// ValidateConfig returns human readable issues with c: unknown options and
// values that do not parse as the declared type. The result is sorted.
func ValidateConfig(c *Config, s *Schema) []string {
	var issues []string
	check := func(where, key, value string) {
		opt, ok := s.Lookup(key)
		if !ok {
			issues = append(issues, fmt.Sprintf("unknown option %s: %q (value: %q)", where, key, value))
			return
		}
		if err := validateType(opt.Type, value); err != nil {
			issues = append(issues, fmt.Sprintf("option %q %s: %v", key, where, err))
		}
	}
	for key, value := range c.Global {
		check("(global)", key, value)
	}
	for command, opts := range c.Sections {
		for key, value := range opts {
			check("in ["+command+"]", key, value)
		}
	}
	slices.Sort(issues)
	return issues
}

func validateType(t OptionType, value string) error {
	var err error
	switch t {
	case TypeString, "":
	case TypeBool:
		_, err = parseBool(value)
	case TypeInt:
		_, err = strconv.Atoi(value)
	case TypeDuration:
		_, err = time.ParseDuration(value)
	default:
		return fmt.Errorf("unknown option type %q", t)
	}
	if err != nil {
		return fmt.Errorf("expected %s, got %q", t, value)
	}
	return nil
}

// FormatHelp renders a reference of every declared option.
func (s *Schema) FormatHelp() string {
	var b strings.Builder
	b.WriteString("Options (global, or inside a [command] section):\n")
	for _, o := range s.options {
		fmt.Fprintf(&b, "  %-20s %s", o.Key, o.Description)
		var parts []string
		if o.Type != "" && o.Type != TypeString {
			parts = append(parts, "type: "+string(o.Type))
		}
		if o.Default != "" {
			parts = append(parts, "default: "+o.Default)
		}
		if o.EnvVar != "" {
			parts = append(parts, "env: "+o.EnvVar)
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Option keys.
const (
	KeyLogFile         = "log.file"
	KeyLogLevel        = "log.level"
	KeyLogMaxSizeMB    = "log.max-size-mb"
	KeyLogMaxFiles     = "log.max-files"
	KeyMessageTTL      = "message.ttl"
	KeyNotifyEnabled   = "notify.enabled"
	KeyNotifyTimeout   = "notify.timeout"
	KeyRefreshInterval = "refresh.interval"
	KeySaveRoot        = "save.root"
	KeyMouse           = "mouse"
	KeyAltScreen       = "alt-screen"
)

// DefaultSchema returns the schema of every zombie-run option.
func DefaultSchema() *Schema {
	return NewSchema(
		Option{Key: KeyLogFile, Type: TypeString, Description: "Log file path (JSON lines); logging is off when empty", EnvVar: "ZOMBIERUN_LOG_FILE"},
		Option{Key: KeyLogLevel, Type: TypeString, Default: "info", Description: "Log level: debug, info, warn, error", EnvVar: "ZOMBIERUN_LOG_LEVEL"},
		Option{Key: KeyLogMaxSizeMB, Type: TypeInt, Default: "10", Description: "Log file size in MB before rotation"},
		Option{Key: KeyLogMaxFiles, Type: TypeInt, Default: "5", Description: "Rotated log files to keep"},
		Option{Key: KeyMessageTTL, Type: TypeDuration, Default: "5s", Description: "How long status messages stay visible"},
		Option{Key: KeyNotifyEnabled, Type: TypeBool, Default: "true", Description: "Show a desktop notification after each load"},
		Option{Key: KeyNotifyTimeout, Type: TypeDuration, Default: "1s", Description: "Desktop notification display time"},
		Option{Key: KeyRefreshInterval, Type: TypeDuration, Default: "120ms", Description: "Input polling and repaint interval"},
		Option{Key: KeySaveRoot, Type: TypeString, Description: "Directory holding the per-game save folders (default %APPDATA%)", EnvVar: "ZOMBIERUN_SAVE_ROOT"},
		Option{Key: KeyMouse, Type: TypeBool, Default: "true", Description: "Enable mouse support"},
		Option{Key: KeyAltScreen, Type: TypeBool, Default: "true", Description: "Use the terminal's alternate screen"},
	)
}
