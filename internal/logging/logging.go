// Package logging builds the application's slog logger. The terminal belongs
// to the UI, so logs go to a rotated JSON file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Options configures New.
type Options struct {
	// Path of the log file. Empty disables logging.
	Path string
	// Level is the minimum level recorded.
	Level slog.Level
	// MaxSizeMB and MaxFiles control rotation, see NewRotatingFileWriter.
	MaxSizeMB int
	MaxFiles  int
}

// ParseLevel parses debug, info, warn or error, case-insensitively. The
// empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// New returns a logger per opts, and a closer for its file. The closer is
// never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if opts.Path == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	w, err := NewRotatingFileWriter(opts.Path, opts.MaxSizeMB, opts.MaxFiles)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level})
	return slog.New(handler), w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
