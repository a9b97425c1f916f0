package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joeycumines/zombie-run/internal/storage"
)

// SetKeyInFile sets a global option in the config file at path, creating
// the file if needed. Comments, ordering and sections are preserved: an
// existing global line for key is replaced in place, otherwise the option is
// inserted before the first [section] header, or appended.
//
// Keys inside [section] blocks are never matched.
func SetKeyInFile(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}

	newLine := strings.TrimSpace(key + " " + value)

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(string(data), "\n")
	}

	insertAt := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			insertAt = i
			break
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if name, _, _ := strings.Cut(trimmed, " "); name == key {
			lines[i] = newLine
			return writeLines(path, lines)
		}
	}

	switch {
	case insertAt >= 0:
		lines = append(lines[:insertAt], append([]string{newLine}, lines[insertAt:]...)...)
	case len(lines) > 0 && lines[len(lines)-1] == "":
		// keep the trailing newline last
		lines = append(lines[:len(lines)-1], newLine, "")
	default:
		lines = append(lines, newLine)
	}
	return writeLines(path, lines)
}

func writeLines(path string, lines []string) error {
	// AtomicWriteFile creates the parent directory
	return storage.AtomicWriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}
