// Package termtest runs a program on a pseudo terminal and lets tests type
// at it and wait for its output.
package termtest

import (
	"fmt"
	"strings"
)

// keySequences maps key names, as bubbletea spells them, to the bytes an
// xterm sends for them.
var keySequences = map[string]string{
	"enter":      "\r",
	"tab":        "\t",
	"shift+tab":  "\x1b[Z",
	"esc":        "\x1b",
	"backspace":  "\x7f",
	"ctrl+c":     "\x03",
	"ctrl+d":     "\x04",
	"up":         "\x1b[A",
	"down":       "\x1b[B",
	"right":      "\x1b[C",
	"left":       "\x1b[D",
	"shift+up":   "\x1b[1;2A",
	"shift+down": "\x1b[1;2B",
}

// KeySequence returns the bytes for a named key. Single characters map to
// themselves.
func KeySequence(name string) (string, error) {
	if seq, ok := keySequences[strings.ToLower(name)]; ok {
		return seq, nil
	}
	if len([]rune(name)) == 1 {
		return name, nil
	}
	return "", fmt.Errorf("unknown key: %s", name)
}
