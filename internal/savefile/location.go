package savefile

import (
	"strings"

	"github.com/rivo/uniseg"
)

// MaxDisplayPathLength is the number of characters of a path shown by
// Location.String before it is shortened.
const MaxDisplayPathLength = 32

// Location is a save file path for a particular game.
type Location struct {
	Game Game
	Path string
}

// String renders the location as "<game>: <path>", with long paths reduced
// to their final MaxDisplayPathLength characters.
func (l Location) String() string {
	return l.Game.String() + ": " + ShortenPath(l.Path, MaxDisplayPathLength)
}

// ShortenPath returns path unchanged if it is at most n characters (grapheme
// clusters), otherwise "..." followed by its last n characters.
func ShortenPath(path string, n int) string {
	count := uniseg.GraphemeClusterCount(path)
	if count <= n {
		return path
	}
	skip := count - n
	rest, state := path, -1
	for ; skip > 0; skip-- {
		_, rest, _, state = uniseg.StepString(rest, state)
	}
	var b strings.Builder
	b.Grow(len(rest) + 3)
	b.WriteString("...")
	b.WriteString(rest)
	return b.String()
}
