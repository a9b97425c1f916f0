package app

import (
	"github.com/joeycumines/zombie-run/internal/cursor"
	"github.com/joeycumines/zombie-run/internal/savefile"
)

// History is one game's snapshot history.
type History = cursor.Cursor[*savefile.Savefile]

// Registry holds an independent History per game. Entries are created on
// first access and live for the rest of the session.
type Registry struct {
	histories map[savefile.Game]*History
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{histories: make(map[savefile.Game]*History)}
}

// HistoryFor returns the game's history, creating an empty one if needed.
func (r *Registry) HistoryFor(game savefile.Game) *History {
	h, ok := r.histories[game]
	if !ok {
		h = cursor.New[*savefile.Savefile]()
		r.histories[game] = h
	}
	return h
}

// SnapshotsFor returns the game's history without creating it.
func (r *Registry) SnapshotsFor(game savefile.Game) (*History, bool) {
	h, ok := r.histories[game]
	return h, ok
}
