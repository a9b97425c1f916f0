package app

import (
	"errors"

	"github.com/joeycumines/zombie-run/internal/cursor"
	"github.com/joeycumines/zombie-run/internal/savefile"
)

// ErrNoProfiles is returned when no save file locations were discovered.
var ErrNoProfiles = errors.New("no save profiles found")

// Selector tracks which save file location is active. Its set of locations
// is fixed at construction.
type Selector struct {
	locations *cursor.Cursor[savefile.Location]
}

// NewSelector returns a Selector over locations, with the first active.
func NewSelector(locations []savefile.Location) (*Selector, error) {
	if len(locations) == 0 {
		return nil, ErrNoProfiles
	}
	return &Selector{locations: cursor.New(locations...)}, nil
}

// DiscoverSelector discovers save file locations and returns a Selector
// over them. Discovery failures are fatal to the session.
func DiscoverSelector(cfg savefile.DiscoverConfig) (*Selector, error) {
	locations, err := savefile.Discover(cfg)
	if err != nil {
		return nil, err
	}
	return NewSelector(locations)
}

// Current returns the active location.
func (s *Selector) Current() savefile.Location {
	return s.locations.Get()
}

// Select activates the location at index i, reporting whether i was valid.
func (s *Selector) Select(i int) bool {
	return s.locations.Goto(i)
}

// Index returns the index of the active location.
func (s *Selector) Index() int {
	return s.locations.Index()
}

// Locations returns every location, in discovery order.
func (s *Selector) Locations() []savefile.Location {
	return s.locations.Data()
}
