// Package input turns key events into the per-tick action queries consumed
// by the session controller.
package input

import (
	"sync"
)

// Source answers, once per tick, which actions the user requested since the
// previous tick.
type Source interface {
	Next() bool
	Prev() bool
	Capture() bool
	Restore() bool
}

// Action is a user request understood by the controller.
type Action int

// Actions.
const (
	ActionNext Action = iota
	ActionPrev
	ActionCapture
	ActionRestore

	actionCount
)

// Latch is a Source fed by key events.
//
// Each action has a toggle bit, set when its key is pressed and cleared when
// queried, so a press is reported exactly once. An action is reported only
// if its key was also pressed with the modifier (shift) held. The zero value
// is ready to use and Latch is safe for concurrent use.
type Latch struct {
	mu       sync.Mutex
	toggled  [actionCount]bool
	modifier [actionCount]bool
}

var _ Source = (*Latch)(nil)

// Press records a key press for action, with the modifier state at the time
// of the press.
func (l *Latch) Press(action Action, modifier bool) {
	if action < 0 || action >= actionCount {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.toggled[action] = true
	l.modifier[action] = modifier
}

// Reset clears all pending presses.
func (l *Latch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.toggled = [actionCount]bool{}
	l.modifier = [actionCount]bool{}
}

func (l *Latch) take(action Action) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	ok := l.toggled[action] && l.modifier[action]
	l.toggled[action] = false
	l.modifier[action] = false
	return ok
}

// Next reports whether "next" was requested since the last query.
func (l *Latch) Next() bool { return l.take(ActionNext) }

// Prev reports whether "previous" was requested since the last query.
func (l *Latch) Prev() bool { return l.take(ActionPrev) }

// Capture reports whether a capture was requested since the last query.
func (l *Latch) Capture() bool { return l.take(ActionCapture) }

// Restore reports whether a restore was requested since the last query.
func (l *Latch) Restore() bool { return l.take(ActionRestore) }

// Static is a Source with fixed answers, for scripted drivers and tests.
type Static struct {
	WantNext, WantPrev, WantCapture, WantRestore bool
}

var _ Source = Static{}

func (s Static) Next() bool    { return s.WantNext }
func (s Static) Prev() bool    { return s.WantPrev }
func (s Static) Capture() bool { return s.WantCapture }
func (s Static) Restore() bool { return s.WantRestore }
