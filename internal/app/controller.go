// Package app implements a snapshot session: the active save profile, one
// snapshot history per game, and the operations a driver invokes on them
// once per tick.
package app

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joeycumines/zombie-run/internal/input"
	"github.com/joeycumines/zombie-run/internal/notify"
	"github.com/joeycumines/zombie-run/internal/savefile"
)

// Defaults for Config.
const (
	DefaultMessageTTL    = 5 * time.Second
	DefaultNotifyTimeout = time.Second
)

// NotificationTitle is the title of restore notifications.
const NotificationTitle = "Zombie Run"

// Config wires a Controller to its collaborators. Zero fields take defaults.
type Config struct {
	// Store reads and writes live save files (default savefile.FileStore).
	Store savefile.Store
	// Notifier receives a notification after each restore (default
	// notify.Discard). It is called from its own goroutine, so a slow
	// notifier never delays the restore. Failures are logged and otherwise
	// ignored.
	Notifier notify.Notifier
	// Sequence issues snapshot ids (default: a fresh Sequence).
	Sequence *savefile.Sequence
	// Now is the clock (default time.Now).
	Now func() time.Time
	// Logger (default slog.Default()).
	Logger *slog.Logger
	// MessageTTL is how long status messages stay visible.
	MessageTTL time.Duration
	// NotifyTimeout is passed along with each notification.
	NotifyTimeout time.Duration
}

// Controller mediates user actions against the active profile's history.
//
// It is driven from a single goroutine. Rendering may read Index and the
// histories concurrently, see package cursor.
type Controller struct {
	selector      *Selector
	registry      *Registry
	store         savefile.Store
	notifier      notify.Notifier
	seq           *savefile.Sequence
	now           func() time.Time
	logger        *slog.Logger
	messageTTL    time.Duration
	notifyTimeout time.Duration
	message       *Message
	pending       sync.WaitGroup
}

// NewController returns a Controller for the given selector.
func NewController(selector *Selector, cfg Config) *Controller {
	c := &Controller{
		selector:      selector,
		registry:      NewRegistry(),
		store:         cfg.Store,
		notifier:      cfg.Notifier,
		seq:           cfg.Sequence,
		now:           cfg.Now,
		logger:        cfg.Logger,
		messageTTL:    cfg.MessageTTL,
		notifyTimeout: cfg.NotifyTimeout,
	}
	if c.store == nil {
		c.store = savefile.FileStore{}
	}
	if c.notifier == nil {
		c.notifier = notify.Discard{}
	}
	if c.seq == nil {
		c.seq = new(savefile.Sequence)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.messageTTL <= 0 {
		c.messageTTL = DefaultMessageTTL
	}
	if c.notifyTimeout <= 0 {
		c.notifyTimeout = DefaultNotifyTimeout
	}
	return c
}

// Location returns the active save file location.
func (c *Controller) Location() savefile.Location {
	return c.selector.Current()
}

// Locations returns every discovered location.
func (c *Controller) Locations() []savefile.Location {
	return c.selector.Locations()
}

// LocationIndex returns the index of the active location.
func (c *Controller) LocationIndex() int {
	return c.selector.Index()
}

// SelectLocation switches the active profile. Snapshot histories are not
// touched: each game keeps its own selection across switches.
func (c *Controller) SelectLocation(i int) bool {
	ok := c.selector.Select(i)
	if ok {
		c.logger.Debug("selected profile", "location", c.selector.Current().Path)
	}
	return ok
}

// History returns the active game's history, if one exists yet.
func (c *Controller) History() (*History, bool) {
	return c.registry.SnapshotsFor(c.Location().Game)
}

func (c *Controller) history() *History {
	return c.registry.HistoryFor(c.Location().Game)
}

// Index returns the selected position in the active game's history.
func (c *Controller) Index() int {
	if h, ok := c.History(); ok {
		return h.Index()
	}
	return 0
}

// Message returns the status message while it has not expired.
func (c *Controller) Message() (string, bool) {
	return c.message.Text(c.now())
}

func (c *Controller) setMessage(text string) {
	c.message = NewMessage(text, c.now(), c.messageTTL)
}

// Capture snapshots the active save file, appends it to the active game's
// history and selects it. On failure nothing changes, including the message.
func (c *Controller) Capture() error {
	loc := c.Location()
	snap, err := savefile.Capture(c.store, loc.Path, c.seq, c.now())
	if err != nil {
		c.logger.Warn("capture failed", "game", loc.Game.String(), "error", err)
		return err
	}
	h := c.history()
	h.Push(snap)
	h.Goto(h.Len() - 1)
	c.setMessage("Saved")
	c.logger.Info("captured savefile", "game", loc.Game.String(), "uid", snap.UID, "bytes", len(snap.Data))
	return nil
}

// Restore writes the selected snapshot to the active save file. It does
// nothing when the active game has no snapshots.
func (c *Controller) Restore() error {
	h, ok := c.History()
	if !ok || h.IsEmpty() {
		return nil
	}
	i := h.Index()
	return c.restore(i, h.Get())
}

// RestoreAt writes the snapshot at index i to the active save file, leaving
// the selection unchanged. Out of range indexes are ignored.
func (c *Controller) RestoreAt(i int) error {
	h, ok := c.History()
	if !ok {
		return nil
	}
	snap, ok := h.GetAt(i)
	if !ok {
		return nil
	}
	return c.restore(i, snap)
}

func (c *Controller) restore(i int, snap *savefile.Savefile) error {
	loc := c.Location()
	if err := snap.Restore(c.store, loc.Path); err != nil {
		c.logger.Warn("restore failed", "game", loc.Game.String(), "index", i, "error", err)
		return err
	}
	c.setMessage(fmt.Sprintf("Loaded #%03d (%s)", i, loc.Game))
	c.logger.Info("restored savefile", "game", loc.Game.String(), "index", i, "uid", snap.UID)

	n := notify.Notification{
		Title:   NotificationTitle,
		Body:    fmt.Sprintf("Loaded savefile #%d", i),
		Timeout: c.notifyTimeout,
	}
	notifier := c.notifier
	c.pending.Go(func() {
		if err := notifier.Notify(n); err != nil {
			c.logger.Debug("notification failed", "error", err)
		}
	})
	return nil
}

// Wait blocks until every notification sent by a restore has been
// delivered or has failed.
func (c *Controller) Wait() {
	c.pending.Wait()
}

// Next selects the following snapshot, if any.
func (c *Controller) Next() {
	if h, ok := c.History(); ok && !h.IsEmpty() {
		h.Next()
	}
}

// Prev selects the preceding snapshot, if any.
func (c *Controller) Prev() {
	if h, ok := c.History(); ok && !h.IsEmpty() {
		h.Prev()
	}
}

// Goto selects the snapshot at index i, reporting whether i was valid.
func (c *Controller) Goto(i int) bool {
	h, ok := c.History()
	return ok && h.Goto(i)
}

// RemoveAt deletes the snapshot at index i from the active game's history.
// The selection keeps its index, clamped to the new length.
func (c *Controller) RemoveAt(i int) {
	h, ok := c.History()
	if !ok {
		return
	}
	h.Remove(i)
}

// Update performs at most one requested action, checked in the order next,
// previous, capture, restore. Capture and restore errors are returned after
// being logged; the session carries on either way.
func (c *Controller) Update(src input.Source) error {
	switch {
	case src.Next():
		c.Next()
	case src.Prev():
		c.Prev()
	case src.Capture():
		return c.Capture()
	case src.Restore():
		return c.Restore()
	}
	return nil
}

// Entry describes one snapshot for display.
type Entry struct {
	Index    int
	UID      uint64
	Elapsed  time.Duration
	Size     int
	Selected bool
}

// Entries describes the active game's history, oldest first.
func (c *Controller) Entries() []Entry {
	h, ok := c.History()
	if !ok {
		return nil
	}
	now := c.now()
	selected := h.Index()
	data := h.Data()
	entries := make([]Entry, len(data))
	for i, snap := range data {
		entries[i] = Entry{
			Index:    i,
			UID:      snap.UID,
			Elapsed:  snap.Elapsed(now),
			Size:     len(snap.Data),
			Selected: i == selected,
		}
	}
	return entries
}

// FormatElapsed renders d as HH:MM:SS, with hours unbounded.
func FormatElapsed(d time.Duration) string {
	secs := int64(max(d, 0) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
