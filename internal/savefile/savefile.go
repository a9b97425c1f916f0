// Package savefile models captured save files, the on-disk locations they
// are captured from, and discovery of those locations.
package savefile

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/joeycumines/zombie-run/internal/storage"
)

// Savefile is an immutable snapshot of a save file's bytes.
type Savefile struct {
	// Data is the captured file content.
	Data []byte
	// Saved is when the snapshot was captured.
	Saved time.Time
	// UID is unique for the lifetime of the Sequence that issued it. It is
	// for display and correlation only; history order is positional.
	UID uint64
}

// Sequence issues monotonically increasing snapshot ids, starting at 0. It
// is safe for concurrent use. The zero value is ready to use.
type Sequence struct {
	next atomic.Uint64
}

// Next returns the next id.
func (s *Sequence) Next() uint64 {
	return s.next.Add(1) - 1
}

// Store reads and writes the live save file.
type Store interface {
	Load(path string) ([]byte, error)
	Store(path string, data []byte) error
}

// Capture reads the save file at path into a new Savefile.
func Capture(store Store, path string, seq *Sequence, now time.Time) (*Savefile, error) {
	data, err := store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read savefile %s: %w", path, err)
	}
	return &Savefile{
		Data:  data,
		Saved: now,
		UID:   seq.Next(),
	}, nil
}

// Restore writes the snapshot back to path.
func (s *Savefile) Restore(store Store, path string) error {
	if err := store.Store(path, s.Data); err != nil {
		return fmt.Errorf("failed to write savefile %s: %w", path, err)
	}
	return nil
}

// Elapsed returns how long ago the snapshot was captured.
func (s *Savefile) Elapsed(now time.Time) time.Duration {
	return max(now.Sub(s.Saved), 0)
}

// FileStore is a Store backed by the local file system. Writes are atomic:
// a restore never leaves a partially written save file behind.
type FileStore struct{}

// Load reads the file at path.
func (FileStore) Load(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Store replaces the file at path, keeping its permissions if it exists.
func (FileStore) Store(path string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return storage.AtomicWriteFile(path, data, perm)
}

var _ Store = FileStore{}
