package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrWouldBlock signals that a non-blocking lock attempt failed because
// another process holds the lock.
var ErrWouldBlock = errors.New("file lock would block")

// Lock is an exclusive, process-wide lock backed by a lock file.
type Lock struct {
	file *os.File
}

// AcquireLock takes the lock at path without blocking, recording owner in
// the lock file for diagnostics. It returns an error wrapping ErrWouldBlock
// when another process holds the lock.
func AcquireLock(path, owner string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	f, err := acquireFileLock(path)
	if err != nil {
		return nil, err
	}
	if owner != "" {
		if err := f.Truncate(0); err == nil {
			_, _ = f.WriteAt([]byte(owner+"\n"), 0)
		}
	}
	return &Lock{file: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.file.Name()
}

// Release unlocks and removes the lock file. It is safe to call more than
// once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	return releaseFileLock(f)
}
