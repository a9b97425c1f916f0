// Package cursor provides Cursor, an ordered sequence with a current position.
//
// The position is stored atomically, so a render path may call Index or Get
// while the driving loop calls Goto, Next or Prev, and never observe a torn
// value. Push and Remove update the sequence and then clamp the position in
// two separate steps; a reader racing a Remove may briefly see an index one
// past the end. That is acceptable for a single, UI-driven session and is
// not safe for high-contention use.
package cursor

import (
	"sync/atomic"
)

// Cursor is an insertion-ordered sequence of T with a selected index.
//
// The index is always 0 when the sequence is empty, otherwise a valid index
// into Data, once any mutation has returned. The zero value is an empty
// Cursor ready to use.
type Cursor[T any] struct {
	index atomic.Uint64
	data  []T
}

// New returns a Cursor over the given items, positioned at index 0.
func New[T any](items ...T) *Cursor[T] {
	c := &Cursor[T]{}
	c.data = append(c.data, items...)
	return c
}

// Goto selects index i, returning false (and leaving the selection alone)
// when i is out of range. It always fails on an empty Cursor.
func (c *Cursor[T]) Goto(i int) bool {
	if i < 0 || i >= len(c.data) {
		return false
	}
	c.index.Store(uint64(min(i, len(c.data)-1)))
	return true
}

// Index returns the selected index.
func (c *Cursor[T]) Index() int {
	return int(c.index.Load())
}

// Next moves the selection forward by one, unless it is already at the last
// element, and returns the selected element.
//
// Next panics on an empty Cursor, see Get.
func (c *Cursor[T]) Next() T {
	c.Goto(c.Index() + 1)
	return c.Get()
}

// Prev moves the selection back by one, saturating at 0, and returns the
// selected element.
//
// Prev panics on an empty Cursor, see Get.
func (c *Cursor[T]) Prev() T {
	c.Goto(max(c.Index()-1, 0))
	return c.Get()
}

// Get returns the selected element. Callers must check Len first: Get panics
// on an empty Cursor.
func (c *Cursor[T]) Get() T {
	return c.data[c.Index()]
}

// GetAt returns the element at index i, without changing the selection.
func (c *Cursor[T]) GetAt(i int) (T, bool) {
	if i < 0 || i >= len(c.data) {
		var zero T
		return zero, false
	}
	return c.data[i], true
}

// Data returns the underlying elements, oldest first. The slice must be
// treated as read-only.
func (c *Cursor[T]) Data() []T {
	return c.data
}

// Len returns the number of elements.
func (c *Cursor[T]) Len() int {
	return len(c.data)
}

// IsEmpty reports whether the Cursor holds no elements.
func (c *Cursor[T]) IsEmpty() bool {
	return len(c.data) == 0
}

// Push appends v. The selection is unchanged unless it was out of range, in
// which case it is clamped to the last element.
func (c *Cursor[T]) Push(v T) {
	c.data = append(c.data, v)
	c.constrain()
}

// Remove deletes the element at index i, shifting later elements down, then
// clamps the selection to the last element. Out of range indexes are ignored.
//
// The selection is index-preserving, not content-tracking: removing an
// element before the selected one leaves the index as is, so the selection
// moves to the element that followed the removed one.
func (c *Cursor[T]) Remove(i int) {
	if i < 0 || i >= len(c.data) {
		return
	}
	var zero T
	copy(c.data[i:], c.data[i+1:])
	c.data[len(c.data)-1] = zero
	c.data = c.data[:len(c.data)-1]
	c.constrain()
}

func (c *Cursor[T]) constrain() {
	last := max(len(c.data)-1, 0)
	c.index.Store(uint64(min(c.Index(), last)))
}
