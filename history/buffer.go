// Package history provides a fixed-capacity, write-only history buffer.
//
// A Buffer keeps the most recent N values written to it. Once it is full,
// every write overwrites the oldest value and hands it back to the caller.
// It is meant for bounded windows over a stream of measurements, such as
// the last hour of interface rate samples.
//
// Buffer is NOT safe for concurrent use. Callers that share one across
// goroutines must synchronize access themselves.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidCapacity is returned by New when the requested capacity is not
// a positive number.
var ErrInvalidCapacity = errors.New("history: capacity must be greater than zero")

// Option configures a Buffer at construction time.
type Option func(*settings)

type settings struct {
	now func() time.Time
}

// WithClock replaces time.Now as the source of write timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// Buffer is a circular store of the last Cap() values written to it.
type Buffer[T any] struct {
	capacity  int
	cursor    int // next slot to write
	items     []T // grows to capacity, then stays there
	lastWrite time.Time
	now       func() time.Time
}

// New creates an empty buffer holding at most capacity values.
func New[T any](capacity int, opts ...Option) (*Buffer[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return &Buffer[T]{
		capacity:  capacity,
		items:     make([]T, 0, capacity),
		lastWrite: s.now(),
		now:       s.now,
	}, nil
}

// IsEmpty reports whether no values are stored.
func (b *Buffer[T]) IsEmpty() bool {
	return len(b.items) == 0
}

// IsFull reports whether the buffer holds Cap() values, in which case the
// next write displaces the oldest one.
func (b *Buffer[T]) IsFull() bool {
	return len(b.items) == b.capacity
}

// Cap returns the maximum number of values the buffer retains.
func (b *Buffer[T]) Cap() int {
	return b.capacity
}

// Len returns the number of values currently stored.
func (b *Buffer[T]) Len() int {
	return len(b.items)
}

// Clear drops all stored values and rewinds the write cursor.
// The write timestamp is left as is; SinceLastWrite reports nothing until
// the next write because the buffer is empty.
func (b *Buffer[T]) Clear() {
	clear(b.items)
	b.items = b.items[:0]
	b.cursor = 0
}

// MostRecent returns the last value written.
func (b *Buffer[T]) MostRecent() (T, bool) {
	if b.IsEmpty() {
		var zero T
		return zero, false
	}
	if b.cursor == 0 {
		return b.items[len(b.items)-1], true
	}
	return b.items[b.cursor-1], true
}

// Write stores v. If the buffer was full, the value that occupied the slot
// is returned with ok set; the buffer keeps no reference to it afterwards.
func (b *Buffer[T]) Write(v T) (displaced T, ok bool) {
	if b.IsFull() {
		displaced, b.items[b.cursor] = b.items[b.cursor], v
		ok = true
	} else {
		b.items = append(b.items, v)
	}
	b.cursor = (b.cursor + 1) % b.capacity
	b.lastWrite = b.now()
	return displaced, ok
}

// SinceLastWrite returns the time elapsed since the most recent write.
// It reports false while the buffer is empty.
func (b *Buffer[T]) SinceLastWrite() (time.Duration, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	return b.now().Sub(b.lastWrite), true
}

// Unsorted returns the stored values in physical slot order, which differs
// from write order once the buffer has wrapped. The slice aliases the
// buffer's storage: do not modify it, and do not keep it across writes.
func (b *Buffer[T]) Unsorted() []T {
	return b.items[:len(b.items):len(b.items)]
}

// Values returns a copy of the stored values, oldest first.
func (b *Buffer[T]) Values() []T {
	out := make([]T, 0, len(b.items))
	out = append(out, b.items[b.cursor:]...)
	return append(out, b.items[:b.cursor]...)
}

// String renders the values oldest first, e.g. "[1 2 3]".
func (b *Buffer[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for v := range b.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')
	return sb.String()
}
