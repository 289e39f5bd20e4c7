package history

import "iter"

// Iter walks a buffer's values in write order from both ends.
//
// The chronological sequence is the physical segment from the write cursor
// to the end of storage followed by the segment before the cursor. Iter
// keeps one logical index per end and maps it onto those two segments, so
// no ordered copy is ever built. The buffer must not be written to while
// an Iter is in use.
type Iter[T any] struct {
	older []T // items[cursor:]
	newer []T // items[:cursor]
	front int
	back  int // one past the last unread logical index
}

// Iter returns a double-ended iterator over the values, oldest first.
// Each call starts a fresh traversal.
func (b *Buffer[T]) Iter() *Iter[T] {
	return &Iter[T]{
		older: b.items[b.cursor:],
		newer: b.items[:b.cursor],
		back:  len(b.items),
	}
}

// Len returns the number of values not yet consumed from either end.
func (it *Iter[T]) Len() int {
	return it.back - it.front
}

// Next returns the oldest unread value.
func (it *Iter[T]) Next() (T, bool) {
	if it.front >= it.back {
		var zero T
		return zero, false
	}
	v := it.at(it.front)
	it.front++
	return v, true
}

// NextBack returns the newest unread value.
func (it *Iter[T]) NextBack() (T, bool) {
	if it.front >= it.back {
		var zero T
		return zero, false
	}
	it.back--
	return it.at(it.back), true
}

func (it *Iter[T]) at(i int) T {
	if i < len(it.older) {
		return it.older[i]
	}
	return it.newer[i-len(it.older)]
}

// All returns the values oldest first.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := b.Iter()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns the values newest first.
func (b *Buffer[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := b.Iter()
		for v, ok := it.NextBack(); ok; v, ok = it.NextBack() {
			if !yield(v) {
				return
			}
		}
	}
}
