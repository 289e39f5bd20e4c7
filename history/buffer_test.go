package history_test

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonhe/flo/history"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestNew(t *testing.T) {
	t.Run("rejects non-positive capacity", func(t *testing.T) {
		for _, capacity := range []int{0, -1, -100} {
			b, err := history.New[int](capacity)
			assert.ErrorIs(t, err, history.ErrInvalidCapacity)
			assert.Nil(t, b)
		}
	})

	t.Run("fresh buffer is empty", func(t *testing.T) {
		b, err := history.New[string](3)
		require.NoError(t, err)

		assert.True(t, b.IsEmpty())
		assert.False(t, b.IsFull())
		assert.Equal(t, 0, b.Len())
		assert.Equal(t, 3, b.Cap())

		_, ok := b.MostRecent()
		assert.False(t, ok)
		_, ok = b.SinceLastWrite()
		assert.False(t, ok)
		assert.Empty(t, slices.Collect(b.All()))
		assert.Empty(t, b.Unsorted())
	})

	t.Run("capacity one", func(t *testing.T) {
		b, err := history.New[int](1)
		require.NoError(t, err)

		_, ok := b.Write(1)
		assert.False(t, ok)
		assert.True(t, b.IsFull())

		old, ok := b.Write(2)
		assert.True(t, ok)
		assert.Equal(t, 1, old)
		assert.Equal(t, []int{2}, slices.Collect(b.All()))

		last, _ := b.MostRecent()
		assert.Equal(t, 2, last)
	})
}

func TestWrite(t *testing.T) {
	t.Run("fewer writes than capacity", func(t *testing.T) {
		b, err := history.New[int](5)
		require.NoError(t, err)

		for i := 1; i <= 4; i++ {
			_, ok := b.Write(i)
			assert.False(t, ok, "write %d displaced a value", i)
			assert.Equal(t, i, b.Len())
			assert.False(t, b.IsFull())
		}
		assert.Equal(t, []int{1, 2, 3, 4}, slices.Collect(b.All()))
	})

	t.Run("full exactly at capacity", func(t *testing.T) {
		b, err := history.New[int](3)
		require.NoError(t, err)

		b.Write(1)
		b.Write(2)
		assert.False(t, b.IsFull())
		b.Write(3)
		assert.True(t, b.IsFull())
		assert.Equal(t, b.Cap(), b.Len())
	})

	t.Run("displaces in FIFO order", func(t *testing.T) {
		const capacity = 4
		b, err := history.New[int](capacity)
		require.NoError(t, err)

		for i := 0; i < capacity; i++ {
			b.Write(i)
		}
		for i := capacity; i < 3*capacity+1; i++ {
			old, ok := b.Write(i)
			require.True(t, ok)
			assert.Equal(t, i-capacity, old)
			assert.Equal(t, capacity, b.Len())
		}
	})

	t.Run("A B C D scenario", func(t *testing.T) {
		b, err := history.New[string](3)
		require.NoError(t, err)

		for _, v := range []string{"A", "B", "C"} {
			_, ok := b.Write(v)
			assert.False(t, ok)
		}
		old, ok := b.Write("D")
		assert.True(t, ok)
		assert.Equal(t, "A", old)

		assert.Equal(t, []string{"B", "C", "D"}, slices.Collect(b.All()))
		last, ok := b.MostRecent()
		assert.True(t, ok)
		assert.Equal(t, "D", last)
		assert.Equal(t, 3, b.Len())
		assert.True(t, b.IsFull())
	})

	t.Run("returns ownership of displaced pointer", func(t *testing.T) {
		type sample struct{ v int }
		b, err := history.New[*sample](2)
		require.NoError(t, err)

		first := &sample{v: 1}
		b.Write(first)
		b.Write(&sample{v: 2})
		old, ok := b.Write(&sample{v: 3})
		require.True(t, ok)
		assert.Same(t, first, old)
		for _, s := range b.Unsorted() {
			assert.NotSame(t, first, s)
		}
	})
}

func TestMostRecent(t *testing.T) {
	b, err := history.New[int](3)
	require.NoError(t, err)

	// covers cursor == 0 after wrap as well as mid-buffer positions
	for i := 1; i <= 10; i++ {
		b.Write(i)
		last, ok := b.MostRecent()
		require.True(t, ok)
		assert.Equal(t, i, last)
	}
}

func TestClear(t *testing.T) {
	t.Run("A clear B scenario", func(t *testing.T) {
		b, err := history.New[string](3)
		require.NoError(t, err)

		b.Write("A")
		b.Clear()
		assert.True(t, b.IsEmpty())
		assert.Equal(t, 0, b.Len())

		b.Write("B")
		last, ok := b.MostRecent()
		assert.True(t, ok)
		assert.Equal(t, "B", last)
		assert.Equal(t, []string{"B"}, slices.Collect(b.All()))
	})

	t.Run("behaves like a fresh buffer after wrap", func(t *testing.T) {
		b, err := history.New[int](3)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			b.Write(i)
		}
		b.Clear()
		assert.Equal(t, 3, b.Cap())

		for i := 10; i < 13; i++ {
			_, ok := b.Write(i)
			assert.False(t, ok)
		}
		assert.Equal(t, []int{10, 11, 12}, b.Unsorted())
		assert.Equal(t, []int{10, 11, 12}, slices.Collect(b.All()))

		old, ok := b.Write(13)
		assert.True(t, ok)
		assert.Equal(t, 10, old)
	})

	t.Run("releases stored values", func(t *testing.T) {
		b, err := history.New[*int](2)
		require.NoError(t, err)

		v := 1
		b.Write(&v)
		b.Write(&v)
		storage := b.Unsorted()
		b.Clear()
		assert.Nil(t, storage[0])
		assert.Nil(t, storage[1])
	})
}

func TestSinceLastWrite(t *testing.T) {
	t.Run("measures from last write", func(t *testing.T) {
		clock := newClock()
		b, err := history.New[int](2, history.WithClock(clock.Now))
		require.NoError(t, err)

		clock.Advance(time.Minute)
		_, ok := b.SinceLastWrite()
		assert.False(t, ok, "empty buffer must not report an age")

		b.Write(1)
		clock.Advance(3 * time.Second)
		age, ok := b.SinceLastWrite()
		assert.True(t, ok)
		assert.Equal(t, 3*time.Second, age)

		b.Write(2)
		b.Write(3)
		clock.Advance(time.Second)
		age, _ = b.SinceLastWrite()
		assert.Equal(t, time.Second, age)
	})

	t.Run("cleared buffer reports no age", func(t *testing.T) {
		clock := newClock()
		b, err := history.New[int](2, history.WithClock(clock.Now))
		require.NoError(t, err)

		b.Write(1)
		clock.Advance(5 * time.Second)
		b.Clear()

		_, ok := b.SinceLastWrite()
		assert.False(t, ok)

		// Refilling restarts the timer at the new write; the earlier one
		// is never observable through an empty buffer.
		b.Write(2)
		clock.Advance(time.Second)
		age, ok := b.SinceLastWrite()
		assert.True(t, ok)
		assert.Equal(t, time.Second, age)
	})

	t.Run("nil clock falls back to time.Now", func(t *testing.T) {
		b, err := history.New[int](1, history.WithClock(nil))
		require.NoError(t, err)
		b.Write(1)
		age, ok := b.SinceLastWrite()
		assert.True(t, ok)
		assert.GreaterOrEqual(t, age, time.Duration(0))
	})
}

func TestUnsorted(t *testing.T) {
	b, err := history.New[int](3)
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		b.Write(i)
	}
	// physical layout after one wrap: slot 0 holds the newest value
	assert.Equal(t, []int{4, 2, 3}, b.Unsorted())
	assert.Equal(t, []int{2, 3, 4}, b.Values())

	view := b.Unsorted()
	view = append(view, 99)
	assert.Equal(t, []int{4, 2, 3}, b.Unsorted(), "append to the view must not reach the buffer")
	assert.Len(t, view, 4)
}

func TestValues(t *testing.T) {
	b, err := history.New[int](3)
	require.NoError(t, err)
	assert.Empty(t, b.Values())

	for i := 1; i <= 5; i++ {
		b.Write(i)
	}
	vals := b.Values()
	assert.Equal(t, []int{3, 4, 5}, vals)

	vals[0] = 100
	assert.Equal(t, []int{3, 4, 5}, b.Values(), "Values must return a copy")
}

func TestString(t *testing.T) {
	b, err := history.New[string](3)
	require.NoError(t, err)
	assert.Equal(t, "[]", b.String())

	for _, v := range []string{"A", "B", "C", "D"} {
		b.Write(v)
	}
	assert.Equal(t, "[B C D]", b.String())
	assert.Equal(t, "[B C D]", fmt.Sprint(b))
	assert.Equal(t, "[B C D]", fmt.Sprintf("%v", b))
}
