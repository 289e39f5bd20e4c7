package engine

import (
	"time"

	"github.com/tonhe/flo/history"
)

// WindowStats summarizes the samples currently held by a Window.
type WindowStats struct {
	Samples  int
	Capacity int
	Evicted  uint64 // samples pushed out since the last reset
	AvgIn    float64
	AvgOut   float64
	PeakIn   float64
	PeakOut  float64
}

// Window is the rate history of one interface: the last N samples plus
// running totals that are kept current as samples are displaced.
// Like the buffer it wraps, it is not safe for concurrent use.
type Window struct {
	samples *history.Buffer[RateSample]
	sumIn   float64
	sumOut  float64
	evicted uint64
}

// NewWindow returns a window keeping size samples.
func NewWindow(size int, opts ...history.Option) (*Window, error) {
	buf, err := history.New[RateSample](size, opts...)
	if err != nil {
		return nil, err
	}
	return &Window{samples: buf}, nil
}

// Add records s. When the window is full the oldest sample is returned.
func (w *Window) Add(s RateSample) (RateSample, bool) {
	old, ok := w.samples.Write(s)
	w.sumIn += s.InRate
	w.sumOut += s.OutRate
	if ok {
		w.sumIn -= old.InRate
		w.sumOut -= old.OutRate
		w.evicted++
		// resync once per full turn so float error cannot accumulate
		if w.evicted%uint64(w.samples.Cap()) == 0 {
			w.resum()
		}
	}
	return old, ok
}

func (w *Window) resum() {
	w.sumIn, w.sumOut = 0, 0
	for _, s := range w.samples.Unsorted() {
		w.sumIn += s.InRate
		w.sumOut += s.OutRate
	}
}

// Reset discards all samples.
func (w *Window) Reset() {
	w.samples.Clear()
	w.sumIn, w.sumOut = 0, 0
	w.evicted = 0
}

// Latest returns the newest sample.
func (w *Window) Latest() (RateSample, bool) {
	return w.samples.MostRecent()
}

// Age returns how long ago the newest sample was recorded.
func (w *Window) Age() (time.Duration, bool) {
	return w.samples.SinceLastWrite()
}

// Samples returns a copy of the samples, oldest first.
func (w *Window) Samples() []RateSample {
	return w.samples.Values()
}

// Recent returns up to n samples, newest first.
func (w *Window) Recent(n int) []RateSample {
	if n <= 0 {
		return nil
	}
	out := make([]RateSample, 0, min(n, w.samples.Len()))
	for s := range w.samples.Backward() {
		if len(out) == n {
			break
		}
		out = append(out, s)
	}
	return out
}

func (w *Window) Stats() WindowStats {
	st := WindowStats{
		Samples:  w.samples.Len(),
		Capacity: w.samples.Cap(),
		Evicted:  w.evicted,
	}
	if st.Samples == 0 {
		return st
	}
	st.AvgIn = w.sumIn / float64(st.Samples)
	st.AvgOut = w.sumOut / float64(st.Samples)
	for s := range w.samples.All() {
		st.PeakIn = max(st.PeakIn, s.InRate)
		st.PeakOut = max(st.PeakOut, s.OutRate)
	}
	return st
}
