package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/tonhe/flo/history"
)

func sample(in, out float64) RateSample {
	return RateSample{InRate: in, OutRate: out}
}

func TestNewWindowRejectsZero(t *testing.T) {
	if _, err := NewWindow(0); !errors.Is(err, history.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestWindowAddAndStats(t *testing.T) {
	w, err := NewWindow(3)
	if err != nil {
		t.Fatal(err)
	}
	if st := w.Stats(); st.Samples != 0 || st.Capacity != 3 || st.AvgIn != 0 {
		t.Fatalf("unexpected empty stats: %+v", st)
	}

	for _, in := range []float64{10, 20, 30} {
		if _, evicted := w.Add(sample(in, in*2)); evicted {
			t.Fatalf("unexpected eviction while filling")
		}
	}
	st := w.Stats()
	if st.Samples != 3 || st.AvgIn != 20 || st.AvgOut != 40 || st.PeakIn != 30 || st.PeakOut != 60 {
		t.Errorf("unexpected stats: %+v", st)
	}

	old, evicted := w.Add(sample(40, 0))
	if !evicted || old.InRate != 10 {
		t.Fatalf("expected oldest sample (10) evicted, got %v %v", old, evicted)
	}
	st = w.Stats()
	if st.Samples != 3 || st.Evicted != 1 {
		t.Errorf("expected 3 samples and 1 eviction, got %+v", st)
	}
	if st.AvgIn != 30 {
		t.Errorf("expected average of 20,30,40 = 30, got %f", st.AvgIn)
	}
	if st.PeakOut != 60 {
		t.Errorf("expected out peak 60, got %f", st.PeakOut)
	}
}

func TestWindowRunningAverageAcrossManyTurns(t *testing.T) {
	w, _ := NewWindow(4)
	for i := 1; i <= 103; i++ {
		w.Add(sample(float64(i), 0))
	}
	// 100, 101, 102, 103 remain
	if got := w.Stats().AvgIn; got != 101.5 {
		t.Errorf("expected 101.5, got %f", got)
	}
	if got := w.Stats().Evicted; got != 99 {
		t.Errorf("expected 99 evictions, got %d", got)
	}
}

func TestWindowOrdering(t *testing.T) {
	w, _ := NewWindow(3)
	for _, in := range []float64{1, 2, 3, 4} {
		w.Add(sample(in, 0))
	}

	got := w.Samples()
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].InRate != want[i] {
			t.Errorf("Samples()[%d] = %f, want %f", i, got[i].InRate, want[i])
		}
	}

	recent := w.Recent(2)
	if len(recent) != 2 || recent[0].InRate != 4 || recent[1].InRate != 3 {
		t.Errorf("expected newest-first [4 3], got %v", recent)
	}
	if all := w.Recent(10); len(all) != 3 || all[2].InRate != 2 {
		t.Errorf("expected all three samples newest first, got %v", all)
	}
	if none := w.Recent(0); none != nil {
		t.Errorf("expected nil for Recent(0), got %v", none)
	}

	latest, ok := w.Latest()
	if !ok || latest.InRate != 4 {
		t.Errorf("expected latest 4, got %v %v", latest, ok)
	}
}

func TestWindowSamplesIsACopy(t *testing.T) {
	w, _ := NewWindow(2)
	w.Add(sample(1, 0))
	got := w.Samples()
	got[0].InRate = 99
	if latest, _ := w.Latest(); latest.InRate != 1 {
		t.Errorf("modifying Samples() result changed the window")
	}
}

func TestWindowReset(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w, _ := NewWindow(2, history.WithClock(func() time.Time { return now }))
	w.Add(sample(1, 1))
	w.Add(sample(2, 2))
	w.Add(sample(3, 3))

	w.Reset()
	if n := w.Stats().Samples; n != 0 {
		t.Fatalf("expected empty window, got %d", n)
	}
	if st := w.Stats(); st.Evicted != 0 || st.AvgIn != 0 || st.Capacity != 2 {
		t.Errorf("unexpected stats after reset: %+v", st)
	}
	if _, ok := w.Latest(); ok {
		t.Error("expected no latest sample after reset")
	}
	if _, ok := w.Age(); ok {
		t.Error("expected no age after reset")
	}

	w.Add(sample(5, 0))
	if st := w.Stats(); st.AvgIn != 5 {
		t.Errorf("expected fresh average 5, got %f", st.AvgIn)
	}
}

func TestWindowAge(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	w, _ := NewWindow(2, history.WithClock(clock))
	if _, ok := w.Age(); ok {
		t.Fatal("expected no age before first sample")
	}
	w.Add(sample(1, 1))
	now = now.Add(7 * time.Second)
	age, ok := w.Age()
	if !ok || age != 7*time.Second {
		t.Errorf("expected 7s, got %v %v", age, ok)
	}
}

func TestWindowAverageIsExactMean(t *testing.T) {
	w, _ := NewWindow(2)
	w.Add(sample(-4, 0))
	w.Add(sample(-2, 0))
	if got := w.Stats().AvgIn; got != -3 {
		t.Errorf("expected mean of -4 and -2 = -3, got %f", got)
	}
}
