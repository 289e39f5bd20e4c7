package engine

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateRate(t *testing.T) {
	now := time.Now()
	prev := CounterSample{
		InOctets:  1000,
		OutOctets: 500,
		Timestamp: now.Add(-10 * time.Second),
	}
	curr := CounterSample{
		InOctets:  2000,
		OutOctets: 1500,
		Timestamp: now,
	}
	rate, err := CalculateRate(prev, curr)
	if err != nil {
		t.Fatalf("CalculateRate() error: %v", err)
	}
	if rate.InRate != 800 {
		t.Errorf("expected InRate 800, got %f", rate.InRate)
	}
	if rate.OutRate != 800 {
		t.Errorf("expected OutRate 800, got %f", rate.OutRate)
	}
	if !rate.Timestamp.Equal(now) {
		t.Errorf("expected sample stamped with the newer reading, got %v", rate.Timestamp)
	}
}

func TestCalculateRateCounterWrap(t *testing.T) {
	now := time.Now()
	prev := CounterSample{
		InOctets:  100,
		OutOctets: 50,
		Timestamp: now.Add(-10 * time.Second),
	}
	curr := CounterSample{
		InOctets:  50,
		OutOctets: 50,
		Timestamp: now,
	}
	_, err := CalculateRate(prev, curr)
	if !errors.Is(err, ErrCounterWrap) {
		t.Errorf("expected ErrCounterWrap, got %v", err)
	}
}

func TestCalculateRateNoElapsed(t *testing.T) {
	now := time.Now()
	_, err := CalculateRate(CounterSample{Timestamp: now}, CounterSample{InOctets: 10, Timestamp: now})
	if !errors.Is(err, ErrNoElapsed) {
		t.Errorf("expected ErrNoElapsed, got %v", err)
	}
}

func TestCalculateUtilization(t *testing.T) {
	util := CalculateUtilization(500_000_000, 300_000_000, 1000)
	if util < 49 || util > 51 {
		t.Errorf("expected ~50%%, got %f", util)
	}
	if got := CalculateUtilization(500, 300, 0); got != 0 {
		t.Errorf("expected 0 for unknown speed, got %f", got)
	}
}

func TestRateSampleMax(t *testing.T) {
	s := RateSample{InRate: 10, OutRate: 25}
	if s.Max() != 25 {
		t.Errorf("expected 25, got %f", s.Max())
	}
}
