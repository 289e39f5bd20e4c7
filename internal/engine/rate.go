package engine

import (
	"errors"
	"time"
)

var (
	// ErrCounterWrap indicates that an SNMP counter has wrapped around or
	// the device reset its counters.
	ErrCounterWrap = errors.New("counter wrap detected")
	// ErrNoElapsed indicates two counter samples share a timestamp.
	ErrNoElapsed = errors.New("zero or negative elapsed time")
)

// CounterSample holds raw SNMP counter values at a point in time.
type CounterSample struct {
	InOctets  uint64
	OutOctets uint64
	Timestamp time.Time
}

// RateSample holds calculated bit rates at a point in time.
type RateSample struct {
	Timestamp time.Time
	InRate    float64
	OutRate   float64
}

// Max returns the higher of the two directions.
func (s RateSample) Max() float64 {
	return max(s.InRate, s.OutRate)
}

// CalculateRate computes the bit rate between two counter samples.
func CalculateRate(prev, curr CounterSample) (RateSample, error) {
	elapsed := curr.Timestamp.Sub(prev.Timestamp).Seconds()
	if elapsed <= 0 {
		return RateSample{}, ErrNoElapsed
	}
	if curr.InOctets < prev.InOctets || curr.OutOctets < prev.OutOctets {
		return RateSample{}, ErrCounterWrap
	}
	return RateSample{
		Timestamp: curr.Timestamp,
		InRate:    float64(curr.InOctets-prev.InOctets) * 8 / elapsed,
		OutRate:   float64(curr.OutOctets-prev.OutOctets) * 8 / elapsed,
	}, nil
}

// CalculateUtilization returns the busier direction as a percentage of an
// interface speed given in Mbps.
func CalculateUtilization(inRate, outRate float64, speedMbps uint64) float64 {
	if speedMbps == 0 {
		return 0
	}
	return max(inRate, outRate) / (float64(speedMbps) * 1_000_000) * 100
}
