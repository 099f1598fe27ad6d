//go:build linux && !tinygo

package linux

import (
	"errors"
	"math"
	"testing"
)

func TestPairSampler(t *testing.T) {
	calls := 0
	p := &pairSampler{sample: func() (float32, float32, error) {
		calls++
		return 20 + float32(calls), 50 + float32(calls), nil
	}}

	h := p.ReadHumidity()
	tc := p.ReadTemperature()
	if h != 51 || tc != 21 {
		t.Errorf("pair = %v/%v; want 21/51 from one transaction", tc, h)
	}
	if calls != 1 {
		t.Errorf("sample calls = %d; want 1", calls)
	}

	// A temperature read without a pending humidity read samples again.
	if got := p.ReadTemperature(); got != 22 {
		t.Errorf("ReadTemperature() = %v; want 22", got)
	}
}

func TestPairSampler_error(t *testing.T) {
	p := &pairSampler{sample: func() (float32, float32, error) {
		return 0, 0, errors.New("checksum")
	}}
	if h := p.ReadHumidity(); !math.IsNaN(float64(h)) {
		t.Errorf("ReadHumidity() = %v; want NaN", h)
	}
	if tc := p.ReadTemperature(); !math.IsNaN(float64(tc)) {
		t.Errorf("ReadTemperature() = %v; want NaN", tc)
	}
}
