package floatutils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

func TestClip(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.1, 0, 1, 0},
		{1.1, 0, 1, 1},
		{0.08, -0.07, 0.07, 0.07},
	}

	for _, test := range tests {
		if got := Clip(test.value, test.min, test.max); got != test.want {
			t.Errorf("clip(%v, %v, %v): expected %v, got %v", test.value,
				test.min, test.max, test.want, got)
		}
		interval := r1.Interval{Min: test.min, Max: test.max}
		if got := ClipInterval(test.value, interval); got != test.want {
			t.Errorf("clipInterval(%v, %v): expected %v, got %v",
				test.value, interval, test.want, got)
		}
	}
}

func TestWithin(t *testing.T) {
	interval := r1.Interval{Min: -1, Max: 1}
	if !Within(1, interval) || !Within(-1, interval) {
		t.Error("interval bounds should be within the interval")
	}
	if Within(1.0000001, interval) {
		t.Error("value above max should not be within the interval")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(0, -1, 1e300) {
		t.Error("finite values reported as non-finite")
	}
	if IsFinite(0, math.NaN()) || IsFinite(math.Inf(1)) {
		t.Error("non-finite values reported as finite")
	}
}
