package multimountains

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-12

func TestHill(t *testing.T) {
	if got := Hill(SegmentValley); !scalar.EqualWithinAbs(got, 0.1, tol) {
		t.Errorf("valley height: expected 0.1, got %v", got)
	}
	if got := Hill(math.Pi / 6); !scalar.EqualWithinAbs(got, 1.0, tol) {
		t.Errorf("peak height: expected 1.0, got %v", got)
	}
}

func TestCalcHeight(t *testing.T) {
	// A zero angle leaves the baseline hill unchanged
	height, err := CalcHeight(0)
	if err != nil {
		t.Fatal(err)
	}
	if want := Hill(SegmentEnd); !scalar.EqualWithinAbs(height, want, tol) {
		t.Errorf("calcHeight(0): expected %v, got %v", want, height)
	}

	// Steeper angles raise the end of the segment
	prev := math.Inf(-1)
	for _, angle := range []float64{-60, -30, -10, 0, 10, 30, 45} {
		height, err := CalcHeight(angle)
		if err != nil {
			t.Fatalf("calcHeight(%v): %v", angle, err)
		}
		if height <= prev {
			t.Errorf("calcHeight(%v) = %v should exceed %v", angle, height,
				prev)
		}
		prev = height
	}
}

func TestCalcHeightSteep(t *testing.T) {
	// Past a right angle the tangent flips sign and the hill becomes a pit
	height, err := CalcHeight(60)
	if err != nil {
		t.Fatal(err)
	}
	slope := math.Atan((Hill(SegmentEnd)-Hill(SegmentValley))/SegmentRun) +
		60*math.Pi/180
	want := Hill(SegmentValley) + math.Tan(slope)*SegmentRun
	if !scalar.EqualWithinAbs(height, want, tol) || height > -6 {
		t.Errorf("calcHeight(60): expected %v, got %v", want, height)
	}

	for _, angle := range []float64{51, 90, 120, -130, -170} {
		if _, err := CalcHeight(angle); err != nil {
			t.Errorf("calcHeight(%v): %v", angle, err)
		}
	}
}

func TestCalcHeightInvalid(t *testing.T) {
	for _, angle := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := CalcHeight(angle); !IsInvalidConfiguration(err) {
			t.Errorf("calcHeight(%v): expected invalid configuration, got %v",
				angle, err)
		}
	}
}

func TestCalcPointsEmpty(t *testing.T) {
	if _, err := CalcPoints(nil); !IsInvalidConfiguration(err) {
		t.Errorf("expected invalid configuration, got %v", err)
	}
}

func TestCalcPointsCount(t *testing.T) {
	for n := 1; n <= 6; n++ {
		angles := make([]float64, n)
		points, err := CalcPoints(angles)
		if err != nil {
			t.Fatal(err)
		}
		if len(points) != 2*n+1 {
			t.Errorf("%v angles: expected %v points, got %v", n, 2*n+1,
				len(points))
		}
	}
}

func TestCalcPointsFirstSegmentUnmodified(t *testing.T) {
	points, err := CalcPoints([]float64{20, -10})
	if err != nil {
		t.Fatal(err)
	}
	local, err := SegmentPoints(20)
	if err != nil {
		t.Fatal(err)
	}
	for i := range local {
		if points[i] != local[i] {
			t.Errorf("point %v: expected %v, got %v", i, local[i], points[i])
		}
	}
}

// Consecutive segments must join without a gap: each segment after the
// first keeps the shape of its local points relative to its dropped
// first point, which sits exactly on the previous segment's last point.
func TestCalcPointsContinuity(t *testing.T) {
	angles := []float64{0, 15, -20, 30, 5}
	points, err := CalcPoints(angles)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(angles); i++ {
		local, err := SegmentPoints(angles[i])
		if err != nil {
			t.Fatal(err)
		}
		joint := points[2*i]

		for j := 1; j < 3; j++ {
			got := r2.Sub(points[2*i+j], joint)
			want := r2.Sub(local[j], local[0])
			if !scalar.EqualWithinAbs(got.X, want.X, tol) ||
				!scalar.EqualWithinAbs(got.Y, want.Y, tol) {
				t.Errorf("segment %v point %v: offset from joint %v, "+
					"expected %v", i, j, got, want)
			}
		}
	}
}

func TestCalcPointsMonotonic(t *testing.T) {
	tests := [][]float64{
		{0},
		{0, 0},
		{-45, 45},
		{50, -120, 30, 0, 10, -10, 20},
	}

	for _, angles := range tests {
		points, err := CalcPoints(angles)
		if err != nil {
			t.Fatalf("%v: %v", angles, err)
		}
		for i := 1; i < len(points); i++ {
			if points[i].X <= points[i-1].X {
				t.Errorf("%v: x not strictly increasing at %v: %v <= %v",
					angles, i, points[i].X, points[i-1].X)
			}
		}
	}
}

func TestCalcPointsInvalidAngle(t *testing.T) {
	_, err := CalcPoints([]float64{0, math.NaN()})
	if !IsInvalidConfiguration(err) {
		t.Errorf("expected invalid configuration, got %v", err)
	}
}

func TestNewTerrainSteepAngle(t *testing.T) {
	terrain, err := NewTerrain([]float64{0, 60}, DefaultDelta, Forward)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(terrain.Points); i++ {
		if terrain.Points[i].X <= terrain.Points[i-1].X {
			t.Errorf("abscissas not increasing at %v: %v", i, terrain.Points)
		}
	}
	if end := terrain.Points[len(terrain.Points)-1].Y; end >= 0 {
		t.Errorf("expected the last hill to end in a pit, got height %v", end)
	}

	env, err := New([]float64{0, 60}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := env.StepAction(2); err != nil {
		t.Fatal(err)
	}
}

func TestPeaks(t *testing.T) {
	for n := 1; n <= 5; n++ {
		angles := make([]float64, n)
		points, err := CalcPoints(angles)
		if err != nil {
			t.Fatal(err)
		}

		peaks := Peaks(points)
		if len(peaks) != n-1 {
			t.Fatalf("%v angles: expected %v peaks, got %v", n, n-1,
				len(peaks))
		}
		for i, peak := range peaks {
			if peak != points[2*(i+1)].X {
				t.Errorf("peak %v: expected %v, got %v", i, points[2*(i+1)].X,
					peak)
			}
		}
	}
}

func TestNewTerrain(t *testing.T) {
	terrain, err := NewTerrain([]float64{0, 10}, DefaultDelta, Forward)
	if err != nil {
		t.Fatal(err)
	}

	if terrain.Goal() != terrain.Points[len(terrain.Points)-1].X {
		t.Errorf("goal %v should be the last control point %v",
			terrain.Goal(), terrain.Points[len(terrain.Points)-1].X)
	}
	if len(terrain.Peaks) != 1 {
		t.Errorf("expected 1 peak, got %v", len(terrain.Peaks))
	}

	if _, err := NewTerrain([]float64{}, DefaultDelta, Forward); !IsInvalidConfiguration(err) {
		t.Errorf("expected invalid configuration, got %v", err)
	}
}
