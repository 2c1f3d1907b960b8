package multimountains

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/multimountains/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r2"
)

// Hill shape constants. Each hill segment is sampled from the same
// sinusoid at three abscissas; the third point is raised or lowered
// according to the segment's angle.
const (
	HillAmplitude float64 = 0.45
	HillOffset    float64 = 0.55
	HillFrequency float64 = 3.0

	SegmentStart float64 = -1.2
	SegmentEnd   float64 = 0.5
	SegmentRun   float64 = 1.1 // Horizontal run used to raise the third point
)

// SegmentValley is the abscissa of the middle point of a local hill
// segment, the bottom of its valley
var SegmentValley float64 = -math.Pi / 6

// Hill returns the height of the baseline hill shape at x
func Hill(x float64) float64 {
	return HillAmplitude*math.Sin(HillFrequency*x) + HillOffset
}

// CalcHeight returns the height of the last point of a hill segment
// with the given angle in degrees. The baseline slope from the valley
// to the end of the segment is rotated by angle and projected forward
// by SegmentRun.
//
// Steep angles turn the hill into a deep pit or a tall wall. An error
// is returned only if the angle or the resulting height is not finite.
func CalcHeight(angle float64) (float64, error) {
	if !floatutils.IsFinite(angle) {
		return 0, newError("calcHeight", fmt.Errorf("%w: angle %v is not "+
			"finite", ErrInvalidConfiguration, angle))
	}

	valley := Hill(SegmentValley)
	end := Hill(SegmentEnd)
	slope := math.Atan((end-valley)/SegmentRun) + 2*angle*math.Pi/360

	height := valley + math.Tan(slope)*SegmentRun
	if !floatutils.IsFinite(height) {
		return 0, newError("calcHeight", fmt.Errorf("%w: angle %v gives "+
			"height %v", ErrInvalidConfiguration, angle, height))
	}

	return height, nil
}

// SegmentPoints returns the three local control points of a single
// hill segment with the given angle
func SegmentPoints(angle float64) ([3]r2.Vec, error) {
	height, err := CalcHeight(angle)
	if err != nil {
		return [3]r2.Vec{}, err
	}

	return [3]r2.Vec{
		{X: SegmentStart, Y: Hill(SegmentStart)},
		{X: SegmentValley, Y: Hill(SegmentValley)},
		{X: SegmentEnd, Y: height},
	}, nil
}

// CalcPoints stitches one hill segment per angle into a single ordered
// sequence of control points. The first segment contributes all three
// of its points. Every further segment drops its first point and
// contributes its remaining two points, translated so that the
// dropped point coincides with the last point already accepted. The
// result therefore has 2*len(angles)+1 points.
func CalcPoints(angles []float64) ([]r2.Vec, error) {
	if len(angles) == 0 {
		return nil, newError("calcPoints", fmt.Errorf("%w: at least one "+
			"angle is required", ErrInvalidConfiguration))
	}

	points := make([]r2.Vec, 0, 2*len(angles)+1)
	for i, angle := range angles {
		local, err := SegmentPoints(angle)
		if err != nil {
			return nil, fmt.Errorf("calcPoints: segment %v: %w", i, err)
		}

		if i == 0 {
			points = append(points, local[:]...)
			continue
		}

		offset := r2.Sub(points[len(points)-1], local[0])
		for _, point := range local[1:] {
			points = append(points, r2.Add(point, offset))
		}
	}

	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return nil, newError("calcPoints", fmt.Errorf("%w: control "+
				"point abscissas not strictly increasing at index %v "+
				"(%v <= %v)", ErrInvalidConfiguration, i, points[i].X,
				points[i-1].X))
		}
	}

	return points, nil
}

// Peaks returns the abscissas of the interior hill tops of a sequence
// of control points built by CalcPoints: the last point of every
// segment except the final one. Crossing one of these moving right
// earns a reward.
func Peaks(points []r2.Vec) []float64 {
	segments := (len(points) - 1) / 2
	if segments < 2 {
		return []float64{}
	}

	peaks := make([]float64, 0, segments-1)
	for i := 2; i < len(points)-1; i += 2 {
		peaks = append(peaks, points[i].X)
	}
	return peaks
}

// Terrain bundles the angles a terrain was built from with its control
// points, hill tops, and fitted curve
type Terrain struct {
	Angles []float64
	Points []r2.Vec
	Peaks  []float64
	Curve  *Curve
}

// NewTerrain builds the control points for angles and fits a curve
// through them. The delta and mode arguments are passed to NewCurve.
func NewTerrain(angles []float64, delta float64,
	mode DerivativeMode) (*Terrain, error) {
	points, err := CalcPoints(angles)
	if err != nil {
		return nil, fmt.Errorf("newTerrain: %w", err)
	}

	curve, err := NewCurve(points, delta, mode)
	if err != nil {
		return nil, fmt.Errorf("newTerrain: %w", err)
	}

	return &Terrain{
		Angles: append([]float64(nil), angles...),
		Points: points,
		Peaks:  Peaks(points),
		Curve:  curve,
	}, nil
}

// Goal returns the x position the car must reach, the right end of
// the terrain
func (t *Terrain) Goal() float64 {
	return t.Curve.Domain().Max
}

// xy splits points into their coordinates
func xy(points []r2.Vec) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, point := range points {
		xs[i], ys[i] = point.X, point.Y
	}
	return xs, ys
}
