package multimountains

import (
	"fmt"

	"github.com/samuelfneumann/multimountains/utils/floatutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// SamplePoints is the number of evenly spaced points used to sample
	// the curve for rendering and for locating the starting valley
	SamplePoints int = 1024

	// DefaultDelta is the default step used for finite differences
	DefaultDelta float64 = 1e-12
)

// DerivativeMode determines how the slope of the curve is computed
type DerivativeMode string

const (
	// Forward uses (f(x+δ) - f(x)) / δ
	Forward DerivativeMode = "forward"

	// Central uses (f(x+δ) - f(x-δ)) / 2δ
	Central DerivativeMode = "central"

	// Analytic uses the derivative of the fitted cubic polynomials
	Analytic DerivativeMode = "analytic"
)

// Validate returns an error if the DerivativeMode is unknown
func (d DerivativeMode) Validate() error {
	switch d {
	case Forward, Central, Analytic:
		return nil
	}
	return fmt.Errorf("%w: unknown derivative mode %q",
		ErrInvalidConfiguration, string(d))
}

// Curve is a twice-differentiable curve interpolating a sequence of
// control points, with zero slope at its first and last point. The
// curve is immutable once fitted.
type Curve struct {
	spline *interp.ClampedCubic
	domain r1.Interval
	delta  float64
	mode   DerivativeMode

	xs, ys []float64 // Control points

	sampleX, sampleY []float64
}

// NewCurve fits a clamped cubic spline through points, which must have
// strictly increasing abscissas. The delta and mode arguments determine
// how Derivative approximates the slope of the curve.
func NewCurve(points []r2.Vec, delta float64, mode DerivativeMode) (*Curve,
	error) {
	if len(points) < 2 {
		return nil, newError("newCurve", fmt.Errorf("%w: at least 2 "+
			"control points are needed, got %v", ErrInvalidConfiguration,
			len(points)))
	}
	if err := mode.Validate(); err != nil {
		return nil, newError("newCurve", err)
	}
	if mode != Analytic && (delta <= 0 || !floatutils.IsFinite(delta)) {
		return nil, newError("newCurve", fmt.Errorf("%w: delta must be "+
			"positive, got %v", ErrInvalidConfiguration, delta))
	}

	xs, ys := xy(points)
	for i := range xs {
		if !floatutils.IsFinite(xs[i], ys[i]) {
			return nil, newError("newCurve", fmt.Errorf("%w: control point "+
				"%v is not finite", ErrInvalidConfiguration, points[i]))
		}
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, newError("newCurve", fmt.Errorf("%w: abscissas "+
				"not strictly increasing at index %v",
				ErrInvalidConfiguration, i))
		}
	}

	// ClampedCubic panics on invalid input, which is checked above
	var spline interp.ClampedCubic
	if err := spline.Fit(xs, ys); err != nil {
		return nil, newError("newCurve", err)
	}

	c := &Curve{
		spline: &spline,
		domain: r1.Interval{Min: xs[0], Max: xs[len(xs)-1]},
		delta:  delta,
		mode:   mode,
		xs:     xs,
		ys:     ys,
	}

	c.sampleX = floats.Span(make([]float64, SamplePoints), c.domain.Min,
		c.domain.Max)
	c.sampleY = make([]float64, SamplePoints)
	for i, x := range c.sampleX {
		c.sampleY[i] = c.Value(x)
	}

	return c, nil
}

// Value returns f(x). Value does not check that x lies in the domain
// of the curve; callers must clamp x first.
func (c *Curve) Value(x float64) float64 {
	return c.spline.Predict(x)
}

// ValueChecked returns f(x), or an error if x is outside the domain of
// the curve
func (c *Curve) ValueChecked(x float64) (float64, error) {
	if !floatutils.Within(x, c.domain) {
		return 0, newError("value", fmt.Errorf("%w: x = %v ∉ [%v, %v]",
			ErrOutOfDomain, x, c.domain.Min, c.domain.Max))
	}
	return c.Value(x), nil
}

// Derivative returns an approximation of f'(x) using the curve's
// DerivativeMode. Like Value, Derivative does not check its argument.
//
// The forward difference with the default δ = 1e-12 is dominated by
// floating point cancellation; its error is on the order of 1e-4.
func (c *Curve) Derivative(x float64) float64 {
	switch c.mode {
	case Analytic:
		return c.spline.PredictDerivative(x)
	case Central:
		return (c.Value(x+c.delta) - c.Value(x-c.delta)) / (2 * c.delta)
	default:
		return (c.Value(x+c.delta) - c.Value(x)) / c.delta
	}
}

// Domain returns the interval [x_min, x_max] over which the curve is
// defined
func (c *Curve) Domain() r1.Interval {
	return c.domain
}

// Delta returns the finite difference step of the curve
func (c *Curve) Delta() float64 {
	return c.delta
}

// Mode returns the DerivativeMode of the curve
func (c *Curve) Mode() DerivativeMode {
	return c.mode
}

// ControlPoints returns copies of the coordinates the curve was fitted
// through
func (c *Curve) ControlPoints() (xs, ys []float64) {
	return append([]float64(nil), c.xs...), append([]float64(nil), c.ys...)
}

// Sample returns SamplePoints evenly spaced points on the curve. The
// returned slices must not be modified.
func (c *Curve) Sample() (xs, ys []float64) {
	return c.sampleX, c.sampleY
}

// Radius returns the radius of the marker used to draw the car, 1/25th
// of the vertical extent of the curve
func (c *Curve) Radius() float64 {
	return (floats.Max(c.sampleY) - floats.Min(c.sampleY)) / 25
}

// ArgMin returns the x in n evenly spaced samples of [lo, hi] at which
// the curve is lowest. Ties resolve to the smallest x.
func (c *Curve) ArgMin(lo, hi float64, n int) float64 {
	if n < 2 {
		return lo
	}
	x := floats.Span(make([]float64, n), lo, hi)
	y := make([]float64, n)
	for i := range x {
		y[i] = c.Value(x[i])
	}
	return x[floats.MinIdx(y)]
}
