package multimountains

import "fmt"

// Canvas is a drawing surface which the environment renders to. The
// terrain is drawn once with DrawCurve, after which every frame only
// moves the marker representing the car.
//
// Canvases are only used for visualisation; errors returned by a Canvas
// never affect the simulation.
type Canvas interface {
	DrawCurve(title string, xs, ys []float64) error
	MoveMarker(x, y, radius float64) error
}

// SetCanvas attaches a Canvas to the environment. The terrain will be
// drawn on the next call to Render.
func (m *base) SetCanvas(c Canvas) {
	m.canvas = c
	m.canvasDrawn = false
}

// Title returns the title used when drawing the terrain
func (m *base) Title() string {
	return fmt.Sprintf("Angles = %v", m.terrain.Angles)
}

// Render draws the current state of the environment on the attached
// Canvas. The first call draws the terrain.
func (m *base) Render() error {
	if m.canvas == nil {
		return newError("render", ErrNoCanvas)
	}

	curve := m.terrain.Curve
	if !m.canvasDrawn {
		xs, ys := curve.Sample()
		if err := m.canvas.DrawCurve(m.Title(), xs, ys); err != nil {
			return fmt.Errorf("render: could not draw terrain: %w", err)
		}
		m.canvasDrawn = true
	}

	if m.status == ready {
		return newError("render", ErrNotReset)
	}

	x := m.position
	if err := m.canvas.MoveMarker(x, curve.Value(x), curve.Radius()); err != nil {
		return fmt.Errorf("render: could not draw car: %w", err)
	}
	return nil
}
