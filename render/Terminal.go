package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
)

// Car is the marker drawn below the terrain plot
const Car string = "🚗"

// Terminal is a Canvas which draws the terrain as an ASCII plot with
// the car on a track below it. Each frame is written to an io.Writer,
// if one is given.
type Terminal struct {
	out           io.Writer
	width, height int

	plot       string
	offset     int
	xMin, xMax float64
	frame      string
}

// NewTerminal returns a new Terminal canvas plotting width columns by
// height rows. If out is nil, frames are only available through Frame.
func NewTerminal(out io.Writer, width, height int) *Terminal {
	return &Terminal{out: out, width: width, height: height}
}

// DrawCurve plots the terrain
func (t *Terminal) DrawCurve(title string, xs, ys []float64) error {
	if len(xs) < 2 || len(xs) != len(ys) {
		return fmt.Errorf("drawCurve: need at least 2 points with equal "+
			"coordinate lengths, got %v and %v", len(xs), len(ys))
	}

	t.xMin, t.xMax = floats.Min(xs), floats.Max(xs)
	t.plot = asciigraph.Plot(ys,
		asciigraph.Height(t.height),
		asciigraph.Width(t.width),
		asciigraph.Caption(title),
	)
	t.offset = axisOffset(t.plot)
	return nil
}

// MoveMarker draws a new frame with the car below position x
func (t *Terminal) MoveMarker(x, y, _ float64) error {
	if t.plot == "" {
		return fmt.Errorf("moveMarker: curve has not been drawn")
	}

	col := int(math.Round((x - t.xMin) / (t.xMax - t.xMin) *
		float64(t.width-1)))
	col = max(0, min(t.width-1, col))

	var b strings.Builder
	b.WriteString(t.plot)
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", t.offset+col))
	b.WriteString(Car)
	b.WriteString("\n")
	fmt.Fprintf(&b, "x = %.4f  y = %.4f\n", x, y)
	t.frame = b.String()

	if t.out != nil {
		if _, err := io.WriteString(t.out, t.frame); err != nil {
			return fmt.Errorf("moveMarker: %w", err)
		}
	}
	return nil
}

// Frame returns the last frame drawn
func (t *Terminal) Frame() string {
	return t.frame
}

// axisOffset returns the column of the first data point in a plot,
// which follows the y axis labels
func axisOffset(plot string) int {
	line, _, _ := strings.Cut(plot, "\n")
	col := 0
	for _, r := range line {
		col++
		if r == '┤' || r == '┼' {
			return col
		}
	}
	return 0
}
