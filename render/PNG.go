// Package render implements Canvases which draw a Multi Mountains
// environment, either as PNG frames or as text for a terminal
package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"
)

// Colours of PNG frames
var (
	SkyShade     color.Color = color.RGBA{R: 230, G: 240, B: 255, A: 255}
	TerrainShade color.Color = color.RGBA{R: 60, G: 110, B: 60, A: 255}
	CarColour    color.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	TitleColour  color.Color = color.Black
)

// Margin is the number of pixels left empty around the plotted curve
const Margin float64 = 30

// PNG is a Canvas which saves each rendered frame as a numbered PNG
// image in a directory. The terrain is drawn once into a background
// image, and each frame copies the background before drawing the car.
type PNG struct {
	dir           string
	width, height int

	background image.Image
	xMin, xMax float64
	yMin, yMax float64
	frame      int
}

// NewPNG returns a new PNG canvas saving width × height images in dir.
// The directory is created if it does not exist.
func NewPNG(dir string, width, height int) (*PNG, error) {
	if width <= 2*int(Margin) || height <= 2*int(Margin) {
		return nil, fmt.Errorf("newPNG: image %vx%v is too small", width,
			height)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("newPNG: %w", err)
	}
	return &PNG{dir: dir, width: width, height: height}, nil
}

// DrawCurve draws the terrain into the background of all frames
func (p *PNG) DrawCurve(title string, xs, ys []float64) error {
	if len(xs) < 2 || len(xs) != len(ys) {
		return fmt.Errorf("drawCurve: need at least 2 points with equal "+
			"coordinate lengths, got %v and %v", len(xs), len(ys))
	}

	p.xMin, p.xMax = floats.Min(xs), floats.Max(xs)
	p.yMin, p.yMax = floats.Min(ys), floats.Max(ys)
	if p.yMax == p.yMin {
		p.yMax = p.yMin + 1
	}

	dc := gg.NewContext(p.width, p.height)
	dc.SetColor(SkyShade)
	dc.Clear()

	// Fill the ground below the curve
	dc.MoveTo(p.pixel(xs[0], p.yMin))
	for i := range xs {
		dc.LineTo(p.pixel(xs[i], ys[i]))
	}
	dc.LineTo(p.pixel(xs[len(xs)-1], p.yMin))
	dc.ClosePath()
	dc.SetColor(TerrainShade)
	dc.Fill()

	dc.SetColor(TitleColour)
	dc.DrawStringAnchored(title, float64(p.width)/2, Margin/2, 0.5, 0.5)

	p.background = dc.Image()
	return nil
}

// MoveMarker saves a new frame with the car drawn at (x, y). The
// radius is in world units of the y axis.
func (p *PNG) MoveMarker(x, y, radius float64) error {
	if p.background == nil {
		return fmt.Errorf("moveMarker: curve has not been drawn")
	}

	dc := gg.NewContextForImage(p.background)
	px, py := p.pixel(x, y)
	dc.DrawCircle(px, py, radius*p.yScale())
	dc.SetColor(CarColour)
	dc.Fill()

	if err := dc.SavePNG(p.Path(p.frame)); err != nil {
		return fmt.Errorf("moveMarker: %w", err)
	}
	p.frame++
	return nil
}

// Frames returns the number of frames saved
func (p *PNG) Frames() int {
	return p.frame
}

// Path returns the path of the i-th frame
func (p *PNG) Path(i int) string {
	return filepath.Join(p.dir, fmt.Sprintf("frame_%05d.png", i))
}

func (p *PNG) xScale() float64 {
	return (float64(p.width) - 2*Margin) / (p.xMax - p.xMin)
}

func (p *PNG) yScale() float64 {
	return (float64(p.height) - 2*Margin) / (p.yMax - p.yMin)
}

// pixel converts world coordinates to pixel coordinates
func (p *PNG) pixel(x, y float64) (float64, float64) {
	px := Margin + (x-p.xMin)*p.xScale()
	py := float64(p.height) - Margin - (y-p.yMin)*p.yScale()
	return px, py
}
