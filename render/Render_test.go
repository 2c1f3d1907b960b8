package render

import (
	"bytes"
	"image/color"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fogleman/gg"
	mm "github.com/samuelfneumann/multimountains/environment/classiccontrol/multimountains"
)

var (
	_ mm.Canvas = (*PNG)(nil)
	_ mm.Canvas = (*Terminal)(nil)
)

func newEnv(t *testing.T, c mm.Canvas) *mm.Discrete {
	t.Helper()
	env, err := mm.New([]float64{0, 10}, 20)
	if err != nil {
		t.Fatal(err)
	}
	env.SetCanvas(c)
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}
	return env
}

func TestPNG(t *testing.T) {
	canvas, err := NewPNG(t.TempDir(), 320, 200)
	if err != nil {
		t.Fatal(err)
	}
	env := newEnv(t, canvas)

	for i := 0; i < 3; i++ {
		if err := env.Render(); err != nil {
			t.Fatal(err)
		}
		if _, _, err := env.StepAction(2); err != nil {
			t.Fatal(err)
		}
	}

	if canvas.Frames() != 3 {
		t.Fatalf("expected 3 frames, got %v", canvas.Frames())
	}
	for i := 0; i < canvas.Frames(); i++ {
		if _, err := os.Stat(canvas.Path(i)); err != nil {
			t.Errorf("frame %v: %v", i, err)
		}
	}

	img, err := gg.LoadPNG(canvas.Path(2))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("expected 320x200 image, got %vx%v", b.Dx(), b.Dy())
	}

	// The last frame shows the car at the state before the last step
	x := env.LastTimeStep().Observation.AtVec(0)
	prev := x - env.LastTimeStep().Observation.AtVec(1)
	px, py := canvas.pixel(prev, env.Terrain().Curve.Value(prev))
	got := color.RGBAModel.Convert(img.At(int(px), int(py)))
	want := color.RGBAModel.Convert(CarColour)
	if got != want {
		t.Errorf("expected car colour %v at (%v, %v), got %v", want, px, py,
			got)
	}
}

func TestPNGErrors(t *testing.T) {
	if _, err := NewPNG(t.TempDir(), 10, 10); err == nil {
		t.Error("expected error for tiny image")
	}

	canvas, err := NewPNG(t.TempDir(), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if err := canvas.MoveMarker(0, 0, 1); err == nil {
		t.Error("expected error moving marker before drawing the curve")
	}
	if err := canvas.DrawCurve("", []float64{0}, []float64{0}); err == nil {
		t.Error("expected error for a single point curve")
	}
}

// carColumn returns the column of the car in a terminal frame
func carColumn(t *testing.T, frame string) int {
	t.Helper()
	for _, line := range strings.Split(frame, "\n") {
		if i := strings.Index(line, Car); i >= 0 {
			return utf8.RuneCountInString(line[:i])
		}
	}
	t.Fatalf("no car in frame:\n%v", frame)
	return -1
}

func TestTerminal(t *testing.T) {
	var out bytes.Buffer
	canvas := NewTerminal(&out, 60, 8)
	env := newEnv(t, canvas)

	if err := env.Render(); err != nil {
		t.Fatal(err)
	}
	frame := canvas.Frame()
	if !strings.Contains(frame, "Angles = [0 10]") {
		t.Errorf("expected title in frame:\n%v", frame)
	}
	if out.String() != frame {
		t.Error("expected the frame to be written to the output")
	}
	start := carColumn(t, frame)

	// Drive right so the car moves right along the track
	if err := env.SetState(env.Terrain().Goal()-0.01, 0); err != nil {
		t.Fatal(err)
	}
	if err := env.Render(); err != nil {
		t.Fatal(err)
	}
	if end := carColumn(t, canvas.Frame()); end <= start {
		t.Errorf("expected car to move right from column %v, got %v", start,
			end)
	}
}

func TestTerminalWithoutOutput(t *testing.T) {
	canvas := NewTerminal(nil, 40, 5)
	if err := canvas.MoveMarker(0, 0, 0); err == nil {
		t.Error("expected error moving marker before drawing the curve")
	}
	if err := canvas.DrawCurve("hills", []float64{0, 1, 2},
		[]float64{1, 0, 1}); err != nil {
		t.Fatal(err)
	}
	if err := canvas.MoveMarker(2, 1, 0); err != nil {
		t.Fatal(err)
	}
	if col := carColumn(t, canvas.Frame()); col != axisOffset(canvas.plot)+39 {
		t.Errorf("expected car in the last column, got %v", col)
	}
}
