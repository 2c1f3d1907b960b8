package multimountains

import (
	"testing"

	"github.com/samuelfneumann/multimountains/environment"
	"github.com/samuelfneumann/multimountains/timestep"
	"gonum.org/v1/gonum/mat"
)

type fixedStarter struct{ x float64 }

func (f fixedStarter) Start() (*mat.VecDense, error) {
	return mat.NewVecDense(ObservationDims, []float64{f.x, 0}), nil
}

func newPeakCrossing(t *testing.T, s environment.Starter, peaks []float64,
	steps int, goal float64) *PeakCrossing {
	t.Helper()
	task, err := NewPeakCrossing(s, peaks, steps, goal)
	if err != nil {
		t.Fatal(err)
	}
	return task
}

func TestPeakCrossingReward(t *testing.T) {
	task := newPeakCrossing(t, fixedStarter{-0.5}, []float64{0}, 10, 1)

	tests := []struct {
		name    string
		prev, x float64
		want    float64
	}{
		{"forward crossing", -0.01, 0.01, ForwardCrossingReward},
		{"backward crossing", 0.01, -0.01, BackwardCrossingReward},
		{"left of peak", -0.2, -0.1, StepReward},
		{"right of peak", 0.1, 0.2, StepReward},
		{"landing on peak", -0.01, 0, StepReward},
		{"leaving peak", 0, 0.01, StepReward},
		{"at rest", 0.3, 0.3, StepReward},
	}

	for _, test := range tests {
		if got := task.Reward(test.prev, test.x); got != test.want {
			t.Errorf("%v: reward(%v, %v) = %v, expected %v", test.name,
				test.prev, test.x, got, test.want)
		}

		state := mat.NewVecDense(2, []float64{test.prev, 0})
		next := mat.NewVecDense(2, []float64{test.x, 0})
		if got := task.GetReward(state, nil, next); got != test.want {
			t.Errorf("%v: getReward = %v, expected %v", test.name, got,
				test.want)
		}
	}
}

func TestPeakCrossingMultiplePeaks(t *testing.T) {
	task := newPeakCrossing(t, fixedStarter{-0.5}, []float64{0, 1, 2}, 10, 3)

	if got := task.Reward(-0.5, 2.5); got != ForwardCrossingReward {
		t.Errorf("crossing several peaks forward: got %v", got)
	}
	if got := task.Reward(2.5, 0.5); got != BackwardCrossingReward {
		t.Errorf("crossing several peaks backward: got %v", got)
	}
	if got := task.Crossings(-0.5, 2.5); got != 3 {
		t.Errorf("expected 3 forward crossings, got %v", got)
	}
	if got := task.Crossings(2.5, 0.5); got != -2 {
		t.Errorf("expected 2 backward crossings, got %v", got)
	}
}

func TestPeakCrossingNoPeaks(t *testing.T) {
	task := newPeakCrossing(t, fixedStarter{-0.5}, nil, 10, 1)
	if got := task.Reward(-1, 0.9); got != StepReward {
		t.Errorf("expected step reward without peaks, got %v", got)
	}
}

func TestPeakCrossingEnd(t *testing.T) {
	task := newPeakCrossing(t, fixedStarter{-0.5}, []float64{0}, 3, 1)

	tests := []struct {
		x       float64
		number  int
		end     bool
		endType timestep.EndType
	}{
		{0.5, 1, false, timestep.Nil},
		{0.5, 3, true, timestep.Timeout},
		{1.0, 1, true, timestep.TerminalStateReached},
		{1.0, 3, true, timestep.TerminalStateReached},
	}

	for _, test := range tests {
		obs := mat.NewVecDense(2, []float64{test.x, 0})
		step := timestep.New(timestep.Mid, -1, 1, obs, test.number)
		if end := task.End(&step); end != test.end {
			t.Errorf("x = %v, n = %v: expected end %v, got %v", test.x,
				test.number, test.end, end)
		}
		if step.EndType() != test.endType {
			t.Errorf("x = %v, n = %v: expected end type %v, got %v", test.x,
				test.number, test.endType, step.EndType())
		}
	}
}

func TestPeakCrossingSpec(t *testing.T) {
	task := newPeakCrossing(t, fixedStarter{-0.5}, []float64{0}, 3, 1)
	low, high := task.RewardSpec().Bounds()
	if low[0] != BackwardCrossingReward || high[0] != ForwardCrossingReward {
		t.Errorf("unexpected reward bounds [%v, %v]", low[0], high[0])
	}
	if task.MaxSteps() != 3 {
		t.Errorf("expected max steps 3, got %v", task.MaxSteps())
	}
	if !task.AtGoal(mat.NewVecDense(2, []float64{1, 0})) {
		t.Error("goal position should be a goal state")
	}
}

func TestValleyStarter(t *testing.T) {
	c := newTestCurve(t, []float64{0, 0}, DefaultDelta, Forward)
	starter := NewValleyStarter(c)

	first, err := starter.Start()
	if err != nil {
		t.Fatal(err)
	}
	second, err := starter.Start()
	if err != nil {
		t.Fatal(err)
	}

	if !mat.Equal(first, second) {
		t.Errorf("starting states should be deterministic: %v != %v",
			mat.Formatted(first.T()), mat.Formatted(second.T()))
	}
	if first.AtVec(1) != 0 {
		t.Errorf("expected starting velocity 0, got %v", first.AtVec(1))
	}

	xs, _ := c.ControlPoints()
	if first.AtVec(0) < xs[0] || first.AtVec(0) > xs[2] {
		t.Errorf("start %v should lie in the first hill [%v, %v]",
			first.AtVec(0), xs[0], xs[2])
	}
}

func TestPeakCrossingInvalidSteps(t *testing.T) {
	for _, steps := range []int{0, -1} {
		_, err := NewPeakCrossing(fixedStarter{-0.5}, []float64{0}, steps, 1)
		if !IsInvalidConfiguration(err) {
			t.Errorf("steps %v: expected invalid configuration, got %v", steps,
				err)
		}
	}

	if _, err := New([]float64{0, 0}, 0); !IsInvalidConfiguration(err) {
		t.Errorf("new: expected invalid configuration, got %v", err)
	}
}
