package timestep

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStepTypes(t *testing.T) {
	obs := mat.NewVecDense(2, []float64{0.1, 0.0})

	tests := []struct {
		stepType         StepType
		first, mid, last bool
		name             string
	}{
		{First, true, false, false, "First"},
		{Mid, false, true, false, "Mid"},
		{Last, false, false, true, "Last"},
	}

	for _, test := range tests {
		step := New(test.stepType, -1.0, 1.0, obs, 3)
		if step.First() != test.first || step.Mid() != test.mid ||
			step.Last() != test.last {
			t.Errorf("step type %v: got first=%v mid=%v last=%v",
				test.stepType, step.First(), step.Mid(), step.Last())
		}
		if step.StepType.String() != test.name {
			t.Errorf("string: expected %v, got %v", test.name,
				step.StepType.String())
		}
	}
}

func TestSetEnd(t *testing.T) {
	step := New(Last, 0, 1, nil, 10)
	if step.EndType() != Nil {
		t.Errorf("new last step should have end type Nil, got %v",
			step.EndType())
	}

	step.SetEnd(Timeout)
	if step.EndType() != Timeout {
		t.Errorf("expected end type Timeout, got %v", step.EndType())
	}
}

func TestSetEndPanicsOnMid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("setEnd on a middle step should panic")
		}
	}()

	step := New(Mid, 0, 1, nil, 1)
	step.SetEnd(TerminalStateReached)
}

func TestQueriesOnReturnedValue(t *testing.T) {
	last := func() TimeStep {
		step := New(Last, -1, 1, nil, 3)
		step.SetEnd(TerminalStateReached)
		return step
	}

	if !last().Last() || last().First() || last().Mid() {
		t.Errorf("unexpected step type %v", last().StepType)
	}
	if last().EndType() != TerminalStateReached {
		t.Errorf("expected end type TerminalStateReached, got %v",
			last().EndType())
	}
}
