package multimountains

import (
	"fmt"

	"github.com/samuelfneumann/multimountains/environment"
	ts "github.com/samuelfneumann/multimountains/timestep"
	"gonum.org/v1/gonum/mat"
)

// Discrete implements the Multi Mountains environment. In this
// environment, the agent controls a car on a terrain made of several
// hills chained together. The car is underpowered and cannot drive up
// a hill unless it rocks back and forth, using its momentum to
// gradually climb higher.
//
// State features consist of the x position of the car and its velocity.
// The position is bounded by the extent of the terrain and the velocity
// by ±MaxSpeed. The sign of the velocity denotes direction. Upon
// reaching the left end of the terrain while moving left, the car
// bounces off the wall with velocity WallSpeed.
//
// Actions are 1-dimensional and discrete in (0, 1, 2):
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Do nothing
//	  2		Accelerate right
//
// Actions other than 0, 1, or 2 result in an error.
//
// Discrete implements the environment.Environment interface. It is not
// safe for concurrent use.
type Discrete struct {
	*base
}

var _ environment.Renderer = (*Discrete)(nil)

// NewDiscrete creates a new Discrete action Multi Mountains environment
// with the argument task, terrain, physical constants, and discount.
// The environment must be reset before it is stepped.
func NewDiscrete(t environment.Task, terrain *Terrain, p Physics,
	discount float64) (*Discrete, error) {
	baseEnv, err := newBase(t, terrain, p, discount)
	if err != nil {
		return nil, fmt.Errorf("newDiscrete: %w", err)
	}

	return &Discrete{baseEnv}, nil
}

// New creates a Discrete environment with the PeakCrossing task on the
// terrain built from angles, using the default physical constants and
// derivative, and a discount of 1.0
func New(angles []float64, maxSteps int) (*Discrete, error) {
	terrain, err := NewTerrain(angles, DefaultDelta, Forward)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	task, err := NewPeakCrossing(NewValleyStarter(terrain.Curve),
		terrain.Peaks, maxSteps, terrain.Goal())
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	return NewDiscrete(task, terrain, DefaultPhysics(), 1.0)
}

// ActionSpec returns the action specification of the environment
func (m *Discrete) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Discrete)
}

// Step takes one environmental step given action a and returns the next
// timestep as a timestep.TimeStep and a bool indicating whether or not
// the episode has ended. Actions are discrete, consisting of the
// direction to accelerate the car or whether to apply no acceleration
// to the car. Legal actions are in the set {0, 1, 2}.
//
// Step returns an error if the environment has not been reset, if the
// episode has already ended, or if the action is illegal. In each case
// the state of the environment is left unchanged.
func (m *Discrete) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if err := m.checkRunning("step"); err != nil {
		return ts.TimeStep{}, false, err
	}

	action, err := validateAction(a)
	if err != nil {
		return ts.TimeStep{}, false, newError("step", err)
	}

	// Calculate the force
	force := float64(action - 1)

	// Calculate the next state given the force/action
	position, velocity := m.nextState(force)

	// Update embedded base Multi Mountains environment
	nextStep, last := m.update(a, position, velocity)
	return nextStep, last, nil
}

// StepAction is a convenience wrapper around Step taking the action as
// an integer
func (m *Discrete) StepAction(action int) (ts.TimeStep, bool, error) {
	return m.Step(mat.NewVecDense(ActionDims, []float64{float64(action)}))
}

// validateAction ensures that a holds a single legal discrete action
// and returns it
func validateAction(a *mat.VecDense) (int, error) {
	if a == nil || a.Len() != ActionDims {
		return 0, fmt.Errorf("%w: actions should be %v-dimensional",
			ErrInvalidAction, ActionDims)
	}

	value := a.AtVec(0)
	action := int(value)
	if float64(action) != value || action < MinDiscreteAction ||
		action > MaxDiscreteAction {
		return 0, fmt.Errorf("%w: illegal action %v ∉ (0, 1, 2)",
			ErrInvalidAction, value)
	}
	return action, nil
}
