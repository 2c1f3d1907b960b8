// Package multimountains implements the Multi Mountains environment, a
// generalisation of Mountain Car to an arbitrary chain of hills
package multimountains

import (
	"fmt"

	"github.com/samuelfneumann/multimountains/environment"
	ts "github.com/samuelfneumann/multimountains/timestep"
	"github.com/samuelfneumann/multimountains/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	MaxSpeed        float64 = 0.07
	Gravity         float64 = 0.0025
	Force           float64 = 1e-3 // Force of each push
	WallSpeed       float64 = 1e-2 // Speed after bouncing off the left wall
	DefaultMaxSteps int     = 500

	MinDiscreteAction int = 0
	MaxDiscreteAction int = 2

	ActionDims      int = 1
	ObservationDims int = 2
)

// Physics holds the physical constants of the environment
type Physics struct {
	Gravity float64
	Force   float64
}

// DefaultPhysics returns the default physical constants
func DefaultPhysics() Physics {
	return Physics{Gravity: Gravity, Force: Force}
}

// Validate returns an error if any physical constant is not positive
func (p Physics) Validate() error {
	if p.Gravity <= 0 || !floatutils.IsFinite(p.Gravity) {
		return fmt.Errorf("%w: gravity must be positive, got %v",
			ErrInvalidConfiguration, p.Gravity)
	}
	if p.Force <= 0 || !floatutils.IsFinite(p.Force) {
		return fmt.Errorf("%w: force must be positive, got %v",
			ErrInvalidConfiguration, p.Force)
	}
	return nil
}

// status is the lifecycle state of an environment
type status int

const (
	ready   status = iota // Constructed, not yet reset
	running               // Episode in progress
	done                  // Episode ended, waiting for a reset
)

func (s status) String() string {
	switch s {
	case ready:
		return "Ready"
	case running:
		return "Running"
	default:
		return "Done"
	}
}

// base implements the underlying Multi Mountains environment. It tracks
// the terrain, the physical constants, the Task, and the current state
// of the car, but does not convert actions to forces. This is left to
// the Discrete struct, which embeds a base.
//
// The state of the car consists of its x position and its velocity.
// The position is bounded by the extent of the terrain and the velocity
// by ±MaxSpeed.
type base struct {
	environment.Task
	terrain        *Terrain
	positionBounds r1.Interval
	speedBounds    r1.Interval
	physics        Physics
	discount       float64

	position float64
	velocity float64
	counter  int
	status   status
	lastStep ts.TimeStep

	canvas      Canvas
	canvasDrawn bool
}

// newBase creates a new base environment in the ready state. The
// environment must be reset before it is stepped.
func newBase(t environment.Task, terrain *Terrain, p Physics,
	discount float64) (*base, error) {
	if t == nil || terrain == nil {
		return nil, newError("newBase", fmt.Errorf("%w: task and terrain "+
			"are required", ErrInvalidConfiguration))
	}
	if err := p.Validate(); err != nil {
		return nil, newError("newBase", err)
	}
	if discount < 0 || discount > 1 {
		return nil, newError("newBase", fmt.Errorf("%w: discount %v ∉ "+
			"[0, 1]", ErrInvalidConfiguration, discount))
	}

	return &base{
		Task:           t,
		terrain:        terrain,
		positionBounds: terrain.Curve.Domain(),
		speedBounds:    r1.Interval{Min: -MaxSpeed, Max: MaxSpeed},
		physics:        p,
		discount:       discount,
		status:         ready,
	}, nil
}

// Terrain returns the terrain the car drives on
func (m *base) Terrain() *Terrain {
	return m.terrain
}

// State returns the current position and velocity of the car
func (m *base) State() (position, velocity float64) {
	return m.position, m.velocity
}

// Counter returns the number of steps taken in the current episode
func (m *base) Counter() int {
	return m.counter
}

// LastTimeStep returns the last TimeStep that occurred in the
// environment
func (m *base) LastTimeStep() ts.TimeStep {
	return m.lastStep
}

// ObservationSpec returns the observation specification of the
// environment
func (m *base) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)
	lowerBound := mat.NewVecDense(ObservationDims, []float64{
		m.positionBounds.Min, m.speedBounds.Min})
	upperBound := mat.NewVecDense(ObservationDims, []float64{
		m.positionBounds.Max, m.speedBounds.Max})

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (m *base) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{m.discount})
	upperBound := mat.NewVecDense(1, []float64{m.discount})

	return environment.NewSpec(shape, environment.Discount, lowerBound,
		upperBound, environment.Continuous)
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter. Reset may be called in any state.
func (m *base) Reset() (ts.TimeStep, error) {
	state, err := m.Start()
	if err != nil {
		return ts.TimeStep{}, newError("reset", err)
	}
	if err := m.validateState(state.AtVec(0), state.AtVec(1)); err != nil {
		return ts.TimeStep{}, newError("reset", err)
	}

	m.position, m.velocity = state.AtVec(0), state.AtVec(1)
	m.counter = 0
	m.status = running
	m.lastStep = ts.New(ts.First, 0, m.discount, m.observation(), 0)

	return m.lastStep, nil
}

// SetState places the car at the argument position with the argument
// velocity without affecting the step counter. The environment must
// have been reset.
func (m *base) SetState(position, velocity float64) error {
	if m.status == ready {
		return newError("setState", ErrNotReset)
	}
	if err := m.validateState(position, velocity); err != nil {
		return newError("setState", err)
	}

	m.position, m.velocity = position, velocity
	m.lastStep.Observation = m.observation()
	return nil
}

// checkRunning returns an error if the environment cannot be stepped
func (m *base) checkRunning(op string) error {
	switch m.status {
	case ready:
		return newError(op, ErrNotReset)
	case done:
		return newError(op, ErrEpisodeDone)
	}
	return nil
}

// nextState calculates the next position and velocity of the car given
// a force in [-1, 1] which is scaled by the force constant
func (m *base) nextState(force float64) (position, velocity float64) {
	position, velocity = m.position, m.velocity

	// Update the velocity
	slope := m.terrain.Curve.Derivative(position)
	velocity += force*m.physics.Force - slope*m.physics.Gravity
	velocity = floatutils.ClipInterval(velocity, m.speedBounds)

	// Update the position
	position += velocity
	position = floatutils.ClipInterval(position, m.positionBounds)

	// Bounce off the left wall
	if position <= m.positionBounds.Min && velocity < 0 {
		velocity = WallSpeed
	}

	return position, velocity
}

// update moves the car to its new state, computes the reward of the
// transition using the Task, and checks whether the episode has ended.
// It returns the next TimeStep and whether it is the last in the
// episode.
func (m *base) update(action mat.Vector, position,
	velocity float64) (ts.TimeStep, bool) {
	prev := m.observation()

	m.position, m.velocity = position, velocity
	m.counter++

	next := m.observation()
	reward := m.GetReward(prev, action, next)
	nextStep := ts.New(ts.Mid, reward, m.discount, next, m.counter)

	// Check if the step is the last in the episode and adjust step type
	// if necessary
	if m.End(&nextStep) {
		m.status = done
	}

	m.lastStep = nextStep
	return nextStep, nextStep.Last()
}

// observation returns a new vector holding the state of the car
func (m *base) observation() *mat.VecDense {
	return mat.NewVecDense(ObservationDims, []float64{m.position,
		m.velocity})
}

// validateState validates the state to ensure the position and speed
// are within the environmental limits
func (m *base) validateState(position, velocity float64) error {
	if !floatutils.Within(position, m.positionBounds) {
		return fmt.Errorf("%w: illegal position %v ∉ [%v, %v]",
			ErrOutOfDomain, position, m.positionBounds.Min,
			m.positionBounds.Max)
	}

	if !floatutils.Within(velocity, m.speedBounds) {
		return fmt.Errorf("%w: illegal speed %v ∉ [%v, %v]",
			ErrInvalidConfiguration, velocity, m.speedBounds.Min,
			m.speedBounds.Max)
	}
	return nil
}

// String returns a string representation of the environment
func (m *base) String() string {
	str := "Multi Mountains %v  |  %v  |  Step: %v  |  Position: %v  |  " +
		"Speed: %v"
	return fmt.Sprintf(str, m.terrain.Angles, m.status, m.counter,
		m.position, m.velocity)
}
