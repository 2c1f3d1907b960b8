// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"github.com/samuelfneumann/multimountains/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() (*mat.VecDense, error)
}

// Ender determines when an episode should end. If the episode has
// ended, End modifies the argument TimeStep so that its StepType is
// timestep.Last and its EndType records why the episode ended.
type Ender interface {
	End(t *timestep.TimeStep) bool
}

// Task implements the reward scheme and episode termination for
// taking actions in some environment
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking action in state and
	// transitioning to nextState
	GetReward(state, action, nextState mat.Vector) float64
	AtGoal(state mat.Vector) bool
	Min() float64 // Minimum attainable reward
	Max() float64 // Maximum attainable reward
	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a
// Task to complete
type Environment interface {
	Task

	// Reset starts a new episode and returns its first TimeStep
	Reset() (timestep.TimeStep, error)

	// Step takes one environmental step and returns the next TimeStep
	// and whether the episode has ended
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)

	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Renderer is an Environment which can draw its current state
type Renderer interface {
	Environment
	Render() error
}
