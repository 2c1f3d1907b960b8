// Package agent defines the interfaces of action sources that drive
// an environment
package agent

import (
	"github.com/samuelfneumann/multimountains/timestep"
	"gonum.org/v1/gonum/mat"
)

// Policy represents a policy that an agent can have.
//
// Policies determine how actions are selected in each state. A Policy
// never steps the environment, it only proposes the next action.
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}

// Observer is a Policy which needs to see the outcome of its actions,
// for example to reset internal state at the start of an episode
type Observer interface {
	Policy

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep)

	// Observe records that an action lead to some timestep
	Observe(action mat.Vector, nextObs timestep.TimeStep)
}
