// Package policy implements simple policies for environments with a
// single discrete action dimension
package policy

import (
	"fmt"

	"github.com/samuelfneumann/multimountains/agent"
	"github.com/samuelfneumann/multimountains/environment"
)

// Type represents a kind of policy which can be created by New
type Type string

const (
	RandomPolicy Type = "random"
	EnergyPolicy Type = "energy"
	ManualPolicy Type = "manual"
)

// Types returns the policy types which can be created by New
func Types() []Type {
	return []Type{RandomPolicy, EnergyPolicy, ManualPolicy}
}

// New returns a new policy of type t acting in the action space
// described by spec. The seed is used only by stochastic policies and
// keys only by the manual policy.
func New(t Type, spec environment.Spec, seed uint64,
	keys KeyState) (agent.Policy, error) {
	if err := checkDiscrete(spec); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	switch t {
	case RandomPolicy:
		return NewRandom(spec, seed)

	case EnergyPolicy:
		return NewEnergy(spec, VelocityIndex)

	case ManualPolicy:
		if keys == nil {
			return nil, fmt.Errorf("new: manual policy requires a key state")
		}
		return NewManual(spec, keys)
	}

	return nil, fmt.Errorf("new: no such policy type %q", t)
}

// checkDiscrete returns an error if spec does not describe a single
// discrete action dimension starting at 0
func checkDiscrete(spec environment.Spec) error {
	if spec.Shape == nil || spec.LowerBound == nil || spec.UpperBound == nil {
		return fmt.Errorf("incomplete action spec")
	}
	if spec.Type != environment.Action {
		return fmt.Errorf("expected action spec, got %v", spec.Type)
	}
	if spec.Cardinality != environment.Discrete {
		return fmt.Errorf("policy can only be used with discrete actions")
	}
	if spec.Shape.Len() != 1 {
		return fmt.Errorf("policy can only be used with 1-dimensional "+
			"actions, got %v", spec.Shape.Len())
	}
	if spec.LowerBound.AtVec(0) != 0 {
		return fmt.Errorf("expected actions to start at 0, got %v",
			spec.LowerBound.AtVec(0))
	}
	return nil
}

// numActions returns the number of actions described by a discrete
// action spec
func numActions(spec environment.Spec) int {
	return int(spec.UpperBound.AtVec(0)) + 1
}
