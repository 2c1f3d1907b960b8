package policy

import (
	"fmt"

	"github.com/samuelfneumann/multimountains/environment"
	"github.com/samuelfneumann/multimountains/timestep"
	"gonum.org/v1/gonum/mat"
)

// VelocityIndex is the index of the velocity feature in Multi
// Mountains observations
const VelocityIndex int = 1

// Energy implements a deterministic policy which always pushes in the
// direction of motion, pumping energy into the system. Given enough
// steps, this policy swings over every hill.
//
// If the velocity is non-negative, the highest action is chosen,
// otherwise the lowest action is chosen.
type Energy struct {
	velocityIndex int
	low, high     float64
}

// NewEnergy returns a new Energy policy which reads velocity from
// feature velocityIndex of each observation
func NewEnergy(spec environment.Spec, velocityIndex int) (*Energy, error) {
	if err := checkDiscrete(spec); err != nil {
		return nil, fmt.Errorf("newEnergy: %w", err)
	}
	if velocityIndex < 0 {
		return nil, fmt.Errorf("newEnergy: velocity index must be "+
			"non-negative, got %v", velocityIndex)
	}

	return &Energy{
		velocityIndex: velocityIndex,
		low:           spec.LowerBound.AtVec(0),
		high:          spec.UpperBound.AtVec(0),
	}, nil
}

// SelectAction selects the action pushing along the current velocity
func (e *Energy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	action := e.high
	if t.Observation.AtVec(e.velocityIndex) < 0 {
		action = e.low
	}
	return mat.NewVecDense(1, []float64{action})
}
