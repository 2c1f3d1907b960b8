package policy

import (
	"fmt"

	"github.com/samuelfneumann/multimountains/environment"
	"github.com/samuelfneumann/multimountains/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Random implements a uniform random policy over discrete actions
type Random struct {
	dist distuv.Categorical
}

// NewRandom returns a new Random policy over the actions described by
// spec. The seed determines the sequence of actions selected.
func NewRandom(spec environment.Spec, seed uint64) (*Random, error) {
	if err := checkDiscrete(spec); err != nil {
		return nil, fmt.Errorf("newRandom: %w", err)
	}

	numActions := numActions(spec)
	probs := make([]float64, numActions)
	for i := range probs {
		probs[i] = 1.0 / float64(numActions)
	}

	source := rand.NewSource(seed)
	return &Random{dist: distuv.NewCategorical(probs, source)}, nil
}

// SelectAction selects an action uniformly at random
func (r *Random) SelectAction(timestep.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{r.dist.Rand()})
}
