package environment

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter returns starting states sampled uniformly from a box.
// A dimension whose bounds have equal endpoints always starts at that
// value.
type UniformStarter struct {
	features int
	seed     uint64
	rand     *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter sampling dimension i
// from bounds[i]
func NewUniformStarter(bounds []r1.Interval, seed uint64) (*UniformStarter,
	error) {
	if len(bounds) == 0 {
		return nil, fmt.Errorf("newUniformStarter: no bounds")
	}
	for i, b := range bounds {
		if b.Max < b.Min {
			return nil, fmt.Errorf("newUniformStarter: dimension %v: "+
				"max %v < min %v", i, b.Max, b.Min)
		}
	}

	source := rand.NewSource(seed)
	rand := distmv.NewUniform(bounds, source)

	return &UniformStarter{len(bounds), seed, rand}, nil
}

// Start samples and returns a starting state
func (u *UniformStarter) Start() (*mat.VecDense, error) {
	return mat.NewVecDense(u.features, u.rand.Rand(nil)), nil
}

// Seed returns the seed of the starter
func (u *UniformStarter) Seed() uint64 {
	return u.seed
}
