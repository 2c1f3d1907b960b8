package multimountains

import (
	"fmt"

	"github.com/samuelfneumann/multimountains/environment"
	"github.com/samuelfneumann/multimountains/timestep"
	"gonum.org/v1/gonum/mat"
)

// Rewards of the PeakCrossing task
const (
	ForwardCrossingReward  float64 = 5.0
	BackwardCrossingReward float64 = -5.0
	StepReward             float64 = -1.0
)

// ValleyStarter starts every episode at rest at the bottom of the first
// valley of a curve. Its starting states are deterministic.
type ValleyStarter struct {
	start float64
}

// NewValleyStarter returns a ValleyStarter for the argument curve. The
// bottom of the valley is the lowest of SamplePoints evenly spaced
// points between the first and third control point.
func NewValleyStarter(c *Curve) *ValleyStarter {
	xs, _ := c.ControlPoints()
	hi := xs[len(xs)-1]
	if len(xs) > 2 {
		hi = xs[2]
	}
	return &ValleyStarter{c.ArgMin(xs[0], hi, SamplePoints)}
}

// Start returns the starting state (position, 0)
func (v *ValleyStarter) Start() (*mat.VecDense, error) {
	return mat.NewVecDense(ObservationDims, []float64{v.start, 0}), nil
}

// PeakCrossing implements the task of driving the car over every hill
// to the right end of the terrain.
//
// Each step costs StepReward, unless the step carried the car over a
// hill top. Crossing a hill top to the right earns
// ForwardCrossingReward and crossing one to the left earns
// BackwardCrossingReward. If a single step crosses hill tops in both
// directions, the forward crossing takes precedence.
//
// Episodes end when the car reaches the right end of the terrain or
// after a step limit.
type PeakCrossing struct {
	environment.Starter
	ender     environment.CompositeEnder
	stepEnder *environment.StepLimit
	peaks     []float64
	goalX     float64
}

// NewPeakCrossing creates and returns a new PeakCrossing task given a
// Starter, the abscissas of the hill tops, the maximum number of
// episode steps, and the goal x position. The maximum number of episode
// steps must be positive.
func NewPeakCrossing(s environment.Starter, peaks []float64,
	episodeSteps int, goalX float64) (*PeakCrossing, error) {
	if episodeSteps <= 0 {
		return nil, newError("newPeakCrossing", fmt.Errorf("%w: max_step "+
			"must be positive, got %v", ErrInvalidConfiguration,
			episodeSteps))
	}

	p := &PeakCrossing{
		Starter:   s,
		stepEnder: environment.NewStepLimit(episodeSteps),
		peaks:     append([]float64(nil), peaks...),
		goalX:     goalX,
	}

	goalEnder := environment.NewFunctionEnder(p.atGoal,
		timestep.TerminalStateReached)
	p.ender = environment.NewCompositeEnder(goalEnder, p.stepEnder)

	return p, nil
}

// Peaks returns the hill tops of the task
func (p *PeakCrossing) Peaks() []float64 {
	return append([]float64(nil), p.peaks...)
}

// MaxSteps returns the episode step limit
func (p *PeakCrossing) MaxSteps() int {
	return p.stepEnder.Limit()
}

// GetReward returns the reward for moving from state to nextState
func (p *PeakCrossing) GetReward(state, _, nextState mat.Vector) float64 {
	return p.Reward(state.AtVec(0), nextState.AtVec(0))
}

// Reward returns the reward for moving from position prev to position x
func (p *PeakCrossing) Reward(prev, x float64) float64 {
	for _, peak := range p.peaks {
		if prev < peak && x > peak {
			return ForwardCrossingReward
		}
	}

	for _, peak := range p.peaks {
		if prev > peak && x < peak {
			return BackwardCrossingReward
		}
	}

	return StepReward
}

// Crossings returns the number of hill tops crossed moving from
// position prev to position x, with crossings to the left counted
// negatively
func (p *PeakCrossing) Crossings(prev, x float64) int {
	n := 0
	for _, peak := range p.peaks {
		if prev < peak && x > peak {
			n++
		} else if prev > peak && x < peak {
			n--
		}
	}
	return n
}

// AtGoal returns a boolean indicating whether or not the argument state
// is a goal state
func (p *PeakCrossing) AtGoal(state mat.Vector) bool {
	return state.AtVec(0) >= p.goalX
}

func (p *PeakCrossing) atGoal(state *mat.VecDense) bool {
	return p.AtGoal(state)
}

// End determines if a timestep is the last timestep in the episode.
// If so, it changes the TimeStep's StepType to timestep.Last and
// records why the episode ended. Reaching the goal takes precedence
// over reaching the step limit.
func (p *PeakCrossing) End(t *timestep.TimeStep) bool {
	return p.ender.End(t)
}

// Min returns the minimum attainable reward over all timesteps
func (p *PeakCrossing) Min() float64 { return BackwardCrossingReward }

// Max returns the maximum attainable reward over all timesteps
func (p *PeakCrossing) Max() float64 { return ForwardCrossingReward }

// RewardSpec returns the reward specification of the Task
func (p *PeakCrossing) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{p.Min()})
	upperBound := mat.NewVecDense(1, []float64{p.Max()})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Discrete)
}
