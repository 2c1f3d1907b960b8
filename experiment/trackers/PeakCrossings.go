package trackers

import (
	"fmt"

	mm "github.com/samuelfneumann/multimountains/environment/classiccontrol/multimountains"
	"github.com/samuelfneumann/multimountains/timestep"
)

// PeakCrossings tracks the net number of peak crossing rewards in each
// episode of a Multi Mountains experiment. A step rewarded for crossing
// forward counts +1 and a step penalised for crossing backward counts
// -1, no matter how many peaks were crossed in that step.
type PeakCrossings struct {
	current   int
	crossings []float64
	filename  string
}

// NewPeakCrossings returns a new PeakCrossings tracker which will save
// its data at the specified location filename
func NewPeakCrossings(filename string) *PeakCrossings {
	return &PeakCrossings{filename: filename}
}

// Track counts the crossing rewarded on the argument timestep
func (p *PeakCrossings) Track(t timestep.TimeStep) {
	if t.First() {
		p.current = 0
		return
	}

	switch t.Reward {
	case mm.ForwardCrossingReward:
		p.current++
	case mm.BackwardCrossingReward:
		p.current--
	}

	if t.Last() {
		p.crossings = append(p.crossings, float64(p.current))
		p.current = 0
	}
}

// Data returns the net crossings of each finished episode
func (p *PeakCrossings) Data() []float64 {
	return append([]float64(nil), p.crossings...)
}

// Save saves the data tracked by the PeakCrossings Tracker to disk.
func (p *PeakCrossings) Save() error {
	if err := save(p.filename, p.crossings); err != nil {
		return fmt.Errorf("save peak crossings: %w", err)
	}
	return nil
}
