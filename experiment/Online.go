package experiment

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/multimountains/agent"
	env "github.com/samuelfneumann/multimountains/environment"
	"github.com/samuelfneumann/multimountains/experiment/trackers"
	ts "github.com/samuelfneumann/multimountains/timestep"
	"github.com/samuelfneumann/multimountains/utils/progressbar"
)

// Hook is called with every TimeStep of an experiment, after the
// Trackers have seen it. A Hook returning an error stops the
// experiment.
type Hook func(ts.TimeStep) error

// Online is an Experiment that runs a policy online for a fixed
// number of episodes. Each episode lasts until the environment ends
// it.
type Online struct {
	env.Environment
	agent.Policy
	episodes        int
	currentEpisodes int
	trackers        []trackers.Tracker
	hooks           []Hook
	bar             *progressbar.ManualProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given policy. The episodes parameter determines
// how many episodes the experiment is run for, and the t parameter
// determines what data is saved.
func NewOnline(e env.Environment, p agent.Policy, episodes int,
	t ...trackers.Tracker) *Online {
	return &Online{
		Environment: e,
		Policy:      p,
		episodes:    episodes,
		trackers:    t,
	}
}

// Register registers a Tracker with the experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// OnStep registers a Hook called with every TimeStep
func (o *Online) OnStep(h Hook) {
	o.hooks = append(o.hooks, h)
}

// SetProgressBar sets the progress bar incremented and displayed after
// each episode
func (o *Online) SetProgressBar(bar *progressbar.ManualProgressBar) {
	o.bar = bar
}

// Episodes returns the number of episodes finished
func (o *Online) Episodes() int {
	return o.currentEpisodes
}

// RunEpisode runs a single episode of the experiment and returns its
// last TimeStep
func (o *Online) RunEpisode() (ts.TimeStep, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("runEpisode: %w", err)
	}
	if observer, ok := o.Policy.(agent.Observer); ok {
		observer.ObserveFirst(step)
	}
	if err := o.track(step); err != nil {
		return step, err
	}

	for !step.Last() {
		action := o.Policy.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return step, fmt.Errorf("runEpisode: %w", err)
		}

		if observer, ok := o.Policy.(agent.Observer); ok {
			observer.Observe(action, step)
		}
		if err := o.track(step); err != nil {
			return step, err
		}
	}

	o.currentEpisodes++
	if o.bar != nil {
		o.bar.Increment()
		o.bar.Display()
	}
	return step, nil
}

// Run runs the entire experiment for all episodes
func (o *Online) Run() error {
	for o.currentEpisodes < o.episodes {
		if _, err := o.RunEpisode(); err != nil {
			return fmt.Errorf("run: episode %v: %w", o.currentEpisodes, err)
		}
	}
	if o.bar != nil {
		o.bar.Close()
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	var errs []error
	for _, tracker := range o.trackers {
		errs = append(errs, tracker.Save())
	}
	return errors.Join(errs...)
}

// track sends the current timestep to each Tracker, then to each Hook
func (o *Online) track(t ts.TimeStep) error {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
	for _, hook := range o.hooks {
		if err := hook(t); err != nil {
			return fmt.Errorf("hook: %w", err)
		}
	}
	return nil
}
