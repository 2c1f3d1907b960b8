// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"

	"github.com/samuelfneumann/multimountains/agent/policy"
	"github.com/samuelfneumann/multimountains/environment/envconfig"
	"github.com/samuelfneumann/multimountains/experiment/trackers"
	ts "github.com/samuelfneumann/multimountains/timestep"
)

// Experiment outlines structs that can run experiments. Experiments
// send each TimeStep of each episode to Trackers, which cache data in
// RAM to be later saved to disk with Save. Run runs all episodes of
// the experiment, and RunEpisode runs a single episode.
type Experiment interface {
	Run() error
	RunEpisode() (ts.TimeStep, error) // Returns the last step

	// Save all tracked data to disk
	Save() error

	// Adds a new Tracker to the (possibly already running) experiment.
	Register(t trackers.Tracker)
}

// Config represents a configuration of an experiment
type Config struct {
	Episodes int              `json:"episodes" yaml:"episodes"`
	Seed     uint64           `json:"seed" yaml:"seed"`
	Policy   policy.Type      `json:"policy" yaml:"policy"`
	EnvConf  envconfig.Config `json:"environment" yaml:"environment"`
}

// Validate returns an error if the Config cannot create an experiment
func (c Config) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %v", c.Episodes)
	}
	return c.EnvConf.Validate()
}

// CreateExp creates the experiment described by the Config. The keys
// are only used by manual policies.
func (c Config) CreateExp(keys policy.KeyState,
	t ...trackers.Tracker) (*Online, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	env, err := c.EnvConf.Create()
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create "+
			"environment: %w", err)
	}

	p, err := policy.New(c.Policy, env.ActionSpec(), c.Seed, keys)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create policy: %w",
			err)
	}

	return NewOnline(env, p, c.Episodes, t...), nil
}
