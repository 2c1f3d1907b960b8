// Package envconfig provides configuration structs for configuring
// the Multi Mountains environment with default physical parameters and
// its task. Configurations in this package are JSON and YAML
// serializable.
package envconfig

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/multimountains/environment"
	mm "github.com/samuelfneumann/multimountains/environment/classiccontrol/multimountains"
	"gonum.org/v1/gonum/spatial/r1"
	"gopkg.in/yaml.v3"
)

// Config implements a specific configuration of the Multi Mountains
// environment
type Config struct {
	Angles     []float64         `json:"angles" yaml:"angles"`
	MaxSteps   int               `json:"max_step" yaml:"max_step"`
	Gravity    float64           `json:"gravity" yaml:"gravity"`
	Force      float64           `json:"force" yaml:"force"`
	Delta      float64           `json:"delta" yaml:"delta"`
	Derivative mm.DerivativeMode `json:"derivative" yaml:"derivative"`
	Discount   float64           `json:"discount" yaml:"discount"`

	// StartSpread widens the start of each episode from the bottom of
	// the first valley to a uniform draw within StartSpread of it
	StartSpread float64 `json:"start_spread" yaml:"start_spread"`
	Seed        uint64  `json:"seed" yaml:"seed"`
}

// Default returns a Config with default physical parameters for the
// terrain built from angles
func Default(angles ...float64) Config {
	return Config{
		Angles:     angles,
		MaxSteps:   mm.DefaultMaxSteps,
		Gravity:    mm.Gravity,
		Force:      mm.Force,
		Delta:      mm.DefaultDelta,
		Derivative: mm.Forward,
		Discount:   1.0,
	}
}

// Validate returns an error if the Config cannot describe an
// environment. Validate does not check that the angles produce a valid
// terrain, which is done by Create.
func (c Config) Validate() error {
	if len(c.Angles) == 0 {
		return fmt.Errorf("%w: at least one angle is required",
			mm.ErrInvalidConfiguration)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("%w: max_step must be positive, got %v",
			mm.ErrInvalidConfiguration, c.MaxSteps)
	}
	if err := c.Physics().Validate(); err != nil {
		return err
	}
	if err := c.Derivative.Validate(); err != nil {
		return err
	}
	if c.Derivative != mm.Analytic && c.Delta <= 0 {
		return fmt.Errorf("%w: delta must be positive, got %v",
			mm.ErrInvalidConfiguration, c.Delta)
	}
	if c.StartSpread < 0 || math.IsNaN(c.StartSpread) ||
		math.IsInf(c.StartSpread, 0) {
		return fmt.Errorf("%w: start spread must be finite and "+
			"non-negative, got %v", mm.ErrInvalidConfiguration, c.StartSpread)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("%w: discount %v ∉ [0, 1]",
			mm.ErrInvalidConfiguration, c.Discount)
	}
	return nil
}

// Physics returns the physical constants of the Config
func (c Config) Physics() mm.Physics {
	return mm.Physics{Gravity: c.Gravity, Force: c.Force}
}

// Terrain builds the terrain described by the Config
func (c Config) Terrain() (*mm.Terrain, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	return mm.NewTerrain(c.Angles, c.Delta, c.Derivative)
}

// Starter returns the Starter of episodes on terrain
func (c Config) Starter(terrain *mm.Terrain) (environment.Starter, error) {
	valley := mm.NewValleyStarter(terrain.Curve)
	if c.StartSpread == 0 {
		return valley, nil
	}

	start, err := valley.Start()
	if err != nil {
		return nil, err
	}
	x, domain := start.AtVec(0), terrain.Curve.Domain()
	bounds := []r1.Interval{
		{
			Min: math.Max(x-c.StartSpread, domain.Min),
			Max: math.Min(x+c.StartSpread, domain.Max),
		},
		{Min: 0, Max: 0},
	}
	uniform, err := environment.NewUniformStarter(bounds, c.Seed)
	if err != nil {
		return nil, err
	}
	return uniform, nil
}

// Create returns the environment described by the Config, using the
// PeakCrossing task and starting at the bottom of the first valley.
// The environment must be reset before use.
func (c Config) Create() (*mm.Discrete, error) {
	terrain, err := c.Terrain()
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	starter, err := c.Starter(terrain)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	task, err := mm.NewPeakCrossing(starter, terrain.Peaks, c.MaxSteps,
		terrain.Goal())
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	env, err := mm.NewDiscrete(task, terrain, c.Physics(), c.Discount)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return env, nil
}

// YAML returns the Config serialized as YAML
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
