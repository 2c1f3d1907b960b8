package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/samuelfneumann/multimountains/agent/policy"
	mm "github.com/samuelfneumann/multimountains/environment/classiccontrol/multimountains"
	"github.com/samuelfneumann/multimountains/environment/envconfig"
	"github.com/samuelfneumann/multimountains/experiment"
	"github.com/samuelfneumann/multimountains/experiment/trackers"
	"github.com/samuelfneumann/multimountains/render"
	ts "github.com/samuelfneumann/multimountains/timestep"
	"github.com/samuelfneumann/multimountains/tui"
	"github.com/samuelfneumann/multimountains/utils/progressbar"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OutEnv names the environment variable holding the default output
// directory
const OutEnv string = "MULTIMOUNTAINS_OUT"

// Size of rendered PNG frames
const (
	FrameWidth  int = 640
	FrameHeight int = 360
)

// options holds the command line flags shared by all commands
type options struct {
	env envconfig.Config

	episodes int
	policy   string
	frames   bool
	terminal bool
	verbose  bool
	out      string
}

func main() {
	for _, envFile := range []string{".env", "../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}

// newRootCmd returns the multimountains command, writing its output
// to out
func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{env: envconfig.Default()}
	defaultOut := os.Getenv(OutEnv)
	if defaultOut == "" {
		defaultOut = "out"
	}

	rootCmd := &cobra.Command{
		Use:           "multimountains",
		Short:         "mountain car over a chain of hills",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.Float64SliceVar(&opts.env.Angles, "angles", []float64{0},
		"hill angles in degrees, one per hill")
	flags.IntVar(&opts.env.MaxSteps, "max-steps", opts.env.MaxSteps,
		"maximum steps per episode")
	flags.Float64Var(&opts.env.Gravity, "gravity", opts.env.Gravity,
		"gravity constant")
	flags.Float64Var(&opts.env.Force, "force", opts.env.Force,
		"force of a push")
	flags.Float64Var(&opts.env.Delta, "delta", opts.env.Delta,
		"finite difference step of the slope")
	flags.StringVar((*string)(&opts.env.Derivative), "derivative",
		string(opts.env.Derivative), "slope scheme: forward, central, analytic")
	flags.Float64Var(&opts.env.Discount, "discount", opts.env.Discount,
		"discount factor")
	flags.Float64Var(&opts.env.StartSpread, "start-spread", 0,
		"sample starting positions within this distance of the valley")
	flags.Uint64Var(&opts.env.Seed, "seed", 0, "random seed")
	flags.StringVar(&opts.out, "out", defaultOut,
		fmt.Sprintf("output directory (default from $%v)", OutEnv))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run episodes with a fixed policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExperiment(cmd.OutOrStdout(), opts)
		},
	}
	runCmd.Flags().IntVar(&opts.episodes, "episodes", 10,
		"number of episodes")
	runCmd.Flags().StringVar(&opts.policy, "policy",
		string(policy.EnergyPolicy), "policy: random or energy")
	runCmd.Flags().BoolVar(&opts.frames, "frames", false,
		"save a PNG frame of every step")
	runCmd.Flags().BoolVar(&opts.verbose, "verbose", false,
		"log every episode instead of showing a progress bar")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a single episode of the energy policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderEpisode(cmd.OutOrStdout(), opts)
		},
	}
	renderCmd.Flags().BoolVar(&opts.terminal, "terminal", false,
		"draw frames in the terminal instead of saving PNG frames")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "drive the car from the keyboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.env.Create()
			if err != nil {
				return err
			}
			return tui.Run(env)
		},
	}

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "print the configuration and terrain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return describe(cmd.OutOrStdout(), opts.env)
		},
	}

	rootCmd.AddCommand(runCmd, renderCmd, playCmd, describeCmd)
	return rootCmd
}

// runDir creates and returns a new directory for the output of a run
func runDir(out string) (string, error) {
	dir := filepath.Join(out, uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create output directory: %w", err)
	}
	return dir, nil
}

// runExperiment runs episodes of a fixed policy and saves the data of
// each episode in a new run directory
func runExperiment(out io.Writer, opts *options) error {
	p := policy.Type(opts.policy)
	if p == policy.ManualPolicy {
		return fmt.Errorf("use play for manual control")
	}

	dir, err := runDir(opts.out)
	if err != nil {
		return err
	}

	c := experiment.Config{
		Episodes: opts.episodes,
		Seed:     opts.env.Seed,
		Policy:   p,
		EnvConf:  opts.env,
	}
	config, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), config,
		0o644); err != nil {
		return err
	}

	returns := trackers.NewReturn(filepath.Join(dir, "return.bin"))
	exp, err := c.CreateExp(nil,
		returns,
		trackers.NewEpisodeLength(filepath.Join(dir, "length.bin")),
		trackers.NewPeakCrossings(filepath.Join(dir, "crossings.bin")),
	)
	if err != nil {
		return err
	}

	if opts.frames {
		canvas, err := render.NewPNG(filepath.Join(dir, "frames"),
			FrameWidth, FrameHeight)
		if err != nil {
			return err
		}
		env := exp.Environment.(*mm.Discrete)
		env.SetCanvas(canvas)
		exp.OnStep(func(ts.TimeStep) error { return env.Render() })
	}

	if opts.verbose {
		exp.OnStep(func(step ts.TimeStep) error {
			if step.Last() {
				log.Printf("episode %v: %v after %v steps", exp.Episodes(),
					step.EndType(), step.Number)
			}
			return nil
		})
	} else {
		exp.SetProgressBar(progressbar.NewManualProgressBar(out, 40,
			opts.episodes))
	}

	if err := exp.Run(); err != nil {
		return err
	}
	if err := exp.Save(); err != nil {
		return err
	}

	log.Printf("run %v: %v episodes, returns %v", filepath.Base(dir),
		exp.Episodes(), returns.Data())
	return nil
}

// renderEpisode renders a single episode of the energy policy
func renderEpisode(out io.Writer, opts *options) error {
	c := experiment.Config{
		Episodes: 1,
		Policy:   policy.EnergyPolicy,
		EnvConf:  opts.env,
	}

	env, err := c.EnvConf.Create()
	if err != nil {
		return err
	}
	p, err := policy.New(c.Policy, env.ActionSpec(), c.Seed, nil)
	if err != nil {
		return err
	}
	exp := experiment.NewOnline(env, p, c.Episodes)

	var png *render.PNG
	if opts.terminal {
		env.SetCanvas(render.NewTerminal(out, tui.PlotWidth, tui.PlotHeight))
	} else {
		dir, err := runDir(opts.out)
		if err != nil {
			return err
		}
		png, err = render.NewPNG(dir, FrameWidth, FrameHeight)
		if err != nil {
			return err
		}
		env.SetCanvas(png)
	}
	exp.OnStep(func(ts.TimeStep) error { return env.Render() })

	last, err := exp.RunEpisode()
	if err != nil {
		return err
	}
	if png != nil {
		log.Printf("saved %v frames to %v", png.Frames(),
			filepath.Dir(png.Path(0)))
	}
	log.Printf("episode ended with %v after %v steps", last.EndType(),
		last.Number)
	return nil
}

// describe prints the configuration as YAML followed by the terrain
func describe(out io.Writer, c envconfig.Config) error {
	env, err := c.Create()
	if err != nil {
		return err
	}
	terrain := env.Terrain()
	curve := terrain.Curve
	xs, ys := curve.ControlPoints()
	low, high := env.ObservationSpec().Bounds()

	d := struct {
		Config envconfig.Config `yaml:"config"`
		Points [][2]float64     `yaml:"points"`
		Peaks  []float64        `yaml:"peaks"`
		Domain [2]float64       `yaml:"domain"`
		Start  []float64        `yaml:"start"`
		Low    []float64        `yaml:"observation_low"`
		High   []float64        `yaml:"observation_high"`
	}{
		Config: c,
		Peaks:  terrain.Peaks,
		Domain: [2]float64{curve.Domain().Min, curve.Domain().Max},
		Low:    low,
		High:   high,
	}
	for i := range xs {
		d.Points = append(d.Points, [2]float64{xs[i], ys[i]})
	}

	start, err := env.Reset()
	if err != nil {
		return err
	}
	d.Start = start.Observation.RawVector().Data

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
