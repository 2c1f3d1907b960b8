package trackers

import (
	"path/filepath"
	"testing"

	mm "github.com/samuelfneumann/multimountains/environment/classiccontrol/multimountains"
	ts "github.com/samuelfneumann/multimountains/timestep"
	"gonum.org/v1/gonum/mat"
)

// episode returns the timesteps of an episode with the given rewards
func episode(rewards ...float64) []ts.TimeStep {
	obs := mat.NewVecDense(2, nil)
	steps := []ts.TimeStep{ts.New(ts.First, 0, 1, obs, 0)}
	for i, r := range rewards {
		t := ts.Mid
		if i == len(rewards)-1 {
			t = ts.Last
		}
		steps = append(steps, ts.New(t, r, 1, obs, i+1))
	}
	return steps
}

func track(tracker Tracker, episodes ...[]ts.TimeStep) {
	for _, steps := range episodes {
		for _, step := range steps {
			tracker.Track(step)
		}
	}
}

func TestTrackers(t *testing.T) {
	f, b, s := mm.ForwardCrossingReward, mm.BackwardCrossingReward,
		mm.StepReward
	episodes := [][]ts.TimeStep{
		episode(s, s, f, s),
		episode(s, f, b, f, f),
		episode(s, s, s),
	}

	tests := []struct {
		name    string
		tracker Tracker
		want    []float64
	}{
		{"return", NewReturn(""), []float64{2, 9, -3}},
		{"episode length", NewEpisodeLength(""), []float64{4, 5, 3}},
		{"peak crossings", NewPeakCrossings(""), []float64{1, 2, 0}},
	}

	for _, test := range tests {
		track(test.tracker, episodes...)
		got := test.tracker.Data()
		if len(got) != len(test.want) {
			t.Errorf("%v: expected %v episodes, got %v", test.name,
				len(test.want), len(got))
			continue
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Errorf("%v: episode %v: expected %v, got %v", test.name, i,
					test.want[i], got[i])
			}
		}
	}
}

func TestUnfinishedEpisodeNotSaved(t *testing.T) {
	steps := episode(-1, -1, -1)
	r := NewReturn("")
	track(r, steps[:3])
	if len(r.Data()) != 0 {
		t.Errorf("expected no finished episodes, got %v", r.Data())
	}

	// A reset mid-episode discards the unfinished return
	track(r, episode(-1))
	if data := r.Data(); len(data) != 1 || data[0] != -1 {
		t.Errorf("expected return -1, got %v", data)
	}
}

func TestReturnPanicsOnSkippedStep(t *testing.T) {
	steps := episode(-1, -1, -1)
	r := NewReturn("")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on non-sequential timesteps")
		}
	}()
	r.Track(steps[0])
	r.Track(steps[2])
}

func TestSaveAndLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "return.bin")
	r := NewReturn(filename)
	track(r, episode(-1, 5), episode(-1, -1))

	if err := r.Save(); err != nil {
		t.Fatal(err)
	}
	data, err := LoadData(filename)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2 || data[0] != 4 || data[1] != -2 {
		t.Errorf("expected [4 -2], got %v", data)
	}
}

func TestSaveErrors(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "missing", "lengths.bin")
	if err := NewEpisodeLength(filename).Save(); err == nil {
		t.Error("expected error saving to a missing directory")
	}
	if _, err := LoadData(filename); err == nil {
		t.Error("expected error loading a missing file")
	}
}
