package policy

import (
	"fmt"
	"sync"

	"github.com/samuelfneumann/multimountains/environment"
	"github.com/samuelfneumann/multimountains/timestep"
	"gonum.org/v1/gonum/mat"
)

// Keys which map to the extreme actions of the Manual policy. Any
// other key, or no key at all, maps to the middle action.
const (
	LeftKey  string = "a"
	RightKey string = "b"
)

// KeyState is a source of keyboard input
type KeyState interface {
	IsPressed(key string) bool
}

// Manual implements a policy controlled by a keyboard. Pressing the
// left key selects the lowest action, pressing the right key selects
// the highest action, and otherwise the middle action is selected.
//
// Key presses are consumed once observed, so that a single key press
// affects only a single step, if the KeyState is a *Keys.
type Manual struct {
	keys      KeyState
	low, high float64
}

// NewManual returns a new Manual policy reading input from keys
func NewManual(spec environment.Spec, keys KeyState) (*Manual, error) {
	if err := checkDiscrete(spec); err != nil {
		return nil, fmt.Errorf("newManual: %w", err)
	}
	if numActions(spec) < 3 {
		return nil, fmt.Errorf("newManual: expected at least 3 actions, "+
			"got %v", numActions(spec))
	}

	return &Manual{
		keys: keys,
		low:  spec.LowerBound.AtVec(0),
		high: spec.UpperBound.AtVec(0),
	}, nil
}

// Action returns the action selected by the currently pressed keys
func (m *Manual) Action() int {
	switch {
	case m.keys.IsPressed(LeftKey):
		return int(m.low)
	case m.keys.IsPressed(RightKey):
		return int(m.high)
	default:
		return int(m.low+m.high) / 2
	}
}

// SelectAction selects the action given by the currently pressed keys
func (m *Manual) SelectAction(timestep.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(m.Action())})
}

// ObserveFirst clears any key presses made before the episode started
func (m *Manual) ObserveFirst(timestep.TimeStep) {
	m.release()
}

// Observe consumes the key presses used to select the last action
func (m *Manual) Observe(mat.Vector, timestep.TimeStep) {
	m.release()
}

func (m *Manual) release() {
	if k, ok := m.keys.(*Keys); ok {
		k.ReleaseAll()
	}
}

// Keys is a KeyState which records key presses from an event loop. It
// is safe for concurrent use.
type Keys struct {
	mu      sync.Mutex
	pressed map[string]bool
}

// NewKeys returns a new Keys with no keys pressed
func NewKeys() *Keys {
	return &Keys{pressed: make(map[string]bool)}
}

// Press records that key was pressed
func (k *Keys) Press(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressed[key] = true
}

// Release records that key was released
func (k *Keys) Release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.pressed, key)
}

// ReleaseAll releases every pressed key
func (k *Keys) ReleaseAll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key := range k.pressed {
		delete(k.pressed, key)
	}
}

// IsPressed returns whether key is currently pressed
func (k *Keys) IsPressed(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[key]
}
