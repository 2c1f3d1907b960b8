package multimountains

import "errors"

// Error implements errors unique to the Multi Mountains environment.
// Op names the operation that failed.
type Error struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error so that errors.Is can match the
// sentinel errors of this package
func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrInvalidConfiguration reports construction parameters that
	// cannot produce a well-defined terrain
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidAction reports an action outside of {0, 1, 2}
	ErrInvalidAction = errors.New("invalid action")

	// ErrOutOfDomain reports a curve query outside [x_min, x_max]
	ErrOutOfDomain = errors.New("query outside of curve domain")

	// ErrNotReset reports a Step before the first Reset
	ErrNotReset = errors.New("environment has not been reset")

	// ErrEpisodeDone reports a Step after the episode has ended
	ErrEpisodeDone = errors.New("episode has ended, call reset")

	// ErrNoCanvas reports a Render with no Canvas attached
	ErrNoCanvas = errors.New("no canvas attached")
)

// IsInvalidConfiguration returns whether or not an error reports an
// invalid environment configuration
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsInvalidAction returns whether or not an error reports an illegal
// action
func IsInvalidAction(err error) bool {
	return errors.Is(err, ErrInvalidAction)
}

// IsNotReset returns whether or not an error reports that the
// environment was stepped before being reset
func IsNotReset(err error) bool {
	return errors.Is(err, ErrNotReset)
}

func newError(op string, err error) error {
	return &Error{Op: op, Err: err}
}
