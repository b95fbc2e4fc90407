package sim

import (
	"errors"
	"fmt"
)

// ErrNonFinite indicates a NaN or Inf appeared in the state. Continuing
// past it would silently corrupt all subsequent physics, so the run is
// aborted; the usual remedy is a smaller timestep or a weaker collision
// frequency, which requires reconfiguration.
var ErrNonFinite = errors.New("sim: non-finite value in state")

// StepError reports which step and which operator a run died in.
type StepError struct {
	Step    int
	Time    float64
	Op      string
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, %s): %v", e.Step, e.Time, e.Op, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
