package runtime

import (
	"fmt"

	"github.com/aretw0/blockflow/pkg/domain"
)

// Phase identifies where in a block invocation a failure happened.
type Phase string

const (
	PhaseTypeCheck Phase = "typecheck"
	PhaseOperation Phase = "operation"
)

// ExecutionError wraps a block failure with the context it happened in.
type ExecutionError struct {
	Block  string
	Index  int
	Step   int
	Time   float64
	Phase  Phase
	Inputs domain.Values // Accumulated inputs at the time of failure
	State  domain.Values // The block's state at the time of failure
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("block %q failed during %s at step %d (t=%g): %v", e.Block, e.Phase, e.Step, e.Time, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
