package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/blockflow/internal/logging"
	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/ports"
	"github.com/aretw0/blockflow/pkg/schema"
)

// Engine drives blocks across a sequence of time values.
type Engine struct {
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	recorder ports.Recorder
	runID    string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRecorder sends one snapshot per block invocation to r.
func WithRecorder(r ports.Recorder) EngineOption {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithRunID tags events and snapshots with id.
func WithRunID(id string) EngineOption {
	return func(e *Engine) {
		e.runID = id
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of a completed simulation.
type Result struct {
	RunID string
	// Inputs is the shared accumulator after the last block of the last step.
	Inputs domain.Values
	// States holds the final state of each scheduled block, aligned with the
	// schedule. A block scheduled more than once appears with the same state.
	States []domain.Values
	Steps  int

	names []string
}

// State returns the final state of the first scheduled block called name.
func (r *Result) State(name string) (domain.Values, bool) {
	for i, n := range r.names {
		if n == name {
			return r.States[i], true
		}
	}
	return nil, false
}

// Simulate runs every block, in order, at every time value, in order.
//
// Before each invocation the accumulated inputs are type-checked against the
// block's domain. The block's new state is merged into its stored state and
// its output is merged into the accumulator, which the next block sees
// immediately and which carries over into the next time step. State is kept
// per block, so a block scheduled twice in one step sees its own update.
// The first failure aborts the remaining schedule and is returned as
// *ExecutionError.
func (e *Engine) Simulate(ctx context.Context, blocks []*block.Block, initialInputs domain.Values, timeSteps []float64) (*Result, error) {
	acc := domain.Clone(initialInputs)
	if acc == nil {
		acc = domain.Values{}
	}

	names := make([]string, len(blocks))
	states := make(map[*block.Block]domain.Values, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name()
		if _, ok := states[b]; !ok {
			states[b] = b.InitialState()
		}
	}

	e.logger.Debug("simulation started", "run_id", e.runID, "blocks", names, "steps", len(timeSteps))

	for step, t := range timeSteps {
		e.emitStepStart(ctx, step, t, acc)

		for i, b := range blocks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if err := schema.TypeCheck(acc, b.Domain()); err != nil {
				return nil, e.fail(ctx, &ExecutionError{
					Block: b.Name(), Index: i, Step: step, Time: t,
					Phase:  PhaseTypeCheck,
					Inputs: domain.Clone(acc), State: domain.Clone(states[b]),
					Err: err,
				})
			}

			e.emitBlockEnter(ctx, b, i, step, t, acc, states[b])
			start := time.Now()

			output, newState, err := b.Apply(acc, states[b], t)
			if err != nil {
				return nil, e.fail(ctx, &ExecutionError{
					Block: b.Name(), Index: i, Step: step, Time: t,
					Phase:  PhaseOperation,
					Inputs: domain.Clone(acc), State: domain.Clone(states[b]),
					Err: err,
				})
			}

			previous := states[b]
			states[b] = domain.Merge(previous, newState)
			acc = domain.Merge(acc, output)

			e.emitBlockLeave(ctx, b, i, step, t, output, states[b], time.Since(start))

			if e.recorder != nil {
				snap := domain.Snapshot{
					RunID:     e.runID,
					Step:      step,
					Time:      t,
					Block:     b.Name(),
					Index:     i,
					Output:    domain.Clone(output),
					State:     domain.Clone(states[b]),
					Delta:     domain.Diff(previous, states[b]),
					Timestamp: time.Now(),
				}
				if err := e.recorder.Record(ctx, snap); err != nil {
					return nil, fmt.Errorf("failed to record snapshot for block %s: %w", b.Name(), err)
				}
			}
		}
	}

	e.logger.Debug("simulation finished", "run_id", e.runID, "steps", len(timeSteps))

	final := make([]domain.Values, len(blocks))
	for i, b := range blocks {
		final[i] = states[b]
	}

	return &Result{
		RunID:  e.runID,
		Inputs: acc,
		States: final,
		Steps:  len(timeSteps),
		names:  names,
	}, nil
}

// fail reports the failure with its diagnostic context and hands it back.
func (e *Engine) fail(ctx context.Context, err *ExecutionError) error {
	e.logger.Error("block failed",
		"run_id", e.runID,
		"block", err.Block,
		"step", err.Step,
		"time", err.Time,
		"phase", err.Phase,
		"inputs", err.Inputs,
		"state", err.State,
		"error", err.Err,
	)
	if e.hooks.OnBlockError != nil {
		e.hooks.OnBlockError(ctx, &domain.BlockEvent{
			EventBase: e.base(domain.EventBlockError),
			Block:     err.Block,
			Index:     err.Index,
			Step:      err.Step,
			Time:      err.Time,
			Input:     err.Inputs,
			State:     err.State,
			Err:       err.Err,
		})
	}
	return err
}

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, RunID: e.runID}
}

func (e *Engine) emitStepStart(ctx context.Context, step int, t float64, inputs domain.Values) {
	e.logger.Debug("step", "run_id", e.runID, "step", step, "time", t)
	if e.hooks.OnStepStart == nil {
		return
	}
	e.hooks.OnStepStart(ctx, &domain.StepEvent{
		EventBase: e.base(domain.EventStepStart),
		Step:      step,
		Time:      t,
		Inputs:    domain.Clone(inputs),
	})
}

func (e *Engine) emitBlockEnter(ctx context.Context, b *block.Block, index, step int, t float64, input, state domain.Values) {
	if e.hooks.OnBlockEnter == nil {
		return
	}
	e.hooks.OnBlockEnter(ctx, &domain.BlockEvent{
		EventBase: e.base(domain.EventBlockEnter),
		Block:     b.Name(),
		Index:     index,
		Step:      step,
		Time:      t,
		Input:     domain.Clone(input),
		State:     domain.Clone(state),
	})
}

func (e *Engine) emitBlockLeave(ctx context.Context, b *block.Block, index, step int, t float64, output, state domain.Values, d time.Duration) {
	e.logger.Debug("block done", "run_id", e.runID, "block", b.Name(), "step", step, "duration", d)
	if e.hooks.OnBlockLeave == nil {
		return
	}
	e.hooks.OnBlockLeave(ctx, &domain.BlockEvent{
		EventBase: e.base(domain.EventBlockLeave),
		Block:     b.Name(),
		Index:     index,
		Step:      step,
		Time:      t,
		Output:    domain.Clone(output),
		State:     domain.Clone(state),
		Duration:  d,
	})
}
