package blockflow

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/blockflow/internal/runtime"
	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/ports"
	"github.com/google/uuid"
)

// Result is the outcome of a completed simulation.
type Result = runtime.Result

// ExecutionError wraps a block failure with the context it happened in.
type ExecutionError = runtime.ExecutionError

// Engine is the high-level entry point for the BlockFlow library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	hooks    domain.LifecycleHooks
	recorder ports.Recorder
	logger   *slog.Logger
	runID    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRecorder sends the trajectory of every run to r.
func WithRecorder(r ports.Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithRunID fixes the run ID instead of generating one per Simulate call.
func WithRunID(id string) Option {
	return func(e *Engine) {
		e.runID = id
	}
}

// New initializes a new BlockFlow Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return eng
}

// Simulate runs blocks, in order, at every time value, in order.
// Each call gets its own run ID unless one was fixed with WithRunID.
func (e *Engine) Simulate(ctx context.Context, blocks []*block.Block, initialInputs domain.Values, timeSteps []float64) (*Result, error) {
	runID := e.runID
	if runID == "" {
		runID = uuid.NewString()
	}

	opts := []runtime.EngineOption{
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithRunID(runID),
	}
	if e.recorder != nil {
		opts = append(opts, runtime.WithRecorder(e.recorder))
	}

	return runtime.NewEngine(opts...).Simulate(ctx, blocks, initialInputs, timeSteps)
}

// Compose is a convenience wrapper around block.ComposeAll.
func Compose(blocks ...*block.Block) (*block.Block, error) {
	return block.ComposeAll(blocks...)
}
