package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/blockflow/pkg/domain"
)

// LoggingHooks logs every lifecycle event at info level, failures at error level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step_start", "run_id", e.RunID, "step", e.Step, "time", e.Time)
		},
		OnBlockEnter: func(ctx context.Context, e *domain.BlockEvent) {
			logger.InfoContext(ctx, "block_enter", "run_id", e.RunID, "block", e.Block, "step", e.Step)
		},
		OnBlockLeave: func(ctx context.Context, e *domain.BlockEvent) {
			logger.InfoContext(ctx, "block_leave",
				"run_id", e.RunID,
				"block", e.Block,
				"step", e.Step,
				"duration", e.Duration,
			)
		},
		OnBlockError: func(ctx context.Context, e *domain.BlockEvent) {
			logger.ErrorContext(ctx, "block_error",
				"run_id", e.RunID,
				"block", e.Block,
				"step", e.Step,
				"err", e.Err,
			)
		},
	}
}
