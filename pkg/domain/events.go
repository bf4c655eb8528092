package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepStart  EventType = "step_start"
	EventBlockEnter EventType = "block_enter"
	EventBlockLeave EventType = "block_leave"
	EventBlockError EventType = "block_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// StepEvent marks the start of a time step.
type StepEvent struct {
	EventBase
	Step   int     `json:"step"`
	Time   float64 `json:"time"`
	Inputs Values  `json:"inputs,omitempty"`
}

// BlockEvent represents entry into, exit from or failure of a block invocation.
type BlockEvent struct {
	EventBase
	Block    string        `json:"block"`
	Index    int           `json:"index"`
	Step     int           `json:"step"`
	Time     float64       `json:"time"`
	Input    Values        `json:"input,omitempty"`
	Output   Values        `json:"output,omitempty"`
	State    Values        `json:"state,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepStart  func(context.Context, *StepEvent)
	OnBlockEnter func(context.Context, *BlockEvent)
	OnBlockLeave func(context.Context, *BlockEvent)
	OnBlockError func(context.Context, *BlockEvent)
}

// Chain combines hooks so each callback of every element fires in order.
func Chain(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepStart: func(ctx context.Context, e *StepEvent) {
			for _, h := range hooks {
				if h.OnStepStart != nil {
					h.OnStepStart(ctx, e)
				}
			}
		},
		OnBlockEnter: func(ctx context.Context, e *BlockEvent) {
			for _, h := range hooks {
				if h.OnBlockEnter != nil {
					h.OnBlockEnter(ctx, e)
				}
			}
		},
		OnBlockLeave: func(ctx context.Context, e *BlockEvent) {
			for _, h := range hooks {
				if h.OnBlockLeave != nil {
					h.OnBlockLeave(ctx, e)
				}
			}
		},
		OnBlockError: func(ctx context.Context, e *BlockEvent) {
			for _, h := range hooks {
				if h.OnBlockError != nil {
					h.OnBlockError(ctx, e)
				}
			}
		},
	}
}
