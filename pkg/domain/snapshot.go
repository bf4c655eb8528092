package domain

import "time"

// Snapshot is the record of one block invocation within a time step.
// Recorders receive one snapshot per invocation, in execution order.
type Snapshot struct {
	RunID     string    `json:"run_id"`
	Step      int       `json:"step"`
	Time      float64   `json:"time"`
	Block     string    `json:"block"`
	Index     int       `json:"index"`
	Output    Values    `json:"output,omitempty"`
	State     Values    `json:"state,omitempty"`
	Delta     Values    `json:"delta,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
