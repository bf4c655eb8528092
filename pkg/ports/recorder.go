package ports

import (
	"context"

	"github.com/aretw0/blockflow/pkg/domain"
)

// Recorder receives the trajectory of a simulation run.
type Recorder interface {
	// Record appends a snapshot to the run named by snapshot.RunID.
	Record(ctx context.Context, snapshot domain.Snapshot) error

	// Load returns the snapshots of a run in the order they were recorded.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) ([]domain.Snapshot, error)

	// Delete removes a run.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of recorded runs.
	List(ctx context.Context) ([]string, error)
}
