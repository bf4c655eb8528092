package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/blockflow/pkg/domain"
)

// Recorder implements ports.Recorder in memory.
// Safe for concurrent use.
type Recorder struct {
	runs map[string][]domain.Snapshot
	mu   sync.RWMutex
}

// NewRecorder creates a new in-memory recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		runs: make(map[string][]domain.Snapshot),
	}
}

// Record appends a copy of the snapshot to its run.
func (r *Recorder) Record(ctx context.Context, snapshot domain.Snapshot) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := copySnapshot(snapshot)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[snapshot.RunID] = append(r.runs[snapshot.RunID], copied)
	return nil
}

// Load returns copies of the snapshots of a run.
func (r *Recorder) Load(ctx context.Context, runID string) ([]domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snaps, ok := r.runs[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}

	// Copy on read so callers can't mutate recorded values
	out := make([]domain.Snapshot, len(snaps))
	for i, s := range snaps {
		out[i] = copySnapshot(s)
	}
	return out, nil
}

// Delete removes a run.
func (r *Recorder) Delete(ctx context.Context, runID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.runs, runID)
	return nil
}

// List returns recorded run IDs in sorted order.
func (r *Recorder) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]string, 0, len(r.runs))
	for id := range r.runs {
		runs = append(runs, id)
	}
	sort.Strings(runs)
	return runs, nil
}

func copySnapshot(s domain.Snapshot) domain.Snapshot {
	s.Output = domain.Clone(s.Output)
	s.State = domain.Clone(s.State)
	s.Delta = domain.Clone(s.Delta)
	return s
}
