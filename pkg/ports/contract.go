package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRecorderContract runs a suite of tests to verify that a Recorder implementation
// adheres to the defined interface contract.
func RunRecorderContract(t *testing.T, recorder Recorder) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	snapshot := func(id string, step int, block string) domain.Snapshot {
		return domain.Snapshot{
			RunID:     id,
			Step:      step,
			Time:      float64(step) * 0.1,
			Block:     block,
			Output:    domain.Values{"y": 1.5},
			State:     domain.Values{"x": float64(step)},
			Timestamp: time.Now(),
		}
	}

	t.Run("Record and Load", func(t *testing.T) {
		require.NoError(t, recorder.Record(ctx, snapshot(runID, 0, "ctrl")))
		require.NoError(t, recorder.Record(ctx, snapshot(runID, 0, "dyn")))
		require.NoError(t, recorder.Record(ctx, snapshot(runID, 1, "ctrl")))

		loaded, err := recorder.Load(ctx, runID)
		require.NoError(t, err)
		require.Len(t, loaded, 3)

		// Order of recording is preserved.
		assert.Equal(t, "ctrl", loaded[0].Block)
		assert.Equal(t, "dyn", loaded[1].Block)
		assert.Equal(t, 1, loaded[2].Step)
		assert.Equal(t, runID, loaded[2].RunID)
		// JSON-backed recorders decode numbers as float64, which is what we store.
		assert.Equal(t, 1.5, loaded[0].Output["y"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := recorder.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, recorder.Record(ctx, snapshot(runID, 2, "ctrl")))

		err := recorder.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = recorder.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
	})

	t.Run("Run Named Index", func(t *testing.T) {
		require.NoError(t, recorder.Record(ctx, snapshot("index", 0, "ctrl")))
		defer func() { _ = recorder.Delete(ctx, "index") }()

		loaded, err := recorder.Load(ctx, "index")
		require.NoError(t, err)
		require.Len(t, loaded, 1)
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		_ = recorder.Record(ctx, snapshot(id1, 0, "ctrl"))
		_ = recorder.Record(ctx, snapshot(id2, 0, "ctrl"))

		defer func() {
			_ = recorder.Delete(ctx, id1)
			_ = recorder.Delete(ctx, id2)
		}()

		runs, err := recorder.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
