package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/stretchr/testify/require"
)

// WriteFile writes content to name inside dir and returns the full path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "Failed to create parent dir")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	return path
}

// ControlInputs returns the initial accumulator of the controller/plant loop:
// sensors at 1 and 2, integrators at zero.
func ControlInputs() domain.Values {
	return domain.Values{"sensor1": 1.0, "sensor2": 2.0, "x1": 0.0, "x2": 0.0}
}
