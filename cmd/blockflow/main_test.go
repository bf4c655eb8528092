package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/blockflow/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "blockflow version "))
}

func TestGraphPipeline(t *testing.T) {
	out, err := execute(t, "graph", "--pipeline", "controller,plant")
	require.NoError(t, err)
	assert.Contains(t, out, `b0_ctrl[["ctrl"]]`)
	assert.Contains(t, out, `t0_actuator1 --> b1_dyn`)
}

func TestGraphSchema(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "pose.yaml", "name: pose\nfields:\n  x: float\n  y: float\n")

	out, err := execute(t, "graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, `root["pose"]`)
	assert.Contains(t, out, `root_x("x: float")`)
}

func TestSimulateJSON(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "sim.yaml", `
pipeline: [controller, plant]
inputs: {sensor1: 1.0, sensor2: 2.0, x1: 0.0, x2: 0.0}
times: [0.1]
`)

	out, err := execute(t, "simulate", "--log-level", "error", "--config", path, "--report", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"output1": 3`)
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "simulate", "--log-level", "loud", "--config", "missing.yaml")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestMCP_UnknownTransport(t *testing.T) {
	_, err := execute(t, "mcp", "--log-level", "error", "--transport", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown transport")
}
