package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/blockflow"
	"github.com/aretw0/blockflow/internal/demo"
	"github.com/aretw0/blockflow/pkg/adapters/memory"
	"github.com/aretw0/blockflow/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poseSchema = `{"name": "pose", "fields": {"x": "float", "y": {"kind": "float", "min": 0, "max": 10}}}`

func newTestServer(t *testing.T) (*Server, *memory.Recorder) {
	t.Helper()
	reg := registry.NewRegistry()
	demo.Register(reg)
	rec := memory.NewRecorder()
	eng := blockflow.New(blockflow.WithRecorder(rec), blockflow.WithRunID("mcp-run"))
	return NewServer(reg, eng, WithRecorder(rec)), rec
}

func call(t *testing.T, s *Server, payload string) string {
	t.Helper()
	resp := s.mcpServer.HandleMessage(context.Background(), json.RawMessage(payload))
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(out)
}

func TestTools_Listed(t *testing.T) {
	s, _ := newTestServer(t)

	out := call(t, s, `{"jsonrpc": "2.0", "id": 1, "method": "tools/list"}`)
	for _, name := range []string{"typecheck", "compare", "list_blocks", "simulate", "get_run"} {
		assert.Contains(t, out, `"name":"`+name+`"`)
	}
}

func TestTypeCheck(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	ok, err := s.handleTypeCheck(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"schema": poseSchema,
		"value":  `{"x": 1.0, "y": 2.0}`,
	})
	require.NoError(t, err)
	assert.True(t, ok.Valid)

	bad, err := s.handleTypeCheck(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"schema": poseSchema,
		"value":  map[string]interface{}{"x": 1.0, "y": 20.0},
	})
	require.NoError(t, err)
	assert.False(t, bad.Valid)
	assert.Equal(t, "y", bad.Path)
	assert.Equal(t, "range", bad.Constraint)

	_, err = s.handleTypeCheck(ctx, mcp.CallToolRequest{}, map[string]interface{}{"schema": "{not json"})
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleCompare(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"a": poseSchema,
		"b": `{"name": "other", "fields": {"x": "float", "z": "float"}}`,
	})
	require.NoError(t, err)
	assert.False(t, res.Congruent)
	assert.InDelta(t, 0.5, res.Similarity, 1e-9)
}

func TestSimulate(t *testing.T) {
	s, rec := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"pipeline": "controller, plant",
		"times":    "[0.1]",
		"inputs":   `{"sensor1": 1.0, "sensor2": 2.0, "x1": 0.0, "x2": 0.0}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "mcp-run", res.RunID)
	assert.Equal(t, 1, res.Steps)
	assert.InDelta(t, 3.0, res.Inputs["output1"], 1e-9)
	assert.InDelta(t, 0.1, res.States["ctrl"]["x1"], 1e-9)

	snaps, err := rec.Load(ctx, "mcp-run")
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
}

func TestSimulate_Composed(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"pipeline": "controller,plant",
		"times":    []interface{}{0.1},
		"inputs":   map[string]interface{}{"sensor1": 1.0, "sensor2": 2.0, "x1": 0.0, "x2": 0.0},
		"compose":  true,
	})
	require.NoError(t, err)
	assert.Contains(t, res.States, "ctrl|dyn")
	assert.InDelta(t, 6.0, res.Inputs["output2"], 1e-9)
}

func TestSimulate_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"pipeline": "missing",
		"times":    "[0]",
	})
	assert.ErrorContains(t, err, "block not found")

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"pipeline": "plant",
		"times":    "[0]",
		"inputs":   "{}",
	})
	var execErr *blockflow.ExecutionError
	assert.ErrorAs(t, err, &execErr)

	unconfigured := NewServer(nil, nil)
	_, err = unconfigured.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.ErrorContains(t, err, "not configured")
}

func TestListBlocksAndGetRun_OverJSONRPC(t *testing.T) {
	s, _ := newTestServer(t)

	blocks := call(t, s, `{"jsonrpc": "2.0", "id": 2, "method": "tools/call", "params": {"name": "list_blocks"}}`)
	assert.Contains(t, blocks, "controller")
	assert.Contains(t, blocks, "plant")

	missing := call(t, s, `{"jsonrpc": "2.0", "id": 3, "method": "tools/call", "params": {"name": "get_run", "arguments": {"run_id": "nope"}}}`)
	assert.Contains(t, missing, `"isError":true`)
	assert.Contains(t, missing, "run not found")
}
