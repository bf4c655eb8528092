package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/blockflow"
	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/ports"
	"github.com/aretw0/blockflow/pkg/registry"
	"github.com/aretw0/blockflow/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const blocksURI = "blockflow://blocks"

// Simulator runs a pipeline of blocks. *blockflow.Engine satisfies it.
type Simulator interface {
	Simulate(ctx context.Context, blocks []*block.Block, initialInputs domain.Values, timeSteps []float64) (*blockflow.Result, error)
}

// TypeCheckResult reports whether a value belongs to a schema.
type TypeCheckResult struct {
	Valid      bool   `json:"valid" jsonschema_description:"True when the value conforms to the schema"`
	Path       string `json:"path,omitempty" jsonschema_description:"Dotted path of the first failing field"`
	Constraint string `json:"constraint,omitempty" jsonschema_description:"Name of the violated constraint, if any"`
	Error      string `json:"error,omitempty" jsonschema_description:"Human-readable failure"`
}

// CompareResult reports the structural relation between two schemas.
type CompareResult struct {
	Congruent  bool    `json:"congruent" jsonschema_description:"True when both schemas have the same structure"`
	Similarity float64 `json:"similarity" jsonschema_description:"Share of common top-level fields, from 0 to 1"`
}

// SimulateResult is the final accumulator and block states of a run.
type SimulateResult struct {
	RunID  string                   `json:"run_id" jsonschema_description:"Identifier of the recorded run"`
	Steps  int                      `json:"steps" jsonschema_description:"Number of time steps executed"`
	Inputs map[string]any           `json:"inputs" jsonschema_description:"Accumulated values after the last step"`
	States map[string]domain.Values `json:"states" jsonschema_description:"Final state per block name"`
}

// BlockInfo describes a registered block.
type BlockInfo struct {
	Name     string            `json:"name"`
	Block    string            `json:"block"`
	Domain   *schema.Composite `json:"domain"`
	Codomain *schema.Composite `json:"codomain"`
}

// Server exposes the schema algebra and the registered blocks as MCP tools.
type Server struct {
	registry  *registry.Registry
	simulator Simulator
	recorder  ports.Recorder
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithRecorder enables the get_run tool.
func WithRecorder(r ports.Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// WithLogger sets the logger. It must not write to Stdout when serving stdio.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new MCP Server over the given blocks and engine.
func NewServer(reg *registry.Registry, sim Simulator, opts ...Option) *Server {
	s := &Server{
		registry:  reg,
		simulator: sim,
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("blockflow-mcp", strings.TrimSpace(blockflow.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := chi.NewRouter()
	r.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	r.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: typecheck
	s.mcpServer.AddTool(mcp.NewTool("typecheck",
		mcp.WithDescription("Check whether a value conforms to a schema definition."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("JSON schema definition: {name, fields}")),
		mcp.WithString("value", mcp.Required(), mcp.Description("JSON object to check")),
		mcp.WithOutputSchema[TypeCheckResult](),
	), mcp.NewStructuredToolHandler(s.handleTypeCheck))

	// TOOL: compare
	s.mcpServer.AddTool(mcp.NewTool("compare",
		mcp.WithDescription("Report congruence and similarity of two schema definitions."),
		mcp.WithString("a", mcp.Required(), mcp.Description("First JSON schema definition")),
		mcp.WithString("b", mcp.Required(), mcp.Description("Second JSON schema definition")),
		mcp.WithOutputSchema[CompareResult](),
	), mcp.NewStructuredToolHandler(s.handleCompare))

	// TOOL: list_blocks
	s.mcpServer.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List the registered blocks with their domain and codomain schemas."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.blockInfos())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: simulate
	s.mcpServer.AddTool(mcp.NewTool("simulate",
		mcp.WithDescription("Run registered blocks in order over a sequence of time values."),
		mcp.WithString("pipeline", mcp.Required(), mcp.Description("Comma-separated registered block names")),
		mcp.WithString("times", mcp.Required(), mcp.Description("JSON array of time values")),
		mcp.WithString("inputs", mcp.Description("JSON object of initial inputs")),
		mcp.WithBoolean("compose", mcp.Description("Compose the pipeline into one block first")),
		mcp.WithOutputSchema[SimulateResult](),
	), mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: get_run
	s.mcpServer.AddTool(mcp.NewTool("get_run",
		mcp.WithDescription("Get the recorded snapshots of a run."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run identifier returned by simulate")),
	), s.handleGetRun)
}

func (s *Server) handleTypeCheck(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TypeCheckResult, error) {
	var def, value map[string]any
	if err := decodeArg(args, "schema", &def); err != nil {
		return TypeCheckResult{}, err
	}
	if err := decodeArg(args, "value", &value); err != nil {
		return TypeCheckResult{}, err
	}

	sch, err := schema.NewParser().Parse(def)
	if err != nil {
		return TypeCheckResult{}, fmt.Errorf("invalid schema: %w", err)
	}

	res := TypeCheckResult{Valid: true}
	if err := schema.TypeCheck(value, sch); err != nil {
		res.Valid = false
		res.Error = err.Error()

		var tc *schema.TypeCheckError
		var cv *schema.ConstraintViolationError
		switch {
		case errors.As(err, &cv):
			res.Path = cv.Path
			res.Constraint = cv.Constraint
		case errors.As(err, &tc):
			res.Path = tc.Path
		}
	}
	return res, nil
}

func (s *Server) handleCompare(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CompareResult, error) {
	var defA, defB map[string]any
	if err := decodeArg(args, "a", &defA); err != nil {
		return CompareResult{}, err
	}
	if err := decodeArg(args, "b", &defB); err != nil {
		return CompareResult{}, err
	}

	// One parser so identical constraint specs share callables.
	p := schema.NewParser()
	a, err := p.Parse(defA)
	if err != nil {
		return CompareResult{}, fmt.Errorf("invalid schema a: %w", err)
	}
	b, err := p.Parse(defB)
	if err != nil {
		return CompareResult{}, fmt.Errorf("invalid schema b: %w", err)
	}

	return CompareResult{
		Congruent:  schema.Congruent(a, b),
		Similarity: schema.Similarity(a, b),
	}, nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResult, error) {
	if s.registry == nil || s.simulator == nil {
		return SimulateResult{}, errors.New("simulation not configured")
	}

	raw, _ := args["pipeline"].(string)
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	var times []float64
	if err := decodeArg(args, "times", &times); err != nil {
		return SimulateResult{}, err
	}
	var inputs domain.Values
	if _, ok := args["inputs"]; ok {
		if err := decodeArg(args, "inputs", &inputs); err != nil {
			return SimulateResult{}, err
		}
	}

	blocks, err := s.registry.BuildAll(names...)
	if err != nil {
		return SimulateResult{}, err
	}
	if compose, _ := args["compose"].(bool); compose && len(blocks) > 0 {
		composed, err := block.ComposeAll(blocks...)
		if err != nil {
			return SimulateResult{}, err
		}
		blocks = []*block.Block{composed}
	}

	res, err := s.simulator.Simulate(ctx, blocks, inputs, times)
	if err != nil {
		s.logger.Warn("MCP simulate failed", "pipeline", names, "err", err)
		return SimulateResult{}, err
	}

	states := make(map[string]domain.Values, len(blocks))
	for i, b := range blocks {
		states[b.Name()] = res.States[i]
	}
	return SimulateResult{
		RunID:  res.RunID,
		Steps:  res.Steps,
		Inputs: res.Inputs,
		States: states,
	}, nil
}

func (s *Server) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.recorder == nil {
		return mcp.NewToolResultError("no recorder configured"), nil
	}
	runID, err := request.RequireString("run_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snaps, err := s.recorder.Load(ctx, runID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(snaps)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: blockflow://blocks
	s.mcpServer.AddResource(mcp.NewResource(blocksURI, "Registered Blocks",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.blockInfos())
		if err != nil {
			return nil, fmt.Errorf("failed to encode blocks: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      blocksURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) blockInfos() []BlockInfo {
	infos := make([]BlockInfo, 0)
	if s.registry == nil {
		return infos
	}
	for _, name := range s.registry.Names() {
		b, err := s.registry.Build(name)
		if err != nil {
			continue
		}
		infos = append(infos, BlockInfo{Name: name, Block: b.Name(), Domain: b.Domain(), Codomain: b.Codomain()})
	}
	return infos
}

// decodeArg reads a JSON argument. Agents may send it as an encoded string or
// as an already structured value.
func decodeArg(args map[string]interface{}, key string, v any) error {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fmt.Errorf("missing argument %q", key)
	}

	var data []byte
	if str, ok := raw.(string); ok {
		data = []byte(str)
	} else {
		var err error
		if data, err = json.Marshal(raw); err != nil {
			return fmt.Errorf("argument %q: %w", key, err)
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("argument %q is not valid JSON: %w", key, err)
	}
	return nil
}
