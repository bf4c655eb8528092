package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/blockflow"
	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/ports"
	"github.com/aretw0/blockflow/pkg/registry"
	"github.com/aretw0/blockflow/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Simulator runs a pipeline of blocks. *blockflow.Engine satisfies it.
type Simulator interface {
	Simulate(ctx context.Context, blocks []*block.Block, initialInputs domain.Values, timeSteps []float64) (*blockflow.Result, error)
}

// Server exposes the schema algebra, the registered blocks and recorded runs over HTTP.
type Server struct {
	Registry  *registry.Registry
	Simulator Simulator
	Recorder  ports.Recorder
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithRegistry enables GET /blocks and POST /simulate.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Server) { s.Registry = r }
}

// WithSimulator sets the engine used by POST /simulate.
func WithSimulator(sim Simulator) Option {
	return func(s *Server) { s.Simulator = sim }
}

// WithRecorder enables GET /runs and GET /runs/{id}.
func WithRecorder(r ports.Recorder) Option {
	return func(s *Server) { s.Recorder = r }
}

// WithGatherer serves metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// NewHandler creates a new HTTP handler.
func NewHandler(opts ...Option) http.Handler {
	server := &Server{
		Gatherer: prometheus.DefaultGatherer,
		Logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/typecheck", server.TypeCheck)
	r.Post("/compare", server.Compare)
	r.Get("/blocks", server.ListBlocks)
	r.Post("/simulate", server.Simulate)
	r.Get("/runs", server.ListRuns)
	r.Get("/runs/{id}", server.GetRun)
	r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TypeCheckRequest is the body of POST /typecheck.
type TypeCheckRequest struct {
	Schema map[string]any `json:"schema"`
	Value  map[string]any `json:"value"`
}

// TypeCheckResponse reports whether the value belongs to the schema.
type TypeCheckResponse struct {
	Valid      bool   `json:"valid"`
	Path       string `json:"path,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CompareRequest is the body of POST /compare.
type CompareRequest struct {
	A map[string]any `json:"a"`
	B map[string]any `json:"b"`
}

// CompareResponse reports the structural relation between two schemas.
type CompareResponse struct {
	Congruent  bool    `json:"congruent"`
	Similarity float64 `json:"similarity"`
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	Pipeline []string       `json:"pipeline"`
	Compose  bool           `json:"compose"`
	Inputs   map[string]any `json:"inputs"`
	Times    []float64      `json:"times"`
}

// SimulateResponse is the final accumulator and block states of a run.
type SimulateResponse struct {
	RunID  string                   `json:"run_id"`
	Steps  int                      `json:"steps"`
	Inputs map[string]any           `json:"inputs"`
	States map[string]domain.Values `json:"states"`
}

// BlockInfo describes a registered block.
type BlockInfo struct {
	Name     string            `json:"name"`
	Block    string            `json:"block"`
	Domain   *schema.Composite `json:"domain"`
	Codomain *schema.Composite `json:"codomain"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "blockflow-http",
		"version": strings.TrimSpace(blockflow.Version),
	})
}

// TypeCheck handles the POST /typecheck request.
// A value outside the schema is a successful request with valid=false.
func (s *Server) TypeCheck(w http.ResponseWriter, r *http.Request) {
	var body TypeCheckRequest
	if !s.decode(w, r, &body) {
		return
	}

	sch, err := schema.NewParser().Parse(body.Schema)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid schema: %v", err), http.StatusBadRequest)
		s.Logger.Warn("TypeCheck: invalid schema", "err", err)
		return
	}

	resp := TypeCheckResponse{Valid: true}
	if err := schema.TypeCheck(body.Value, sch); err != nil {
		resp.Valid = false
		resp.Error = err.Error()

		var tc *schema.TypeCheckError
		var cv *schema.ConstraintViolationError
		switch {
		case errors.As(err, &cv):
			resp.Path = cv.Path
			resp.Constraint = cv.Constraint
		case errors.As(err, &tc):
			resp.Path = tc.Path
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// Compare handles the POST /compare request.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	var body CompareRequest
	if !s.decode(w, r, &body) {
		return
	}

	// One parser so identical constraint specs share callables.
	p := schema.NewParser()
	a, err := p.Parse(body.A)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid schema a: %v", err), http.StatusBadRequest)
		return
	}
	b, err := p.Parse(body.B)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid schema b: %v", err), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, CompareResponse{
		Congruent:  schema.Congruent(a, b),
		Similarity: schema.Similarity(a, b),
	})
}

// ListBlocks handles the GET /blocks request.
func (s *Server) ListBlocks(w http.ResponseWriter, r *http.Request) {
	if s.Registry == nil {
		http.Error(w, "No block registry configured", http.StatusNotImplemented)
		return
	}

	infos := make([]BlockInfo, 0)
	for _, name := range s.Registry.Names() {
		b, err := s.Registry.Build(name)
		if err != nil {
			continue
		}
		infos = append(infos, BlockInfo{Name: name, Block: b.Name(), Domain: b.Domain(), Codomain: b.Codomain()})
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	if s.Registry == nil || s.Simulator == nil {
		http.Error(w, "Simulation not configured", http.StatusNotImplemented)
		return
	}

	var body SimulateRequest
	if !s.decode(w, r, &body) {
		return
	}

	blocks, err := s.Registry.BuildAll(body.Pipeline...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Compose && len(blocks) > 0 {
		composed, err := block.ComposeAll(blocks...)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		blocks = []*block.Block{composed}
	}

	res, err := s.Simulator.Simulate(r.Context(), blocks, body.Inputs, body.Times)
	if err != nil {
		var execErr *blockflow.ExecutionError
		if errors.As(err, &execErr) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, fmt.Sprintf("Simulate error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Simulate failed", "err", err)
		return
	}

	states := make(map[string]domain.Values, len(blocks))
	for i, b := range blocks {
		states[b.Name()] = res.States[i]
	}
	s.writeJSON(w, http.StatusOK, SimulateResponse{
		RunID:  res.RunID,
		Steps:  res.Steps,
		Inputs: res.Inputs,
		States: states,
	})
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if s.Recorder == nil {
		http.Error(w, "No recorder configured", http.StatusNotImplemented)
		return
	}
	runs, err := s.Recorder.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("ListRuns failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if s.Recorder == nil {
		http.Error(w, "No recorder configured", http.StatusNotImplemented)
		return
	}
	snaps, err := s.Recorder.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("GetRun failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
