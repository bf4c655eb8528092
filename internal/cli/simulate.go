package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/blockflow/internal/presentation/graph"
	"github.com/aretw0/blockflow/internal/presentation/tui"
	"github.com/aretw0/blockflow/pkg/observability"
	"github.com/aretw0/blockflow/pkg/registry"
)

// SimulateOptions configures a CLI simulation run.
type SimulateOptions struct {
	Config   *SimulationConfig
	Registry *registry.Registry
	Logger   *slog.Logger
	Debug    bool
	Metrics  *observability.Metrics
	Out      io.Writer
	// Render turns the markdown report into terminal output.
	Render func(string) (string, error)
}

// RunSimulation executes the configured pipeline and writes the report to opts.Out.
func RunSimulation(ctx context.Context, opts SimulateOptions) error {
	cfg := opts.Config
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	render := opts.Render
	if render == nil {
		render = tui.PlainRenderer
	}

	blocks, err := buildPipeline(reg, cfg)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	rec, closeRecorder := createRecorder(cfg)
	defer func() {
		if err := closeRecorder(); err != nil {
			opts.Logger.Warn("failed to close recorder", "err", err)
		}
	}()

	engine := createEngine(cfg, rec, opts.Logger, opts.Debug, opts.Metrics)
	opts.Logger.Debug("running simulation", "blocks", describe(blocks), "steps", len(cfg.Times))

	res, err := engine.Simulate(ctx, blocks, cfg.Inputs, cfg.Times)
	if err != nil {
		return err
	}

	switch cfg.Report {
	case ReportJSON:
		states := make(map[string]any, len(blocks))
		for i, b := range blocks {
			states[b.Name()] = res.States[i]
		}
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"run_id": res.RunID,
			"steps":  res.Steps,
			"inputs": res.Inputs,
			"states": states,
		})

	case ReportMermaid:
		snaps, err := rec.Load(ctx, res.RunID)
		if err != nil && res.Steps > 0 {
			return fmt.Errorf("failed to load run: %w", err)
		}
		overlay := &graph.GraphOverlay{}
		for _, s := range snaps {
			overlay.VisitedBlocks = append(overlay.VisitedBlocks, s.Block)
		}
		_, err = fmt.Fprint(opts.Out, graph.GeneratePipeline(blocks, overlay))
		return err

	default:
		states := make([]tui.BlockState, len(blocks))
		for i, b := range blocks {
			states[i] = tui.BlockState{Block: b.Name(), State: res.States[i]}
		}
		out, err := render(tui.SimulationReport(res.RunID, res.Steps, res.Inputs, states))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(opts.Out, out)
		return err
	}
}
