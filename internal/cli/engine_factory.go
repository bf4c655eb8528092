package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/blockflow"
	"github.com/aretw0/blockflow/internal/demo"
	"github.com/aretw0/blockflow/pkg/adapters/memory"
	"github.com/aretw0/blockflow/pkg/adapters/redis"
	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/observability"
	"github.com/aretw0/blockflow/pkg/ports"
	"github.com/aretw0/blockflow/pkg/registry"
)

// DefaultRegistry returns a registry holding the built-in blocks.
func DefaultRegistry() *registry.Registry {
	r := registry.NewRegistry()
	demo.Register(r)
	return r
}

// buildPipeline resolves the configured block names, composing them when asked.
func buildPipeline(reg *registry.Registry, cfg *SimulationConfig) ([]*block.Block, error) {
	blocks, err := reg.BuildAll(cfg.Pipeline...)
	if err != nil {
		return nil, err
	}
	if !cfg.Compose {
		return blocks, nil
	}
	composed, err := block.ComposeAll(blocks...)
	if err != nil {
		return nil, err
	}
	return []*block.Block{composed}, nil
}

// createRecorder picks the Redis recorder when configured and the memory one otherwise.
// The returned close function releases the backend.
func createRecorder(cfg *SimulationConfig) (ports.Recorder, func() error) {
	if cfg.Redis == nil {
		return memory.NewRecorder(), func() error { return nil }
	}
	var opts []redis.Option
	if cfg.Redis.TTL > 0 {
		opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
	}
	if cfg.Redis.Prefix != "" {
		opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
	}
	rec := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
	return rec, rec.Close
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(cfg *SimulationConfig, rec ports.Recorder, logger *slog.Logger, debug bool, metrics *observability.Metrics) *blockflow.Engine {
	hooks := []domain.LifecycleHooks{}
	if debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}
	if metrics != nil {
		hooks = append(hooks, metrics.Hooks())
	}

	opts := []blockflow.Option{
		blockflow.WithLogger(logger),
		blockflow.WithRecorder(rec),
		blockflow.WithLifecycleHooks(domain.Chain(hooks...)),
	}
	if cfg.RunID != "" {
		opts = append(opts, blockflow.WithRunID(cfg.RunID))
	}
	return blockflow.New(opts...)
}

func describe(blocks []*block.Block) string {
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name()
	}
	return fmt.Sprint(names)
}
