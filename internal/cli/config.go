package cli

import (
	"fmt"
	"time"

	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// SimulationConfig describes a simulation run loaded from YAML or JSON.
type SimulationConfig struct {
	// Pipeline lists registered block names in execution order.
	Pipeline []string `mapstructure:"pipeline"`
	// Compose runs the pipeline as a single composed block.
	Compose bool          `mapstructure:"compose"`
	Inputs  domain.Values `mapstructure:"inputs"`
	// Times are explicit time values. Steps is used when Times is empty.
	Times  []float64    `mapstructure:"times"`
	Steps  *StepRange   `mapstructure:"steps"`
	RunID  string       `mapstructure:"run_id"`
	Redis  *RedisConfig `mapstructure:"redis"`
	Report string       `mapstructure:"report"`
}

// StepRange generates Count time values starting at Start, Dt apart.
type StepRange struct {
	Start float64 `mapstructure:"start"`
	Dt    float64 `mapstructure:"dt"`
	Count int     `mapstructure:"count"`
}

// RedisConfig selects the Redis recorder.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// Report formats.
const (
	ReportMarkdown = "markdown"
	ReportJSON     = "json"
	ReportMermaid  = "mermaid"
)

// LoadConfig reads a simulation config file.
func LoadConfig(path string) (*SimulationConfig, error) {
	doc, err := schema.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	cfg, err := DecodeConfig(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes and validates a generic document into a SimulationConfig.
func DecodeConfig(doc map[string]any) (*SimulationConfig, error) {
	var cfg SimulationConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, err
	}

	if len(cfg.Pipeline) == 0 {
		return nil, fmt.Errorf("pipeline is empty")
	}
	if len(cfg.Times) == 0 && cfg.Steps != nil {
		if cfg.Steps.Count < 0 {
			return nil, fmt.Errorf("steps.count must not be negative")
		}
		cfg.Times = make([]float64, cfg.Steps.Count)
		for i := range cfg.Times {
			cfg.Times[i] = cfg.Steps.Start + float64(i)*cfg.Steps.Dt
		}
	}
	switch cfg.Report {
	case "":
		cfg.Report = ReportMarkdown
	case ReportMarkdown, ReportJSON, ReportMermaid:
	default:
		return nil, fmt.Errorf("unknown report format: %s", cfg.Report)
	}
	if cfg.Redis != nil && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis.addr is required")
	}
	return &cfg, nil
}
