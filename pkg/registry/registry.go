package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/blockflow/pkg/block"
)

// Factory builds a fresh block.
type Factory func() *block.Block

// Registry maps names to block factories so pipelines can be assembled from configuration.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory to the registry.
// If a factory with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = fn
}

// Build looks up a factory by name and builds the block.
// Returns an error if the name is not registered.
func (r *Registry) Build(name string) (*block.Block, error) {
	r.mu.RLock()
	fn, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("block not found: %s", name)
	}
	return fn(), nil
}

// BuildAll builds the named blocks in order.
func (r *Registry) BuildAll(names ...string) ([]*block.Block, error) {
	blocks := make([]*block.Block, 0, len(names))
	for _, name := range names {
		b, err := r.Build(name)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
