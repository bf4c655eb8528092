package block

import (
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/schema"
)

// Operation is the behavior of a block.
// Implementations receive copies of input and state and return the produced
// output and the new state.
type Operation interface {
	Apply(input, state domain.Values, t float64) (output, newState domain.Values, err error)
}

// OperationFunc adapts a function to the Operation interface.
type OperationFunc func(input, state domain.Values, t float64) (domain.Values, domain.Values, error)

// Apply calls f(input, state, t).
func (f OperationFunc) Apply(input, state domain.Values, t float64) (domain.Values, domain.Values, error) {
	return f(input, state, t)
}

// Port labels an input slot of a block.
type Port struct {
	Name string
	Type schema.TypeCategory
}

// Terminal labels an output slot of a block.
type Terminal struct {
	Name string
	Type schema.TypeCategory
}

// Block is a typed unit of computation.
type Block struct {
	name      string
	domain    *schema.Composite
	codomain  *schema.Composite
	ports     map[string]Port
	terminals map[string]Terminal
	op        Operation
	initial   domain.Values
}

// New creates a block. The port, terminal and state maps are copied.
func New(name string, dom, codom *schema.Composite, ports map[string]Port, terminals map[string]Terminal, op Operation, initialState domain.Values) *Block {
	p := make(map[string]Port, len(ports))
	for k, v := range ports {
		p[k] = v
	}
	t := make(map[string]Terminal, len(terminals))
	for k, v := range terminals {
		t[k] = v
	}
	if initialState == nil {
		initialState = domain.Values{}
	}
	return &Block{
		name:      name,
		domain:    dom,
		codomain:  codom,
		ports:     p,
		terminals: t,
		op:        op,
		initial:   domain.Clone(initialState),
	}
}

func (b *Block) Name() string { return b.name }

// Domain returns the schema the block requires as input.
func (b *Block) Domain() *schema.Composite { return b.domain }

// Codomain returns the schema the block declares as output.
func (b *Block) Codomain() *schema.Composite { return b.codomain }

// Ports returns a copy of the port map.
func (b *Block) Ports() map[string]Port {
	out := make(map[string]Port, len(b.ports))
	for k, v := range b.ports {
		out[k] = v
	}
	return out
}

// Terminals returns a copy of the terminal map.
func (b *Block) Terminals() map[string]Terminal {
	out := make(map[string]Terminal, len(b.terminals))
	for k, v := range b.terminals {
		out[k] = v
	}
	return out
}

// InitialState returns a deep copy of the state the block starts with.
func (b *Block) InitialState() domain.Values { return domain.Clone(b.initial) }

// Apply runs the operation on copies of input and state.
// A block without an operation behaves as the identity.
func (b *Block) Apply(input, state domain.Values, t float64) (domain.Values, domain.Values, error) {
	in, st := domain.Clone(input), domain.Clone(state)
	if b.op == nil {
		return in, st, nil
	}
	return b.op.Apply(in, st, t)
}

// PortsFor builds one port per field of s.
func PortsFor(s *schema.Composite) map[string]Port {
	ports := make(map[string]Port, s.Len())
	for name, t := range s.Fields() {
		ports[name] = Port{Name: name, Type: t}
	}
	return ports
}

// TerminalsFor builds one terminal per field of s.
func TerminalsFor(s *schema.Composite) map[string]Terminal {
	terminals := make(map[string]Terminal, s.Len())
	for name, t := range s.Fields() {
		terminals[name] = Terminal{Name: name, Type: t}
	}
	return terminals
}
