package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/schema"
)

// BlockBuilder configures a block.
type BlockBuilder struct {
	name     string
	inputs   *SchemaBuilder
	outputs  *SchemaBuilder
	domain   *schema.Composite
	codomain *schema.Composite
	op       block.Operation
	state    domain.Values
	errs     []error
}

// NewBlock starts a block. Unless Domain or Codomain is used, its schemas are
// named "<name>_in" and "<name>_out".
func NewBlock(name string) *BlockBuilder {
	return &BlockBuilder{
		name:    name,
		inputs:  Schema(name + "_in"),
		outputs: Schema(name + "_out"),
		state:   domain.Values{},
	}
}

// Input declares a domain field.
func (b *BlockBuilder) Input(field string, t schema.TypeCategory) *BlockBuilder {
	b.inputs.Field(field, t)
	return b
}

// Output declares a codomain field.
func (b *BlockBuilder) Output(field string, t schema.TypeCategory) *BlockBuilder {
	b.outputs.Field(field, t)
	return b
}

// Domain uses an existing schema as the domain. It cannot be mixed with Input.
func (b *BlockBuilder) Domain(s *schema.Composite) *BlockBuilder {
	b.domain = s
	return b
}

// Codomain uses an existing schema as the codomain. It cannot be mixed with Output.
func (b *BlockBuilder) Codomain(s *schema.Composite) *BlockBuilder {
	b.codomain = s
	return b
}

// State sets an initial state entry.
func (b *BlockBuilder) State(key string, value any) *BlockBuilder {
	b.state[key] = value
	return b
}

// Apply sets the block's operation.
func (b *BlockBuilder) Apply(fn func(input, state domain.Values, t float64) (domain.Values, domain.Values, error)) *BlockBuilder {
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("block %s: nil operation", b.name))
		return b
	}
	b.op = block.OperationFunc(fn)
	return b
}

// Operation sets the block's operation from an existing implementation.
func (b *BlockBuilder) Operation(op block.Operation) *BlockBuilder {
	b.op = op
	return b
}

// Build returns the block. A block without an operation behaves as the identity.
func (b *BlockBuilder) Build() (*block.Block, error) {
	errs := append([]error(nil), b.errs...)

	dom, err := b.resolve(b.domain, b.inputs, "Domain", "Input")
	if err != nil {
		errs = append(errs, err)
	}
	cod, err := b.resolve(b.codomain, b.outputs, "Codomain", "Output")
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var initial domain.Values
	if len(b.state) > 0 {
		initial = b.state
	}
	return block.New(b.name, dom, cod, block.PortsFor(dom), block.TerminalsFor(cod), b.op, initial), nil
}

func (b *BlockBuilder) resolve(fixed *schema.Composite, fields *SchemaBuilder, fixedName, fieldName string) (*schema.Composite, error) {
	if fixed == nil {
		return fields.Build()
	}
	if len(fields.fields) > 0 || len(fields.errs) > 0 {
		return nil, fmt.Errorf("block %s: %s and %s cannot be combined", b.name, fixedName, fieldName)
	}
	return fixed, nil
}
