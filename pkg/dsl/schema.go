package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/blockflow/pkg/schema"
)

// Float returns an unconstrained float primitive.
func Float() schema.TypeCategory { return schema.Float() }

// Int returns an unconstrained int primitive.
func Int() schema.TypeCategory { return schema.Int() }

// String returns an unconstrained string primitive.
func String() schema.TypeCategory { return schema.String() }

// Bool returns an unconstrained bool primitive.
func Bool() schema.TypeCategory { return schema.Bool() }

// PrimitiveBuilder configures a primitive schema.
type PrimitiveBuilder struct {
	name        string
	kind        schema.Kind
	operations  map[string]*schema.Operation
	constraints map[string]*schema.Constraint
}

// Primitive starts a primitive schema of the given kind.
func Primitive(name string, kind schema.Kind) *PrimitiveBuilder {
	return &PrimitiveBuilder{
		name:        name,
		kind:        kind,
		operations:  make(map[string]*schema.Operation),
		constraints: make(map[string]*schema.Constraint),
	}
}

// Constraint attaches a named constraint. Reusing a name replaces it.
func (p *PrimitiveBuilder) Constraint(name string, c *schema.Constraint) *PrimitiveBuilder {
	p.constraints[name] = c
	return p
}

// Operation attaches a named operation. Reusing a name replaces it.
func (p *PrimitiveBuilder) Operation(name string, o *schema.Operation) *PrimitiveBuilder {
	p.operations[name] = o
	return p
}

// Build returns the primitive.
func (p *PrimitiveBuilder) Build() *schema.Primitive {
	return schema.NewPrimitive(p.name, p.kind, p.operations, p.constraints)
}

// SchemaBuilder configures a composite schema.
type SchemaBuilder struct {
	name        string
	fields      map[string]schema.TypeCategory
	operations  map[string]*schema.Operation
	constraints map[string]*schema.Constraint
	errs        []error
}

// Schema starts a composite schema.
func Schema(name string) *SchemaBuilder {
	return &SchemaBuilder{
		name:        name,
		fields:      make(map[string]schema.TypeCategory),
		operations:  make(map[string]*schema.Operation),
		constraints: make(map[string]*schema.Constraint),
	}
}

// Field adds a field. Declaring the same field twice is an error reported by Build.
func (s *SchemaBuilder) Field(name string, t schema.TypeCategory) *SchemaBuilder {
	if t == nil {
		s.errs = append(s.errs, fmt.Errorf("schema %s: field %q has no type", s.name, name))
		return s
	}
	if _, exists := s.fields[name]; exists {
		s.errs = append(s.errs, fmt.Errorf("schema %s: duplicate field %q", s.name, name))
		return s
	}
	s.fields[name] = t
	return s
}

// Floats adds several float fields at once.
func (s *SchemaBuilder) Floats(names ...string) *SchemaBuilder {
	for _, n := range names {
		s.Field(n, schema.Float())
	}
	return s
}

// Constraint attaches a named constraint to the composite.
func (s *SchemaBuilder) Constraint(name string, c *schema.Constraint) *SchemaBuilder {
	s.constraints[name] = c
	return s
}

// Operation attaches a named operation to the composite.
func (s *SchemaBuilder) Operation(name string, o *schema.Operation) *SchemaBuilder {
	s.operations[name] = o
	return s
}

// Build returns the composite, or every error collected while building it.
func (s *SchemaBuilder) Build() (*schema.Composite, error) {
	if len(s.errs) > 0 {
		return nil, errors.Join(s.errs...)
	}
	return schema.NewComposite(s.name, s.fields, s.operations, s.constraints), nil
}
