package schema

import (
	"fmt"
	"sort"
)

// Kind is the underlying value kind a primitive type expects.
type Kind string

const (
	KindFloat  Kind = "float"
	KindInt    Kind = "int"
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindAny    Kind = "any"
)

// ParseKind converts a kind name to a Kind.
// "real" and "number" are accepted as aliases of float.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "float", "real", "number":
		return KindFloat, nil
	case "int", "integer":
		return KindInt, nil
	case "string":
		return KindString, nil
	case "bool", "boolean":
		return KindBool, nil
	case "any":
		return KindAny, nil
	default:
		return "", fmt.Errorf("unsupported kind: %s", name)
	}
}

// TypeCategory is the closed set of schema variants: *Primitive and *Composite.
// The unexported marker keeps other packages from adding variants that the
// relation engine would not know how to compare.
type TypeCategory interface {
	// Name returns the human-readable name of the type.
	Name() string
	isTypeCategory()
}

// Constraint is a named predicate attached to a type.
// Constraints are compared by pointer identity, never by behavior.
type Constraint struct {
	check func(any) bool
}

// NewConstraint wraps a predicate.
func NewConstraint(check func(any) bool) *Constraint {
	return &Constraint{check: check}
}

// Holds reports whether value satisfies the constraint.
func (c *Constraint) Holds(value any) bool {
	if c == nil || c.check == nil {
		return true
	}
	return c.check(value)
}

// Operation is a named callable attached to a type.
// Like constraints, operations are compared by pointer identity.
type Operation struct {
	apply func(args ...any) (any, error)
}

// NewOperation wraps a callable.
func NewOperation(apply func(args ...any) (any, error)) *Operation {
	return &Operation{apply: apply}
}

// Apply invokes the operation.
func (o *Operation) Apply(args ...any) (any, error) {
	if o == nil || o.apply == nil {
		return nil, fmt.Errorf("operation is not defined")
	}
	return o.apply(args...)
}

// Primitive is a leaf type: a named kind with optional operations and constraints.
type Primitive struct {
	name        string
	kind        Kind
	operations  map[string]*Operation
	constraints map[string]*Constraint
}

func (*Primitive) isTypeCategory() {}

// NewPrimitive creates a primitive type. The maps are copied.
func NewPrimitive(name string, kind Kind, operations map[string]*Operation, constraints map[string]*Constraint) *Primitive {
	return &Primitive{
		name:        name,
		kind:        kind,
		operations:  copyOperations(operations),
		constraints: copyConstraints(constraints),
	}
}

func (p *Primitive) Name() string { return p.name }

// Kind returns the expected underlying value kind.
func (p *Primitive) Kind() Kind { return p.kind }

// Constraint returns the named constraint.
func (p *Primitive) Constraint(name string) (*Constraint, bool) {
	c, ok := p.constraints[name]
	return c, ok
}

// Constraints returns a copy of the constraint map.
func (p *Primitive) Constraints() map[string]*Constraint { return copyConstraints(p.constraints) }

// ConstraintNames returns the constraint identifiers in sorted order.
func (p *Primitive) ConstraintNames() []string { return sortedKeys(p.constraints) }

// Operation returns the named operation.
func (p *Primitive) Operation(name string) (*Operation, bool) {
	o, ok := p.operations[name]
	return o, ok
}

// Operations returns a copy of the operation map.
func (p *Primitive) Operations() map[string]*Operation { return copyOperations(p.operations) }

// OperationNames returns the operation identifiers in sorted order.
func (p *Primitive) OperationNames() []string { return sortedKeys(p.operations) }

// Composite is a named mapping from field names to child types.
type Composite struct {
	name        string
	fields      map[string]TypeCategory
	operations  map[string]*Operation
	constraints map[string]*Constraint
}

func (*Composite) isTypeCategory() {}

// NewComposite creates a composite type. Field names and constraint references
// are not validated. The maps are copied.
func NewComposite(name string, fields map[string]TypeCategory, operations map[string]*Operation, constraints map[string]*Constraint) *Composite {
	f := make(map[string]TypeCategory, len(fields))
	for k, v := range fields {
		f[k] = v
	}
	return &Composite{
		name:        name,
		fields:      f,
		operations:  copyOperations(operations),
		constraints: copyConstraints(constraints),
	}
}

func (c *Composite) Name() string { return c.name }

// Field returns the child type stored under name.
func (c *Composite) Field(name string) (TypeCategory, bool) {
	t, ok := c.fields[name]
	return t, ok
}

// Fields returns a copy of the field map.
func (c *Composite) Fields() map[string]TypeCategory {
	out := make(map[string]TypeCategory, len(c.fields))
	for k, v := range c.fields {
		out[k] = v
	}
	return out
}

// FieldNames returns the field names in sorted order.
func (c *Composite) FieldNames() []string { return sortedKeys(c.fields) }

// Len returns the number of direct fields.
func (c *Composite) Len() int { return len(c.fields) }

// Constraints returns a copy of the schema-level constraint map.
func (c *Composite) Constraints() map[string]*Constraint { return copyConstraints(c.constraints) }

// Operations returns a copy of the schema-level operation map.
func (c *Composite) Operations() map[string]*Operation { return copyOperations(c.operations) }

// --- Factory Functions ---

// Float creates an unconstrained float primitive.
func Float() *Primitive { return NewPrimitive(string(KindFloat), KindFloat, nil, nil) }

// Int creates an unconstrained int primitive.
func Int() *Primitive { return NewPrimitive(string(KindInt), KindInt, nil, nil) }

// String creates an unconstrained string primitive.
func String() *Primitive { return NewPrimitive(string(KindString), KindString, nil, nil) }

// Bool creates an unconstrained bool primitive.
func Bool() *Primitive { return NewPrimitive(string(KindBool), KindBool, nil, nil) }

// Any creates a primitive that accepts every non-nil value.
func Any() *Primitive { return NewPrimitive(string(KindAny), KindAny, nil, nil) }

func copyOperations(src map[string]*Operation) map[string]*Operation {
	out := make(map[string]*Operation, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func copyConstraints(src map[string]*Constraint) map[string]*Constraint {
	out := make(map[string]*Constraint, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
