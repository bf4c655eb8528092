package schema

import "encoding/json"

type primitiveDescriptor struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Operations  []string `json:"operations,omitempty"`
	Constraints []string `json:"constraints,omitempty"`
}

type compositeDescriptor struct {
	Name   string                  `json:"name"`
	Fields map[string]TypeCategory `json:"fields"`
}

// MarshalJSON describes the primitive by name, kind and identifiers.
// Callables have no JSON form, so the descriptor cannot be parsed back.
func (p *Primitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(primitiveDescriptor{
		Name:        p.name,
		Kind:        p.kind,
		Operations:  p.OperationNames(),
		Constraints: p.ConstraintNames(),
	})
}

// MarshalJSON describes the composite as a tree of field descriptors.
func (c *Composite) MarshalJSON() ([]byte, error) {
	return json.Marshal(compositeDescriptor{
		Name:   c.name,
		Fields: c.fields,
	})
}
