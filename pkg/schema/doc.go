// Package schema provides the type-category model used to describe block inputs and outputs.
//
// A schema is a tree: *Composite nodes map field names to child types and
// *Primitive leaves name an expected value kind, optionally carrying named
// constraints. TypeCategory is sealed to exactly these two variants.
//
// Basic usage:
//
//	sensor := schema.NewPrimitive("real", schema.KindFloat, nil,
//	    map[string]*schema.Constraint{"range": schema.Range(0, 100)})
//	plant := schema.NewComposite("plant", map[string]schema.TypeCategory{
//	    "sensor": sensor,
//	}, nil, nil)
//
//	if err := schema.TypeCheck(map[string]any{"sensor": 42.0}, plant); err != nil {
//	    // *TypeCheckError or *ConstraintViolationError
//	}
//
// Schemas are compared structurally:
//
//	schema.Congruent(a, b)   // same shape, same constraint callables
//	schema.IsMember(a, t)    // t appears somewhere inside a
//	schema.Similarity(a, b)  // share of same-variant field names
//
// and combined or navigated with Combine and SelectComponent.
//
// Definitions can also be loaded from YAML or JSON with a Parser:
//
//	s, err := schema.NewParser().ParseFile("plant.yaml")
package schema
