/*
Package dsl provides fluent builders for schemas and blocks.

It lets code declare a block's input and output fields, its initial state and its
operation in one chain instead of assembling schemas, ports and terminals by hand.
Builders collect errors (such as duplicate fields) and report them all from Build.

Example usage:

	gain, err := dsl.NewBlock("gain").
		Input("u", dsl.Float()).
		Output("y", dsl.Float()).
		State("calls", 0).
		Apply(func(in, st domain.Values, t float64) (domain.Values, domain.Values, error) {
			return domain.Values{"y": in["u"].(float64) * 3}, st, nil
		}).
		Build()

	level, err := dsl.Schema("tank").
		Field("level", dsl.Primitive("real", schema.KindFloat).
			Constraint("range", schema.Range(0, 100)).
			Build()).
		Build()
*/
package dsl
