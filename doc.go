/*
Package blockflow is a small library for describing typed data structures and
composing stateful computational blocks that transform them over discrete time.

It separates the type system (pkg/schema) from the computation units (pkg/block)
and from the execution loop that drives blocks across time (this package and
internal/runtime).

# Concept

A schema (TypeCategory) is either a Primitive with a value kind, named operations
and named constraints, or a Composite mapping field names to other schemas.
Schemas are compared structurally: composite names never matter.

A Block is an immutable descriptor with a domain schema, a codomain schema, an
operation and an initial state. Blocks compose sequentially when the first
block's codomain is congruent with the second block's domain. The runtime owns
each block's state and carries a shared accumulator of values from block to
block and from step to step.

# Usage

	ctrl, dyn := controller(), plant()
	loop, err := blockflow.Compose(ctrl, dyn)
	if err != nil {
		log.Fatal(err)
	}

	eng := blockflow.New(blockflow.WithRecorder(memory.NewRecorder()))
	res, err := eng.Simulate(ctx, []*block.Block{loop},
		domain.Values{"sensor1": 1.0, "sensor2": 2.0, "x1": 0.0, "x2": 0.0},
		[]float64{0.1, 0.2, 0.3})
	if err != nil {
		var execErr *blockflow.ExecutionError
		if errors.As(err, &execErr) {
			log.Printf("block %s failed at step %d", execErr.Block, execErr.Step)
		}
		log.Fatal(err)
	}
	fmt.Println(res.Inputs["output1"])
*/
package blockflow
