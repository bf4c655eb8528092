// Package block defines typed, stateful units of computation and their composition law.
//
// A Block declares the schema it consumes (domain) and the schema it produces
// (codomain) and carries an Operation with the contract
//
//	(input, state, t) -> (output, newState)
//
// Blocks are immutable descriptors. The initial state is copied out on request
// and the execution loop owns every later state value.
//
// Blocks chain with Compose, which is defined only when the first block's
// codomain is congruent with the second block's domain:
//
//	loop, err := block.Compose(controller, plant)
//	if errors.Is(err, block.ErrCompositionIncompatible) {
//	    // shapes do not line up
//	}
package block
