package block

import (
	"fmt"

	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/schema"
)

// Compose chains b1 into b2.
//
// Composition requires b1's codomain to be congruent with b2's domain; a
// subset is not enough. The result has b1's domain and ports, b2's codomain
// and terminals, and an initial state merged from both blocks.
//
// Running the result applies b1 to (input, state, t), then b2 to b1's output
// and new state. The returned state merges b1's new state with b2's, b2
// winning on conflict. The returned output merges the original input with
// b2's output, so input fields that b2 does not produce pass through.
func Compose(b1, b2 *Block) (*Block, error) {
	if !schema.Congruent(b1.codomain, b2.domain) {
		return nil, &CompositionError{
			First:    b1.name,
			Second:   b2.name,
			Codomain: fieldNames(b1.codomain),
			Domain:   fieldNames(b2.domain),
		}
	}

	op := OperationFunc(func(input, state domain.Values, t float64) (domain.Values, domain.Values, error) {
		out1, state1, err := b1.Apply(input, state, t)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", b1.name, err)
		}
		out2, state2, err := b2.Apply(out1, state1, t)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", b2.name, err)
		}
		return domain.Merge(input, out2), domain.Merge(state1, state2), nil
	})

	return New(
		b1.name+"|"+b2.name,
		b1.domain,
		b2.codomain,
		b1.ports,
		b2.terminals,
		op,
		domain.Merge(b1.initial, b2.initial),
	), nil
}

// ComposeAll folds Compose over blocks from left to right.
func ComposeAll(blocks ...*Block) (*Block, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("compose: no blocks")
	}
	result := blocks[0]
	for _, next := range blocks[1:] {
		composed, err := Compose(result, next)
		if err != nil {
			return nil, err
		}
		result = composed
	}
	return result, nil
}

func fieldNames(s *schema.Composite) []string {
	if s == nil {
		return nil
	}
	return s.FieldNames()
}
