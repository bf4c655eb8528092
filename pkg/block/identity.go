package block

import (
	"fmt"

	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/schema"
)

// Identity builds a block whose domain and codomain are both s, with one port
// and one terminal per field, returning its input and state unchanged.
func Identity(s *schema.Composite) *Block {
	op := OperationFunc(func(input, state domain.Values, _ float64) (domain.Values, domain.Values, error) {
		return input, state, nil
	})
	return New("id_"+s.Name(), s, s, PortsFor(s), TerminalsFor(s), op, nil)
}

// Tau maps a schema to its identity block.
// It panics if the produced block's domain or codomain is not congruent with s,
// which cannot happen for a well-formed Identity.
func Tau(s *schema.Composite) *Block {
	b := Identity(s)
	if !schema.Congruent(b.domain, s) || !schema.Congruent(b.codomain, s) {
		panic(fmt.Sprintf("tau: block %q does not preserve schema %q", b.name, s.Name()))
	}
	return b
}

// TauInverse maps a block back to a schema by returning its domain.
// The codomain is discarded, so Tau(TauInverse(b)) need not resemble b.
func TauInverse(b *Block) *schema.Composite {
	return b.domain
}
