package block_test

import (
	"testing"

	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	pose := schema.NewComposite("pose", map[string]schema.TypeCategory{
		"x": schema.Float(),
		"y": schema.Float(),
	}, nil, nil)

	id := block.Identity(pose)
	assert.Same(t, pose, id.Domain())
	assert.Same(t, pose, id.Codomain())

	ports := id.Ports()
	require.Len(t, ports, 2)
	assert.Equal(t, "x", ports["x"].Name)
	assert.True(t, schema.Congruent(schema.Float(), ports["x"].Type))
	assert.Len(t, id.Terminals(), 2)

	in := domain.Values{"x": 1.0, "y": 2.0}
	st := domain.Values{"k": "v"}
	out, next, err := id.Apply(in, st, 3)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, st, next)
}

func TestTau(t *testing.T) {
	s := floats("sensors", "sensor1", "sensor2")

	b := block.Tau(s)
	assert.True(t, schema.Congruent(b.Domain(), s))
	assert.True(t, schema.Congruent(b.Codomain(), s))

	// tau then tauInverse is the identity on schemas.
	assert.Same(t, s, block.TauInverse(block.Tau(s)))
}

func TestTauInverse_DropsCodomain(t *testing.T) {
	ctrl := controller()
	back := block.Tau(block.TauInverse(ctrl))

	assert.True(t, schema.Congruent(ctrl.Domain(), back.Codomain()))
	assert.False(t, schema.Congruent(ctrl.Codomain(), back.Codomain()))
}

func TestIdentity_ComposesWithAnything(t *testing.T) {
	ctrl := controller()

	left, err := block.Compose(block.Identity(ctrl.Domain()), ctrl)
	require.NoError(t, err)
	right, err := block.Compose(ctrl, block.Identity(ctrl.Codomain()))
	require.NoError(t, err)

	assert.True(t, schema.Congruent(left.Domain(), ctrl.Domain()))
	assert.True(t, schema.Congruent(right.Codomain(), ctrl.Codomain()))
}
