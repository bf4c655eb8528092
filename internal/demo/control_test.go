package demo

import (
	"testing"

	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController(t *testing.T) {
	out, state, err := Controller().Apply(
		domain.Values{"sensor1": 1.0, "sensor2": 2, "x1": 0.0, "x2": 0.0},
		domain.Values{"x1": 0.0, "x2": 0.0},
		0.1,
	)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out["actuator1"], 1e-9)
	assert.InDelta(t, 4.0, out["actuator2"], 1e-9)
	assert.InDelta(t, 0.1, state["x1"], 1e-9)
	assert.InDelta(t, 0.2, state["x2"], 1e-9)
}

func TestPlant_MissingInput(t *testing.T) {
	_, _, err := Plant().Apply(domain.Values{"actuator1": 1.0}, nil, 0)
	assert.ErrorIs(t, err, block.ErrMissingInput)
}

func TestRegister(t *testing.T) {
	r := registry.NewRegistry()
	Register(r)
	assert.Equal(t, []string{ControllerName, PlantName}, r.Names())
}

func TestNumber_AllNumericKinds(t *testing.T) {
	for _, v := range []any{3.0, float32(3), 3, int8(3), int16(3), int32(3), int64(3), uint(3), uint8(3), uint16(3), uint32(3), uint64(3)} {
		assert.Equal(t, 3.0, number(v), "%T", v)
	}
	assert.Equal(t, 0.0, number("3"))
}

func TestController_UnsignedInputs(t *testing.T) {
	out, _, err := Controller().Apply(
		domain.Values{"sensor1": uint64(1), "sensor2": int8(2), "x1": uint(0), "x2": int16(0)},
		domain.Values{"x1": 0.0, "x2": 0.0},
		0.1,
	)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out["actuator1"], 1e-9)
	assert.InDelta(t, 4.0, out["actuator2"], 1e-9)
}
