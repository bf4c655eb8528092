package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectComponent(t *testing.T) {
	x := Float()
	pose := NewComposite("pose", map[string]TypeCategory{"x": x, "y": Float()}, nil, nil)
	vehicle := NewComposite("vehicle", map[string]TypeCategory{"pose": pose, "id": String()}, nil, nil)

	tests := []struct {
		desc  string
		path  []string
		want  TypeCategory
		found bool
	}{
		{"empty path", nil, vehicle, true},
		{"direct", []string{"pose"}, pose, true},
		{"nested", []string{"pose", "x"}, x, true},
		{"missing", []string{"velocity"}, nil, false},
		{"missing nested", []string{"pose", "z"}, nil, false},
		{"through primitive", []string{"id", "length"}, nil, false},
	}

	for _, tt := range tests {
		got, ok := SelectComponent(vehicle, tt.path...)
		assert.Equal(t, tt.found, ok, tt.desc)
		if tt.found {
			assert.Same(t, tt.want, got, tt.desc)
		} else {
			assert.Nil(t, got, tt.desc)
		}
	}
}

func TestSelectComponent_Primitive(t *testing.T) {
	f := Float()
	got, ok := SelectComponent(f)
	assert.True(t, ok)
	assert.Same(t, f, got)

	_, ok = SelectComponent(f, "x")
	assert.False(t, ok)
}

func TestCombine_Disjoint(t *testing.T) {
	sensors, actuators := controlSchemas()

	combined, err := Combine("io", sensors, actuators)
	require.NoError(t, err)

	assert.Equal(t, "io", combined.Name())
	assert.Equal(t, []string{"actuator1", "actuator2", "sensor1", "sensor2"}, combined.FieldNames())
	assert.True(t, IsMember(combined, Float()))

	// Inputs are untouched.
	assert.Equal(t, 2, sensors.Len())
}

func TestCombine_Conflict(t *testing.T) {
	sensors, _ := controlSchemas()
	overlap := NewComposite("overlap", map[string]TypeCategory{"sensor2": Int()}, nil, nil)

	_, err := Combine("bad", sensors, overlap)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaCombinationConflict)

	var conflict *CombinationConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "sensor2", conflict.Field)
	assert.Equal(t, "sensors", conflict.First)
	assert.Equal(t, "overlap", conflict.Second)
}

func TestCombine_Empty(t *testing.T) {
	combined, err := Combine("none")
	require.NoError(t, err)
	assert.Equal(t, 0, combined.Len())
}
