package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func controlSchemas() (sensors, actuators *Composite) {
	sensors = NewComposite("sensors", map[string]TypeCategory{
		"sensor1": Float(),
		"sensor2": Float(),
	}, nil, nil)
	actuators = NewComposite("actuators", map[string]TypeCategory{
		"actuator1": Float(),
		"actuator2": Float(),
	}, nil, nil)
	return sensors, actuators
}

func TestCongruent_Reflexive(t *testing.T) {
	pose := NewComposite("pose", map[string]TypeCategory{"x": Float(), "y": Float()}, nil, nil)
	schemas := []*Composite{
		NewComposite("empty", nil, nil, nil),
		pose,
		NewComposite("nested", map[string]TypeCategory{"pose": pose, "id": String()}, nil, nil),
		sensorSchema(),
	}
	for _, s := range schemas {
		assert.True(t, Congruent(s, s), "schema %s must be congruent with itself", s.Name())
	}
}

func TestCongruent_Symmetric(t *testing.T) {
	sensors, actuators := controlSchemas()
	other := NewComposite("renamed", map[string]TypeCategory{
		"sensor1": Float(),
		"sensor2": Float(),
	}, nil, nil)

	pairs := [][2]TypeCategory{
		{sensors, actuators},
		{sensors, other},
		{sensors, Float()},
		{Float(), Int()},
		{Float(), Float()},
	}
	for _, p := range pairs {
		assert.Equal(t, Congruent(p[0], p[1]), Congruent(p[1], p[0]))
	}
}

func TestCongruent_Structure(t *testing.T) {
	sensors, actuators := controlSchemas()

	t.Run("composite names ignored", func(t *testing.T) {
		renamed := NewComposite("other", sensors.Fields(), nil, nil)
		assert.True(t, Congruent(sensors, renamed))
	})

	t.Run("different field sets", func(t *testing.T) {
		assert.False(t, Congruent(sensors, actuators))
	})

	t.Run("subset is not enough", func(t *testing.T) {
		partial := NewComposite("partial", map[string]TypeCategory{"sensor1": Float()}, nil, nil)
		assert.False(t, Congruent(sensors, partial))
	})

	t.Run("primitive vs composite", func(t *testing.T) {
		assert.False(t, Congruent(Float(), sensors))
	})

	t.Run("primitive names", func(t *testing.T) {
		assert.True(t, Congruent(Float(), Float()))
		assert.False(t, Congruent(Float(), Int()))
	})

	t.Run("nested mismatch", func(t *testing.T) {
		a := NewComposite("a", map[string]TypeCategory{"inner": sensors}, nil, nil)
		b := NewComposite("b", map[string]TypeCategory{"inner": actuators}, nil, nil)
		assert.False(t, Congruent(a, b))
	})

	t.Run("nil", func(t *testing.T) {
		assert.True(t, Congruent(nil, nil))
		assert.False(t, Congruent(nil, Float()))
	})
}

func TestCongruent_ConstraintIdentity(t *testing.T) {
	shared := Range(0, 100)
	a := NewPrimitive("real", KindFloat, nil, map[string]*Constraint{"range": shared})
	b := NewPrimitive("real", KindFloat, nil, map[string]*Constraint{"range": shared})
	c := NewPrimitive("real", KindFloat, nil, map[string]*Constraint{"range": Range(0, 100)})
	d := NewPrimitive("real", KindFloat, nil, map[string]*Constraint{"bounds": shared})

	assert.True(t, Congruent(a, b), "same callable under same name")
	assert.False(t, Congruent(a, c), "distinct callables are not congruent")
	assert.False(t, Congruent(a, d), "constraint identifiers must match")
	assert.False(t, Congruent(a, Float()), "primitive name differs")
}

func TestCongruent_DepthBound(t *testing.T) {
	var a, b TypeCategory = Float(), Float()
	for i := 0; i <= MaxDepth+1; i++ {
		a = NewComposite("a", map[string]TypeCategory{"next": a}, nil, nil)
		b = NewComposite("b", map[string]TypeCategory{"next": b}, nil, nil)
	}
	assert.False(t, Congruent(a, b))
}

func TestCongruent_ReflexivePastDepthBound(t *testing.T) {
	var a TypeCategory = Float()
	for i := 0; i < MaxDepth+6; i++ {
		a = NewComposite("a", map[string]TypeCategory{"next": a}, nil, nil)
	}
	assert.True(t, Congruent(a, a))
}

func TestIsMember(t *testing.T) {
	pose := NewComposite("pose", map[string]TypeCategory{"x": Float(), "y": Float()}, nil, nil)
	vehicle := NewComposite("vehicle", map[string]TypeCategory{
		"state": NewComposite("state", map[string]TypeCategory{"pose": pose}, nil, nil),
		"name":  String(),
	}, nil, nil)

	assert.True(t, IsMember(vehicle, String()), "direct field")
	assert.True(t, IsMember(vehicle, pose), "nested composite")
	assert.True(t, IsMember(vehicle, Float()), "nested primitive")
	assert.False(t, IsMember(vehicle, Bool()))
	assert.False(t, IsMember(vehicle, vehicle), "a schema does not contain itself")
	assert.False(t, IsMember(nil, Float()))
}

func TestSimilarity(t *testing.T) {
	sensors, actuators := controlSchemas()

	t.Run("identical", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity(sensors, sensors))
	})

	t.Run("disjoint", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity(sensors, actuators))
	})

	t.Run("partial overlap", func(t *testing.T) {
		mixed := NewComposite("mixed", map[string]TypeCategory{
			"sensor1":   Float(),
			"actuator1": Float(),
		}, nil, nil)
		assert.Equal(t, 0.5, Similarity(sensors, mixed))
	})

	t.Run("variant mismatch not counted", func(t *testing.T) {
		nested := NewComposite("nested", map[string]TypeCategory{
			"sensor1": sensors,
			"sensor2": Float(),
		}, nil, nil)
		assert.Equal(t, 0.5, Similarity(sensors, nested))
	})

	t.Run("deep difference ignored", func(t *testing.T) {
		other := NewComposite("other", map[string]TypeCategory{
			"sensor1": String(),
			"sensor2": Bool(),
		}, nil, nil)
		assert.Equal(t, 1.0, Similarity(sensors, other))
	})

	t.Run("both empty", func(t *testing.T) {
		empty := NewComposite("empty", nil, nil, nil)
		assert.Equal(t, 0.0, Similarity(empty, empty))
	})
}
