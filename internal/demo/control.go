// Package demo provides the reference controller and plant blocks.
package demo

import (
	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/aretw0/blockflow/pkg/registry"
	"github.com/aretw0/blockflow/pkg/schema"
)

const (
	ControllerName = "controller"
	PlantName      = "plant"
)

func floatSchema(name string, fields ...string) *schema.Composite {
	m := make(map[string]schema.TypeCategory, len(fields))
	for _, f := range fields {
		m[f] = schema.Float()
	}
	return schema.NewComposite(name, m, nil, nil)
}

// Controller computes actuatorI = 2*sensorI + 0.5*xI and integrates
// xI += sensorI*t in its state.
func Controller() *block.Block {
	dom := floatSchema("controller_in", "sensor1", "sensor2", "x1", "x2")
	cod := floatSchema("controller_out", "actuator1", "actuator2")

	op := block.OperationFunc(func(in, st domain.Values, t float64) (domain.Values, domain.Values, error) {
		if err := block.Require(in, "sensor1", "sensor2", "x1", "x2"); err != nil {
			return nil, nil, err
		}
		s1, s2 := number(in["sensor1"]), number(in["sensor2"])
		x1, x2 := number(in["x1"]), number(in["x2"])

		out := domain.Values{
			"actuator1": 2*s1 + 0.5*x1,
			"actuator2": 2*s2 + 0.5*x2,
		}
		next := domain.Values{
			"x1": number(st["x1"]) + s1*t,
			"x2": number(st["x2"]) + s2*t,
		}
		return out, next, nil
	})

	return block.New("ctrl", dom, cod, block.PortsFor(dom), block.TerminalsFor(cod), op,
		domain.Values{"x1": 0.0, "x2": 0.0})
}

// Plant scales each actuator by 1.5.
func Plant() *block.Block {
	dom := floatSchema("plant_in", "actuator1", "actuator2")
	cod := floatSchema("plant_out", "output1", "output2")

	op := block.OperationFunc(func(in, st domain.Values, _ float64) (domain.Values, domain.Values, error) {
		if err := block.Require(in, "actuator1", "actuator2"); err != nil {
			return nil, nil, err
		}
		return domain.Values{
			"output1": number(in["actuator1"]) * 1.5,
			"output2": number(in["actuator2"]) * 1.5,
		}, st, nil
	})

	return block.New("dyn", dom, cod, block.PortsFor(dom), block.TerminalsFor(cod), op, nil)
}

// Register adds the demo blocks to r.
func Register(r *registry.Registry) {
	r.Register(ControllerName, Controller)
	r.Register(PlantName, Plant)
}

// number converts the numeric kinds accepted by schema.KindFloat.
func number(v any) float64 {
	f, _ := schema.ToFloat(v)
	return f
}
