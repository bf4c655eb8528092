package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/blockflow/internal/demo"
	"github.com/aretw0/blockflow/internal/presentation/graph"
	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePipeline(t *testing.T) {
	out := graph.GeneratePipeline([]*block.Block{demo.Controller(), demo.Plant()}, nil)

	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	for _, want := range []string{
		`b0_ctrl[["ctrl"]]`,
		`p0_sensor1>"sensor1"]`,
		`p0_sensor1 --> b0_ctrl`,
		`b0_ctrl --> t0_actuator1`,
		`t0_actuator1[/"actuator1"/]`,
		// plant's ports are fed by the controller's terminals
		`t0_actuator1 --> b1_dyn`,
		`b1_dyn --> t1_output2`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "p1_actuator1", "fed ports are not drawn again")
	assert.NotContains(t, out, "classDef")
}

func TestGeneratePipeline_Composite(t *testing.T) {
	loop, err := block.Compose(demo.Controller(), demo.Plant())
	require.NoError(t, err)

	out := graph.GeneratePipeline([]*block.Block{loop}, nil)
	assert.Contains(t, out, `b0_ctrl_dyn[["ctrl|dyn"]]`)
}

func TestGeneratePipeline_Overlay(t *testing.T) {
	out := graph.GeneratePipeline([]*block.Block{demo.Controller(), demo.Plant()}, &graph.GraphOverlay{
		VisitedBlocks: []string{"ctrl"},
		FailedBlock:   "dyn",
	})

	assert.Contains(t, out, "class b0_ctrl visited;")
	assert.Contains(t, out, "class b1_dyn failed;")
}

func TestGenerateSchema(t *testing.T) {
	pose := schema.NewComposite("pose", map[string]schema.TypeCategory{
		"x": schema.Float(),
		"y": schema.Float(),
	}, nil, nil)
	level := schema.NewPrimitive("real", schema.KindFloat, nil, map[string]*schema.Constraint{"range": schema.Range(0, 1)})
	s := schema.NewComposite("vehicle", map[string]schema.TypeCategory{
		"pose":  pose,
		"level": level,
	}, nil, nil)

	out := graph.GenerateSchema(s)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`root["vehicle"]`,
		`root_pose["pose"]`,
		`root_pose_x("x: float")`,
		`root_level("level: float <br/> range")`,
		`root --> root_pose`,
		`root_pose --> root_pose_y`,
	} {
		assert.Contains(t, out, want)
	}

	assert.Equal(t, "graph TD\n", graph.GenerateSchema(nil))
}
