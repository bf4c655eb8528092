package tui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/aretw0/blockflow/internal/presentation/tui"
	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainStyler(t *testing.T) {
	s := tui.NewPlainStyler(&bytes.Buffer{})

	assert.Equal(t, "✔ ok", s.Pass("ok"))
	assert.Equal(t, "✘ bad", s.Fail("bad"))
	assert.Equal(t, "✘ bad", s.Verdict(false, "bad"))
	assert.Equal(t, "quiet", s.Muted("quiet"))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_.__/")
}

func TestSimulationReport(t *testing.T) {
	md := tui.SimulationReport("run-1", 2,
		domain.Values{"output1": 3.0, "actuator1": 2.0},
		[]tui.BlockState{
			{Block: "ctrl", State: domain.Values{"x1": 0.1}},
			{Block: "dyn"},
		})

	assert.Contains(t, md, "`run-1`")
	assert.Contains(t, md, "**Steps:** 2")
	assert.Contains(t, md, "| actuator1 | 2 |\n| output1 | 3 |")
	assert.Contains(t, md, "## State of `ctrl`")
	assert.Contains(t, md, "| x1 | 0.1 |")
	assert.Contains(t, md, "_stateless_")
}

func TestRendererFor_NonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, tui.IsTerminal(f))
	assert.False(t, tui.IsTerminal(nil))

	render := tui.RendererFor(f)
	out, err := render("# title")
	require.NoError(t, err)
	assert.Equal(t, "# title", out)
}
