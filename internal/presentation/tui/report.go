package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/blockflow/pkg/domain"
)

// BlockState pairs a scheduled block with its final state.
type BlockState struct {
	Block string
	State domain.Values
}

// SimulationReport renders the outcome of a run as markdown.
func SimulationReport(runID string, steps int, inputs domain.Values, states []BlockState) string {
	var sb strings.Builder
	sb.WriteString("# Simulation report\n\n")
	sb.WriteString(fmt.Sprintf("- **Run:** `%s`\n", runID))
	sb.WriteString(fmt.Sprintf("- **Steps:** %d\n\n", steps))

	sb.WriteString("## Values\n\n")
	writeTable(&sb, inputs)

	for _, bs := range states {
		sb.WriteString(fmt.Sprintf("\n## State of `%s`\n\n", bs.Block))
		if len(bs.State) == 0 {
			sb.WriteString("_stateless_\n")
			continue
		}
		writeTable(&sb, bs.State)
	}
	return sb.String()
}

func writeTable(sb *strings.Builder, v domain.Values) {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|---|---|\n")
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("| %s | %v |\n", k, v[k]))
	}
}
