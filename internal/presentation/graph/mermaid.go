package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/blockflow/pkg/block"
	"github.com/aretw0/blockflow/pkg/schema"
)

// GraphOverlay contains run data to visualize on a pipeline.
type GraphOverlay struct {
	VisitedBlocks []string
	FailedBlock   string
}

// GeneratePipeline produces a Mermaid flowchart for a chain of blocks.
// Shapes:
// - Port: >Flag]
// - Block: [[Subroutine]]
// - Terminal: [/Parallelogram/]
// A terminal feeding a port of the same name on the next block is drawn as an edge
// from the terminal to that block.
func GeneratePipeline(blocks []*block.Block, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for i, b := range blocks {
		id := blockID(i, b.Name())
		sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", id, escape(b.Name())))

		var previous map[string]block.Terminal
		if i > 0 {
			previous = blocks[i-1].Terminals()
		}

		for _, name := range b.Domain().FieldNames() {
			if _, fed := previous[name]; fed {
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(fmt.Sprintf("t%d_%s", i-1, name)), id))
				continue
			}
			portID := sanitizeMermaidID(fmt.Sprintf("p%d_%s", i, name))
			sb.WriteString(fmt.Sprintf("    %s>\"%s\"]\n", portID, escape(name)))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", portID, id))
		}

		for _, name := range b.Codomain().FieldNames() {
			termID := sanitizeMermaidID(fmt.Sprintf("t%d_%s", i, name))
			sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", termID, escape(name)))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, termID))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, name := range overlay.VisitedBlocks {
			visited[name] = true
		}
		for i, b := range blocks {
			id := blockID(i, b.Name())
			switch {
			case b.Name() == overlay.FailedBlock:
				sb.WriteString(fmt.Sprintf("    class %s failed;\n", id))
			case visited[b.Name()]:
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", id))
			}
		}
	}

	return sb.String()
}

// GenerateSchema produces a Mermaid tree of a schema. Composites are rectangles,
// primitives are rounded and list their kind and constraint names.
func GenerateSchema(s schema.TypeCategory) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if s != nil {
		writeSchemaNode(&sb, "root", s.Name(), s, 0)
	}
	return sb.String()
}

func writeSchemaNode(sb *strings.Builder, id, label string, t schema.TypeCategory, depth int) {
	switch v := t.(type) {
	case *schema.Primitive:
		text := fmt.Sprintf("%s: %s", label, v.Kind())
		if names := v.ConstraintNames(); len(names) > 0 {
			text += " <br/> " + strings.Join(names, ", ")
		}
		sb.WriteString(fmt.Sprintf("    %s(\"%s\")\n", id, escape(text)))
	case *schema.Composite:
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, escape(label)))
		if depth >= schema.MaxDepth {
			return
		}
		for _, field := range v.FieldNames() {
			child, _ := v.Field(field)
			childID := sanitizeMermaidID(id + "_" + field)
			writeSchemaNode(sb, childID, field, child, depth+1)
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, childID))
		}
	}
}

func blockID(i int, name string) string {
	return sanitizeMermaidID(fmt.Sprintf("b%d_%s", i, name))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		"|", "_",
		" ", "_",
	).Replace(id)
}
