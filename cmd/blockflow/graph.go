package main

import (
	"fmt"

	"github.com/aretw0/blockflow/internal/cli"
	"github.com/aretw0/blockflow/internal/presentation/graph"
	"github.com/aretw0/blockflow/pkg/schema"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [SCHEMA]",
	Short: "Export a Mermaid diagram of a schema or a block pipeline",
	Long: `Outputs a Mermaid diagram. With a schema file it draws the schema tree (graph TD);
otherwise --pipeline draws the registered blocks in order with their ports and terminals (graph LR).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			s, err := schema.NewParser().ParseFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateSchema(s))
			return nil
		}

		pipeline, _ := cmd.Flags().GetStringSlice("pipeline")
		if len(pipeline) == 0 {
			return fmt.Errorf("either a schema file or --pipeline is required")
		}
		blocks, err := cli.DefaultRegistry().BuildAll(pipeline...)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GeneratePipeline(blocks, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("pipeline", nil, "Registered block names, in order")
}
