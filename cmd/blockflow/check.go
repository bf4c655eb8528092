package main

import (
	"github.com/aretw0/blockflow/internal/cli"
	"github.com/aretw0/blockflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check SCHEMA VALUE",
	Short: "Type-check a value against a schema",
	Long:  `Parses a YAML or JSON schema definition and reports whether the value document is a member of it.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunCheck(args[0], args[1], cmd.OutOrStdout(), tui.NewStyler(cmd.OutOrStdout()))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare A B",
	Short: "Compare two schemas structurally",
	Long:  `Reports whether two schema definitions are congruent and their field similarity.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cli.RunCompare(args[0], args[1], cmd.OutOrStdout(), tui.NewStyler(cmd.OutOrStdout()))
		return err
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(compareCmd)
}
