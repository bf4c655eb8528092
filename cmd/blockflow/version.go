package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/blockflow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of blockflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "blockflow version %s\n", strings.TrimSpace(blockflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
