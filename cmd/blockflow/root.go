package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/blockflow/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "blockflow",
	Short:         "BlockFlow type-checks schemas and simulates composed blocks",
	Long:          `BlockFlow describes typed data with schemas and runs pipelines of stateful blocks over discrete time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// newLogger builds the logger from the --log-level flag.
func newLogger(cmd *cobra.Command) (*slog.Logger, slog.Level, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, level, err
	}
	return logging.New(level), level, nil
}
