package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/blockflow/internal/cli"
	"github.com/aretw0/blockflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a block pipeline over time",
	Long:  `Loads a simulation config (YAML or JSON), runs the pipeline and prints a report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		report, _ := cmd.Flags().GetString("report")

		logger, level, err := newLogger(cmd)
		if err != nil {
			return err
		}

		cfg, err := cli.LoadConfig(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("report") {
			cfg.Report = report
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if tui.IsTerminal(os.Stdout) && cfg.Report == cli.ReportMarkdown {
			tui.PrintBanner(cmd.OutOrStdout())
		}

		return cli.RunSimulation(ctx, cli.SimulateOptions{
			Config: cfg,
			Logger: logger,
			Debug:  level <= slog.LevelDebug,
			Out:    cmd.OutOrStdout(),
			Render: tui.RendererFor(os.Stdout),
		})
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("config", "c", "simulation.yaml", "Simulation config file")
	simulateCmd.Flags().String("report", cli.ReportMarkdown, "Report format (markdown, json, mermaid)")
}
