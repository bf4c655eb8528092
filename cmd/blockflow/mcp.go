package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/blockflow"
	"github.com/aretw0/blockflow/internal/cli"
	mcpAdapter "github.com/aretw0/blockflow/pkg/adapters/mcp"
	"github.com/aretw0/blockflow/pkg/adapters/memory"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes type-checking, schema comparison and simulation of the registered blocks as MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		if transport != "stdio" && transport != "sse" {
			return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", transport)
		}

		// Logs go to Stderr so they never corrupt JSON-RPC on Stdout.
		logger, _, err := newLogger(cmd)
		if err != nil {
			return err
		}

		rec := memory.NewRecorder()
		engine := blockflow.New(blockflow.WithLogger(logger), blockflow.WithRecorder(rec))
		srv := mcpAdapter.NewServer(cli.DefaultRegistry(), engine,
			mcpAdapter.WithRecorder(rec),
			mcpAdapter.WithLogger(logger),
		)

		if transport == "stdio" {
			logger.Info("starting BlockFlow MCP server (stdio)")
			return srv.ServeStdio()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting BlockFlow MCP server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
