package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/blockflow"
	"github.com/aretw0/blockflow/internal/cli"
	httpAdapter "github.com/aretw0/blockflow/pkg/adapters/http"
	"github.com/aretw0/blockflow/pkg/adapters/memory"
	"github.com/aretw0/blockflow/pkg/adapters/redis"
	"github.com/aretw0/blockflow/pkg/observability"
	"github.com/aretw0/blockflow/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes type-checking, schema comparison, simulation of registered blocks and Prometheus metrics over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		logger, _, err := newLogger(cmd)
		if err != nil {
			return err
		}

		var rec ports.Recorder = memory.NewRecorder()
		if redisAddr != "" {
			r := redis.New(redisAddr, "", 0, redis.WithTTL(ttl))
			defer r.Close()
			rec = r
		}

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)
		engine := blockflow.New(
			blockflow.WithLogger(logger),
			blockflow.WithRecorder(rec),
			blockflow.WithLifecycleHooks(metrics.Hooks()),
		)

		handler := httpAdapter.NewHandler(
			httpAdapter.WithRegistry(cli.DefaultRegistry()),
			httpAdapter.WithSimulator(engine),
			httpAdapter.WithRecorder(rec),
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting BlockFlow server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for recorded runs (memory when empty)")
	serveCmd.Flags().Duration("ttl", 24*time.Hour, "Expiration of runs recorded in Redis")
}
