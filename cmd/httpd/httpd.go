// Package httpd implements the HTTP server command for the import API.
package httpd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/gorecipe/cmd/common"
	"github.com/jonesrussell/gorecipe/internal/api"
	"github.com/jonesrussell/gorecipe/internal/metrics"
)

const shutdownTimeout = 30 * time.Second

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP import API server",
		Long: `Start the HTTP server exposing the import API.

The server exposes:
  POST /api/v1/import  run an import for {"url": "..."}
  GET  /health         liveness check
  GET  /metrics        Prometheus metrics`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
	}
}

func run() error {
	deps, err := common.NewDeps()
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	imp := common.NewImporter(deps, m)

	router := api.SetupRouter(deps.Logger, imp)
	server := api.NewServer(deps.Config, deps.Logger, router)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-sigChan:
		deps.Logger.Info("received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	deps.Logger.Info("server stopped")
	return nil
}
