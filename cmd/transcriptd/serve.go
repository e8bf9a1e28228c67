package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the transcriptd HTTP server.

Endpoints:
  GET  /health            liveness plus CRM connectivity
  GET  /metrics           Prometheus metrics
  POST /api/v1/validate   score an already-extracted record
  POST /api/v1/process    run a transcript through the full pipeline`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	srv, err := server.New(a.cfg.Server, a.service, a.validator, a.rows, a.logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.logger.Info(ctx, "transcriptd started", zap.Int("port", a.cfg.Server.Port))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info(context.Background(), "shutting down")
	return srv.Shutdown(context.Background())
}
