package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/doistemposcafe/totem/internal/adapter/inbound/web"
	"github.com/doistemposcafe/totem/internal/config"
	"github.com/doistemposcafe/totem/internal/domain/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local front server",
	Long: `Run the local front server with the web app's page routes.

The server enforces the route guards: /manager requires the MANAGER or
ADMIN authority, /admin requires ADMIN, and visitors without a session
are redirected to /login. /metrics exposes Prometheus metrics and
/healthz reports liveness.

Examples:
  # Serve on the configured address (default 127.0.0.1:8080)
  totem serve

  # Serve with a specific config file
  totem --config /path/to/totem.yaml serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	logger := d.logger

	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Info("loaded config", "file", configFile)
	}

	// Signal context for graceful shutdown. stop() restores default
	// signal handling so a second Ctrl+C does a hard kill.
	ctx, stop := signal.NotifyContext(cmd.Context(), gracefulSignals()...)
	defer stop()

	registry := prometheus.NewRegistry()
	metrics := web.NewMetrics(registry)
	handler := web.NewHandler(d.sessions, d.client, logger, metrics, registry)

	// Log session changes at the server level too; page handlers only
	// see their own requests.
	unsubscribe := d.sessions.Subscribe(func(ev session.Event) {
		logger.Info("session changed", "event", ev.Kind.String())
	})
	defer unsubscribe()

	server := &http.Server{
		Addr:              d.cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("front server listening",
			"addr", d.cfg.Server.Addr,
			"backend", d.client.BaseURL())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("front server stopped")
	return nil
}
