package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/handler"
	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/repository"
	"github.com/vaultpass/passgen-go/internal/service"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the password generation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = ":" + a.cfg.Port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default \":$PORT\")")
	return cmd
}

// serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func (a *app) serve(ctx context.Context, addr string) error {
	m := metrics.New()
	genService := service.NewGeneratorService(a.generator(), a.cfg.Profile, service.Limits{
		MaxLength: a.cfg.MaxLength,
		MaxCount:  a.cfg.MaxCount,
	}).WithMetrics(m)
	historyService := service.NewHistoryService(nil)

	// The audit log is optional: without a database the history route reports 503.
	if a.cfg.DatabaseDSN == "" {
		slog.Info("DATABASE_DSN not set, generation history disabled")
	} else if db, err := repository.NewDB(ctx, a.cfg.DatabaseDSN); err != nil {
		slog.Warn("database connection failed, generation history disabled", "error", err)
	} else {
		defer db.Close()
		auditRepo := repository.NewAuditRepository(db)
		if err := auditRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("creating audit schema: %w", err)
		}
		genService.WithRecorder(auditRepo)
		historyService = service.NewHistoryService(auditRepo)
	}

	router := handler.NewRouter(ctx, handler.RouterConfig{
		Generator:      genService,
		History:        historyService,
		Metrics:        m,
		JWTSecret:      a.cfg.JWTSecret,
		RateLimitRPS:   a.cfg.RateLimitRPS,
		RateLimitBurst: a.cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr, "env", a.cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
