package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/employee-pass/internal/config"
	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/handler"
	"github.com/msomdec/employee-pass/internal/service"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// Validate has already accepted the level.
	level, _ := config.ParseLevel(cfg.LogLevel)
	setupLogger(level)

	slots, db := openServeStorage(ctx, cfg)
	defer db.Close()

	store := service.NewEmployeeStore(ctx, slots)
	slog.Info("employee collection loaded", "employees", store.Len())

	renderer, err := service.NewPassRenderer(brandingFor(cfg))
	if err != nil {
		return fmt.Errorf("create pass renderer: %w", err)
	}

	exportLimiter := service.NewPerMinuteLimiter(cfg.ExportRatePerMinute)
	defer exportLimiter.Stop()

	h := handler.NewHandler(handler.Deps{
		Gate:           service.NewAdminGate(verifierFor(cfg), cfg.SessionSecret, cfg.SessionTTL),
		Store:          store,
		Registration:   service.NewRegistrationService(store),
		Renderer:       renderer,
		ExportLimiter:  exportLimiter,
		MaxUploadBytes: cfg.MaxUploadBytes,
		CookieSecure:   cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// verifierFor prefers a bcrypt hash over a plaintext admin password.
func verifierFor(cfg *config.Config) domain.CredentialVerifier {
	if cfg.AdminPasswordHash != "" {
		slog.Info("admin gate uses bcrypt hash")
		return service.NewBcryptVerifier(cfg.AdminPasswordHash)
	}
	slog.Warn("admin gate uses a plaintext password; set ADMIN_PASSWORD_HASH for production")
	return service.NewFixedSecretVerifier(cfg.AdminPassword)
}

func brandingFor(cfg *config.Config) service.Branding {
	return service.Branding{ShortName: cfg.Organization, FullName: cfg.OrganizationName}
}
