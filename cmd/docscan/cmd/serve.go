package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mfenderov/docscan/internal/api"
	"github.com/mfenderov/docscan/internal/credits"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API for scanning documents and managing credits.

Every account's balance is reset to credits.default_balance once per
credits.reset_interval while the server runs.

Example:
  docscan serve
  DOCSCAN_SERVER_ADDR=:8080 docscan serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	engine, _, err := newEngine(ctx, store)
	if err != nil {
		return err
	}

	scheduler := credits.NewCronScheduler()
	resetter := credits.NewResetter(store, cfg.Credits.DefaultBalance)
	if err := resetter.Schedule(scheduler, cfg.Credits.ResetInterval); err != nil {
		return fmt.Errorf("failed to schedule credit reset: %w", err)
	}
	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer scheduler.Stop()

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(engine, store, api.Options{MaxUploadBytes: cfg.Server.MaxUploadBytes})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", cfg.Server.Addr)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
