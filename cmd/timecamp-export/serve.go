package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timecamp-export/internal/app"
	"timecamp-export/internal/usecase"
)

var (
	serveAddr     string
	serveInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve listings and CSV exports over HTTP",
	Long: `serve exposes /healthz, /entries and /sync. With --sync-interval and a
configured sink it also syncs the last 24 hours periodically.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: HTTP_ADDR or :8080)")
	serveCmd.Flags().DurationVar(&serveInterval, "sync-interval", 0, "Periodic sync interval, 0 disables")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.HTTP.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp()
	defer a.Close()
	if cfg.HasSinks() {
		if err := a.OpenSinks(ctx); err != nil {
			return err
		}
	}

	srv := a.HTTPServer(addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if serveInterval > 0 && cfg.HasSinks() {
		go periodicSync(ctx, a, serveInterval)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func periodicSync(ctx context.Context, a *app.App, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("starting periodic sync", slog.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			end := time.Now().UTC()
			req := usecase.Request{From: end.Add(-24 * time.Hour), To: end}
			if _, err := a.RunOnce(ctx, req); err != nil {
				logger.Error("periodic sync failed", slog.String("error", err.Error()))
			}
		}
	}
}
