// Package main is the entry point for the hotel reservations API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/webtilians/backA/internal/config"
	"github.com/webtilians/backA/internal/handler"
	"github.com/webtilians/backA/internal/middleware"
	"github.com/webtilians/backA/internal/notify"
	"github.com/webtilians/backA/internal/repo"
	"github.com/webtilians/backA/internal/service"
	"github.com/webtilians/backA/internal/tools"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// The default logger writes text to stderr before ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// run wires the application and serves until ctx is cancelled.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// --- Stores -----------------------------------------------------------
	catalog := repo.NewFileCatalogRepo(cfg.CatalogPath)
	reservations, closeStore, err := openReservationStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Fail fast on a broken catalog instead of on the first guest request.
	roomTypes, err := catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
	}
	if len(roomTypes) == 0 {
		logger.Warn("room catalog is empty; every room type will be reported as unknown", "path", cfg.CatalogPath)
	}
	logger.Info("catalog loaded", "path", cfg.CatalogPath, "room_types", len(roomTypes))

	// --- Services ---------------------------------------------------------
	opts := []service.ReservationOption{service.WithLogger(logger)}
	if cfg.ReservationEventsURL != "" {
		notifier, err := notify.NewCloudEventsNotifier(cfg.ReservationEventsURL)
		if err != nil {
			return fmt.Errorf("create reservation notifier: %w", err)
		}
		opts = append(opts, service.WithNotifier(notifier))
		logger.Info("reservation events enabled", "target", cfg.ReservationEventsURL)
	}
	availabilitySvc := service.NewAvailabilityService(catalog, reservations)
	reservationSvc := service.NewReservationService(catalog, reservations, opts...)

	format, err := tools.ParseFormat(cfg.ToolResultFormat)
	if err != nil {
		return err
	}
	dispatcher := tools.NewDispatcher(availabilitySvc, reservationSvc, format, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(availabilitySvc, reservationSvc, dispatcher, format, logger)
	r.Mount("/", srv.Routes(middleware.NewRateLimitHandler(cfg.ToolsRateLimit, cfg.ToolsRateBurst)))

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", httpSrv.Addr, "store_backend", cfg.StoreBackend)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		// Give in-flight requests up to 15 seconds to complete.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
