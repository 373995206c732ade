package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Pawel-dev5/character-map-app/internal/config"
	"github.com/Pawel-dev5/character-map-app/internal/handlers"
	"github.com/Pawel-dev5/character-map-app/internal/logger"
	"github.com/Pawel-dev5/character-map-app/internal/services"
	"github.com/Pawel-dev5/character-map-app/internal/session"
	"github.com/Pawel-dev5/character-map-app/internal/storage"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Character Map API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage_backend", cfg.StorageBackend,
		"grid", cfg.Bounds())

	storageCtx, storageCancel := context.WithTimeout(ctx, 2*time.Minute)
	defer storageCancel()

	store, err := storage.Open(storageCtx, storage.Options{
		Backend:  cfg.StorageBackend,
		Path:     cfg.StateFile,
		RedisURL: cfg.RedisURL,
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("connecting to storage: %w", err)
	}
	log.Info("Storage connection established successfully")

	sess := session.New(storage.NewAdapter(store, log), cfg.Bounds(), log)
	sess.Load(ctx)

	text := lookup.NewLocalizer(cfg.Language)
	colors := services.NewColorService(services.LookupOptions{
		BaseURL:   cfg.ColorAPIURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.LookupTimeout,
		Localizer: text,
		Logger:    log,
	})
	geocoder := services.NewGeocodingService(services.LookupOptions{
		BaseURL:   cfg.GeocodingAPIURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.LookupTimeout,
		Localizer: text,
		Logger:    log,
	})

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handlers.NewRouter(handlers.RouterDeps{
			Store:    store,
			Session:  sess,
			Colors:   colors,
			Geocoder: geocoder,
			Logger:   log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2*cfg.LookupTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Server is shutting down...")

		// Graceful shutdown with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", "error", err)
		}
		if err := store.Close(); err != nil {
			log.Error("Error closing storage connection", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server exited")
	return nil
}
