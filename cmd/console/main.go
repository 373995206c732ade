package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pawel-dev5/character-map-app/internal/config"
	"github.com/Pawel-dev5/character-map-app/internal/logger"
	"github.com/Pawel-dev5/character-map-app/internal/services"
	"github.com/Pawel-dev5/character-map-app/internal/session"
	"github.com/Pawel-dev5/character-map-app/internal/storage"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout belongs to the TUI
	log, logFile, err := logger.SetupFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()

	ctx := context.Background()

	openCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	store, err := storage.Open(openCtx, storage.Options{
		Backend:  cfg.StorageBackend,
		Path:     cfg.StateFile,
		RedisURL: cfg.RedisURL,
		Logger:   log,
	})
	cancel()
	if err != nil {
		// keep going without persistence rather than refusing to start
		log.Warn("Storage unavailable, changes will not be saved", "backend", cfg.StorageBackend, "error", err)
		store = storage.NewMemoryStore()
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

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

	ui := NewConsoleUI(ctx, sess, colors, geocoder, UIOptions{
		Debounce:  cfg.Debounce,
		BlurGrace: cfg.BlurGrace,
		Logger:    log,
	})

	log.Info("Starting console", "storage_backend", cfg.StorageBackend, "grid", cfg.Bounds())
	p := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
