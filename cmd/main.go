package main

import (
	"context"
	"errors"
	"os"

	"github.com/tunetype/tunetype/internal/cache"
	"github.com/tunetype/tunetype/internal/services"
	"github.com/tunetype/tunetype/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var spotifyService *services.SpotifyService
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			spotifyService = svc
		}
	}

	backendService := services.NewBackendService(config.Backend.BaseURL, nil, config.Backend.RateLimit)

	var store cache.Store
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		// Migrations are idempotent; a fresh install works without an
		// explicit setup run.
		if err := shared.RunMigrations(db); err != nil {
			logger.Warn("failed to run migrations", "error", err)
		} else {
			store = cache.NewSQLiteStore(db)
		}
	} else {
		logger.Warn("failed to open cache database", "path", config.Database.Path, "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Spotify: spotifyService,
		Backend: backendService,
		Store:   store,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "tunetype",
		Usage:    "Turn your Spotify listening history into a personality report",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
