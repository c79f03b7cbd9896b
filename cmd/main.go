package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mdeloughry/portify/internal/services"
	"github.com/mdeloughry/portify/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog services.Catalog
	creds := config.Credentials.Spotify
	if creds.ClientID != "" && creds.ClientSecret != "" {
		if client, err := services.NewSpotifyClient(context.Background(), creds.ClientID, creds.ClientSecret); err == nil {
			catalog = client
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "portify",
		Usage:    "Import playlists and tracks from other platforms into your catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrMissingCredentials) {
			logger.Error("spotify credentials missing; run 'portify setup' and fill in config.toml")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
