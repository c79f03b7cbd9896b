package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/mdeloughry/portify/internal/repositories"
)

// CacheStats prints how many resolved matches the cache holds.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	db, err := openDatabase(r.config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMatchRepository(db)

	platform := cmd.String("platform")
	count, err := repo.Count(platform)
	if err != nil {
		return err
	}

	if platform == "" {
		return r.writePlain("cached matches: %d\n", count)
	}
	return r.writePlain("cached matches for %s: %d\n", platform, count)
}

// CacheEvict removes one cached match so the next import resolves it fresh.
func (r *Runner) CacheEvict(ctx context.Context, cmd *cli.Command) error {
	db, err := openDatabase(r.config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMatchRepository(db)

	platform := cmd.String("platform")
	key := cmd.String("key")

	if err := repo.Delete(platform, key); err != nil {
		return err
	}

	r.logger.Info("cache entry evicted", "platform", platform, "key", key)
	return r.writePlain("evicted %s/%s\n", platform, key)
}
