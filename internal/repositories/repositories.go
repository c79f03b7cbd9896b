// package repositories provides the SQLite persistence layer.
//
// The match cache is the only persisted entity: it remembers which catalog
// track an external source key resolved to, so repeat imports skip the
// search round trip.
package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/shared"
)

// MatchRepository persists resolved (platform, source key) → catalog track
// mappings.
//
// Duplicate inserts are silently ignored via the UNIQUE(platform, source_key)
// constraint; the first resolution wins.
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new MatchRepository with the given database connection
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Get retrieves a cached match by platform and source key.
// Returns (nil, nil) on a cache miss.
func (r *MatchRepository) Get(platform, sourceKey string) (*models.PersistedMatch, error) {
	query := `
		SELECT id, platform, source_key, track_id, track_title, track_artist, created_at
		FROM match_cache
		WHERE platform = ? AND source_key = ?
	`

	var match models.PersistedMatch
	err := r.db.QueryRow(query, platform, sourceKey).Scan(
		&match.ID,
		&match.Platform,
		&match.SourceKey,
		&match.TrackID,
		&match.TrackTitle,
		&match.TrackArtist,
		&match.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query match cache: %w", err)
	}

	return &match, nil
}

// Put inserts a resolved match. Re-inserting an existing (platform, source
// key) pair is a no-op; only actual failures surface as errors.
func (r *MatchRepository) Put(platform, sourceKey string, track models.Track) error {
	if platform == "" || sourceKey == "" {
		return fmt.Errorf("%w: platform and source key are required", shared.ErrInvalidInput)
	}
	if track.ID == "" {
		return fmt.Errorf("%w: track id is required", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO match_cache (id, platform, source_key, track_id, track_title, track_artist, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		shared.GenerateID(),
		platform,
		sourceKey,
		track.ID,
		track.Title,
		track.Artist,
		time.Now(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}

	return nil
}

// Delete removes a cached match. Missing rows are not an error.
func (r *MatchRepository) Delete(platform, sourceKey string) error {
	_, err := r.db.Exec(`DELETE FROM match_cache WHERE platform = ? AND source_key = ?`, platform, sourceKey)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return nil
}

// Count returns the number of cached matches, optionally filtered by platform.
func (r *MatchRepository) Count(platform string) (int, error) {
	var (
		count int
		err   error
	)

	if platform == "" {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM match_cache`).Scan(&count)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM match_cache WHERE platform = ?`, platform).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}

	return count, nil
}
