// package services implements clients for the external music APIs
//
// Spotify (catalog), YouTube (oEmbed title lookup)
package services

import (
	"context"

	"github.com/mdeloughry/portify/internal/models"
)

// Catalog is the destination music catalog that imported tracks are
// resolved against.
type Catalog interface {
	// Search runs a track search and returns up to limit results, best
	// match first. An empty result set is not an error.
	Search(ctx context.Context, query string, limit int) ([]models.Track, error)

	// PlaylistTracks retrieves a native playlist's name and tracks,
	// following pagination up to max tracks.
	PlaylistTracks(ctx context.Context, playlistID string, max int) (string, []models.Track, error)

	// Track retrieves a single track by its catalog ID.
	Track(ctx context.Context, trackID string) (*models.Track, error)

	// CheckSaved reports, index-aligned with ids, whether each track is in
	// the user's library. Requires a user-scoped token; app-only clients
	// get an API error, which callers treat as "nothing saved".
	CheckSaved(ctx context.Context, ids []string) ([]bool, error)

	// Name returns the catalog's display name (e.g. "Spotify").
	Name() string
}
