// package importer routes one input string through the import pipeline.
//
// An input is exactly one of: a pasted text track list, a playlist URL, a
// single-item URL, or a plain search query. The paths are an explicit
// ordered chain of predicate/handler pairs so precedence stays auditable;
// there are no retries across path boundaries.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/normalize"
	"github.com/mdeloughry/portify/internal/platforms"
	"github.com/mdeloughry/portify/internal/reconcile"
	"github.com/mdeloughry/portify/internal/scrape"
	"github.com/mdeloughry/portify/internal/services"
	"github.com/mdeloughry/portify/internal/shared"
	"github.com/mdeloughry/portify/internal/textlist"
)

// searchLimit is the result cap for the plain-search path. Reconciliation
// paths always search with limit 1.
const searchLimit = 5

// MatchCache remembers which catalog track an external source key resolved
// to. A nil cache disables caching without changing behavior.
type MatchCache interface {
	Get(platform, sourceKey string) (*models.PersistedMatch, error)
	Put(platform, sourceKey string, track models.Track) error
}

// Embedder resolves a video ID to its title and channel through an embed
// metadata endpoint.
type Embedder interface {
	Video(ctx context.Context, videoID string) (*services.OEmbedVideo, error)
}

// step is one predicate/handler pair in the dispatch chain.
type step struct {
	name    string
	match   func(input string) bool
	handler func(ctx context.Context, input string) (*models.ImportResult, error)
}

// Engine wires the recognizers, scraper, reconciler, and catalog into the
// four import paths.
type Engine struct {
	catalog   services.Catalog
	fetcher   *scrape.Fetcher
	embed     Embedder
	recon     *reconcile.Reconciler
	cache     MatchCache
	tracks    *platforms.Registry
	playlists *platforms.Registry
	maxTracks int
	logger    *log.Logger

	steps []step
}

// Option configures an Engine.
type Option func(*Engine)

// WithMatchCache attaches a persisted match cache.
func WithMatchCache(c MatchCache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithEmbedder overrides the embed metadata client.
func WithEmbedder(em Embedder) Option {
	return func(e *Engine) { e.embed = em }
}

// WithMaxTracks overrides the per-import track cap.
func WithMaxTracks(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTracks = n
		}
	}
}

// WithRegistries overrides the item and playlist recognizer registries.
func WithRegistries(tracks, playlists *platforms.Registry) Option {
	return func(e *Engine) {
		e.tracks = tracks
		e.playlists = playlists
	}
}

// New creates an Engine. The dispatch chain is fixed at construction:
// text list, then playlist URL, then item URL, then plain search.
func New(catalog services.Catalog, fetcher *scrape.Fetcher, recon *reconcile.Reconciler, logger *log.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	e := &Engine{
		catalog:   catalog,
		fetcher:   fetcher,
		embed:     services.NewYouTubeClient(""),
		recon:     recon,
		tracks:    platforms.Tracks(),
		playlists: platforms.Playlists(),
		maxTracks: scrape.MaxTracks,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.steps = []step{
		{
			name:    "text-list",
			match:   textlist.Looks,
			handler: e.importTextList,
		},
		{
			name:    "playlist-url",
			match:   func(input string) bool { return e.playlists.Classify(input) != nil },
			handler: e.importPlaylist,
		},
		{
			name:    "item-url",
			match:   func(input string) bool { return e.tracks.Classify(input) != nil },
			handler: e.importItem,
		},
		{
			name:    "plain-search",
			match:   func(input string) bool { return true },
			handler: e.plainSearch,
		},
	}

	return e
}

// Import dispatches input to the first matching path and returns its
// uniform result.
func (e *Engine) Import(ctx context.Context, input string) (*models.ImportResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: provide a URL or a track list", shared.ErrEmptyInput)
	}

	for _, s := range e.steps {
		if !s.match(input) {
			continue
		}

		e.logger.Debug("import path selected", "path", s.name)

		result, err := s.handler(ctx, input)
		if err != nil {
			return nil, err
		}

		e.annotateLiked(ctx, result)
		return result, nil
	}

	// The chain ends in an unconditional step.
	return nil, fmt.Errorf("%w: %q", shared.ErrUnrecognizedImport, input)
}

// importTextList parses pasted text into references and reconciles them.
func (e *Engine) importTextList(ctx context.Context, input string) (*models.ImportResult, error) {
	refs := textlist.Parse(input)
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no parseable lines in track list", shared.ErrNoTracksExtracted)
	}
	if len(refs) > e.maxTracks {
		refs = refs[:e.maxTracks]
	}

	results := e.recon.Tracks(ctx, refs, e.searchOne)
	summary := models.Summarize(platforms.Text, results)

	return &models.ImportResult{
		Platform: platforms.Text,
		Tracks:   results,
		Summary:  &summary,
	}, nil
}

// importPlaylist resolves a playlist URL: native playlists come straight
// from the catalog with every track marked found, foreign playlists are
// scraped and reconciled.
func (e *Engine) importPlaylist(ctx context.Context, input string) (*models.ImportResult, error) {
	m := e.playlists.Classify(input)

	if m.Platform == platforms.Spotify {
		return e.importNativePlaylist(ctx, m)
	}

	refs, name, err := e.fetcher.PlaylistTracks(ctx, m)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: playlist may be private or empty", shared.ErrNoTracksExtracted)
	}
	if len(refs) > e.maxTracks {
		refs = refs[:e.maxTracks]
	}

	results := e.recon.Tracks(ctx, refs, e.searchOne)
	summary := models.Summarize(m.Platform, results)

	return &models.ImportResult{
		Platform:     m.Platform,
		PlaylistName: name,
		Tracks:       results,
		Summary:      &summary,
	}, nil
}

// importNativePlaylist fetches playlist tracks directly by id. No
// reconciliation happens, so every track is found unconditionally.
func (e *Engine) importNativePlaylist(ctx context.Context, m *platforms.Match) (*models.ImportResult, error) {
	name, tracks, err := e.catalog.PlaylistTracks(ctx, m.ID, e.maxTracks)
	if err != nil {
		return nil, err
	}

	results := make([]models.MatchResult, 0, len(tracks))
	for _, track := range tracks {
		results = append(results, models.MatchResult{
			Ref:        models.TrackRef{Title: track.Title, Artist: track.Artist, SourceID: track.ID},
			Track:      &track,
			Status:     models.StatusFound,
			Confidence: 1,
		})
	}

	summary := models.Summarize(m.Platform, results)

	return &models.ImportResult{
		Platform:     m.Platform,
		PlaylistName: name,
		Tracks:       results,
		Summary:      &summary,
	}, nil
}

// importItem resolves a single-item URL to one catalog track.
func (e *Engine) importItem(ctx context.Context, input string) (*models.ImportResult, error) {
	m := e.tracks.Classify(input)

	if m.Platform == platforms.Spotify {
		track, err := e.catalog.Track(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		return e.singleResult(m.Platform, models.MatchResult{
			Ref:        models.TrackRef{Title: track.Title, Artist: track.Artist, SourceID: m.ID},
			Track:      track,
			Status:     models.StatusFound,
			Confidence: 1,
		}), nil
	}

	if cached := e.cachedMatch(m); cached != nil {
		return e.singleResult(m.Platform, *cached), nil
	}

	ref, err := e.itemRef(ctx, m)
	if err != nil {
		return nil, err
	}

	result := e.resolveRef(ctx, ref)
	if result.Status == models.StatusFound {
		e.cacheMatch(m, result)
	}

	return e.singleResult(m.Platform, result), nil
}

// itemRef turns a classified item URL into a track reference, using the
// embed metadata endpoint for videos and the page title elsewhere.
func (e *Engine) itemRef(ctx context.Context, m *platforms.Match) (models.TrackRef, error) {
	if m.Platform == platforms.YouTube {
		video, err := e.embed.Video(ctx, m.ID)
		if err != nil {
			return models.TrackRef{}, err
		}

		artist, title := normalize.SplitArtistTitle(video.Title, video.AuthorName)
		return models.TrackRef{Title: title, Artist: artist, SourceID: m.ID}, nil
	}

	title, err := e.fetcher.Page(ctx, m.RawURL)
	if err != nil {
		return models.TrackRef{}, err
	}
	if title == "" {
		return models.TrackRef{}, fmt.Errorf("%w: page has no usable title", shared.ErrNoTracksExtracted)
	}

	title = stripSiteSuffix(title)
	artist, trackTitle := normalize.SplitArtistTitle(title, "")
	return models.TrackRef{Title: trackTitle, Artist: artist, SourceID: m.ID}, nil
}

// resolveRef runs one limit-1 catalog search for a reference.
func (e *Engine) resolveRef(ctx context.Context, ref models.TrackRef) models.MatchResult {
	results := e.recon.Tracks(ctx, []models.TrackRef{ref}, e.searchOne)
	return results[0]
}

// plainSearch treats the input as a literal catalog query. Noisy or
// unproductive queries get alternative suggestions attached.
func (e *Engine) plainSearch(ctx context.Context, input string) (*models.ImportResult, error) {
	if _, ok := platforms.ParseURL(input); ok {
		return nil, fmt.Errorf("%w: supported platforms are %s", shared.ErrUnsupportedURL, supportedPlatforms())
	}

	tracks, err := e.catalog.Search(ctx, input, searchLimit)
	if err != nil {
		return nil, err
	}

	ref := models.TrackRef{Title: input}
	results := make([]models.MatchResult, 0, len(tracks))
	for _, track := range tracks {
		results = append(results, models.MatchResult{
			Ref:        ref,
			Track:      &track,
			Status:     models.StatusFound,
			Confidence: e.recon.Confidence(ref, &track),
		})
	}

	result := &models.ImportResult{
		Platform: "search",
		Query:    input,
		Tracks:   results,
	}

	if len(tracks) < 2 || normalize.NeedsCleaning(input) {
		result.Suggestions = normalize.SuggestAlternatives(input)
	}

	return result, nil
}

// searchOne is the reconciler's SearchFunc: one limit-1 search, top hit
// accepted.
func (e *Engine) searchOne(ctx context.Context, query string) (*models.Track, error) {
	tracks, err := e.catalog.Search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, nil
	}
	return &tracks[0], nil
}

// annotateLiked marks found tracks already saved in the user's library via
// one bulk lookup. Lookup failures degrade to "nothing saved".
func (e *Engine) annotateLiked(ctx context.Context, result *models.ImportResult) {
	var ids []string
	var idx []int

	for i, match := range result.Tracks {
		if match.Status == models.StatusFound && match.Track != nil && match.Track.ID != "" {
			ids = append(ids, match.Track.ID)
			idx = append(idx, i)
		}
	}

	if len(ids) == 0 {
		return
	}

	saved, err := e.catalog.CheckSaved(ctx, ids)
	if err != nil || len(saved) != len(ids) {
		e.logger.Debug("liked annotation skipped", "err", err)
		return
	}

	for i, position := range idx {
		result.Tracks[position].Track.Liked = saved[i]
	}
}

// cachedMatch consults the match cache for a previously resolved item.
func (e *Engine) cachedMatch(m *platforms.Match) *models.MatchResult {
	if e.cache == nil || m.ID == "" {
		return nil
	}

	persisted, err := e.cache.Get(m.Platform, m.ID)
	if err != nil {
		e.logger.Debug("match cache lookup failed", "err", err)
		return nil
	}
	if persisted == nil {
		return nil
	}

	return &models.MatchResult{
		Ref:        models.TrackRef{Title: persisted.TrackTitle, Artist: persisted.TrackArtist, SourceID: persisted.SourceKey},
		Track:      &models.Track{ID: persisted.TrackID, Title: persisted.TrackTitle, Artist: persisted.TrackArtist},
		Status:     models.StatusFound,
		Confidence: 1,
	}
}

func (e *Engine) cacheMatch(m *platforms.Match, result models.MatchResult) {
	if e.cache == nil || m.ID == "" || result.Track == nil {
		return
	}

	if err := e.cache.Put(m.Platform, m.ID, *result.Track); err != nil {
		e.logger.Debug("match cache write failed", "err", err)
	}
}

func (e *Engine) singleResult(platform string, match models.MatchResult) *models.ImportResult {
	summary := models.Summarize(platform, []models.MatchResult{match})
	return &models.ImportResult{
		Platform: platform,
		Tracks:   []models.MatchResult{match},
		Summary:  &summary,
	}
}

// stripSiteSuffix drops trailing " | Site" style markers from page titles.
func stripSiteSuffix(title string) string {
	if idx := strings.Index(title, " | "); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	return title
}

func supportedPlatforms() string {
	return strings.Join([]string{
		platforms.Spotify,
		platforms.YouTube,
		platforms.SoundCloud,
		platforms.Bandcamp,
		platforms.Mixcloud,
		platforms.AppleMusic,
	}, ", ")
}
