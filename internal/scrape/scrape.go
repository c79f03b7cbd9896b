// package scrape fetches external playlist pages and extracts track references.
//
// Each supported platform registers an ordered cascade of extraction
// patterns, typically a structured JSON blob embedded in the page first and
// a narrower regular expression over raw HTML as fallback. Every failure
// mode of a pattern (network error, timeout, non-2xx, malformed payload) is
// equivalent to "this pattern found nothing"; the cascade moves on. Only
// when every pattern for every URL variant yields nothing does the caller
// see an empty result.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/platforms"
	"github.com/mdeloughry/portify/internal/shared"
)

const (
	// DefaultTimeout bounds every page fetch.
	DefaultTimeout = 5 * time.Second

	// DefaultUserAgent mimics a desktop browser; several platforms serve
	// empty shells to non-browser agents.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MaxTracks caps extracted references per call.
	MaxTracks = 50

	// maxBodyBytes bounds how much of a page is read into memory.
	maxBodyBytes = 5 << 20
)

// Pattern is one extraction strategy over a fetched page body.
// Extract returns nil for any body it cannot handle.
type Pattern struct {
	Name    string
	Extract func(body string) []models.TrackRef
}

// rules bundles a platform's URL variants and its extraction cascade.
type rules struct {
	// urls expands a classified playlist match into the page URLs to try,
	// in order.
	urls func(m *platforms.Match) []string

	patterns []Pattern
}

// Fetcher retrieves playlist pages and runs platform extraction cascades.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	timeout   time.Duration
	maxTracks int
	logger    *log.Logger
	platforms map[string]rules
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout overrides the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithUserAgent overrides the request User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxTracks overrides the extraction cap.
func WithMaxTracks(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxTracks = n
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher creates a Fetcher with the default platform cascades registered.
func NewFetcher(logger *log.Logger, opts ...Option) *Fetcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	f := &Fetcher{
		client:    &http.Client{},
		limiter:   rate.NewLimiter(rate.Every(200*time.Millisecond), 3),
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		maxTracks: MaxTracks,
		logger:    logger,
		platforms: map[string]rules{
			platforms.YouTube:    youtubeRules(),
			platforms.SoundCloud: soundcloudRules(),
			platforms.Bandcamp:   bandcampRules(),
			platforms.Mixcloud:   mixcloudRules(),
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Supports reports whether the fetcher has an extraction cascade for the platform.
func (f *Fetcher) Supports(platform string) bool {
	_, ok := f.platforms[platform]
	return ok
}

// PlaylistTracks fetches the playlist page for a classified match and runs
// the platform's extraction cascade, returning deduplicated track
// references (capped at the configured maximum) and the page title as the
// playlist name. An exhausted cascade returns an empty slice, not an error;
// errors are reserved for unsupported platforms.
func (f *Fetcher) PlaylistTracks(ctx context.Context, m *platforms.Match) ([]models.TrackRef, string, error) {
	r, ok := f.platforms[m.Platform]
	if !ok {
		return nil, "", fmt.Errorf("%w: no scraper for platform %s", shared.ErrUnsupportedURL, m.Platform)
	}

	var name string

	for _, pageURL := range r.urls(m) {
		body, err := f.fetch(ctx, pageURL)
		if err != nil {
			f.logger.Debug("playlist fetch failed", "url", pageURL, "err", err)
			continue
		}

		if name == "" {
			name = pageTitle(body)
		}

		for _, pattern := range r.patterns {
			refs := pattern.Extract(body)
			if len(refs) == 0 {
				continue
			}
			f.logger.Debug("extraction pattern matched", "platform", m.Platform, "pattern", pattern.Name, "tracks", len(refs))
			return f.dedupe(refs), name, nil
		}
	}

	return nil, name, nil
}

// Page fetches an arbitrary page and returns its title tag content.
// Used by the single-item import path for platforms without a metadata API.
func (f *Fetcher) Page(ctx context.Context, pageURL string) (string, error) {
	body, err := f.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return pageTitle(body), nil
}

func (f *Fetcher) fetch(ctx context.Context, pageURL string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d from %s", shared.ErrAPIRequest, resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return string(body), nil
}

// dedupe drops duplicate titles case-insensitively, preserving order, and
// applies the track cap.
func (f *Fetcher) dedupe(refs []models.TrackRef) []models.TrackRef {
	seen := make(map[string]bool, len(refs))
	out := make([]models.TrackRef, 0, len(refs))

	for _, ref := range refs {
		ref.Title = strings.TrimSpace(ref.Title)
		if ref.Title == "" {
			continue
		}
		key := strings.ToLower(ref.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ref)
		if len(out) == f.maxTracks {
			break
		}
	}

	return out
}

var titleTag = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

func pageTitle(body string) string {
	m := titleTag.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(htmlUnescape(m[1]))
}
