// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/shared"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// spotifyPageSize is the maximum page size the playlist tracks
	// endpoint accepts.
	spotifyPageSize = 50

	// spotifyCallTimeout bounds each individual API call so one slow
	// search cannot stall a whole import.
	spotifyCallTimeout = 5 * time.Second
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	Explicit     bool            `json:"explicit"`
	Popularity   int             `json:"popularity"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ReleaseDate string         `json:"release_date"`
	Images      []SpotifyImage `json:"images"`
	URI         string         `json:"uri"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
type SpotifyPlaylistTrack struct {
	AddedAt string       `json:"added_at"`
	Track   SpotifyTrack `json:"track"`
}

// SpotifyPlaylistPage is one page of a playlist's tracks.
type SpotifyPlaylistPage struct {
	Items  []SpotifyPlaylistTrack `json:"items"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
	Next   *string                `json:"next"`
}

// SpotifyPlaylist represents a Spotify playlist with its first page of tracks.
type SpotifyPlaylist struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Tracks      SpotifyPlaylistPage `json:"tracks"`
	URI         string              `json:"uri"`
}

// statusError carries a non-2xx API response code. It unwraps to
// [shared.ErrAPIRequest] so callers can match without inspecting codes.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("spotify API error: status %d", e.code)
}

func (e *statusError) Unwrap() error {
	return shared.ErrAPIRequest
}

func isStatus(err error, code int) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == code
}

// SpotifyClient implements [Catalog] against the Spotify Web API using
// app-only client credentials.
type SpotifyClient struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	baseURL     string
	callTimeout time.Duration
}

// SpotifyOption configures a SpotifyClient.
type SpotifyOption func(*SpotifyClient)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) SpotifyOption {
	return func(c *SpotifyClient) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithSpotifyHTTPClient overrides the HTTP client, bypassing the
// credentials flow (used by tests).
func WithSpotifyHTTPClient(hc *http.Client) SpotifyOption {
	return func(c *SpotifyClient) { c.httpClient = hc }
}

// NewSpotifyClient creates a client authenticated via the OAuth2 client
// credentials flow. Token acquisition and refresh happen lazily inside the
// returned HTTP client.
func NewSpotifyClient(ctx context.Context, clientID, clientSecret string, opts ...SpotifyOption) (*SpotifyClient, error) {
	c := &SpotifyClient{
		limiter:     rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		baseURL:     spotifyBaseURL,
		callTimeout: spotifyCallTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		if clientID == "" || clientSecret == "" {
			return nil, fmt.Errorf("%w: spotify client id and secret are required", shared.ErrMissingCredentials)
		}

		conf := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyTokenURL,
		}
		c.httpClient = conf.Client(ctx)
	}

	return c, nil
}

func (c *SpotifyClient) Name() string {
	return "Spotify"
}

// doRequest performs a rate-limited GET against the Spotify API and decodes
// the JSON response into result.
func (c *SpotifyClient) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search runs a track search, returning up to limit results in API order.
func (c *SpotifyClient) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > spotifyPageSize {
		limit = spotifyPageSize
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query), limit)

	var response struct {
		Tracks struct {
			Items []SpotifyTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := c.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks.Items))
	for _, st := range response.Tracks.Items {
		tracks = append(tracks, toModelTrack(st))
	}

	return tracks, nil
}

// PlaylistTracks retrieves a playlist's name and tracks, following
// pagination until max tracks are collected or the pages run out.
func (c *SpotifyClient) PlaylistTracks(ctx context.Context, playlistID string, max int) (string, []models.Track, error) {
	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))
	if err := c.doRequest(ctx, endpoint, &playlist); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return "", nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
		}
		return "", nil, err
	}

	var tracks []models.Track
	page := playlist.Tracks

	for {
		for _, item := range page.Items {
			if item.Track.ID == "" {
				continue
			}
			tracks = append(tracks, toModelTrack(item.Track))
			if max > 0 && len(tracks) >= max {
				return playlist.Name, tracks, nil
			}
		}

		if page.Next == nil {
			break
		}

		next := fmt.Sprintf("/playlists/%s/tracks?limit=%d&offset=%d",
			url.PathEscape(playlistID), spotifyPageSize, page.Offset+len(page.Items))

		page = SpotifyPlaylistPage{}
		if err := c.doRequest(ctx, next, &page); err != nil {
			return playlist.Name, tracks, err
		}
	}

	return playlist.Name, tracks, nil
}

// Track retrieves a single track by ID.
func (c *SpotifyClient) Track(ctx context.Context, trackID string) (*models.Track, error) {
	var st SpotifyTrack
	endpoint := fmt.Sprintf("/tracks/%s", url.PathEscape(trackID))
	if err := c.doRequest(ctx, endpoint, &st); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, trackID)
		}
		return nil, err
	}

	track := toModelTrack(st)
	return &track, nil
}

// CheckSaved reports whether each of the given track IDs is saved in the
// user's library, index-aligned with ids. Batches of up to 50 per call.
func (c *SpotifyClient) CheckSaved(ctx context.Context, ids []string) ([]bool, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	saved := make([]bool, 0, len(ids))

	for start := 0; start < len(ids); start += spotifyPageSize {
		end := start + spotifyPageSize
		if end > len(ids) {
			end = len(ids)
		}

		endpoint := fmt.Sprintf("/me/tracks/contains?ids=%s",
			url.QueryEscape(strings.Join(ids[start:end], ",")))

		var batch []bool
		if err := c.doRequest(ctx, endpoint, &batch); err != nil {
			return nil, err
		}

		if len(batch) != end-start {
			return nil, fmt.Errorf("%w: contains returned %d results for %d ids", shared.ErrAPIRequest, len(batch), end-start)
		}

		saved = append(saved, batch...)
	}

	return saved, nil
}

func toModelTrack(st SpotifyTrack) models.Track {
	track := models.Track{
		ID:       st.ID,
		Title:    st.Name,
		Album:    st.Album.Name,
		Duration: st.DurationMS / 1000,
		URL:      st.ExternalURLs.Spotify,
	}

	names := make([]string, 0, len(st.Artists))
	for _, artist := range st.Artists {
		names = append(names, artist.Name)
	}
	track.Artist = strings.Join(names, ", ")

	if len(st.Album.Images) > 0 {
		track.ImageURL = st.Album.Images[0].URL
	}

	return track
}
