// YouTube oEmbed client
//
// The oEmbed endpoint returns a video's title and channel name without an
// API key, which is all the single-item import path needs.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mdeloughry/portify/internal/shared"
)

const defaultOEmbedBaseURL = "https://www.youtube.com/oembed"

// OEmbedVideo is the subset of the oEmbed response the importer uses.
type OEmbedVideo struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// YouTubeClient looks up video metadata through the public oEmbed endpoint.
type YouTubeClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewYouTubeClient creates a new oEmbed client. An empty baseURL selects the
// public endpoint.
func NewYouTubeClient(baseURL string) *YouTubeClient {
	if baseURL == "" {
		baseURL = defaultOEmbedBaseURL
	}

	return &YouTubeClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		timeout:    5 * time.Second,
	}
}

// Video retrieves the title and channel name for a video ID.
func (y *YouTubeClient) Video(ctx context.Context, videoID string) (*OEmbedVideo, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	watchURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", url.QueryEscape(videoID))
	endpoint := fmt.Sprintf("%s?url=%s&format=json", y.baseURL, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: video %s", shared.ErrTrackNotFound, videoID)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: oembed status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var video OEmbedVideo
	if err := json.NewDecoder(resp.Body).Decode(&video); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &video, nil
}
