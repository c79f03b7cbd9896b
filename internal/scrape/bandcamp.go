package scrape

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/platforms"
)

var (
	bcTralbumPattern    = regexp.MustCompile(`data-tralbum="([^"]*)"`)
	bcTrackTitlePattern = regexp.MustCompile(`class="track-title"[^>]*>([^<]+)<`)
)

func bandcampRules() rules {
	return rules{
		urls: func(m *platforms.Match) []string {
			return []string{m.RawURL}
		},
		patterns: []Pattern{
			{Name: "tralbum-data", Extract: extractBandcampTralbum},
			{Name: "track-title-spans", Extract: extractBandcampSpans},
		},
	}
}

// extractBandcampTralbum reads the HTML-escaped data-tralbum attribute,
// which carries the album's full track info as JSON.
func extractBandcampTralbum(body string) []models.TrackRef {
	m := bcTralbumPattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}

	var payload struct {
		Artist    string `json:"artist"`
		TrackInfo []struct {
			Title string `json:"title"`
		} `json:"trackinfo"`
	}
	if err := json.Unmarshal([]byte(htmlUnescape(m[1])), &payload); err != nil {
		return nil
	}

	var refs []models.TrackRef
	for _, track := range payload.TrackInfo {
		if strings.TrimSpace(track.Title) == "" {
			continue
		}
		refs = append(refs, models.TrackRef{Title: track.Title, Artist: payload.Artist})
	}

	return refs
}

func extractBandcampSpans(body string) []models.TrackRef {
	var refs []models.TrackRef

	for _, m := range bcTrackTitlePattern.FindAllStringSubmatch(body, -1) {
		refs = append(refs, models.TrackRef{Title: htmlUnescape(strings.TrimSpace(m[1]))})
	}

	return refs
}
