package scrape

import (
	"fmt"
	"regexp"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/normalize"
	"github.com/mdeloughry/portify/internal/platforms"
)

var (
	// playlistVideoRenderer blocks in ytInitialData carry both the video
	// title and the channel byline.
	// Go's regexp caps repeat counts at 1000, so the 2000-char window is
	// written as two chained 1000-char lazy repeats (matches identically).
	ytRendererPattern = regexp.MustCompile(`(?s)"playlistVideoRenderer":\{.{0,1000}?.{0,1000}?"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)".{0,1000}?.{0,1000}?"shortBylineText":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)

	// Narrower fallback over raw HTML when the hydration payload shape
	// shifts: any title runs entry.
	ytTitleRunsPattern = regexp.MustCompile(`"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"\}\]`)
)

// youtubeRules tries the catalog host first and the music flavor second;
// auto-generated mix playlist ids frequently exist under only one of the two.
func youtubeRules() rules {
	return rules{
		urls: func(m *platforms.Match) []string {
			return []string{
				fmt.Sprintf("https://www.youtube.com/playlist?list=%s", m.ID),
				fmt.Sprintf("https://music.youtube.com/playlist?list=%s", m.ID),
			}
		},
		patterns: []Pattern{
			{Name: "initial-data-renderers", Extract: extractYouTubeRenderers},
			{Name: "title-runs", Extract: extractYouTubeTitleRuns},
		},
	}
}

func extractYouTubeRenderers(body string) []models.TrackRef {
	var refs []models.TrackRef

	for _, m := range ytRendererPattern.FindAllStringSubmatch(body, -1) {
		rawTitle := decodeJSONString(m[1])
		uploader := decodeJSONString(m[2])

		artist, title := normalize.SplitArtistTitle(rawTitle, uploader)
		refs = append(refs, models.TrackRef{Title: title, Artist: artist})
	}

	return refs
}

func extractYouTubeTitleRuns(body string) []models.TrackRef {
	var refs []models.TrackRef

	for _, m := range ytTitleRunsPattern.FindAllStringSubmatch(body, -1) {
		raw := decodeJSONString(m[1])
		artist, title := normalize.SplitArtistTitle(raw, "")
		refs = append(refs, models.TrackRef{Title: title, Artist: artist})
	}

	return refs
}
