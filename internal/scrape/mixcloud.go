package scrape

import (
	"regexp"
	"strings"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/platforms"
)

var (
	mcAudioPagePattern = regexp.MustCompile(`"__typename"\s*:\s*"Cloudcast"[^{}]{0,400}?"name"\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]{0,400}?"username"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	mcCardPattern      = regexp.MustCompile(`<h\d[^>]*class="[^"]*card-title[^"]*"[^>]*>\s*(?:<a[^>]*>)?([^<]+)<`)
)

func mixcloudRules() rules {
	return rules{
		urls: func(m *platforms.Match) []string {
			return []string{m.RawURL}
		},
		patterns: []Pattern{
			{Name: "relay-cloudcasts", Extract: extractMixcloudRelay},
			{Name: "card-titles", Extract: extractMixcloudCards},
		},
	}
}

// extractMixcloudRelay pulls cloudcast names and uploaders out of the
// relay store JSON embedded in the page.
func extractMixcloudRelay(body string) []models.TrackRef {
	var refs []models.TrackRef

	for _, m := range mcAudioPagePattern.FindAllStringSubmatch(body, -1) {
		title := decodeJSONString(m[1])
		if strings.TrimSpace(title) == "" {
			continue
		}
		refs = append(refs, models.TrackRef{Title: title, Artist: decodeJSONString(m[2])})
	}

	return refs
}

func extractMixcloudCards(body string) []models.TrackRef {
	var refs []models.TrackRef

	for _, m := range mcCardPattern.FindAllStringSubmatch(body, -1) {
		refs = append(refs, models.TrackRef{Title: htmlUnescape(strings.TrimSpace(m[1]))})
	}

	return refs
}
