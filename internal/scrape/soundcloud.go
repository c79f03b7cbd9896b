package scrape

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/platforms"
)

var (
	scHydrationPattern = regexp.MustCompile(`(?s)window\.__sc_hydration\s*=\s*(\[.*?\]);\s*</script>`)
	scItempropPattern  = regexp.MustCompile(`(?s)<h2 itemprop="name">\s*<a itemprop="url"[^>]*>([^<]+)</a>(?:\s*by\s*<a[^>]*>([^<]+)</a>)?`)
)

func soundcloudRules() rules {
	return rules{
		urls: func(m *platforms.Match) []string {
			return []string{m.RawURL}
		},
		patterns: []Pattern{
			{Name: "hydration-state", Extract: extractSoundcloudHydration},
			{Name: "noscript-markup", Extract: extractSoundcloudMarkup},
		},
	}
}

// extractSoundcloudHydration walks the window.__sc_hydration payload for a
// playlist entry and its track list.
func extractSoundcloudHydration(body string) []models.TrackRef {
	m := scHydrationPattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}

	var entries []struct {
		Hydratable string          `json:"hydratable"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(m[1]), &entries); err != nil {
		return nil
	}

	for _, entry := range entries {
		if entry.Hydratable != "playlist" && entry.Hydratable != "systemPlaylist" {
			continue
		}

		var playlist struct {
			Title  string `json:"title"`
			Tracks []struct {
				Title string `json:"title"`
				User  struct {
					Username string `json:"username"`
				} `json:"user"`
			} `json:"tracks"`
		}
		if err := json.Unmarshal(entry.Data, &playlist); err != nil {
			continue
		}

		var refs []models.TrackRef
		for _, track := range playlist.Tracks {
			if strings.TrimSpace(track.Title) == "" {
				continue
			}
			refs = append(refs, models.TrackRef{
				Title:  track.Title,
				Artist: track.User.Username,
			})
		}
		if len(refs) > 0 {
			return refs
		}
	}

	return nil
}

func extractSoundcloudMarkup(body string) []models.TrackRef {
	var refs []models.TrackRef

	for _, m := range scItempropPattern.FindAllStringSubmatch(body, -1) {
		refs = append(refs, models.TrackRef{
			Title:  htmlUnescape(strings.TrimSpace(m[1])),
			Artist: htmlUnescape(strings.TrimSpace(m[2])),
		})
	}

	return refs
}
