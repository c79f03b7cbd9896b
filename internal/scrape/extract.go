package scrape

import (
	"html"
	"strconv"
	"strings"
)

// decodeJSONString resolves escape sequences in a string captured out of an
// embedded JSON blob. Captures that fail to decode are used as-is.
func decodeJSONString(s string) string {
	decoded, err := strconv.Unquote(`"` + s + `"`)
	if err != nil {
		return s
	}
	return decoded
}

func htmlUnescape(s string) string {
	return html.UnescapeString(s)
}

// stripSuffixNoise removes a trailing " | SiteName" or " - SiteName" style
// marker from a page title.
func stripSuffixNoise(title string, markers ...string) string {
	for _, marker := range markers {
		if idx := strings.LastIndex(title, marker); idx > 0 {
			title = title[:idx]
		}
	}
	return strings.TrimSpace(title)
}
