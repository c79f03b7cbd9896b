package normalize

import (
	"regexp"
	"strings"
)

var (
	titleSeparator = regexp.MustCompile(`\s+[-–—|:]\s+`)
	uploaderTopic  = regexp.MustCompile(`(?i)\s+-\s+topic\s*$`)
)

// SplitArtistTitle splits a raw video-style title into (artist, title).
//
// Titles commonly read "Artist - Title"; when a separator is present the
// side that looks like an artist name (commas, featuring markers, or the
// shorter side) is taken as the artist. Without a separator the uploader
// name, when given, stands in as the artist and the whole string is the
// title.
func SplitArtistTitle(raw, uploader string) (artist, title string) {
	t := strings.TrimSpace(raw)

	if parts := titleSeparator.Split(t, 2); len(parts) == 2 {
		left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if looksLikeArtist(left, right) {
			return left, right
		}
		return right, left
	}

	artist = uploaderTopic.ReplaceAllString(strings.TrimSpace(uploader), "")
	return artist, t
}

// looksLikeArtist reports whether the left side of a split reads as an
// artist name: it lists multiple names, carries a featuring marker, or is
// short while the right side is longer.
func looksLikeArtist(left, right string) bool {
	l := strings.ToLower(left)
	if strings.Contains(left, ",") || strings.Contains(l, "ft.") || strings.Contains(l, "feat") {
		return true
	}

	return len(strings.Fields(left)) <= 4
}
