// package textlist detects and parses pasted plain-text track lists.
//
// A text list is free-form multi-line input where each line names one track,
// either as delimiter-separated columns under a header row, or as a
// patterned line ("Artist - Title", "Title by Artist", "Artist: Title"), or
// as a bare title. Detection deliberately favors false positives on
// ambiguous single-line input over false negatives on genuine pastes.
package textlist

import (
	"regexp"
	"strings"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/platforms"
)

// MaxLines caps how many parseable lines a single paste may contribute,
// bounding downstream search fan-out.
const MaxLines = 50

// canonical header cell names, mapped from common spellings
var headerAliases = map[string]string{
	"title":       "title",
	"track":       "title",
	"track_title": "title",
	"track title": "title",
	"song":        "title",
	"name":        "title",

	"artist":      "artist",
	"artists":     "artist",
	"artist_name": "artist",
	"artist name": "artist",
	"performer":   "artist",
	"by":          "artist",
}

var (
	ordinalPrefix = regexp.MustCompile(`^(?:\d+[.)]\s+|[-*•]\s+)`)
	dashSplit     = regexp.MustCompile(`\s+[-–—]\s+`)
	bySplit       = regexp.MustCompile(`(?i)^(.+?)\s+by\s+(.+)$`)
	trailingGroup = regexp.MustCompile(`\s*[(\[]([^)\]]*)[)\]]\s*$`)

	// annotations that denote presentation format, safe to strip
	noiseAnnotation = regexp.MustCompile(`(?i)\b(official|video|audio|lyric|lyrics|visuali[sz]er|hd|hq|4k|1080p|720p|remaster|remastered|explicit|mv|m/v|full)\b|^\d{4}$`)

	// annotations that disambiguate the recording itself, always preserved
	keepAnnotation = regexp.MustCompile(`(?i)\b(remix|edit|mix|version|bootleg|rework|flip|vip|dub|cover|acoustic|instrumental|demo)\b`)
)

// Looks reports whether the input reads as a track list rather than a URL or
// a single query: two or more non-empty lines, or one line with a dash
// separator. A syntactically valid absolute URL is never a track list.
func Looks(input string) bool {
	if _, ok := platforms.ParseURL(input); ok {
		return false
	}

	lines := nonEmptyLines(input)
	if len(lines) >= 2 {
		return true
	}
	return len(lines) == 1 && dashSplit.MatchString(lines[0])
}

// Parse extracts track references from pasted text, one per line, capped at
// [MaxLines]. Lines starting with # are skipped. Returns nil (not an empty
// slice) when no line yields a usable title, so callers can distinguish
// "not a track list" from "track list with tracks".
func Parse(input string) []models.TrackRef {
	lines := nonEmptyLines(input)
	if len(lines) == 0 {
		return nil
	}

	var refs []models.TrackRef

	if columns, delim, ok := detectHeader(lines[0]); ok {
		refs = parseDelimited(lines[1:], columns, delim)
	} else {
		for _, line := range lines {
			if ref, ok := parseLine(line); ok {
				refs = append(refs, ref)
			}
			if len(refs) == MaxLines {
				break
			}
		}
	}

	if len(refs) == 0 {
		return nil
	}
	return refs
}

func nonEmptyLines(input string) []string {
	var lines []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// detectHeader reports whether the first line is a delimiter-separated
// header row naming both an artist and a title column. Both the delimiter
// and the column order are inferred from the header itself.
func detectHeader(line string) (map[int]string, string, bool) {
	for _, delim := range []string{",", "\t", ";", "|"} {
		if !strings.Contains(line, delim) {
			continue
		}

		columns := make(map[int]string)
		for i, cell := range strings.Split(line, delim) {
			if canonical, ok := headerAliases[strings.ToLower(strings.TrimSpace(cell))]; ok {
				columns[i] = canonical
			}
		}

		seen := make(map[string]bool)
		for _, name := range columns {
			seen[name] = true
		}
		if seen["title"] && seen["artist"] {
			return columns, delim, true
		}
	}

	return nil, "", false
}

func parseDelimited(lines []string, columns map[int]string, delim string) []models.TrackRef {
	var refs []models.TrackRef

	for _, line := range lines {
		var ref models.TrackRef
		for i, cell := range strings.Split(line, delim) {
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			switch columns[i] {
			case "title":
				ref.Title = cleanTitle(value)
			case "artist":
				ref.Artist = value
			}
		}

		if ref.Title == "" {
			continue
		}
		refs = append(refs, ref)
		if len(refs) == MaxLines {
			break
		}
	}

	return refs
}

// parseLine tries each line pattern in order: "Artist - Title",
// "Title by Artist", "Artist: Title", then the whole line as a title with
// any ordinal/bullet prefix removed.
func parseLine(line string) (models.TrackRef, bool) {
	line = ordinalPrefix.ReplaceAllString(line, "")

	if parts := dashSplit.Split(line, 2); len(parts) == 2 {
		return finishRef(parts[1], parts[0])
	}

	if m := bySplit.FindStringSubmatch(line); m != nil {
		return finishRef(m[1], m[2])
	}

	if before, after, ok := strings.Cut(line, ": "); ok && before != "" {
		return finishRef(after, before)
	}

	return finishRef(line, "")
}

func finishRef(title, artist string) (models.TrackRef, bool) {
	ref := models.TrackRef{
		Title:  cleanTitle(title),
		Artist: strings.TrimSpace(artist),
	}
	if ref.Title == "" {
		return models.TrackRef{}, false
	}
	return ref, true
}

// cleanTitle strips trailing bracketed quality/format annotations while
// preserving remix/edit/version annotations. Stripping never reduces a
// title to empty; if it would, the original is kept.
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	cleaned := title

	for {
		m := trailingGroup.FindStringSubmatch(cleaned)
		if m == nil {
			break
		}
		if keepAnnotation.MatchString(m[1]) || !noiseAnnotation.MatchString(m[1]) {
			break
		}
		cleaned = strings.TrimSpace(cleaned[:len(cleaned)-len(m[0])])
	}

	if cleaned == "" {
		return title
	}
	return cleaned
}
