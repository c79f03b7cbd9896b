// package normalize turns noisy track titles into cleaner catalog search queries.
//
// Titles copied from video platforms carry presentation markers ("official
// video", "remastered", year suffixes, featuring clauses) that hurt search
// relevance. [Clean] strips them; [SuggestAlternatives] proposes a short
// ranked list of fallback queries for when the primary query is expected to
// return weak results.
package normalize

import (
	"regexp"
	"strings"
)

// noiseWords denote presentation format rather than song identity, ordered
// roughly by how often they appear in video titles. [NeedsCleaning] checks
// the first twenty.
var noiseWords = []string{
	"official", "video", "audio", "lyric", "lyrics", "hd", "hq", "4k",
	"remix", "remaster", "remastered", "live", "visualizer", "visualiser",
	"mv", "clip", "full", "extended", "version", "1080p",
	"720p", "8k",
}

var (
	noisePattern    *regexp.Regexp
	bracketGroups   = regexp.MustCompile(`[(\[][^)\]]*[)\]]`)
	featClause      = regexp.MustCompile(`(?i)[(\[]?\s*\b(?:feat\.?|ft\.?|featuring)\b.*$`)
	trailingYears   = regexp.MustCompile(`(?:\s+\(?(?:19|20)\d{2}\)?)+$`)
	topicSuffix     = regexp.MustCompile(`\s+-\s+topic\s*$`)
	yearAnnotation  = regexp.MustCompile(`^\s*(?:19|20)\d{2}\s*$`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	splitSeparators = regexp.MustCompile(`\s+[-–—|]\s+|\s*:\s+`)
)

func init() {
	noisePattern = regexp.MustCompile(`\b(?:` + strings.Join(noiseWords, "|") + `)\b`)
}

// Clean lower-cases the query and strips noise: bracketed spans containing a
// noise marker or bare year, featuring clauses and everything after them,
// whole-word noise tokens, trailing year annotations, and the
// auto-generated " - Topic" channel suffix. Cleaning is idempotent.
func Clean(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))

	// Stripping a bracket group can expose a trailing year or " - Topic"
	// suffix, so run passes until the query stops changing. Each pass only
	// removes text, so the loop terminates.
	for {
		next := cleanPass(q)
		if next == q {
			return q
		}
		q = next
	}
}

func cleanPass(q string) string {
	q = topicSuffix.ReplaceAllString(q, "")

	q = bracketGroups.ReplaceAllStringFunc(q, func(group string) string {
		inner := strings.Trim(group, "()[]")
		if noisePattern.MatchString(inner) || yearAnnotation.MatchString(inner) {
			return " "
		}
		return group
	})

	q = featClause.ReplaceAllString(q, "")
	q = noisePattern.ReplaceAllString(q, " ")
	q = trailingYears.ReplaceAllString(q, "")

	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(q, " "))
}

// NeedsCleaning reports whether a query likely benefits from [Clean]:
// it contains one of the most common noise words or any bracket character.
func NeedsCleaning(query string) bool {
	if strings.ContainsAny(query, "()[]") {
		return true
	}

	q := strings.ToLower(query)
	for _, word := range noiseWords[:20] {
		if containsWord(q, word) {
			return true
		}
	}
	return false
}

// MaxAlternatives caps the suggestion list; more would overwhelm the UI.
const MaxAlternatives = 4

// SuggestAlternatives builds a deduplicated, order-preserving list of
// fallback queries for a weak original, most specific first:
// the cleaned query, an artist/title split recombined without its separator
// plus each half alone, the prefix before the first bracket, pipe, or dash,
// and shortening word prefixes of the cleaned query. A suggestion equal to
// the original (case-insensitively) is never included.
func SuggestAlternatives(original string) []string {
	var out []string
	seen := map[string]bool{
		strings.ToLower(strings.TrimSpace(original)): true,
	}

	add := func(candidate string) {
		candidate = strings.TrimSpace(whitespaceRuns.ReplaceAllString(candidate, " "))
		key := strings.ToLower(candidate)
		if candidate == "" || seen[key] || len(out) >= MaxAlternatives {
			return
		}
		seen[key] = true
		out = append(out, candidate)
	}

	cleaned := Clean(original)
	add(cleaned)

	if parts := splitSeparators.Split(original, 2); len(parts) == 2 {
		left, right := Clean(parts[0]), Clean(parts[1])
		add(left + " " + right)
		if len(left) >= 3 {
			add(left)
		}
		if len(right) >= 3 {
			add(right)
		}
	}

	if idx := strings.IndexAny(original, "([|-"); idx >= 3 {
		add(Clean(original[:idx]))
	}

	if words := strings.Fields(cleaned); len(words) > 3 {
		add(strings.Join(words[:3], " "))
		add(strings.Join(words[:2], " "))
	}

	return out
}

func containsWord(s, word string) bool {
	idx := strings.Index(s, word)
	for idx >= 0 {
		before := idx == 0 || !isWordChar(s[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx == len(s) || !isWordChar(s[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(s[idx+1:], word)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
