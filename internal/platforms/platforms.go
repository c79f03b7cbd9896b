// package platforms classifies raw user input as external music platform URLs.
//
// Two independent registries are exposed: [Tracks] recognizes single-item
// URLs and [Playlists] recognizes playlist/collection URLs over the same
// hostnames. Both are ordered lists of [Matcher] records tried in
// registration order; the first matcher whose predicate accepts the URL
// wins. A winning matcher whose extractor yields no identifier means
// "recognized platform, unusable item" and classification fails the same
// way an unknown host does.
package platforms

import (
	"net/url"
	"strings"
)

// Platform identifiers. "text" tags pasted track lists, which never pass
// through the URL registries.
const (
	Spotify    = "spotify"
	YouTube    = "youtube"
	SoundCloud = "soundcloud"
	Bandcamp   = "bandcamp"
	Mixcloud   = "mixcloud"
	AppleMusic = "apple_music"
	Text       = "text"
)

// Matcher is one registered platform recognizer.
//
// Match reports whether the URL belongs to the platform. Parse extracts a
// platform-specific identifier or search seed, returning "" when the URL
// matched the platform's domain but not a recognizable item pattern
// (e.g. a channel page).
type Matcher struct {
	ID    string
	Match func(u *url.URL) bool
	Parse func(u *url.URL) string
}

// Match is the outcome of classifying one input string.
type Match struct {
	Platform string
	ID       string
	RawURL   string
}

// Registry is an ordered, mutable collection of matchers.
//
// Registries are populated once at startup and read-only during request
// handling; adding a platform is a registration, not an edit to dispatch.
type Registry struct {
	matchers []Matcher
}

// NewRegistry creates a registry with the given matchers in order.
func NewRegistry(matchers ...Matcher) *Registry {
	return &Registry{matchers: matchers}
}

// Register appends a matcher to the registry.
func (r *Registry) Register(m Matcher) {
	r.matchers = append(r.matchers, m)
}

// Classify runs the input through the registry and returns the first
// matching platform, or nil when the input is not an absolute http(s) URL,
// matches no registered platform, or matches a platform without yielding a
// usable identifier.
func (r *Registry) Classify(input string) *Match {
	u, ok := ParseURL(input)
	if !ok {
		return nil
	}

	for _, m := range r.matchers {
		if !m.Match(u) {
			continue
		}
		id := m.Parse(u)
		if id == "" {
			return nil
		}
		return &Match{Platform: m.ID, ID: id, RawURL: input}
	}

	return nil
}

// ParseURL parses input as an absolute http(s) URL.
func ParseURL(input string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return nil, false
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, false
	}
	return u, true
}

// hostIs reports whether the URL host is the given domain or a subdomain of it.
func hostIs(u *url.URL, domain string) bool {
	host := strings.ToLower(u.Hostname())
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// pathSegments splits the escaped path into non-empty segments.
func pathSegments(u *url.URL) []string {
	var segments []string
	for _, part := range strings.Split(u.EscapedPath(), "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// Tracks returns the default single-item recognizer registry.
func Tracks() *Registry {
	return defaultTracks
}

// Playlists returns the default playlist recognizer registry.
func Playlists() *Registry {
	return defaultPlaylists
}

var (
	defaultTracks = NewRegistry(
		spotifyTrackMatcher(),
		youtubeTrackMatcher(),
		soundcloudTrackMatcher(),
		bandcampTrackMatcher(),
		mixcloudTrackMatcher(),
		appleMusicTrackMatcher(),
	)

	defaultPlaylists = NewRegistry(
		spotifyPlaylistMatcher(),
		youtubePlaylistMatcher(),
		soundcloudPlaylistMatcher(),
		bandcampPlaylistMatcher(),
		mixcloudPlaylistMatcher(),
	)
)
