package platforms

import "net/url"

// spotifyTrackMatcher recognizes catalog track URLs:
//
//	https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC
//
// Album and artist pages match the host but are not single items.
func spotifyTrackMatcher() Matcher {
	return Matcher{
		ID: Spotify,
		Match: func(u *url.URL) bool {
			return hostIs(u, "spotify.com")
		},
		Parse: func(u *url.URL) string {
			if segments := pathSegments(u); len(segments) == 2 && segments[0] == "track" {
				return segments[1]
			}
			return ""
		},
	}
}

// spotifyPlaylistMatcher recognizes native playlist URLs:
//
//	https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M
//
// These bypass scraping entirely downstream; the playlist is fetched through
// the catalog's own playlist-tracks endpoint.
func spotifyPlaylistMatcher() Matcher {
	return Matcher{
		ID: Spotify,
		Match: func(u *url.URL) bool {
			return hostIs(u, "spotify.com")
		},
		Parse: func(u *url.URL) string {
			if segments := pathSegments(u); len(segments) == 2 && segments[0] == "playlist" {
				return segments[1]
			}
			return ""
		},
	}
}
