package platforms

import "net/url"

func bandcampHost(u *url.URL) bool {
	return hostIs(u, "bandcamp.com")
}

// bandcampTrackMatcher recognizes track pages on artist subdomains:
//
//	https://artist.bandcamp.com/track/some-song
func bandcampTrackMatcher() Matcher {
	return Matcher{
		ID:    Bandcamp,
		Match: bandcampHost,
		Parse: func(u *url.URL) string {
			if segments := pathSegments(u); len(segments) == 2 && segments[0] == "track" {
				return segments[1]
			}
			return ""
		},
	}
}

// bandcampPlaylistMatcher recognizes album pages, the closest thing Bandcamp
// has to a playlist:
//
//	https://artist.bandcamp.com/album/some-record
func bandcampPlaylistMatcher() Matcher {
	return Matcher{
		ID:    Bandcamp,
		Match: bandcampHost,
		Parse: func(u *url.URL) string {
			if segments := pathSegments(u); len(segments) == 2 && segments[0] == "album" {
				return segments[1]
			}
			return ""
		},
	}
}
