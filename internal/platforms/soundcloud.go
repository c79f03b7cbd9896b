package platforms

import "net/url"

func soundcloudHost(u *url.URL) bool {
	return hostIs(u, "soundcloud.com")
}

// soundcloudTrackMatcher recognizes single track URLs, which are
// /{artist}/{track} path pairs:
//
//	https://soundcloud.com/forss/flickermood
//
// Profile pages (one segment) and sets yield no id.
func soundcloudTrackMatcher() Matcher {
	return Matcher{
		ID:    SoundCloud,
		Match: soundcloudHost,
		Parse: func(u *url.URL) string {
			segments := pathSegments(u)
			if len(segments) == 2 && segments[1] != "sets" {
				return segments[0] + "/" + segments[1]
			}
			return ""
		},
	}
}

// soundcloudPlaylistMatcher recognizes set URLs:
//
//	https://soundcloud.com/forss/sets/soulhack
func soundcloudPlaylistMatcher() Matcher {
	return Matcher{
		ID:    SoundCloud,
		Match: soundcloudHost,
		Parse: func(u *url.URL) string {
			segments := pathSegments(u)
			if len(segments) == 3 && segments[1] == "sets" {
				return segments[0] + "/sets/" + segments[2]
			}
			return ""
		},
	}
}
