package platforms

import "net/url"

func mixcloudHost(u *url.URL) bool {
	return hostIs(u, "mixcloud.com")
}

// mixcloudTrackMatcher recognizes single show/cloudcast URLs:
//
//	https://www.mixcloud.com/someuser/some-show/
func mixcloudTrackMatcher() Matcher {
	return Matcher{
		ID:    Mixcloud,
		Match: mixcloudHost,
		Parse: func(u *url.URL) string {
			segments := pathSegments(u)
			if len(segments) == 2 && segments[1] != "playlists" {
				return segments[0] + "/" + segments[1]
			}
			return ""
		},
	}
}

// mixcloudPlaylistMatcher recognizes playlist URLs:
//
//	https://www.mixcloud.com/someuser/playlists/late-night/
func mixcloudPlaylistMatcher() Matcher {
	return Matcher{
		ID:    Mixcloud,
		Match: mixcloudHost,
		Parse: func(u *url.URL) string {
			segments := pathSegments(u)
			if len(segments) == 3 && segments[1] == "playlists" {
				return segments[0] + "/playlists/" + segments[2]
			}
			return ""
		},
	}
}
