package platforms

import (
	"net/url"
	"regexp"
)

var youtubeVideoID = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

func youtubeHost(u *url.URL) bool {
	return hostIs(u, "youtube.com") || hostIs(u, "youtu.be")
}

// youtubeTrackMatcher recognizes single video URLs:
//
//	https://www.youtube.com/watch?v=dQw4w9WgXcQ
//	https://youtu.be/dQw4w9WgXcQ
//	https://music.youtube.com/watch?v=dQw4w9WgXcQ
//	https://www.youtube.com/shorts/dQw4w9WgXcQ
//
// Channel, user, and bare playlist pages match the host but yield no id.
func youtubeTrackMatcher() Matcher {
	return Matcher{
		ID:    YouTube,
		Match: youtubeHost,
		Parse: func(u *url.URL) string {
			if hostIs(u, "youtu.be") {
				if segments := pathSegments(u); len(segments) == 1 && youtubeVideoID.MatchString(segments[0]) {
					return segments[0]
				}
				return ""
			}

			segments := pathSegments(u)
			if len(segments) == 2 && segments[0] == "shorts" && youtubeVideoID.MatchString(segments[1]) {
				return segments[1]
			}

			if id := u.Query().Get("v"); youtubeVideoID.MatchString(id) {
				return id
			}

			return ""
		},
	}
}

// youtubePlaylistMatcher recognizes playlist URLs via the list query
// parameter, present on both /playlist and /watch pages:
//
//	https://www.youtube.com/playlist?list=PL123
//	https://music.youtube.com/playlist?list=RDAMVM456
//	https://www.youtube.com/watch?v=abc&list=PL123
func youtubePlaylistMatcher() Matcher {
	return Matcher{
		ID:    YouTube,
		Match: youtubeHost,
		Parse: func(u *url.URL) string {
			return u.Query().Get("list")
		},
	}
}
