package platforms

import "net/url"

// appleMusicTrackMatcher recognizes song URLs, either the dedicated /song
// path or an album page with a track selected via the i query parameter:
//
//	https://music.apple.com/us/song/1440857781
//	https://music.apple.com/us/album/abbey-road/1441164426?i=1441164589
//
// There is no playlist matcher: editorial playlist pages render client-side
// and have no scrapeable track list.
func appleMusicTrackMatcher() Matcher {
	return Matcher{
		ID: AppleMusic,
		Match: func(u *url.URL) bool {
			return hostIs(u, "music.apple.com")
		},
		Parse: func(u *url.URL) string {
			if id := u.Query().Get("i"); id != "" {
				return id
			}

			segments := pathSegments(u)
			for i, segment := range segments {
				if segment == "song" && i+1 < len(segments) {
					return segments[len(segments)-1]
				}
			}
			return ""
		},
	}
}
