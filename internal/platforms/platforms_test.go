package platforms

import (
	"net/url"
	"testing"
)

func TestTrackRegistry(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		platform string
		id       string
	}{
		{"YouTube Watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", YouTube, "dQw4w9WgXcQ"},
		{"YouTube Short Link", "https://youtu.be/dQw4w9WgXcQ", YouTube, "dQw4w9WgXcQ"},
		{"YouTube Music Watch URL", "https://music.youtube.com/watch?v=dQw4w9WgXcQ", YouTube, "dQw4w9WgXcQ"},
		{"YouTube Shorts URL", "https://www.youtube.com/shorts/dQw4w9WgXcQ", YouTube, "dQw4w9WgXcQ"},
		{"Spotify Track URL", "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", Spotify, "4uLU6hMCjMI75M1A2tKUQC"},
		{"Spotify Track URL With Query", "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc", Spotify, "4uLU6hMCjMI75M1A2tKUQC"},
		{"SoundCloud Track URL", "https://soundcloud.com/forss/flickermood", SoundCloud, "forss/flickermood"},
		{"Bandcamp Track URL", "https://artist.bandcamp.com/track/some-song", Bandcamp, "some-song"},
		{"Mixcloud Show URL", "https://www.mixcloud.com/someuser/some-show/", Mixcloud, "someuser/some-show"},
		{"Apple Music Song URL", "https://music.apple.com/us/song/1440857781", AppleMusic, "1440857781"},
		{"Apple Music Album Track URL", "https://music.apple.com/us/album/abbey-road/1441164426?i=1441164589", AppleMusic, "1441164589"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match := Tracks().Classify(tc.input)
			if match == nil {
				t.Fatalf("expected match for %s", tc.input)
			}
			if match.Platform != tc.platform {
				t.Errorf("expected platform %s, got %s", tc.platform, match.Platform)
			}
			if match.ID != tc.id {
				t.Errorf("expected id %s, got %s", tc.id, match.ID)
			}
			if match.RawURL != tc.input {
				t.Errorf("expected raw URL to be preserved, got %s", match.RawURL)
			}
		})
	}

	t.Run("No Match", func(t *testing.T) {
		inputs := []string{
			"https://example.com/",
			"not a url at all",
			"Artist - Title",
			"",
			"ftp://youtube.com/watch?v=dQw4w9WgXcQ",
		}
		for _, input := range inputs {
			if match := Tracks().Classify(input); match != nil {
				t.Errorf("expected no match for %q, got %+v", input, match)
			}
		}
	})

	t.Run("Recognized Platform Without Item", func(t *testing.T) {
		// Channel and profile pages match the host but carry no item id;
		// classification fails the same way an unknown host does.
		inputs := []string{
			"https://www.youtube.com/channel/UC5XPnUk8Vvv_pWslhwom6Og",
			"https://www.youtube.com/user/fxigr1",
			"https://soundcloud.com/forss",
			"https://open.spotify.com/artist/0OdUWJ0sBjDrqHygGUXeCF",
		}
		for _, input := range inputs {
			if match := Tracks().Classify(input); match != nil {
				t.Errorf("expected no match for %q, got %+v", input, match)
			}
		}
	})
}

func TestPlaylistRegistry(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		platform string
		id       string
	}{
		{"YouTube Playlist URL", "https://www.youtube.com/playlist?list=PL123", YouTube, "PL123"},
		{"YouTube Watch URL With List", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123", YouTube, "PL123"},
		{"YouTube Music Mix", "https://music.youtube.com/playlist?list=RDAMVM456", YouTube, "RDAMVM456"},
		{"Spotify Playlist URL", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M", Spotify, "37i9dQZF1DXcBWIGoYBM5M"},
		{"SoundCloud Set URL", "https://soundcloud.com/forss/sets/soulhack", SoundCloud, "forss/sets/soulhack"},
		{"Bandcamp Album URL", "https://artist.bandcamp.com/album/some-record", Bandcamp, "some-record"},
		{"Mixcloud Playlist URL", "https://www.mixcloud.com/someuser/playlists/late-night/", Mixcloud, "someuser/playlists/late-night"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match := Playlists().Classify(tc.input)
			if match == nil {
				t.Fatalf("expected match for %s", tc.input)
			}
			if match.Platform != tc.platform {
				t.Errorf("expected platform %s, got %s", tc.platform, match.Platform)
			}
			if match.ID != tc.id {
				t.Errorf("expected id %s, got %s", tc.id, match.ID)
			}
		})
	}

	t.Run("Item URL Is Not A Playlist", func(t *testing.T) {
		inputs := []string{
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			"https://soundcloud.com/forss/flickermood",
		}
		for _, input := range inputs {
			if match := Playlists().Classify(input); match != nil {
				t.Errorf("expected no playlist match for %q, got %+v", input, match)
			}
		}
	})
}

func TestRegistryExtension(t *testing.T) {
	t.Run("Register Adds Platform Without Editing Dispatch", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(Matcher{
			ID: "tapecity",
			Match: func(u *url.URL) bool {
				return u.Hostname() == "tape.city"
			},
			Parse: func(u *url.URL) string {
				segments := pathSegments(u)
				if len(segments) == 1 {
					return segments[0]
				}
				return ""
			},
		})

		match := registry.Classify("https://tape.city/xyz123")
		if match == nil || match.Platform != "tapecity" || match.ID != "xyz123" {
			t.Fatalf("expected custom platform match, got %+v", match)
		}
	})

	t.Run("First Match Wins", func(t *testing.T) {
		always := func(u *url.URL) bool { return true }
		registry := NewRegistry(
			Matcher{ID: "first", Match: always, Parse: func(u *url.URL) string { return "a" }},
			Matcher{ID: "second", Match: always, Parse: func(u *url.URL) string { return "b" }},
		)

		match := registry.Classify("https://anything.example/x")
		if match == nil || match.Platform != "first" {
			t.Fatalf("expected first registered matcher to win, got %+v", match)
		}
	})

	t.Run("Empty Parse Does Not Fall Through", func(t *testing.T) {
		always := func(u *url.URL) bool { return true }
		registry := NewRegistry(
			Matcher{ID: "first", Match: always, Parse: func(u *url.URL) string { return "" }},
			Matcher{ID: "second", Match: always, Parse: func(u *url.URL) string { return "b" }},
		)

		if match := registry.Classify("https://anything.example/x"); match != nil {
			t.Fatalf("expected nil when the winning matcher yields no id, got %+v", match)
		}
	})
}
