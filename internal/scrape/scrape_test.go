package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mdeloughry/portify/internal/platforms"
	"github.com/mdeloughry/portify/internal/shared"
)

const soundcloudHydrationPage = `<html><head><title>Summer Selections by somedj | Listen online for free on SoundCloud</title></head>
<body><script>window.__sc_hydration = [{"hydratable":"user","data":{"username":"somedj"}},{"hydratable":"playlist","data":{"title":"Summer Selections","tracks":[{"title":"Coastline","user":{"username":"Tourist"}},{"title":"Innerbloom","user":{"username":"RUFUS DU SOL"}},{"title":"Sunday Song","user":{"username":"Ben Bohmer"}}]}}];</script></body></html>`

const soundcloudMarkupPage = `<html><head><title>Warehouse Mixes</title></head><body><noscript>
<article><h2 itemprop="name"> <a itemprop="url" href="/a/one">Warehouse Anthem</a> by <a href="/a">Overmono</a></h2></article>
<article><h2 itemprop="name"> <a itemprop="url" href="/b/two">Gridlock &amp; Steel</a> by <a href="/b">Bicep</a></h2></article>
</noscript></body></html>`

func TestPlaylistTracks(t *testing.T) {
	t.Run("SoundCloud Hydration", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, soundcloudHydrationPage)
		}))
		defer srv.Close()

		f := NewFetcher(nil)
		m := &platforms.Match{Platform: platforms.SoundCloud, ID: "somedj/sets/summer", RawURL: srv.URL}

		refs, name, err := f.PlaylistTracks(context.Background(), m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(refs) != 3 {
			t.Fatalf("expected 3 tracks, got %d", len(refs))
		}

		if refs[0].Title != "Coastline" || refs[0].Artist != "Tourist" {
			t.Errorf("unexpected first track: %+v", refs[0])
		}

		if !strings.Contains(name, "Summer Selections") {
			t.Errorf("expected page title in playlist name, got %q", name)
		}
	})

	t.Run("Cascade Falls Back To Markup", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, soundcloudMarkupPage)
		}))
		defer srv.Close()

		f := NewFetcher(nil)
		m := &platforms.Match{Platform: platforms.SoundCloud, ID: "a/sets/b", RawURL: srv.URL}

		refs, _, err := f.PlaylistTracks(context.Background(), m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(refs) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(refs))
		}

		if refs[1].Title != "Gridlock & Steel" {
			t.Errorf("expected entities decoded, got %q", refs[1].Title)
		}

		if refs[0].Artist != "Overmono" {
			t.Errorf("unexpected artist: %q", refs[0].Artist)
		}
	})

	t.Run("Bandcamp Tralbum Attribute", func(t *testing.T) {
		page := `<html><head><title>Compro | Skee Mask</title></head><body>
<script data-tralbum="{&quot;artist&quot;:&quot;Skee Mask&quot;,&quot;trackinfo&quot;:[{&quot;title&quot;:&quot;Cerroverb&quot;},{&quot;title&quot;:&quot;Rev8617&quot;},{&quot;title&quot;:&quot;&quot;},{&quot;title&quot;:&quot;Soundboy Ext.&quot;}]}"></script>
</body></html>`

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, page)
		}))
		defer srv.Close()

		f := NewFetcher(nil)
		m := &platforms.Match{Platform: platforms.Bandcamp, ID: "compro", RawURL: srv.URL}

		refs, _, err := f.PlaylistTracks(context.Background(), m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(refs) != 3 {
			t.Fatalf("expected 3 tracks (blank title skipped), got %d", len(refs))
		}

		for _, ref := range refs {
			if ref.Artist != "Skee Mask" {
				t.Errorf("expected album artist on every track, got %q", ref.Artist)
			}
		}
	})

	t.Run("Mixcloud Relay Store", func(t *testing.T) {
		page := `<html><head><title>Selector Series</title></head><body><script>window.__RELAY_STORE__ = {"c1":{"__typename":"Cloudcast","name":"Selector Series 12","slug":"selector-12","username":"ninja-tune"},"c2":{"__typename":"Cloudcast","name":"Late Night Tales & More","slug":"lnt-more","username":"ninja-tune"}};</script></body></html>`

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, page)
		}))
		defer srv.Close()

		f := NewFetcher(nil)
		m := &platforms.Match{Platform: platforms.Mixcloud, ID: "ninja-tune/playlists/series", RawURL: srv.URL}

		refs, _, err := f.PlaylistTracks(context.Background(), m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(refs) != 2 {
			t.Fatalf("expected 2 shows, got %d", len(refs))
		}

		if refs[1].Title != "Late Night Tales & More" {
			t.Errorf("expected escape sequences decoded, got %q", refs[1].Title)
		}

		if refs[0].Artist != "ninja-tune" {
			t.Errorf("unexpected uploader: %q", refs[0].Artist)
		}
	})

	t.Run("Exhausted Cascade Is Not An Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><head><title>Nope</title></head><body>nothing here</body></html>")
		}))
		defer srv.Close()

		f := NewFetcher(nil)
		m := &platforms.Match{Platform: platforms.SoundCloud, ID: "x/sets/y", RawURL: srv.URL}

		refs, name, err := f.PlaylistTracks(context.Background(), m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(refs) != 0 {
			t.Errorf("expected zero tracks, got %d", len(refs))
		}

		if name != "Nope" {
			t.Errorf("expected page title even without tracks, got %q", name)
		}
	})

	t.Run("Server Error Is Not Fatal", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down for maintenance", http.StatusInternalServerError)
		}))
		defer srv.Close()

		f := NewFetcher(nil)
		m := &platforms.Match{Platform: platforms.Bandcamp, ID: "gone", RawURL: srv.URL}

		refs, _, err := f.PlaylistTracks(context.Background(), m)
		if err != nil {
			t.Fatalf("expected fetch failure swallowed, got %v", err)
		}

		if len(refs) != 0 {
			t.Errorf("expected zero tracks, got %d", len(refs))
		}
	})

	t.Run("Unsupported Platform", func(t *testing.T) {
		f := NewFetcher(nil)
		m := &platforms.Match{Platform: platforms.AppleMusic, ID: "x", RawURL: "https://music.apple.com/us/album/x"}

		_, _, err := f.PlaylistTracks(context.Background(), m)
		if !errors.Is(err, shared.ErrUnsupportedURL) {
			t.Fatalf("expected ErrUnsupportedURL, got %v", err)
		}
	})
}

// variantTransport routes requests by host so the YouTube URL variant
// fallback can be exercised without real network access.
type variantTransport struct {
	responses map[string]struct {
		status int
		body   string
	}
}

func (vt *variantTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r, ok := vt.responses[req.URL.Host]
	if !ok {
		return nil, fmt.Errorf("unexpected host %s", req.URL.Host)
	}

	rec := httptest.NewRecorder()
	rec.WriteHeader(r.status)
	fmt.Fprint(rec, r.body)
	return rec.Result(), nil
}

func TestYouTubeURLVariants(t *testing.T) {
	musicPage := `<html><head><title>Focus Beats - YouTube Music</title></head><body><script>var ytInitialData = {"contents":[{"playlistVideoRenderer":{"videoId":"aaaaaaaaaaa","title":{"runs":[{"text":"Bonobo - Kerala"}]},"navigationEndpoint":{},"shortBylineText":{"runs":[{"text":"Bonobo"}]}}},{"playlistVideoRenderer":{"videoId":"bbbbbbbbbbb","title":{"runs":[{"text":"Kiara"}]},"navigationEndpoint":{},"shortBylineText":{"runs":[{"text":"Bonobo - Topic"}]}}}]};</script></body></html>`

	client := &http.Client{Transport: &variantTransport{
		responses: map[string]struct {
			status int
			body   string
		}{
			"www.youtube.com":   {status: http.StatusNotFound, body: "not found"},
			"music.youtube.com": {status: http.StatusOK, body: musicPage},
		},
	}}

	f := NewFetcher(nil, WithHTTPClient(client))
	m := &platforms.Match{
		Platform: platforms.YouTube,
		ID:       "PLxxxxxxxx",
		RawURL:   "https://www.youtube.com/playlist?list=PLxxxxxxxx",
	}

	refs, name, err := f.PlaylistTracks(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(refs) != 2 {
		t.Fatalf("expected 2 tracks from fallback host, got %d", len(refs))
	}

	if refs[0].Artist != "Bonobo" || refs[0].Title != "Kerala" {
		t.Errorf("expected title split on dash, got %+v", refs[0])
	}

	if refs[1].Title != "Kiara" || refs[1].Artist != "Bonobo" {
		t.Errorf("expected uploader fallback with topic suffix stripped, got %+v", refs[1])
	}

	if !strings.Contains(name, "Focus Beats") {
		t.Errorf("unexpected playlist name %q", name)
	}
}

func TestDedupeAndCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, `<span class="track-title">Track %d</span>`, i)
	}
	sb.WriteString(`<span class="track-title">track 0</span>`)
	sb.WriteString(`<span class="track-title">  </span>`)
	sb.WriteString("</body></html>")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sb.String())
	}))
	defer srv.Close()

	f := NewFetcher(nil, WithMaxTracks(6))
	m := &platforms.Match{Platform: platforms.Bandcamp, ID: "x", RawURL: srv.URL}

	refs, _, err := f.PlaylistTracks(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(refs) != 6 {
		t.Fatalf("expected cap of 6, got %d", len(refs))
	}

	seen := map[string]bool{}
	for _, ref := range refs {
		key := strings.ToLower(ref.Title)
		if seen[key] {
			t.Errorf("duplicate title survived: %q", ref.Title)
		}
		seen[key] = true
	}
}

func TestPage(t *testing.T) {
	t.Run("Returns Title", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><head><title>Midnight City - M83 | Free Listening</title></head></html>`)
		}))
		defer srv.Close()

		f := NewFetcher(nil)
		title, err := f.Page(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if title != "Midnight City - M83 | Free Listening" {
			t.Errorf("unexpected title %q", title)
		}
	})

	t.Run("Propagates Fetch Errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer srv.Close()

		f := NewFetcher(nil)
		if _, err := f.Page(context.Background(), srv.URL); err == nil {
			t.Fatal("expected error for non-2xx response")
		}
	})
}

func TestSupports(t *testing.T) {
	f := NewFetcher(nil)

	for _, platform := range []string{platforms.YouTube, platforms.SoundCloud, platforms.Bandcamp, platforms.Mixcloud} {
		if !f.Supports(platform) {
			t.Errorf("expected %s to be supported", platform)
		}
	}

	if f.Supports(platforms.Spotify) {
		t.Error("spotify playlists are fetched through the catalog API, not scraped")
	}
}

func TestStripSuffixNoise(t *testing.T) {
	got := stripSuffixNoise("Compro | Skee Mask | Bandcamp", " | ")
	if got != "Compro | Skee Mask" {
		t.Errorf("expected last marker trimmed, got %q", got)
	}

	got = stripSuffixNoise("Plain Title", " | ", " - ")
	if got != "Plain Title" {
		t.Errorf("expected untouched title, got %q", got)
	}
}
