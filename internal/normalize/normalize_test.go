package normalize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	t.Run("Strips Official Video Annotations", func(t *testing.T) {
		got := Clean("Song Title (Official Music Video) [2021]")
		for _, banned := range []string{"official", "video", "2021"} {
			if strings.Contains(got, banned) {
				t.Errorf("expected %q to be stripped, got %q", banned, got)
			}
		}
		if !strings.Contains(got, "song title") {
			t.Errorf("expected song title to survive, got %q", got)
		}
	})

	t.Run("Strips Featuring Clauses", func(t *testing.T) {
		cases := []string{
			"Song Title feat. Other Artist",
			"Song Title ft. Other Artist",
			"Song Title (feat. Other Artist)",
			"Song Title featuring Other Artist",
		}
		for _, input := range cases {
			got := Clean(input)
			if got != "song title" {
				t.Errorf("Clean(%q) = %q, want %q", input, got, "song title")
			}
		}
	})

	t.Run("Strips Topic Channel Suffix", func(t *testing.T) {
		if got := Clean("Artist Name - Topic"); got != "artist name" {
			t.Errorf("expected topic suffix stripped, got %q", got)
		}
	})

	t.Run("Strips Trailing Years", func(t *testing.T) {
		if got := Clean("Some Song 1987"); got != "some song" {
			t.Errorf("expected trailing year stripped, got %q", got)
		}
		// A bare year is a title, not an annotation.
		if got := Clean("1999"); got != "1999" {
			t.Errorf("expected bare year preserved, got %q", got)
		}
	})

	t.Run("Preserves Non Noise Brackets", func(t *testing.T) {
		got := Clean("Song Title (Acoustic)")
		if !strings.Contains(got, "acoustic") {
			t.Errorf("expected non-noise bracket content preserved, got %q", got)
		}
	})

	t.Run("Collapses Whitespace", func(t *testing.T) {
		if got := Clean("  Song   Title  "); got != "song title" {
			t.Errorf("expected whitespace collapsed, got %q", got)
		}
	})

	t.Run("Strips Suffixes Masked By Brackets", func(t *testing.T) {
		// Removing the bracket group exposes a trailing suffix that a
		// single pass would leave behind.
		cases := []struct {
			input string
			want  string
		}{
			{"Song - Topic (Official)", "song"},
			{"Song 1999 (Official)", "song"},
			{"Track Name 2003 [HD]", "track name"},
		}
		for _, tt := range cases {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		inputs := []string{
			"Song Title (Official Music Video) [2021]",
			"Artist - Song ft. Someone (Live) HD",
			"plain query",
			"Artist Name - Topic",
			"",
			"Song (Acoustic) 2019",
			"Song - Topic (Official)",
			"Song 1999 (Official)",
			"Track Name 2003 [HD]",
			"Band - Topic 2001 (Official Video)",
		}
		for _, input := range inputs {
			once := Clean(input)
			twice := Clean(once)
			if once != twice {
				t.Errorf("Clean not idempotent for %q: %q != %q", input, once, twice)
			}
		}
	})
}

func TestNeedsCleaning(t *testing.T) {
	t.Run("Noise Words", func(t *testing.T) {
		for _, input := range []string{
			"song title official video",
			"Great Track REMASTERED",
			"track live at wembley",
		} {
			if !NeedsCleaning(input) {
				t.Errorf("expected %q to need cleaning", input)
			}
		}
	})

	t.Run("Brackets", func(t *testing.T) {
		if !NeedsCleaning("song title (whatever)") {
			t.Error("expected bracketed query to need cleaning")
		}
	})

	t.Run("Clean Queries", func(t *testing.T) {
		for _, input := range []string{
			"daft punk around the world",
			"karma police",
			"olive oil", // contains "live" only as a substring
		} {
			if NeedsCleaning(input) {
				t.Errorf("expected %q to not need cleaning", input)
			}
		}
	})
}

func TestSuggestAlternatives(t *testing.T) {
	t.Run("Cleaned Query First", func(t *testing.T) {
		got := SuggestAlternatives("Song Title (Official Video)")
		if len(got) == 0 {
			t.Fatal("expected suggestions")
		}
		if got[0] != "song title" {
			t.Errorf("expected cleaned query first, got %q", got[0])
		}
	})

	t.Run("Artist Title Split", func(t *testing.T) {
		got := SuggestAlternatives("Daft Punk - Around the World (Official)")
		joined := strings.Join(got, "|")
		if !strings.Contains(joined, "daft punk around the world") {
			t.Errorf("expected recombined split in %v", got)
		}
		if !strings.Contains(joined, "daft punk") {
			t.Errorf("expected left half in %v", got)
		}
	})

	t.Run("Never Echoes The Original", func(t *testing.T) {
		got := SuggestAlternatives("plain query")
		for _, s := range got {
			if strings.EqualFold(s, "plain query") {
				t.Errorf("suggestion equals original: %q", s)
			}
		}
	})

	t.Run("Capped At Four", func(t *testing.T) {
		got := SuggestAlternatives("One Two - Three Four Five Six (Official Video) [HD] | extra")
		if len(got) > MaxAlternatives {
			t.Errorf("expected at most %d suggestions, got %d: %v", MaxAlternatives, len(got), got)
		}
	})

	t.Run("Deduplicated", func(t *testing.T) {
		got := SuggestAlternatives("Song - Song")
		seen := map[string]bool{}
		for _, s := range got {
			key := strings.ToLower(s)
			if seen[key] {
				t.Errorf("duplicate suggestion %q in %v", s, got)
			}
			seen[key] = true
		}
	})
}
