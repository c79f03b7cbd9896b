// package models defines the transient data model for the import pipeline
package models

import "time"

// MatchStatus records whether a reference was reconciled against the catalog.
type MatchStatus string

const (
	StatusFound    MatchStatus = "found"
	StatusNotFound MatchStatus = "not_found"
)

// TrackRef is a candidate track reference extracted from a pasted text list,
// a scraped playlist page, or a single-item lookup.
//
// Title is always non-empty after trimming. SourceID carries a
// platform-specific identifier when one is known (e.g. a video id) and is
// used as the match-cache key; it is empty for text-list references.
type TrackRef struct {
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	SourceID string `json:"source_id,omitempty"`
}

// Query builds the catalog search string for this reference.
func (r TrackRef) Query() string {
	if r.Artist != "" {
		return r.Title + " " + r.Artist
	}
	return r.Title
}

// Track is a catalog item. The pipeline never interprets it beyond the ID;
// the remaining fields are passed through to the response for display.
type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album,omitempty"`
	Duration int    `json:"duration,omitempty"` // seconds
	ImageURL string `json:"image_url,omitempty"`
	URL      string `json:"url,omitempty"`
	Liked    bool   `json:"liked"`
}

// MatchResult is the outcome of reconciling one TrackRef against the catalog.
//
// Track is the top-ranked result of a single limit-1 search, or nil when the
// search failed or returned nothing. Confidence is an informational
// similarity score between the reference and the match; it never gates
// acceptance.
type MatchResult struct {
	Ref        TrackRef    `json:"ref"`
	Track      *Track      `json:"track"`
	Status     MatchStatus `json:"status"`
	Confidence float64     `json:"confidence,omitempty"`
}

// ImportSummary aggregates match statuses for a multi-track import.
// Found + NotFound always equals Total.
type ImportSummary struct {
	Platform string `json:"platform"`
	Total    int    `json:"total"`
	Found    int    `json:"found"`
	NotFound int    `json:"not_found"`
}

// Summarize counts match statuses into an ImportSummary.
func Summarize(platform string, results []MatchResult) ImportSummary {
	s := ImportSummary{Platform: platform, Total: len(results)}
	for _, r := range results {
		if r.Status == StatusFound {
			s.Found++
		} else {
			s.NotFound++
		}
	}
	return s
}

// ImportResult is the uniform terminal shape for every orchestrator path.
//
// Summary is set on multi-track paths only. Suggestions is set on the plain
// search path when the query looks noisy or returned few results.
type ImportResult struct {
	Platform     string         `json:"platform"`
	PlaylistName string         `json:"playlist_name,omitempty"`
	Query        string         `json:"query,omitempty"`
	Tracks       []MatchResult  `json:"tracks"`
	Summary      *ImportSummary `json:"summary,omitempty"`
	Suggestions  []string       `json:"suggestions,omitempty"`
}

// PersistedMatch is a match-cache row mapping a platform source key to a
// catalog track.
type PersistedMatch struct {
	ID          string
	Platform    string
	SourceKey   string
	TrackID     string
	TrackTitle  string
	TrackArtist string
	CreatedAt   time.Time
}
