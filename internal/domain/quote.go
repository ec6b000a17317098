// Package domain contains core business entities and rules.
package domain

import "strings"

// QuoteRecord is one quote with its attribution metadata.
// Records are immutable once loaded: the dataset is produced offline by the
// collector and the running service never creates, updates, or deletes them.
type QuoteRecord struct {
	// Text is the quote itself. Never empty or whitespace-only.
	Text string

	// Season the quote is from. Always present and positive.
	Season int

	// Episode within the season. Zero when the quote is not tied to a
	// specific episode.
	Episode int

	// EpisodeTitle is the episode's title, when known.
	EpisodeTitle string

	// SourceName identifies where the quote was collected from
	// (e.g. "Wikiquote", "Springfield Transcripts").
	SourceName string

	// SourceURL is the page the quote was scraped from. Collector-side
	// provenance only; not served by the API.
	SourceURL string

	// Context is free-text scene context, when known.
	Context string
}

// Validate checks the invariants every loaded record must satisfy.
func (r *QuoteRecord) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return NewValidationError("text", "must not be empty")
	}

	if r.Season <= 0 {
		return NewValidationError("season", "must be positive")
	}

	if r.Episode < 0 {
		return NewValidationError("episode", "must be positive when set")
	}

	return nil
}

// HasEpisode reports whether the record is tied to a specific episode.
func (r *QuoteRecord) HasEpisode() bool {
	return r.Episode > 0
}

// MetadataScore ranks how much attribution metadata a record carries.
// Used by the collector's deduplication to keep the richer duplicate.
func (r *QuoteRecord) MetadataScore() int {
	score := 0
	if r.Season > 0 {
		score += 2
	}

	if r.Episode > 0 {
		score += 2
	}

	if r.EpisodeTitle != "" {
		score++
	}

	if r.Context != "" {
		score++
	}

	return score
}
