// Package pipeline implements the offline dataset preparation stages:
// cleaning, near-duplicate removal, canonical ordering, and export.
// The running service never imports this package; it consumes the
// exported dataset file.
package pipeline

import (
	"strings"

	"github.com/reddington-archives/quote-service/internal/domain"
)

// minQuoteLength is the shortest quote text worth keeping. Scrapes
// produce plenty of fragments ("Yes.", "Red:") that carry no value.
const minQuoteLength = 10

// Clean normalizes whitespace and drops records that are too short or
// violate the record invariants. Returns the kept records in input
// order and the number dropped.
func Clean(records []domain.QuoteRecord) ([]domain.QuoteRecord, int) {
	kept := make([]domain.QuoteRecord, 0, len(records))
	dropped := 0

	for _, r := range records {
		r.Text = collapseWhitespace(r.Text)
		r.Context = collapseWhitespace(r.Context)
		r.EpisodeTitle = strings.TrimSpace(r.EpisodeTitle)

		if len(r.Text) < minQuoteLength || r.Validate() != nil {
			dropped++

			continue
		}

		kept = append(kept, r)
	}

	return kept, dropped
}

// collapseWhitespace trims s and folds internal whitespace runs into
// single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
