package pipeline

import (
	"cmp"
	"slices"

	"github.com/reddington-archives/quote-service/internal/domain"
)

// unattributedSentinel sorts records missing an episode after every
// real episode number within their season.
const unattributedSentinel = 999

// Sort orders records into the dataset's canonical order: season, then
// episode (records without an episode last within their season), then
// text. This order is what the service later treats as loading order.
func Sort(records []domain.QuoteRecord) {
	slices.SortStableFunc(records, func(a, b domain.QuoteRecord) int {
		if c := cmp.Compare(a.Season, b.Season); c != 0 {
			return c
		}

		if c := cmp.Compare(sortEpisode(a), sortEpisode(b)); c != 0 {
			return c
		}

		return cmp.Compare(a.Text, b.Text)
	})
}

func sortEpisode(r domain.QuoteRecord) int {
	if !r.HasEpisode() {
		return unattributedSentinel
	}

	return r.Episode
}
