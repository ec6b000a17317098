package dataset

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/reddington-archives/quote-service/internal/domain"
	"github.com/reddington-archives/quote-service/internal/ports"
)

// featuredEpoch anchors the quote-of-the-day rotation. The value never
// changes; the mapping from date to quote only shifts when the dataset
// itself changes size, which is accepted behavior across releases.
var featuredEpoch = time.Date(2013, time.September, 23, 0, 0, 0, 0, time.UTC)

// searchMinLength is the minimum significant query length for Search,
// counted in runes so multibyte text is measured the same way the HTTP
// validator measures it. Shorter queries return nothing without
// scanning the collection.
const searchMinLength = 3

// Index is an immutable in-memory ports.QuoteIndex over the loaded
// dataset. All queries are pure computation over the record slice, so
// concurrent readers need no locking.
type Index struct {
	records []domain.QuoteRecord

	// Lowercased text and context, precomputed once so Search does a
	// single strings.Contains per record per call.
	searchText    []string
	searchContext []string
}

// NewIndex builds an index over records. The slice is copied; callers
// may not mutate records afterwards anyway, but the copy removes the
// temptation. Returns domain.ErrLoad when records is empty or any
// record violates its invariants.
func NewIndex(records []domain.QuoteRecord) (*Index, error) {
	if len(records) == 0 {
		return nil, domain.NewLoadError("", "cannot index an empty collection")
	}

	idx := &Index{
		records:       make([]domain.QuoteRecord, len(records)),
		searchText:    make([]string, len(records)),
		searchContext: make([]string, len(records)),
	}

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, domain.NewRecordLoadError("", i, err.Error())
		}

		idx.records[i] = r
		idx.searchText[i] = strings.ToLower(r.Text)
		idx.searchContext[i] = strings.ToLower(r.Context)
	}

	return idx, nil
}

// Size returns the number of indexed records.
func (idx *Index) Size() int {
	return len(idx.records)
}

// List implements ports.QuoteIndex.
func (idx *Index) List(_ context.Context, filter ports.ListFilter) ([]domain.QuoteRecord, error) {
	if filter.Season != nil && *filter.Season <= 0 {
		return nil, domain.NewValidationErrorWithValue("season", "must be a positive integer", *filter.Season)
	}

	if filter.Episode != nil && *filter.Episode <= 0 {
		return nil, domain.NewValidationErrorWithValue("episode", "must be a positive integer", *filter.Episode)
	}

	if filter.Season == nil && filter.Episode == nil {
		out := make([]domain.QuoteRecord, len(idx.records))
		copy(out, idx.records)

		return out, nil
	}

	out := make([]domain.QuoteRecord, 0)

	for _, r := range idx.records {
		if filter.Season != nil && r.Season != *filter.Season {
			continue
		}

		if filter.Episode != nil && r.Episode != *filter.Episode {
			continue
		}

		out = append(out, r)
	}

	return out, nil
}

// RandomOne implements ports.QuoteIndex.
func (idx *Index) RandomOne(_ context.Context) (domain.QuoteRecord, error) {
	if len(idx.records) == 0 {
		return domain.QuoteRecord{}, domain.ErrEmptyCollection
	}

	return idx.records[rand.IntN(len(idx.records))], nil
}

// FeaturedForDate implements ports.QuoteIndex.
func (idx *Index) FeaturedForDate(_ context.Context, t time.Time) (domain.QuoteRecord, error) {
	if len(idx.records) == 0 {
		return domain.QuoteRecord{}, domain.ErrEmptyCollection
	}

	return idx.records[featuredIndex(t, len(idx.records))], nil
}

// featuredIndex maps a moment's UTC calendar date to a collection index.
// Dates before the epoch still map into [0, size) via floored modulo.
func featuredIndex(t time.Time, size int) int {
	utc := t.UTC()
	day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	days := int(day.Sub(featuredEpoch).Hours() / 24)

	i := days % size
	if i < 0 {
		i += size
	}

	return i
}

// Search implements ports.QuoteIndex.
func (idx *Index) Search(_ context.Context, query string) []domain.QuoteRecord {
	needle := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(needle) < searchMinLength {
		return []domain.QuoteRecord{}
	}

	out := make([]domain.QuoteRecord, 0)

	for i, r := range idx.records {
		if strings.Contains(idx.searchText[i], needle) ||
			(idx.searchContext[i] != "" && strings.Contains(idx.searchContext[i], needle)) {
			out = append(out, r)
		}
	}

	return out
}

// Stats implements ports.QuoteIndex.
func (idx *Index) Stats(_ context.Context) ports.Stats {
	perSeason := make(map[int]int)

	for _, r := range idx.records {
		perSeason[r.Season]++
	}

	return ports.Stats{
		PerSeason:    perSeason,
		TotalQuotes:  len(idx.records),
		TotalSeasons: len(perSeason),
	}
}

// Name implements ports.HealthChecker.
func (idx *Index) Name() string {
	return "quote-index"
}

// Check implements ports.HealthChecker. The index cannot degrade after
// construction, so the check only guards against an empty collection.
func (idx *Index) Check(_ context.Context) error {
	if len(idx.records) == 0 {
		return domain.ErrEmptyCollection
	}

	return nil
}
