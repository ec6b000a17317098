// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrValidation, ErrEmptyCollection, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"
	"time"

	"github.com/reddington-archives/quote-service/internal/domain"
)

// ListFilter narrows a quote listing. Nil fields are "no filter".
// Non-positive values are rejected with domain.ErrValidation rather than
// silently ignored.
type ListFilter struct {
	Season  *int
	Episode *int
}

// Stats summarizes the loaded collection.
type Stats struct {
	// PerSeason maps each season value present in the collection to its
	// quote count. Seasons are not assumed contiguous or to start at 1.
	PerSeason map[int]int

	// TotalQuotes is the collection size.
	TotalQuotes int

	// TotalSeasons is the number of distinct season values present,
	// not max(season).
	TotalSeasons int
}

// QuoteIndex answers read-only queries over the loaded quote collection.
// Implementations are immutable after construction: any number of
// concurrent readers may query without locking, and no operation blocks
// on I/O. The context parameters exist for interface uniformity and
// future instrumentation; in-memory implementations ignore them.
type QuoteIndex interface {
	// List returns records matching the filter in loading (canonical)
	// order. A filter that matches nothing yields an empty slice, not
	// an error. Returns domain.ErrValidation for non-positive filters.
	List(ctx context.Context, filter ListFilter) ([]domain.QuoteRecord, error)

	// RandomOne draws one record uniformly at random. Every call is an
	// independent draw; repeats are allowed. Returns
	// domain.ErrEmptyCollection if the collection is empty.
	RandomOne(ctx context.Context) (domain.QuoteRecord, error)

	// FeaturedForDate returns the quote of the day for the given
	// moment's UTC calendar date. Pure function of date and collection
	// size/order: the same date yields the same record across restarts
	// and replicas. Returns domain.ErrEmptyCollection if empty.
	FeaturedForDate(ctx context.Context, t time.Time) (domain.QuoteRecord, error)

	// Search returns records whose text or context contains the query,
	// case-insensitively, preserving canonical order. Queries shorter
	// than three significant characters yield an empty slice without a
	// scan. No result cap is applied.
	Search(ctx context.Context, query string) []domain.QuoteRecord

	// Stats returns per-season counts and totals.
	Stats(ctx context.Context) Stats
}

// QuoteSource collects quote records from one external source.
// Adapters implement this for each site the collector scrapes;
// they map external failures to domain errors and return cleaned,
// source-attributed records in page order.
type QuoteSource interface {
	// Name returns a human-readable source identifier used for
	// attribution (QuoteRecord.SourceName) and logging.
	Name() string

	// Fetch retrieves all quotes the source can provide.
	// Implementations respect context cancellation between requests and
	// return domain.ErrUnavailable when the site is unreachable.
	Fetch(ctx context.Context) ([]domain.QuoteRecord, error)
}
