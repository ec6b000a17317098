// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/reddington-archives/quote-service/internal/domain"
	"github.com/reddington-archives/quote-service/internal/ports"
)

// QuoteService orchestrates quote query use cases.
// It depends on the QuoteIndex port, not a concrete index, so handlers
// and tests can swap implementations freely.
type QuoteService struct {
	index  ports.QuoteIndex
	logger *slog.Logger
	now    func() time.Time
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Index  ports.QuoteIndex
	Logger *slog.Logger

	// Now overrides the clock used for the featured quote. Nil means
	// time.Now; tests pin it for determinism.
	Now func() time.Time
}

// NewQuoteService creates a new quote service with the provided dependencies.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &QuoteService{
		index:  cfg.Index,
		logger: cfg.Logger,
		now:    now,
	}
}

// ListQuotes returns quotes matching the filter in canonical order.
func (s *QuoteService) ListQuotes(ctx context.Context, filter ports.ListFilter) ([]domain.QuoteRecord, error) {
	quotes, err := s.index.List(ctx, filter)
	if err != nil {
		s.logger.WarnContext(ctx, "rejected quote listing",
			slog.Any("error", err),
		)

		return nil, err
	}

	s.logger.DebugContext(ctx, "listed quotes",
		slog.Int("count", len(quotes)),
	)

	return quotes, nil
}

// RandomQuote draws one quote uniformly at random.
func (s *QuoteService) RandomQuote(ctx context.Context) (domain.QuoteRecord, error) {
	quote, err := s.index.RandomOne(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to draw random quote",
			slog.Any("error", err),
		)

		return domain.QuoteRecord{}, err
	}

	return quote, nil
}

// FeaturedQuote returns today's quote of the day. The pick depends only
// on the current UTC date and the collection, so every replica agrees.
func (s *QuoteService) FeaturedQuote(ctx context.Context) (domain.QuoteRecord, error) {
	quote, err := s.index.FeaturedForDate(ctx, s.now())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to pick featured quote",
			slog.Any("error", err),
		)

		return domain.QuoteRecord{}, err
	}

	return quote, nil
}

// SearchQuotes returns quotes containing the query, case-insensitively.
// Queries under three significant characters yield an empty result.
func (s *QuoteService) SearchQuotes(ctx context.Context, query string) []domain.QuoteRecord {
	quotes := s.index.Search(ctx, query)

	s.logger.DebugContext(ctx, "searched quotes",
		slog.String("query", query),
		slog.Int("matches", len(quotes)),
	)

	return quotes
}

// CollectionStats returns per-season counts and totals.
func (s *QuoteService) CollectionStats(ctx context.Context) ports.Stats {
	return s.index.Stats(ctx)
}
