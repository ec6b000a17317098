package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddington-archives/quote-service/internal/adapters/dataset"
	"github.com/reddington-archives/quote-service/internal/domain"
	"github.com/reddington-archives/quote-service/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) *QuoteService {
	t.Helper()

	idx, err := dataset.NewIndex([]domain.QuoteRecord{
		{Text: "Every cause has more than one effect.", Season: 1, Episode: 7},
		{Text: "I am a creature of my environment.", Season: 1, Episode: 9},
		{Text: "Loyalty is a vastly overrated virtue.", Season: 2, Episode: 1},
	})
	require.NoError(t, err)

	return NewQuoteService(QuoteServiceConfig{
		Index:  idx,
		Logger: discardLogger(),
		Now: func() time.Time {
			return time.Date(2026, time.August, 1, 9, 30, 0, 0, time.UTC)
		},
	})
}

func TestQuoteService_ListQuotes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("unfiltered", func(t *testing.T) {
		quotes, err := svc.ListQuotes(ctx, ports.ListFilter{})

		require.NoError(t, err)
		assert.Len(t, quotes, 3)
	})

	t.Run("invalid filter passes through validation error", func(t *testing.T) {
		zero := 0
		_, err := svc.ListQuotes(ctx, ports.ListFilter{Season: &zero})

		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestQuoteService_RandomQuote(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.RandomQuote(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, quote.Text)
}

func TestQuoteService_FeaturedQuote(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.FeaturedQuote(ctx)
	require.NoError(t, err)

	second, err := svc.FeaturedQuote(ctx)
	require.NoError(t, err)

	// The clock is pinned, so both calls pick the same quote.
	assert.Equal(t, first, second)
}

func TestQuoteService_SearchQuotes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("match", func(t *testing.T) {
		quotes := svc.SearchQuotes(ctx, "loyalty")

		require.Len(t, quotes, 1)
		assert.Equal(t, 2, quotes[0].Season)
	})

	t.Run("short query", func(t *testing.T) {
		assert.Empty(t, svc.SearchQuotes(ctx, "lo"))
	})
}

func TestQuoteService_CollectionStats(t *testing.T) {
	svc := newTestService(t)

	stats := svc.CollectionStats(context.Background())

	assert.Equal(t, 3, stats.TotalQuotes)
	assert.Equal(t, 2, stats.TotalSeasons)
	assert.Equal(t, map[int]int{1: 2, 2: 1}, stats.PerSeason)
}
