package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddington-archives/quote-service/internal/domain"
	"github.com/reddington-archives/quote-service/internal/ports"
)

// stubSource is a canned ports.QuoteSource for pipeline tests.
type stubSource struct {
	name    string
	records []domain.QuoteRecord
	err     error
}

func (s *stubSource) Name() string {
	return s.name
}

func (s *stubSource) Fetch(_ context.Context) ([]domain.QuoteRecord, error) {
	return s.records, s.err
}

func toSources(srcs ...*stubSource) []ports.QuoteSource {
	out := make([]ports.QuoteSource, len(srcs))
	for i, s := range srcs {
		out[i] = s
	}

	return out
}

func TestCollectService_Collect(t *testing.T) {
	ctx := context.Background()

	t.Run("merges sources and deduplicates", func(t *testing.T) {
		svc := NewCollectService(CollectServiceConfig{
			Logger: discardLogger(),
			Sources: toSources(
				&stubSource{
					name: "wikiquote",
					records: []domain.QuoteRecord{
						{Text: "Loyalty is a vastly overrated virtue.", Season: 2, Episode: 1, SourceName: "Wikiquote"},
						{Text: "Every cause has more than one effect.", Season: 1, Episode: 7, SourceName: "Wikiquote"},
					},
				},
				&stubSource{
					name: "transcripts",
					records: []domain.QuoteRecord{
						// Near-duplicate of the wikiquote line, with
						// less metadata: folded away.
						{Text: "Loyalty is a vastly overrated virtue", Season: 2, SourceName: "Transcripts"},
						{Text: "Too short", Season: 1, SourceName: "Transcripts"},
					},
				},
			),
		})

		result, err := svc.Collect(ctx)

		require.NoError(t, err)
		require.Len(t, result.Records, 2)
		assert.Equal(t, 1, result.Dropped)
		assert.Equal(t, 1, result.Merged)

		// Canonical order: season 1 before season 2.
		assert.Equal(t, 1, result.Records[0].Season)
		assert.Equal(t, 2, result.Records[1].Season)
		// The richer wikiquote record won the duplicate group.
		assert.Equal(t, 1, result.Records[1].Episode)

		require.Len(t, result.Sources, 2)
		assert.Equal(t, 2, result.Sources[0].Fetched)
		assert.NoError(t, result.Sources[0].Err)
	})

	t.Run("one failed source does not abort the run", func(t *testing.T) {
		svc := NewCollectService(CollectServiceConfig{
			Logger: discardLogger(),
			Sources: toSources(
				&stubSource{name: "wikiquote", err: domain.NewUnavailableError("wikiquote", "timeout")},
				&stubSource{name: "transcripts", records: []domain.QuoteRecord{
					{Text: "I am a creature of my environment.", Season: 1, Episode: 9},
				}},
			),
		})

		result, err := svc.Collect(ctx)

		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Error(t, result.Sources[0].Err)
		assert.NoError(t, result.Sources[1].Err)
	})

	t.Run("all sources failed", func(t *testing.T) {
		svc := NewCollectService(CollectServiceConfig{
			Logger: discardLogger(),
			Sources: toSources(
				&stubSource{name: "wikiquote", err: domain.NewUnavailableError("wikiquote", "timeout")},
				&stubSource{name: "transcripts", err: domain.NewUnavailableError("transcripts", "http 503")},
			),
		})

		_, err := svc.Collect(ctx)

		require.Error(t, err)
		assert.True(t, domain.IsUnavailable(err))
	})

	t.Run("sources yielded nothing usable", func(t *testing.T) {
		svc := NewCollectService(CollectServiceConfig{
			Logger: discardLogger(),
			Sources: toSources(
				&stubSource{name: "wikiquote", records: []domain.QuoteRecord{
					{Text: "Hm.", Season: 1},
				}},
			),
		})

		_, err := svc.Collect(ctx)

		require.Error(t, err)
		assert.True(t, domain.IsEmptyCollection(err))
	})
}
