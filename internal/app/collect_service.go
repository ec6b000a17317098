package app

import (
	"context"
	"log/slog"

	"github.com/reddington-archives/quote-service/internal/domain"
	"github.com/reddington-archives/quote-service/internal/pipeline"
	"github.com/reddington-archives/quote-service/internal/ports"
)

// CollectService runs the offline collection pipeline: fetch from every
// configured source, clean, deduplicate, and sort. It produces the
// dataset the running service later loads; it never touches a live index.
type CollectService struct {
	sources    []ports.QuoteSource
	logger     *slog.Logger
	fetchLimit int
	similarity float64
}

// CollectServiceConfig contains configuration for the collect service.
type CollectServiceConfig struct {
	Sources []ports.QuoteSource
	Logger  *slog.Logger

	// FetchLimit bounds concurrent source fetches. Zero means all at once.
	FetchLimit int

	// Similarity is the near-duplicate threshold in [0,1] passed to the
	// deduplication stage. Zero means pipeline.DefaultSimilarity.
	Similarity float64
}

// SourceResult reports one source's fetch outcome.
type SourceResult struct {
	Source  string
	Fetched int
	Err     error
}

// CollectResult is the outcome of a full collection run.
type CollectResult struct {
	// Records is the final cleaned, deduplicated, sorted dataset.
	Records []domain.QuoteRecord

	// Sources holds per-source outcomes in configuration order,
	// including failed sources.
	Sources []SourceResult

	// Dropped is the number of records discarded by cleaning.
	Dropped int

	// Merged is the number of near-duplicates folded into richer records.
	Merged int
}

// NewCollectService creates a collect service with the provided dependencies.
func NewCollectService(cfg CollectServiceConfig) *CollectService {
	limit := cfg.FetchLimit
	if limit <= 0 {
		limit = len(cfg.Sources)
	}

	similarity := cfg.Similarity
	if similarity == 0 {
		similarity = pipeline.DefaultSimilarity
	}

	return &CollectService{
		sources:    cfg.Sources,
		logger:     cfg.Logger,
		fetchLimit: limit,
		similarity: similarity,
	}
}

// Collect fetches from all sources concurrently and runs the pipeline.
// A failed source is reported but does not abort the run; Collect
// returns domain.ErrUnavailable only when every source failed, and
// domain.ErrEmptyCollection when the sources succeeded but yielded
// nothing usable.
func (s *CollectService) Collect(ctx context.Context) (*CollectResult, error) {
	s.logger.InfoContext(ctx, "starting collection run",
		slog.Int("sources", len(s.sources)),
	)

	fetchFns := make([]func(context.Context) ([]domain.QuoteRecord, error), len(s.sources))
	for i, src := range s.sources {
		fetchFns[i] = src.Fetch
	}

	fetched := ParallelPartialLimit(ctx, s.fetchLimit, fetchFns...)

	result := &CollectResult{
		Sources: make([]SourceResult, len(s.sources)),
	}

	var (
		raw    []domain.QuoteRecord
		failed int
	)

	for i, r := range fetched {
		name := s.sources[i].Name()
		result.Sources[i] = SourceResult{Source: name, Fetched: len(r.Value), Err: r.Err}

		if r.Err != nil {
			failed++

			s.logger.ErrorContext(ctx, "source fetch failed",
				slog.String("source", name),
				slog.Any("error", r.Err),
			)

			continue
		}

		s.logger.InfoContext(ctx, "source fetch complete",
			slog.String("source", name),
			slog.Int("quotes", len(r.Value)),
		)

		raw = append(raw, r.Value...)
	}

	if failed == len(s.sources) {
		return result, domain.NewUnavailableError("collector", "all sources failed")
	}

	cleaned, dropped := pipeline.Clean(raw)
	deduped, merged := pipeline.Dedupe(cleaned, s.similarity)
	pipeline.Sort(deduped)

	result.Records = deduped
	result.Dropped = dropped
	result.Merged = merged

	if len(result.Records) == 0 {
		return result, domain.ErrEmptyCollection
	}

	s.logger.InfoContext(ctx, "collection run complete",
		slog.Int("raw", len(raw)),
		slog.Int("dropped", dropped),
		slog.Int("merged", merged),
		slog.Int("final", len(result.Records)),
	)

	return result, nil
}
