package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/reddington-archives/quote-service/internal/adapters/clients"
	"github.com/reddington-archives/quote-service/internal/adapters/clients/scrape"
	"github.com/reddington-archives/quote-service/internal/app"
	"github.com/reddington-archives/quote-service/internal/pipeline"
	"github.com/reddington-archives/quote-service/internal/platform/config"
	"github.com/reddington-archives/quote-service/internal/ports"
)

func newRunCommand(profile *string) *cobra.Command {
	var (
		outputJSON string
		outputCSV  string
		seasons    []int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect quotes and write the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*profile)
			if err != nil {
				return err
			}

			if outputJSON == "" {
				outputJSON = cfg.Collector.OutputJSON
			}

			if outputCSV == "" {
				outputCSV = cfg.Collector.OutputCSV
			}

			logger := newLogger(cfg, cmd.ErrOrStderr(), verbose)

			sources, err := buildSources(cfg, seasons, logger)
			if err != nil {
				return err
			}

			svc := app.NewCollectService(app.CollectServiceConfig{
				Sources:    sources,
				Logger:     logger,
				FetchLimit: cfg.Collector.FetchLimit,
				Similarity: cfg.Collector.Similarity,
			})

			result, err := svc.Collect(cmd.Context())
			if err != nil {
				return fmt.Errorf("collection run: %w", err)
			}

			if err := pipeline.WriteJSON(outputJSON, result.Records, time.Now().UTC()); err != nil {
				return fmt.Errorf("writing dataset: %w", err)
			}

			if outputCSV != "" {
				if err := pipeline.WriteCSV(outputCSV, result.Records); err != nil {
					return fmt.Errorf("writing CSV export: %w", err)
				}
			}

			printRunSummary(cmd, result, outputJSON, outputCSV)

			return nil
		},
	}

	cmd.Flags().StringVar(&outputJSON, "output-json", "", "Dataset output path (defaults to the configured path)")
	cmd.Flags().StringVar(&outputCSV, "output-csv", "", "Optional CSV export path (defaults to the configured path)")
	cmd.Flags().IntSliceVar(&seasons, "seasons", nil, "Limit transcript scraping to these seasons")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// buildSources constructs the configured quote sources, each behind its
// own resilient HTTP client so one site's failures never trip the
// other's circuit breaker.
func buildSources(cfg *config.Config, seasons []int, logger *slog.Logger) ([]ports.QuoteSource, error) {
	wikiquoteClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Sources.Wikiquote.BaseURL,
		ServiceName: cfg.Sources.Wikiquote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating wikiquote client: %w", err)
	}

	wikiquote, err := scrape.NewWikiquoteSource(scrape.WikiquoteConfig{
		Client:     wikiquoteClient,
		SourceName: cfg.Sources.Wikiquote.Name,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating wikiquote source: %w", err)
	}

	transcriptsClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Sources.Transcripts.BaseURL,
		ServiceName: cfg.Sources.Transcripts.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating transcripts client: %w", err)
	}

	transcripts, err := scrape.NewTranscriptsSource(scrape.TranscriptsConfig{
		Client:     transcriptsClient,
		SourceName: cfg.Sources.Transcripts.Name,
		Seasons:    seasons,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating transcripts source: %w", err)
	}

	return []ports.QuoteSource{wikiquote, transcripts}, nil
}

func printRunSummary(cmd *cobra.Command, result *app.CollectResult, outputJSON, outputCSV string) {
	rows := make([][]string, 0, len(result.Sources))

	for _, src := range result.Sources {
		status := "ok"
		if src.Err != nil {
			status = src.Err.Error()
		}

		rows = append(rows, []string{src.Source, strconv.Itoa(src.Fetched), status})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Source", "Fetched", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d quotes written to %s (%d dropped, %d merged)\n",
		len(result.Records), outputJSON, result.Dropped, result.Merged)

	if outputCSV != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "CSV export written to %s\n", outputCSV)
	}
}
