package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reddington-archives/quote-service/internal/adapters/dataset"
)

func newStatsCommand(profile *string) *cobra.Command {
	var datasetPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-season statistics for the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if datasetPath == "" {
				cfg, err := loadConfig(*profile)
				if err != nil {
					return err
				}

				datasetPath = cfg.Dataset.Path
			}

			records, err := dataset.Load(datasetPath)
			if err != nil {
				return fmt.Errorf("loading dataset: %w", err)
			}

			index, err := dataset.NewIndex(records)
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}

			stats := index.Stats(context.Background())

			seasons := make([]int, 0, len(stats.PerSeason))
			for season := range stats.PerSeason {
				seasons = append(seasons, season)
			}

			sort.Ints(seasons)

			rows := make([][]string, 0, len(seasons))
			for _, season := range seasons {
				rows = append(rows, []string{
					strconv.Itoa(season),
					strconv.Itoa(stats.PerSeason[season]),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Season", "Quotes"},
				rows,
				[]columnAlignment{alignRight, alignRight},
			))

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d quotes across %d seasons\n",
				stats.TotalQuotes, stats.TotalSeasons)

			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Dataset path (defaults to the configured path)")

	return cmd
}
