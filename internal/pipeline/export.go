package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/reddington-archives/quote-service/internal/domain"
)

// exportMetadata describes the dataset file for human inspection.
type exportMetadata struct {
	Project     string `json:"project"`
	Description string `json:"description"`
	TotalQuotes int    `json:"total_quotes"`
	LastUpdated string `json:"last_updated"`
}

const (
	datasetProject     = "reddington-archives"
	datasetDescription = "Raymond 'Red' Reddington quote compendium"
)

// exportQuote is the wire shape of one record in the dataset file.
// The loader in the dataset adapter reads this same shape back.
type exportQuote struct {
	Quote        string `json:"quote"`
	Season       int    `json:"season"`
	Episode      int    `json:"episode,omitempty"`
	EpisodeTitle string `json:"episode_title,omitempty"`
	Context      string `json:"context,omitempty"`
	SourceURL    string `json:"source_url,omitempty"`
	SourceName   string `json:"source_name,omitempty"`
}

type exportFile struct {
	Metadata exportMetadata `json:"metadata"`
	Quotes   []exportQuote  `json:"quotes"`
}

// WriteJSON writes records to path in the dataset file format the
// service loads at startup.
func WriteJSON(path string, records []domain.QuoteRecord, generatedAt time.Time) error {
	file := exportFile{
		Metadata: exportMetadata{
			Project:     datasetProject,
			Description: datasetDescription,
			TotalQuotes: len(records),
			LastUpdated: generatedAt.UTC().Format(time.RFC3339),
		},
		Quotes: make([]exportQuote, len(records)),
	}

	for i, r := range records {
		file.Quotes[i] = exportQuote{
			Quote:        r.Text,
			Season:       r.Season,
			Episode:      r.Episode,
			EpisodeTitle: r.EpisodeTitle,
			Context:      r.Context,
			SourceURL:    r.SourceURL,
			SourceName:   r.SourceName,
		}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	return nil
}

// csvHeader is the column order of the CSV export.
var csvHeader = []string{"quote", "season", "episode", "episode_title", "context", "source_url", "source_name"}

// WriteCSV writes records to path as a spreadsheet-friendly CSV with
// one row per quote. Records without an episode leave the column empty.
func WriteCSV(path string, records []domain.QuoteRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, r := range records {
		episode := ""
		if r.HasEpisode() {
			episode = strconv.Itoa(r.Episode)
		}

		row := []string{r.Text, strconv.Itoa(r.Season), episode, r.EpisodeTitle, r.Context, r.SourceURL, r.SourceName}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	return f.Close()
}
