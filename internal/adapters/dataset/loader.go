// Package dataset loads the collector-produced quote dataset and serves
// read-only queries over it.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/reddington-archives/quote-service/internal/domain"
)

// quoteJSON mirrors one record in the collector's JSON export.
type quoteJSON struct {
	Quote        string `json:"quote"`
	Season       int    `json:"season"`
	Episode      int    `json:"episode,omitempty"`
	EpisodeTitle string `json:"episode_title,omitempty"`
	Context      string `json:"context,omitempty"`
	SourceURL    string `json:"source_url,omitempty"`
	SourceName   string `json:"source_name,omitempty"`
}

// datasetJSON mirrors the collector's JSON export file.
type datasetJSON struct {
	Metadata struct {
		Project     string `json:"project"`
		Description string `json:"description"`
		TotalQuotes int    `json:"total_quotes"`
		LastUpdated string `json:"last_updated"`
	} `json:"metadata"`
	Quotes []quoteJSON `json:"quotes"`
}

// Load reads the quote dataset from path and validates every record.
// Any failure is a domain.LoadError: the caller must treat it as fatal
// and refuse to serve queries.
func Load(path string) ([]domain.QuoteRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewLoadError(path, err.Error())
	}

	var file datasetJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, domain.NewLoadError(path, fmt.Sprintf("malformed JSON: %v", err))
	}

	if len(file.Quotes) == 0 {
		return nil, domain.NewLoadError(path, "dataset contains no quotes")
	}

	records := make([]domain.QuoteRecord, 0, len(file.Quotes))

	for i, q := range file.Quotes {
		record := domain.QuoteRecord{
			Text:         q.Quote,
			Season:       q.Season,
			Episode:      q.Episode,
			EpisodeTitle: q.EpisodeTitle,
			SourceName:   q.SourceName,
			SourceURL:    q.SourceURL,
			Context:      q.Context,
		}

		if err := record.Validate(); err != nil {
			return nil, domain.NewRecordLoadError(path, i, err.Error())
		}

		records = append(records, record)
	}

	return records, nil
}
