package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/reddington-archives/quote-service/internal/adapters/clients"
	"github.com/reddington-archives/quote-service/internal/domain"
	"github.com/reddington-archives/quote-service/internal/platform/logging"
)

const (
	// defaultWikiquotePage is the wiki page title to parse.
	defaultWikiquotePage = "The_Blacklist"

	// defaultWikiquotePageURL is the human-readable page used for
	// source attribution on scraped records.
	defaultWikiquotePageURL = "https://en.wikiquote.org/wiki/The_Blacklist"

	// minStandaloneLength filters standalone list quotes. These carry no
	// speaker prefix, so the bar is slightly higher than dialogue lines.
	minStandaloneLength = 15
)

// seasonHeadingPattern matches section headings like "Season 3".
var seasonHeadingPattern = regexp.MustCompile(`(?i)Season\s+(\d+)`)

// attributionDashPattern splits a standalone quote from its attribution,
// e.g. `"Quote text." - Red`.
var attributionDashPattern = regexp.MustCompile("[-–—]")

// WikiquoteConfig configures the Wikiquote source.
type WikiquoteConfig struct {
	// Client performs the HTTP requests. Its base URL must point at the
	// MediaWiki API endpoint (e.g. "https://en.wikiquote.org/w/api.php").
	Client *clients.Client

	// SourceName is the attribution name stamped on scraped records.
	SourceName string

	// PageTitle is the wiki page to parse. Defaults to the show's page.
	PageTitle string

	// PageURL is the human-readable page URL recorded as provenance.
	PageURL string

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// WikiquoteSource collects quotes from a Wikiquote page through the
// MediaWiki parse API. Wikiquote structures TV shows as season sections
// containing dialogue definition lists and standalone quote lists; the
// source tracks the current season heading while walking the rendered
// page and keeps only lines spoken by the character.
type WikiquoteSource struct {
	client    *clients.Client
	name      string
	pageTitle string
	pageURL   string
	logger    *slog.Logger
}

// NewWikiquoteSource creates a Wikiquote quote source.
func NewWikiquoteSource(cfg WikiquoteConfig) (*WikiquoteSource, error) {
	if cfg.Client == nil {
		return nil, errors.New("client is required")
	}

	if cfg.SourceName == "" {
		return nil, errors.New("source name is required")
	}

	pageTitle := cfg.PageTitle
	if pageTitle == "" {
		pageTitle = defaultWikiquotePage
	}

	pageURL := cfg.PageURL
	if pageURL == "" {
		pageURL = defaultWikiquotePageURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &WikiquoteSource{
		client:    cfg.Client,
		name:      cfg.SourceName,
		pageTitle: pageTitle,
		pageURL:   pageURL,
		logger:    logger.With(slog.String("source", cfg.SourceName)),
	}, nil
}

// Name returns the source's attribution name.
func (s *WikiquoteSource) Name() string {
	return s.name
}

// parseResponse is the MediaWiki parse API response envelope.
type parseResponse struct {
	Parse struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// Fetch retrieves and parses the Wikiquote page.
func (s *WikiquoteSource) Fetch(ctx context.Context) ([]domain.QuoteRecord, error) {
	ctx = logging.WithSource(ctx, s.name)

	query := url.Values{}
	query.Set("action", "parse")
	query.Set("page", s.pageTitle)
	query.Set("prop", "text")
	query.Set("format", "json")
	query.Set("formatversion", "2")

	resp, err := s.client.Get(ctx, "?"+query.Encode())
	if err != nil {
		return nil, domain.NewUnavailableError(s.name, err.Error())
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUnavailableError(s.name, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, domain.NewUnavailableError(s.name, "malformed API response")
	}

	if parsed.Error != nil {
		return nil, domain.NewUnavailableError(s.name, fmt.Sprintf("API error %s: %s", parsed.Error.Code, parsed.Error.Info))
	}

	doc, err := html.Parse(strings.NewReader(parsed.Parse.Text))
	if err != nil {
		return nil, domain.NewUnavailableError(s.name, "unparseable page HTML")
	}

	records := s.extractQuotes(doc)
	s.logger.InfoContext(ctx, "page scraped",
		slog.String("page", parsed.Parse.Title),
		slog.Int("quotes", len(records)),
	)

	return records, nil
}

// extractQuotes walks the rendered page in document order, tracking the
// current season from section headings. Dialogue lines live in <dd>
// elements, standalone quotes in <li> elements with a dash attribution.
// Lines found before the first season heading carry season zero and are
// dropped by the cleaning stage downstream.
func (s *WikiquoteSource) extractQuotes(doc *html.Node) []domain.QuoteRecord {
	var records []domain.QuoteRecord

	season := 0

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h2", "h3":
				if m := seasonHeadingPattern.FindStringSubmatch(nodeText(n)); m != nil {
					season, _ = strconv.Atoi(m[1])
				}

			case "dd":
				if text := extractSpokenLine(nodeText(n)); text != "" {
					records = append(records, s.record(text, season, "Wikiquote dialogue"))
				}

				// Nested replies belong to other speakers.
				return

			case "li":
				if text, ok := standaloneQuote(nodeText(n)); ok {
					records = append(records, s.record(text, season, "Wikiquote standalone"))
				}

				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return records
}

func (s *WikiquoteSource) record(text string, season int, context string) domain.QuoteRecord {
	return domain.QuoteRecord{
		Text:       text,
		Season:     season,
		SourceName: s.name,
		SourceURL:  s.pageURL,
		Context:    context,
	}
}

// standaloneQuote extracts a quote from a list entry of the form
// `"Quote text." - Red`. The attribution after the dash must name the
// character, otherwise the line belongs to someone else.
func standaloneQuote(line string) (string, bool) {
	if !strings.Contains(line, "Red") {
		return "", false
	}

	parts := attributionDashPattern.Split(line, -1)
	if len(parts) < 2 {
		return "", false
	}

	text := strings.TrimSpace(parts[0])
	attribution := strings.Join(parts[1:], " ")

	if !strings.Contains(attribution, "Red") || len(text) < minStandaloneLength {
		return "", false
	}

	text = strings.Trim(text, `"'`+"“”‘’")

	return strings.TrimSpace(text), true
}
