package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/reddington-archives/quote-service/internal/adapters/clients"
	"github.com/reddington-archives/quote-service/internal/domain"
	"github.com/reddington-archives/quote-service/internal/platform/logging"
)

const (
	// defaultShowSlug is the show identifier in transcript site URLs.
	defaultShowSlug = "the-blacklist"

	// defaultFetchConcurrency bounds concurrent episode page fetches.
	// Transcript sites are small; hammering them gets the collector banned.
	defaultFetchConcurrency = 4
)

// seasonEpisodes is the episode count per season, used to construct
// episode URLs when the site's index page cannot be parsed.
var seasonEpisodes = map[int]int{
	1: 22, 2: 22, 3: 23, 4: 22, 5: 22,
	6: 22, 7: 19, 8: 22, 9: 22, 10: 22,
}

// episodeLinkPattern extracts season and episode from a transcript URL,
// e.g. "view_episode_scripts.php?tv-show=the-blacklist&episode=s01e07".
var episodeLinkPattern = regexp.MustCompile(`episode=s(\d+)e(\d+)`)

// episodeTitlePrefix strips the list numbering from episode link text,
// e.g. "7. Frederick Barnes" becomes "Frederick Barnes".
var episodeTitlePrefix = regexp.MustCompile(`^\d+\.\s*`)

// TranscriptsConfig configures the transcript site source.
type TranscriptsConfig struct {
	// Client performs the HTTP requests. Its base URL must point at the
	// transcript site root (e.g. "https://www.springfieldspringfield.co.uk").
	Client *clients.Client

	// SourceName is the attribution name stamped on scraped records.
	SourceName string

	// ShowSlug is the show identifier in the site's URLs.
	ShowSlug string

	// Seasons limits which seasons to scrape. Defaults to all known seasons.
	Seasons []int

	// Concurrency bounds parallel episode page fetches.
	Concurrency int

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// TranscriptsSource mines character lines from per-episode transcript
// pages. The site lists all episodes on an index page and serves each
// transcript as static HTML, so every record carries full season,
// episode, and title attribution.
type TranscriptsSource struct {
	client      *clients.Client
	name        string
	showSlug    string
	seasons     map[int]bool
	concurrency int
	logger      *slog.Logger
}

// NewTranscriptsSource creates a transcript site quote source.
func NewTranscriptsSource(cfg TranscriptsConfig) (*TranscriptsSource, error) {
	if cfg.Client == nil {
		return nil, errors.New("client is required")
	}

	if cfg.SourceName == "" {
		return nil, errors.New("source name is required")
	}

	showSlug := cfg.ShowSlug
	if showSlug == "" {
		showSlug = defaultShowSlug
	}

	seasons := make(map[int]bool, len(cfg.Seasons))
	for _, s := range cfg.Seasons {
		seasons[s] = true
	}

	if len(seasons) == 0 {
		for s := range seasonEpisodes {
			seasons[s] = true
		}
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TranscriptsSource{
		client:      cfg.Client,
		name:        cfg.SourceName,
		showSlug:    showSlug,
		seasons:     seasons,
		concurrency: concurrency,
		logger:      logger.With(slog.String("source", cfg.SourceName)),
	}, nil
}

// Name returns the source's attribution name.
func (s *TranscriptsSource) Name() string {
	return s.name
}

// episodeRef identifies one episode transcript page.
type episodeRef struct {
	Season  int
	Episode int
	Title   string
	Path    string
}

// Fetch scrapes transcripts for all configured seasons. Episode pages
// are fetched concurrently with bounded parallelism; individual page
// failures are logged and skipped so one missing transcript does not
// sink the whole run.
func (s *TranscriptsSource) Fetch(ctx context.Context) ([]domain.QuoteRecord, error) {
	ctx = logging.WithSource(ctx, s.name)

	episodes, err := s.episodeList(ctx)
	if err != nil {
		return nil, err
	}

	if len(episodes) == 0 {
		episodes = s.fallbackEpisodeList()
		s.logger.WarnContext(ctx, "episode index unparseable, constructing URLs from known episode counts",
			slog.Int("episodes", len(episodes)),
		)
	}

	// Results are collected per episode index so the output preserves
	// index page order regardless of fetch completion order.
	perEpisode := make([][]domain.QuoteRecord, len(episodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, ep := range episodes {
		g.Go(func() error {
			records, err := s.scrapeEpisode(gctx, ep)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}

				s.logger.WarnContext(gctx, "episode transcript skipped",
					slog.Int("season", ep.Season),
					slog.Int("episode", ep.Episode),
					slog.Any("error", err),
				)

				return nil
			}

			perEpisode[i] = records

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, domain.NewUnavailableError(s.name, err.Error())
	}

	var records []domain.QuoteRecord
	for _, eps := range perEpisode {
		records = append(records, eps...)
	}

	s.logger.InfoContext(ctx, "transcripts scraped",
		slog.Int("episodes", len(episodes)),
		slog.Int("quotes", len(records)),
	)

	return records, nil
}

// episodeList fetches the site's episode index page and extracts links
// to every transcript in the configured seasons.
func (s *TranscriptsSource) episodeList(ctx context.Context) ([]episodeRef, error) {
	path := fmt.Sprintf("/episode_scripts.php?tv-show=%s", s.showSlug)

	resp, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, domain.NewUnavailableError(s.name, err.Error())
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUnavailableError(s.name, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(s.name, "unparseable index HTML")
	}

	var episodes []episodeRef

	for _, link := range findElements(doc, "a") {
		href := attr(link, "href")
		if !strings.Contains(href, "view_episode_scripts.php") || !strings.Contains(href, s.showSlug) {
			continue
		}

		m := episodeLinkPattern.FindStringSubmatch(href)
		if m == nil {
			continue
		}

		season, _ := strconv.Atoi(m[1])
		episode, _ := strconv.Atoi(m[2])

		if !s.seasons[season] {
			continue
		}

		if !strings.HasPrefix(href, "/") {
			href = "/" + href
		}

		episodes = append(episodes, episodeRef{
			Season:  season,
			Episode: episode,
			Title:   episodeTitlePrefix.ReplaceAllString(nodeText(link), ""),
			Path:    href,
		})
	}

	return episodes, nil
}

// fallbackEpisodeList constructs episode URLs from known per-season
// episode counts when the index page yields nothing.
func (s *TranscriptsSource) fallbackEpisodeList() []episodeRef {
	var episodes []episodeRef

	for season := 1; season <= len(seasonEpisodes); season++ {
		if !s.seasons[season] {
			continue
		}

		for ep := 1; ep <= seasonEpisodes[season]; ep++ {
			episodes = append(episodes, episodeRef{
				Season:  season,
				Episode: ep,
				Path:    s.episodePath(season, ep),
			})
		}
	}

	return episodes
}

// episodePath builds the transcript URL path for one episode.
func (s *TranscriptsSource) episodePath(season, episode int) string {
	return fmt.Sprintf("/view_episode_scripts.php?tv-show=%s&episode=s%02de%02d", s.showSlug, season, episode)
}

// scrapeEpisode fetches one transcript page and extracts attributed lines.
func (s *TranscriptsSource) scrapeEpisode(ctx context.Context, ep episodeRef) ([]domain.QuoteRecord, error) {
	resp, err := s.client.Get(ctx, ep.Path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unparseable transcript HTML: %w", err)
	}

	transcript := extractTranscript(doc)
	if transcript == "" {
		return nil, errors.New("no transcript container found")
	}

	var records []domain.QuoteRecord

	for _, line := range strings.Split(transcript, "\n") {
		text := extractSpokenLine(strings.TrimSpace(line))
		if text == "" {
			continue
		}

		records = append(records, domain.QuoteRecord{
			Text:         text,
			Season:       ep.Season,
			Episode:      ep.Episode,
			EpisodeTitle: ep.Title,
			SourceName:   s.name,
			SourceURL:    s.client.BaseURL() + ep.Path,
			Context:      "From episode transcript",
		})
	}

	return records, nil
}

// extractTranscript returns the transcript text with line breaks
// preserved, or "" when the page has no recognizable script container.
func extractTranscript(doc *html.Node) string {
	container := findElementByClass(doc, "div", "scrolling-script-container")
	if container == nil {
		container = findElementByClass(doc, "div", "movie_script")
	}

	if container == nil {
		return ""
	}

	return textWithLineBreaks(container)
}

// textWithLineBreaks extracts text content, turning <br> elements into
// newlines so dialogue lines stay separable.
func textWithLineBreaks(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteString("\n")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return b.String()
}
