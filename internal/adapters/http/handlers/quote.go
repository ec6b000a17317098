package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reddington-archives/quote-service/internal/adapters/http/dto"
	"github.com/reddington-archives/quote-service/internal/app"
	"github.com/reddington-archives/quote-service/internal/domain"
	"github.com/reddington-archives/quote-service/internal/ports"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// QuoteResponse is the HTTP response structure for a single quote.
type QuoteResponse struct {
	Quote        string `json:"quote"`
	Season       int    `json:"season"`
	Episode      int    `json:"episode,omitempty"`
	EpisodeTitle string `json:"episode_title,omitempty"`
	SourceName   string `json:"source_name,omitempty"`
	Context      string `json:"context,omitempty"`
}

// QuoteListResponse is the HTTP response structure for quote listings.
type QuoteListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
	Count  int             `json:"count"`
}

// StatsResponse is the HTTP response structure for collection statistics.
// Season keys are strings because JSON object keys always are.
type StatsResponse struct {
	Seasons      map[int]int `json:"seasons"`
	TotalQuotes  int         `json:"total_quotes"`
	TotalSeasons int         `json:"total_seasons"`
}

// toQuoteResponse converts a domain record to an HTTP response.
func toQuoteResponse(q domain.QuoteRecord) QuoteResponse {
	return QuoteResponse{
		Quote:        q.Text,
		Season:       q.Season,
		Episode:      q.Episode,
		EpisodeTitle: q.EpisodeTitle,
		SourceName:   q.SourceName,
		Context:      q.Context,
	}
}

// toQuoteListResponse converts a record slice to an HTTP response.
func toQuoteListResponse(quotes []domain.QuoteRecord) QuoteListResponse {
	out := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = toQuoteResponse(q)
	}

	return QuoteListResponse{Quotes: out, Count: len(out)}
}

// ListQuotes handles GET /api/v1/quotes
// Returns all quotes in canonical order, optionally filtered by
// ?season= and/or ?episode=. A filter matching nothing is an empty
// list; a non-positive filter is a 400.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var query dto.ListQuotesQuery
	if err := h.bindQuery(c, &query); err != nil {
		return
	}

	quotes, err := h.service.ListQuotes(c.Request.Context(), ports.ListFilter{
		Season:  query.Season,
		Episode: query.Episode,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteListResponse(quotes))
}

// GetRandomQuote handles GET /api/v1/quotes/random
// Returns one quote drawn uniformly at random.
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.service.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// GetFeaturedQuote handles GET /api/v1/quotes/featured
// Returns the quote of the day. The pick is a pure function of the
// current UTC date, so every replica serves the same quote all day.
func (h *QuoteHandler) GetFeaturedQuote(c *gin.Context) {
	quote, err := h.service.FeaturedQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// SearchQuotes handles GET /api/v1/quotes/search?query=
// Case-insensitive substring search over quote text and context.
// Queries under three significant characters match nothing.
func (h *QuoteHandler) SearchQuotes(c *gin.Context) {
	var query dto.SearchQuotesQuery
	if err := h.bindQuery(c, &query); err != nil {
		return
	}

	quotes := h.service.SearchQuotes(c.Request.Context(), query.Query)

	c.JSON(http.StatusOK, toQuoteListResponse(quotes))
}

// GetStats handles GET /api/v1/quotes/stats
// Returns per-season quote counts and totals.
func (h *QuoteHandler) GetStats(c *gin.Context) {
	stats := h.service.CollectionStats(c.Request.Context())

	c.JSON(http.StatusOK, StatsResponse{
		Seasons:      stats.PerSeason,
		TotalQuotes:  stats.TotalQuotes,
		TotalSeasons: stats.TotalSeasons,
	})
}

// APIIndex handles GET /api/v1
// Returns a short directory of the available endpoints and the
// collection size.
func (h *QuoteHandler) APIIndex(c *gin.Context) {
	stats := h.service.CollectionStats(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"endpoints": gin.H{
			"quotes":   "/api/v1/quotes?season=&episode=",
			"random":   "/api/v1/quotes/random",
			"featured": "/api/v1/quotes/featured",
			"search":   "/api/v1/quotes/search?query=",
			"stats":    "/api/v1/quotes/stats",
		},
		"stats": gin.H{
			"total_quotes": stats.TotalQuotes,
		},
	})
}

// bindQuery binds and validates query parameters, writing the error
// response itself. Returns a non-nil error when the request was handled.
func (h *QuoteHandler) bindQuery(c *gin.Context, v any) error {
	err := dto.BindQueryAndValidate(c, v)
	if err == nil {
		return nil
	}

	if dto.IsValidationError(err) {
		dto.HandleValidationErrors(c, dto.ValidationErrors(err))
		return err
	}

	if errors.Is(err, dto.ErrBinding) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"malformed query parameters",
		).WithTraceID(dto.GetTraceID(c)))

		return err
	}

	dto.HandleError(c, err)

	return err
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.APIIndex)

	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/featured", h.GetFeaturedQuote)
	quotes.GET("/search", h.SearchQuotes)
	quotes.GET("/stats", h.GetStats)
}
