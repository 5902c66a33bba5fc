// Package search implements the image-search proxy and the trending-terms
// aggregation.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snapseek/api/internal/api"
	"github.com/snapseek/api/internal/auth"
	"github.com/snapseek/api/internal/metrics"
	"github.com/snapseek/api/internal/models"
	"github.com/snapseek/api/internal/unsplash"
	"gorm.io/gorm"
)

// TopSearchesLimit caps the trending-terms response.
const TopSearchesLimit = 5

// Handlers bundles the dependencies of the search endpoints.
type Handlers struct {
	db       *gorm.DB
	upstream *unsplash.Client
	log      *slog.Logger
}

// NewHandlers creates the search handler set.
func NewHandlers(db *gorm.DB, upstream *unsplash.Client, log *slog.Logger) *Handlers {
	return &Handlers{db: db, upstream: upstream, log: log}
}

// Search answers POST /api/search. The SearchRecord is written before the
// upstream call so history and trends reflect search intent even when
// retrieval fails.
func (h *Handlers) Search(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		api.AuthError(c, "Authentication required", "Please log in to access this resource")
		return
	}
	term, ok := TermFrom(c)
	if !ok {
		api.ValidationError(c, "Invalid search term", "Search term is required and must be a string")
		return
	}

	record := models.SearchRecord{UserID: user.ID, Term: term}
	if err := h.db.Create(&record).Error; err != nil {
		h.log.Error("failed to persist search record",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
		api.Error(c, api.Options{Error: "Search failed", Message: "Unable to search images. Please try again."})
		return
	}

	start := time.Now()
	result, err := h.upstream.Search(c.Request.Context(), term)
	elapsed := time.Since(start)

	if err != nil {
		// The record above is kept on purpose: history logs intent, not success.
		h.log.Warn("upstream search failed",
			slog.String("term", term),
			slog.String("error", err.Error()))

		switch {
		case errors.Is(err, unsplash.ErrAuth):
			metrics.ObserveSearch("upstream_auth", elapsed)
			api.Error(c, api.Options{
				Error:   "Unsplash API authentication failed",
				Message: "Please check your Unsplash API key",
				Status:  http.StatusInternalServerError,
			})
		case errors.Is(err, unsplash.ErrTimeout):
			metrics.ObserveSearch("upstream_timeout", elapsed)
			api.Error(c, api.Options{
				Error:   "Request timeout",
				Message: "Search request timed out. Please try again.",
				Status:  http.StatusRequestTimeout,
			})
		default:
			metrics.ObserveSearch("upstream_error", elapsed)
			api.Error(c, api.Options{
				Error:   "Search failed",
				Message: "Unable to search images. Please try again.",
				Status:  http.StatusInternalServerError,
			})
		}
		return
	}

	metrics.ObserveSearch("ok", elapsed)
	api.Success(c, api.Options{
		Data: gin.H{
			"term":    term,
			"results": result.Results,
			"total":   result.Total,
		},
		Message: fmt.Sprintf("Found %d images for %q", result.Total, term),
	})
}

// TopSearches answers GET /api/top-searches: the five most frequent terms
// across all users, by exact string match. Case and whitespace variants
// count separately.
func (h *Handlers) TopSearches(c *gin.Context) {
	var top []models.TermCount
	err := h.db.Model(&models.SearchRecord{}).
		Select("term, COUNT(*) AS count").
		Group("term").
		Having("COUNT(*) >= ?", 1).
		Order("count DESC").
		Limit(TopSearchesLimit).
		Scan(&top).Error
	if err != nil {
		h.log.Error("top searches query failed", slog.String("error", err.Error()))
		api.Error(c, api.Options{
			Error:   "Failed to fetch top searches",
			Message: "Unable to retrieve top searches",
		})
		return
	}

	if top == nil {
		top = []models.TermCount{}
	}
	api.Success(c, api.Options{
		Data:    top,
		Message: "Top searches retrieved successfully",
	})
}
