// Package history implements the per-user search-history endpoints.
package history

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snapseek/api/internal/api"
	"github.com/snapseek/api/internal/auth"
	"github.com/snapseek/api/internal/models"
	"gorm.io/gorm"
)

// Limit caps the history response at the most recent entries.
const Limit = 20

// Entry is the history projection returned to clients.
type Entry struct {
	ID        uint      `json:"id"`
	Term      string    `json:"term"`
	Timestamp time.Time `json:"timestamp"`
}

// Handlers bundles the dependencies of the history endpoints.
type Handlers struct {
	db  *gorm.DB
	log *slog.Logger
}

// NewHandlers creates the history handler set.
func NewHandlers(db *gorm.DB, log *slog.Logger) *Handlers {
	return &Handlers{db: db, log: log}
}

// Get answers GET /api/history: the caller's 20 most recent searches,
// newest first. Records sharing a timestamp fall back to insertion order
// (id DESC) so the ordering is stable.
func (h *Handlers) Get(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		api.AuthError(c, "Authentication required", "Please log in to access this resource")
		return
	}

	var entries []Entry
	err := h.db.Model(&models.SearchRecord{}).
		Select("id, term, timestamp").
		Where("user_id = ?", user.ID).
		Order("timestamp DESC, id DESC").
		Limit(Limit).
		Scan(&entries).Error
	if err != nil {
		h.log.Error("history query failed",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
		api.Error(c, api.Options{
			Error:   "Failed to fetch search history",
			Message: "Unable to retrieve your search history",
		})
		return
	}

	if entries == nil {
		entries = []Entry{}
	}
	api.Success(c, api.Options{
		Data:    entries,
		Message: "Search history retrieved successfully",
	})
}

// Clear answers DELETE /api/history: bulk-deletes every record owned by
// the caller. Idempotent; clearing an empty history succeeds.
func (h *Handlers) Clear(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		api.AuthError(c, "Authentication required", "Please log in to access this resource")
		return
	}

	err := h.db.Where("user_id = ?", user.ID).Delete(&models.SearchRecord{}).Error
	if err != nil {
		h.log.Error("history clear failed",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
		api.Error(c, api.Options{
			Error:   "Failed to clear search history",
			Message: "Unable to clear your search history",
		})
		return
	}

	api.Success(c, api.Options{Message: "Search history cleared successfully"})
}
