package search

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/snapseek/api/internal/api"
	"github.com/snapseek/api/internal/models"
)

// Context key for the validated, trimmed term.
const contextTermKey = "search_term"

// ValidateTerm is the POST /api/search validation middleware. Checks run in
// order: term present and a string, non-empty after trimming, at most 100
// characters. The trimmed value replaces the input for downstream handlers.
func ValidateTerm() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Term any `json:"term"`
		}

		if err := c.ShouldBindJSON(&body); err != nil {
			api.ValidationError(c, "Invalid search term", "Search term is required and must be a string")
			c.Abort()
			return
		}

		term, ok := body.Term.(string)
		if !ok || term == "" {
			api.ValidationError(c, "Invalid search term", "Search term is required and must be a string")
			c.Abort()
			return
		}

		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			api.ValidationError(c, "Empty search term", "Search term cannot be empty or whitespace")
			c.Abort()
			return
		}

		// Length counts characters, not bytes, so multibyte terms are
		// measured the same way the limit is documented.
		if utf8.RuneCountInString(trimmed) > models.MaxTermLength {
			api.ValidationError(c, "Search term too long", "Search term must be less than 100 characters")
			c.Abort()
			return
		}

		c.Set(contextTermKey, trimmed)
		c.Next()
	}
}

// TermFrom returns the validated term placed in the context by ValidateTerm.
func TermFrom(c *gin.Context) (string, bool) {
	v, exists := c.Get(contextTermKey)
	if !exists {
		return "", false
	}
	term, ok := v.(string)
	return term, ok
}
