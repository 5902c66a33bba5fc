// Package auth implements the OAuth handshake, session issuance, and the
// authentication middleware.
package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
	"github.com/snapseek/api/internal/api"
	"github.com/snapseek/api/internal/config"
	"github.com/snapseek/api/internal/models"
	"github.com/snapseek/api/internal/session"
	"gorm.io/gorm"
)

// Handlers bundles the dependencies of the auth endpoints. One instance is
// wired into the router at startup; no package-level state.
type Handlers struct {
	db       *gorm.DB
	sessions session.Store
	cookies  *session.Cookies
	cfg      *config.Config
	log      *slog.Logger
}

// NewHandlers creates the auth handler set.
func NewHandlers(db *gorm.DB, sessions session.Store, cookies *session.Cookies, cfg *config.Config, log *slog.Logger) *Handlers {
	return &Handlers{db: db, sessions: sessions, cookies: cookies, cfg: cfg, log: log}
}

// Begin starts the OAuth redirect for GET /api/auth/:provider.
func (h *Handlers) Begin(c *gin.Context) {
	provider := c.Param("provider")
	if !models.ValidProvider(provider) {
		api.NotFound(c, "Unknown provider", "Supported providers: google, facebook, github")
		return
	}
	if !providerRegistered(provider) {
		api.Error(c, api.Options{
			Error:   "Provider unavailable",
			Message: "This login provider is not configured on the server",
			Status:  http.StatusServiceUnavailable,
		})
		return
	}

	// Gothic resolves the provider from the query string.
	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// Callback completes the OAuth flow for GET /api/auth/:provider/callback:
// it exchanges the one-time code, resolves or creates the User, establishes
// a session, and redirects to the client. Provider errors are logged but
// never exposed; the browser only sees the failure redirect.
func (h *Handlers) Callback(c *gin.Context) {
	provider := c.Param("provider")

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		h.log.Warn("oauth exchange failed",
			slog.String("provider", provider),
			slog.String("error", err.Error()))
		h.failureRedirect(c)
		return
	}

	profile, err := NewProfile(gothUser)
	if err != nil {
		h.log.Warn("oauth profile rejected",
			slog.String("provider", provider),
			slog.String("error", err.Error()))
		h.failureRedirect(c)
		return
	}

	user, err := ResolveUser(h.db, profile)
	if err != nil {
		h.log.Error("user resolution failed",
			slog.String("provider", provider),
			slog.String("error", err.Error()))
		h.failureRedirect(c)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("session creation failed", slog.String("error", err.Error()))
		h.failureRedirect(c)
		return
	}
	if err := h.cookies.Write(c, token); err != nil {
		h.log.Error("session cookie write failed", slog.String("error", err.Error()))
		h.failureRedirect(c)
		return
	}

	h.log.Info("user authenticated",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("provider", provider))
	c.Redirect(http.StatusFound, h.cfg.ClientURL)
}

// Status answers GET /api/auth/status. Always 200; authentication state is
// carried in the payload, not the HTTP status.
func (h *Handlers) Status(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		api.Success(c, api.Options{
			Data:    gin.H{"user": nil},
			Message: "User is not authenticated",
		})
		return
	}

	api.Success(c, api.Options{
		Data:    gin.H{"user": user.Project()},
		Message: "User is authenticated",
	})
}

// Logout answers POST /api/auth/logout. Idempotent: logging out without a
// session still succeeds.
func (h *Handlers) Logout(c *gin.Context) {
	if token, ok := h.cookies.Read(c); ok {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			h.log.Error("session destroy failed", slog.String("error", err.Error()))
			api.Error(c, api.Options{Error: "Logout failed", Message: "Failed to logout user"})
			return
		}
	}

	h.cookies.Clear(c)
	api.Success(c, api.Options{Message: "Logged out successfully"})
}

func (h *Handlers) failureRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, h.cfg.ClientURL+"/login?error=auth_failed")
}

// currentUser loads the caller's User from the session cookie, if any.
func (h *Handlers) currentUser(c *gin.Context) (*models.User, bool) {
	token, ok := h.cookies.Read(c)
	if !ok {
		return nil, false
	}

	userID, ok, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil || !ok {
		return nil, false
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}
