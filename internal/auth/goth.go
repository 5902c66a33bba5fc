package auth

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"
	"github.com/snapseek/api/internal/config"
	"github.com/snapseek/api/internal/models"
)

// InitProviders registers the Goth OAuth providers that have credentials
// configured. A provider with missing credentials is skipped; its login
// route answers "provider unavailable" instead of crashing startup.
func InitProviders(cfg *config.Config) {
	// Configure Gothic's session store for the OAuth state cookie.
	// The default has Secure=true which breaks localhost (plain HTTP).
	gothStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	gothStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = gothStore

	var registered []string

	if cfg.Google.Configured() {
		goth.UseProviders(google.New(
			cfg.Google.ClientID,
			cfg.Google.ClientSecret,
			cfg.CallbackURL(models.ProviderGoogle),
			"email",
			"profile",
		))
		registered = append(registered, models.ProviderGoogle)
	}

	if cfg.Facebook.Configured() {
		goth.UseProviders(facebook.New(
			cfg.Facebook.ClientID,
			cfg.Facebook.ClientSecret,
			cfg.CallbackURL(models.ProviderFacebook),
			"email",
		))
		registered = append(registered, models.ProviderFacebook)
	}

	if cfg.Github.Configured() {
		goth.UseProviders(github.New(
			cfg.Github.ClientID,
			cfg.Github.ClientSecret,
			cfg.CallbackURL(models.ProviderGithub),
			"user:email",
		))
		registered = append(registered, models.ProviderGithub)
	}

	slog.Info("goth providers initialized", slog.Any("providers", registered))
}

// providerRegistered reports whether the named provider was configured at
// startup.
func providerRegistered(name string) bool {
	_, err := goth.GetProvider(name)
	return err == nil
}
