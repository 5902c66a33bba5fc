package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// OAuthCredentials holds one provider's client id/secret pair. A provider is
// usable only when both values are set.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
}

// Configured reports whether the provider can be registered.
func (c OAuthCredentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Config holds application configuration loaded from environment variables
type Config struct {
	Env       string
	Port      string
	ClientURL string
	ServerURL string

	DatabaseURL string
	RedisURL    string

	SessionSecret string

	Google   OAuthCredentials
	Facebook OAuthCredentials
	Github   OAuthCredentials

	UnsplashAccessKey string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, applying a .env file first
// if one is present in the working directory.
func Load() *Config {
	// Best effort: a missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		Env:       getEnvWithDefault("ENV", "development"),
		Port:      getEnvWithDefault("PORT", "8000"),
		ClientURL: getEnvWithDefault("CLIENT_URL", "http://localhost:5173"),
		ServerURL: getEnvWithDefault("SERVER_URL", "http://localhost:8000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		Google: OAuthCredentials{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		},
		Facebook: OAuthCredentials{
			ClientID:     os.Getenv("FACEBOOK_APP_ID"),
			ClientSecret: os.Getenv("FACEBOOK_APP_SECRET"),
		},
		Github: OAuthCredentials{
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		},

		UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),
	}

	// Warn if using default session secret (insecure for production)
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev-secret-change-in-production-use-openssl-rand-hex-32"
		slog.Warn("using default SESSION_SECRET, generate a secure secret with: openssl rand -hex 32")
	}

	for _, p := range []struct {
		name  string
		creds OAuthCredentials
	}{
		{"google", cfg.Google},
		{"facebook", cfg.Facebook},
		{"github", cfg.Github},
	} {
		if !p.creds.Configured() {
			slog.Warn("oauth provider not configured, its login route will be unavailable",
				slog.String("provider", p.name))
		}
	}

	return cfg
}

// Provider returns the credentials for the named provider.
func (c *Config) Provider(name string) (OAuthCredentials, bool) {
	switch name {
	case "google":
		return c.Google, true
	case "facebook":
		return c.Facebook, true
	case "github":
		return c.Github, true
	}
	return OAuthCredentials{}, false
}

// CallbackURL builds the absolute OAuth callback URL for a provider.
func (c *Config) CallbackURL(provider string) string {
	return fmt.Sprintf("%s/api/auth/%s/callback", c.ServerURL, provider)
}

// Production reports whether the server runs with production settings
// (secure cookies, cross-site session cookie).
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
