// Package health serves the liveness/config endpoint.
package health

import (
	"github.com/gin-gonic/gin"
	"github.com/snapseek/api/internal/api"
	"github.com/snapseek/api/internal/config"
)

// Version is stamped at build time with -ldflags.
var Version = "1.0.0"

// Handler answers GET /api/health with the server version, environment and
// which OAuth providers are configured.
func Handler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		api.Success(c, api.Options{
			Message: "Server is running",
			Data: gin.H{
				"version":     Version,
				"environment": cfg.Env,
				"oauth": gin.H{
					"google":   cfg.Google.Configured(),
					"facebook": cfg.Facebook.Configured(),
					"github":   cfg.Github.Configured(),
				},
			},
		})
	}
}
