package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/snapseek/api/internal/api"
	"github.com/snapseek/api/internal/models"
)

// Context key for the authenticated user set by RequireAuth.
const contextUserKey = "auth_user"

// RequireAuth ensures the request carries a valid session. It rejects with
// a 401 envelope before any handler side effect; downstream handlers read
// the caller via UserFrom.
func (h *Handlers) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.currentUser(c)
		if !ok {
			api.AuthError(c, "Authentication required", "Please log in to access this resource")
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// UserFrom returns the authenticated user placed in the context by
// RequireAuth.
func UserFrom(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
