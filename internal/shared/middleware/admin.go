package middleware

import (
	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/actor"
	"library-backend/internal/shared/response"
)

// AdminMiddleware rejects requests whose actor is not an admin.
// Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := actor.Current(c)
		if !ok || !current.IsAdmin() {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
