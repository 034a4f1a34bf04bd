package actor

import (
	"github.com/gin-gonic/gin"
)

// Roles known to the system
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

const contextKey = "currentActor"

// Actor is the authenticated caller: {id, role}.
// Resolved by the auth middleware, never persisted.
type Actor struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SetCurrent stores the actor in the gin context
func SetCurrent(c *gin.Context, a Actor) {
	c.Set(contextKey, a)
}

// Current returns the actor set by the auth middleware
func Current(c *gin.Context) (Actor, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return Actor{}, false
	}
	a, ok := v.(Actor)
	return a, ok
}
