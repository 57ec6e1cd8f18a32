package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

const (
	// UserIDHeader carries the pre-resolved numeric user ID
	UserIDHeader = "X-User-ID"

	// UsernameHeader carries the display name used in history rows
	UsernameHeader = "X-User-Name"

	// UserRoleHeader carries the caller's role ("admin" overrides task assignment)
	UserRoleHeader = "X-User-Role"

	// ActorKey is the key used to store the actor in the gin context
	ActorKey = "actor"
)

// Actor middleware extracts the caller identity from trusted headers set by
// the upstream gateway. The engine never parses credentials itself; requests
// without a valid X-User-ID are rejected before reaching any handler.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDHeader := c.GetHeader(UserIDHeader)
		userID, err := strconv.ParseInt(userIDHeader, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(401, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing or invalid " + UserIDHeader + " header",
				},
			})
			return
		}

		username := c.GetHeader(UsernameHeader)
		if username == "" {
			username = userIDHeader
		}

		c.Set(ActorKey, shared.Actor{
			UserID:   userID,
			Username: username,
			Role:     c.GetHeader(UserRoleHeader),
		})

		c.Next()
	}
}

// GetActor retrieves the actor from the gin context. The zero Actor is
// returned when the middleware did not run.
func GetActor(c *gin.Context) shared.Actor {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(shared.Actor); ok {
			return actor
		}
	}
	return shared.Actor{}
}
