package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// DefaultActorID is recorded on audit fields when no actor header is present.
const DefaultActorID = "system"

// ActorMiddleware captures the acting user from the X-Actor-ID header so every
// mutation carries an attributable identity in its audit fields. Requests
// without the header are attributed to DefaultActorID.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-ID")
		if actorID == "" {
			actorID = DefaultActorID
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
func GetActorIDFromContext(c *gin.Context) string {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return DefaultActorID
	}

	actorID, ok := actorIDVal.(string)
	if !ok || actorID == "" {
		return DefaultActorID
	}
	return actorID
}
