package middleware

import "github.com/gin-gonic/gin"

// personIDKey is the key used to store the calling person's ID in the Gin
// context. Using a custom type prevents collisions.
const personIDKey = contextKey("personID")

// personIDHeader carries the caller identity. Authentication itself lives in
// front of this service; the header is trusted as resolved upstream.
const personIDHeader = "X-Person-ID"

// PersonIdentityMiddleware copies the upstream-resolved person id from the
// request header into the Gin context.
func PersonIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if personID := c.GetHeader(personIDHeader); personID != "" {
			c.Set(string(personIDKey), personID)
		}
		c.Next()
	}
}

// GetPersonIDFromContext retrieves the calling person's ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetPersonIDFromContext(c *gin.Context) (string, bool) {
	personIDVal, exists := c.Get(string(personIDKey))
	if !exists {
		return "", false
	}

	personID, ok := personIDVal.(string)
	if !ok {
		return "", false
	}

	return personID, true
}
