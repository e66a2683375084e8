package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	// userIDKey holds the authenticated caller's ID.
	userIDKey = contextKey("userID")
	// roleKey holds the caller's role, see the Role constants in utils.
	roleKey = contextKey("role")
)

// authMethodKey records which middleware authenticated the request.
const authMethodKey = "authMethod"

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetRoleFromContext returns the role of the authenticated caller.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, roleKey)
}

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if v, exists := c.Get(string(key)); exists {
		s, ok := v.(string)
		return s, ok
	}
	// check in the request context as well
	s, ok := c.Request.Context().Value(key).(string)
	return s, ok
}

// setUser stores the caller in both the Gin and the request context.
func setUser(c *gin.Context, userID, role, method string) {
	c.Set(string(userIDKey), userID)
	c.Set(string(roleKey), role)
	c.Set(authMethodKey, method)

	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	c.Request = c.Request.WithContext(context.WithValue(ctx, roleKey, role))
}
