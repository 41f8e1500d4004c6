package utils

import "github.com/gin-gonic/gin"

// Context keys set by the auth and request-id middlewares.
const (
	ctxUserID    = "userId"
	ctxRole      = "role"
	ctxRequestID = "requestId"
)

// CurrentUserID returns the authenticated user's id, zero if absent.
func CurrentUserID(c *gin.Context) uint {
	switch id := c.Value(ctxUserID).(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	}
	return 0
}

// CurrentRole returns the authenticated user's role, empty if absent.
func CurrentRole(c *gin.Context) string {
	if s, ok := c.Value(ctxRole).(string); ok {
		return s
	}
	return ""
}

// RequestID returns the id assigned to this request.
func RequestID(c *gin.Context) string {
	if s, ok := c.Value(ctxRequestID).(string); ok {
		return s
	}
	return ""
}
