// Package middleware provides gin middleware shared by every feature.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID is echoed back on every response.
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID is the gin context key holding the request ID.
	ContextRequestID = "requestID"
	// maxRequestIDLength bounds client supplied IDs.
	maxRequestIDLength = 64
)

// RequestID reuses a sane client-supplied X-Request-ID or generates a UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}
