package ratelimiter

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"math_solver/internal/api"
)

// Middleware limits requests per client IP. Limiter errors fail open.
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err, "remote_addr", c.ClientIP())
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
