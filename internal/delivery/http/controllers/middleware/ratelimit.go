package middleware

import (
	"TUReviews/internal/i18n"
	"TUReviews/pkg/logger"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// RateLimit caps how often one client may hit a route for the same value of
// the param path parameter. Limiter errors let the request through. A request
// that ends in an error status gives its hit back.
func RateLimit(log logger.Log, l Limiter, scope, param string, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.Param(param) + ":" + c.ClientIP()
		ok, err := l.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			log.Warn("rate limiter unavailable", logger.Err(err), "key", key)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": T(c, i18n.TooManyVotes)})
			return
		}
		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := l.Release(c.Request.Context(), key); err != nil {
				log.Warn("rate limiter release failed", logger.Err(err), "key", key)
			}
		}
	}
}
