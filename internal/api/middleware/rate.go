package middleware

import (
	"net/http"

	"github.com/vector-geodezja/contact-api/internal/api/dto/common"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the global burst limiter
type RateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware creates a process-wide burst limiter. It sheds floods
// before they reach the handler; the per-client hourly window is enforced
// separately inside the submission pipeline.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				common.NewErrorResponse("Rate limit exceeded. Please try again later."))
			return
		}

		c.Next()
	}
}
