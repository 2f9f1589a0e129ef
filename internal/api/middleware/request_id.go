package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every submission with an identifier so log lines for one
// request can be correlated. An ID supplied by an upstream proxy is kept,
// otherwise a fresh one is generated and echoed back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set("RequestID", id)
		c.Header(requestIDHeader, id)

		c.Next()
	}
}
