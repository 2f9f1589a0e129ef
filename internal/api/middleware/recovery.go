package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/vector-geodezja/contact-api/internal/api/dto/common"
	"github.com/vector-geodezja/contact-api/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery converts any panic into the generic server error response. The
// panic value and stack go to the log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := logging.GetGlobalLogger()
				logger.Error("[PANIC] %s %s: %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					err,
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewErrorResponse("A server error occurred. Please try again later."))
			}
		}()

		c.Next()
	}
}
