package utils

import (
	"github.com/vector-geodezja/contact-api/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs the underlying error and returns a generic client-facing
// response. It is used for the server-side error classes where detail must
// never reach the caller.
func HandleAPIError(c *gin.Context, err error, status int, message string) {
	logger := logging.GetGlobalLogger()
	logger.Error("%s %s from %s: %s: %v",
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		message,
		err,
	)
	HandleError(c, status, "A server error occurred. Please try again later.")
}
