package utils

import (
	"net/http"

	"github.com/vector-geodezja/contact-api/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with an optional message
func HandleSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewOKResponse(message))
}

// HandleError sends an error response with the given status code. The message
// is client-facing; callers must not pass internal detail.
func HandleError(c *gin.Context, status int, message string) {
	c.JSON(status, common.NewErrorResponse(message))
}
