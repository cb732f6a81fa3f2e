package common

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RespondError sends an error response with message.
func RespondError(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorResponse{Error: message})
}

// RespondErrorDetails sends an error response with message and underlying details.
func RespondErrorDetails(c *gin.Context, httpStatus int, message string, details string) {
	c.JSON(httpStatus, ErrorResponse{Error: message, Details: details})
}

// RespondErrorAbort sends an error response and aborts the handler chain.
func RespondErrorAbort(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{Error: message})
}
