package utils

import "github.com/gin-gonic/gin"

// ErrorResponse is the uniform error body for API failures.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error writes a standard error response with an application error code.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
