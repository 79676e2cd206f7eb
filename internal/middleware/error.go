package middleware

import "github.com/gin-gonic/gin"

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// abortWithError aborts with body, or with an ErrorResponse when body is nil.
func abortWithError(c *gin.Context, status int, message string, body any) {
	if body != nil {
		c.AbortWithStatusJSON(status, body)
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    status,
		Message: message,
		TraceID: c.GetString(ContextRequestID),
	})
}
