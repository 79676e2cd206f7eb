package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const DefaultMaxBodySize int64 = 1 << 20 // 1MB

// SizeLimit rejects declared oversize bodies and caps the rest while reading.
// A nil body answers with an ErrorResponse.
func SizeLimit(maxBodySize int64, body any) gin.HandlerFunc {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBodySize {
			abortWithError(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("body size exceeds %d bytes", maxBodySize), body)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
		c.Next()
	}
}
