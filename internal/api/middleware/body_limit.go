package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boiler-ai/backend/pkg/response"
)

// BodyLimit caps request bodies at maxBytes (e.g. 10<<20 = 10MB).
// A declared Content-Length over the limit is rejected up front; otherwise the body is wrapped
// so that reads past the limit fail.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "Request body too large")
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
