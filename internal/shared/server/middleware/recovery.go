package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"job-optimizer/internal/shared/apperr"
	"job-optimizer/internal/shared/server/respond"
	"job-optimizer/internal/shared/telemetry"
)

// Recovery recovers from panics and returns the 500 error envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				respond.Error(c, http.StatusInternalServerError, apperr.KindInternal, "Unexpected server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
