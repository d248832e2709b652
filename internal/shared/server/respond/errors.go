package respond

import (
	"github.com/gin-gonic/gin"

	"job-optimizer/internal/shared/apperr"
	"job-optimizer/internal/shared/telemetry"
)

// ErrorResponse is the envelope written for every failure.
type ErrorResponse struct {
	Error      bool   `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// Error sends the error envelope with an explicit status.
func Error(c *gin.Context, status int, kind apperr.Kind, message string) {
	fields := map[string]any{
		"status":     status,
		"kind":       string(kind),
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:      true,
		Message:    message,
		StatusCode: status,
	})
}

// Fail maps err to its status and writes the envelope. A non-empty prefix is prepended
// to the message for server-side failures, e.g. "Error analyzing resume: ...".
func Fail(c *gin.Context, err error, prefix string) {
	kind := apperr.KindOf(err)
	status := apperr.Status(kind)
	message := apperr.PublicMessage(err)
	if prefix != "" && status >= 500 {
		message = prefix + ": " + message
	}
	if ae := asAppErr(err); ae != nil && ae.Raw != "" {
		telemetry.Debug("llm.raw_response", map[string]any{
			"request_id": c.GetString("requestId"),
			"op":         ae.Op,
			"raw":        ae.Raw,
		})
	}
	Error(c, status, kind, message)
}
