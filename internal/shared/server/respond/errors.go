package respond

import (
	"github.com/gin-gonic/gin"

	"docqa-backend/internal/shared/telemetry"
)

// ErrorResponse is the body of every user-visible failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error logs the underlying cause with request context and aborts with {"error": message}.
// The cause never reaches the client.
func Error(c *gin.Context, status int, message string, cause error) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if op := c.GetString("operation"); op != "" {
		fields["operation"] = op
	}
	if docID := c.GetString("docId"); docID != "" {
		fields["doc_id"] = docID
	}
	if cause != nil {
		fields["err"] = cause.Error()
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
