package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/shared/server/respond"
	"docqa-backend/internal/shared/telemetry"
)

// Recovery recovers from panics and returns the generic error body for the route.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				message := c.GetString("failureMessage")
				if message == "" {
					message = "Unexpected server error"
				}
				respond.Error(c, http.StatusInternalServerError, message, fmt.Errorf("panic: %v", rec))
			}
		}()
		c.Next()
	}
}
