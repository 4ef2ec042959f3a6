package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestIDHeaderHandling(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{name: "missing", inbound: "", reuse: false},
		{name: "well formed", inbound: "client-abc-123", reuse: true},
		{name: "contains space", inbound: "bad id", reuse: false},
		{name: "too long", inbound: strings.Repeat("a", maxRequestIDLength+1), reuse: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			r := gin.New()
			r.Use(RequestID())
			r.GET("/", func(c *gin.Context) {
				seen = RequestIDFromContext(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.inbound != "" {
				req.Header.Set("X-Request-Id", tc.inbound)
			}
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			got := resp.Header().Get("X-Request-Id")
			if got != seen {
				t.Fatalf("header %q does not match context %q", got, seen)
			}
			if tc.reuse {
				if got != tc.inbound {
					t.Fatalf("expected inbound id reused, got %q", got)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected generated uuid, got %q", got)
			}
		})
	}
}

func TestRequestIDFromContextWithoutMiddleware(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
