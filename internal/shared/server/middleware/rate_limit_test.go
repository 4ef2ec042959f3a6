package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitOnlyLimitsConfiguredGroups(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	groupFor := func(c *gin.Context) string {
		if c.FullPath() == "/ask" {
			return "CAPABILITY"
		}
		return "DEFAULT"
	}

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: groupFor,
		Limiter:  limiter,
		Rules: map[string]RateLimitRule{
			"CAPABILITY": {Rate: 1, Burst: 2},
		},
	}))
	r.POST("/ask", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"answer": "blue"})
	})
	r.POST("/upload", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"doc_id": "abc"})
	})

	for i := 0; i < 5; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/upload", nil))
		if resp.Code != http.StatusCreated {
			t.Fatalf("upload request %d expected 201, got %d", i+1, resp.Code)
		}
	}

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/ask", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("ask request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/ask", nil))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("ask request 3 expected 429, got %d", resp.Code)
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		Limiter: limiter,
		Rules: map[string]RateLimitRule{
			"DEFAULT": {Rate: 1, Burst: 1},
		},
	}))
	r.GET("/limited", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if resp1.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.Code)
	}

	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp2.Code)
	}
	if resp2.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", resp2.Header().Get("Retry-After"))
	}

	var payload map[string]any
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "Too many requests" {
		t.Fatalf("unexpected error body: %v", payload)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 2, Burst: 1}

	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatalf("expected first call allowed")
	}
	ok, wait := limiter.Allow("k", rule)
	if ok {
		t.Fatalf("expected second call limited")
	}
	if wait != 500*time.Millisecond {
		t.Fatalf("expected 500ms wait, got %s", wait)
	}

	now = now.Add(500 * time.Millisecond)
	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatalf("expected call allowed after refill")
	}
}

func TestRateLimiterSweepsIdleBuckets(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	for i := 0; i < sweepEvery-1; i++ {
		limiter.Allow("client-"+strconv.Itoa(i), rule)
	}
	if got := len(limiter.buckets); got != sweepEvery-1 {
		t.Fatalf("expected %d buckets, got %d", sweepEvery-1, got)
	}

	now = now.Add(3 * time.Second)
	limiter.Allow("fresh", rule)
	if got := len(limiter.buckets); got != 1 {
		t.Fatalf("expected idle buckets swept, got %d remaining", got)
	}
}

func TestRateLimiterDisabledRules(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for _, rule := range []RateLimitRule{{Rate: 0, Burst: 5}, {Rate: 5, Burst: 0}} {
		for i := 0; i < 10; i++ {
			if ok, _ := limiter.Allow("k", rule); !ok {
				t.Fatalf("expected disabled rule %+v to allow", rule)
			}
		}
	}
	var nilLimiter *RateLimiter
	if ok, _ := nilLimiter.Allow("k", RateLimitRule{Rate: 1, Burst: 1}); !ok {
		t.Fatalf("expected nil limiter to allow")
	}
}
