package answers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/llm"
)

func newAskRouter(t *testing.T, capability llm.Capability) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo, id := seededRepo(t, "The sky is blue.")
	router := gin.New()
	NewHandler(&Service{Docs: repo, Capability: capability}).RegisterRoutes(router)
	return router, id
}

func postAsk(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAskHandlerSuccessWithOptionalFields(t *testing.T) {
	score, start, end := 0.5, 0, 16
	router, id := newAskRouter(t, &fakeCapability{answer: llm.AnswerResult{Answer: "The sky is blue.", Confidence: &score, Start: &start, End: &end}})

	resp := postAsk(router, `{"doc_id":"`+id+`","question":"What color is the sky?"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["answer"] != "The sky is blue." || payload["score"] != 0.5 || payload["start"] != float64(0) || payload["end"] != float64(16) {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestAskHandlerOmitsAbsentOptionalFields(t *testing.T) {
	router, id := newAskRouter(t, &fakeCapability{answer: llm.AnswerResult{Answer: ""}})

	resp := postAsk(router, `{"doc_id":"`+id+`","question":"Who won?"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload) != 1 || payload["answer"] != NotAvailable {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestAskHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       func(id string) string
		capErr     error
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown document",
			body:       func(string) string { return `{"doc_id":"0b8e3f0c-3c1e-4c53-9df6-8d2f8a0f2b6e","question":"q"}` },
			wantStatus: http.StatusNotFound,
			wantError:  "Document not found",
		},
		{
			name:       "malformed id",
			body:       func(string) string { return `{"doc_id":"xyz","question":"q"}` },
			wantStatus: http.StatusNotFound,
			wantError:  "Document not found",
		},
		{
			name:       "malformed json",
			body:       func(string) string { return `{"doc_id":` },
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to process question",
		},
		{
			name:       "missing question",
			body:       func(id string) string { return `{"doc_id":"` + id + `"}` },
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to process question",
		},
		{
			name:       "capability failure",
			body:       func(id string) string { return `{"doc_id":"` + id + `","question":"q"}` },
			capErr:     errors.New("provider down"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to process question",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, id := newAskRouter(t, &fakeCapability{err: tt.capErr})
			resp := postAsk(router, tt.body(id))
			if resp.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.Code)
			}
			var payload map[string]string
			if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if payload["error"] != tt.wantError || len(payload) != 1 {
				t.Fatalf("unexpected error body %v", payload)
			}
		})
	}
}
