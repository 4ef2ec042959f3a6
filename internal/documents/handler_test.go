package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/documents"
)

func newUploadRouter(maxBytes int64) (*gin.Engine, *documents.MemoryRepo) {
	gin.SetMode(gin.TestMode)
	repo := documents.NewMemoryRepo()
	router := gin.New()
	documents.NewHandler(&documents.Service{Repo: repo}, maxBytes).RegisterRoutes(router)
	return router, repo
}

func multipartBody(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile(field, "notes.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadReturnsDocID(t *testing.T) {
	router, repo := newUploadRouter(0)

	body, contentType := multipartBody(t, "file", []byte("The sky is blue."))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created documents.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	doc, err := repo.Get(req.Context(), created.DocID)
	if err != nil {
		t.Fatalf("stored document missing: %v", err)
	}
	if doc.Text != "The sky is blue." {
		t.Fatalf("unexpected stored text %q", doc.Text)
	}
}

func TestUploadFailures(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		content  []byte
		maxBytes int64
	}{
		{name: "missing file field", field: "document", content: []byte("hello")},
		{name: "invalid utf-8", field: "file", content: []byte{0xff, 0xfe, 0x00}},
		{name: "too large", field: "file", content: bytes.Repeat([]byte("a"), 4096), maxBytes: 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newUploadRouter(tt.maxBytes)
			body, contentType := multipartBody(t, tt.field, tt.content)
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d", resp.Code)
			}
			var payload map[string]string
			if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if payload["error"] != "Failed to upload document" || len(payload) != 1 {
				t.Fatalf("unexpected error body: %v", payload)
			}
		})
	}
}
