// Package client calls the document QA HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/a-h/jsonapi"
)

func New(baseURL string) Client {
	return Client{baseURL: baseURL}
}

type Client struct {
	baseURL string
}

type UploadResponse struct {
	DocID string `json:"doc_id"`
}

type AskRequest struct {
	DocID    string `json:"doc_id"`
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string   `json:"answer"`
	Score  *float64 `json:"score,omitempty"`
	Start  *int     `json:"start,omitempty"`
	End    *int     `json:"end,omitempty"`
}

type SummaryRequest struct {
	DocID string `json:"doc_id"`
}

// Upload sends r as the "file" form field and returns the new document id.
func (c Client) Upload(ctx context.Context, fileName string, r io.Reader) (resp UploadResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("upload").String()
	if err != nil {
		return resp, err
	}
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return resp, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err = io.Copy(part, r); err != nil {
		return resp, fmt.Errorf("failed to copy file: %w", err)
	}
	if err = writer.Close(); err != nil {
		return resp, fmt.Errorf("failed to close multipart body: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return resp, fmt.Errorf("failed to create request: %w", err)
	}
	data, err := do(httpReq, writer.FormDataContentType())
	if err != nil {
		return resp, err
	}
	if err = json.Unmarshal(data, &resp); err != nil {
		return resp, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return resp, nil
}

func (c Client) Ask(ctx context.Context, req AskRequest) (resp AskResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("ask").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[AskRequest, AskResponse](ctx, url, req)
}

// SummaryPDF returns the raw bytes of the summary PDF.
func (c Client) SummaryPDF(ctx context.Context, req SummaryRequest) ([]byte, error) {
	url, err := jsonapi.URL(c.baseURL).Path("download_summary").String()
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return do(httpReq, "application/json")
}

func do(req *http.Request, contentType string) ([]byte, error) {
	res, err := jsonapi.Raw(req, jsonapi.WithRequestHeader("Content-Type", contentType))
	if err != nil {
		return nil, fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, jsonapi.InvalidStatusError{
			Status: res.StatusCode,
			Body:   string(body),
		}
	}
	return body, nil
}
