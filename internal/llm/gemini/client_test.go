package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"docqa-backend/internal/llm"
)

func TestResponseText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr error
	}{
		{name: "nil response", resp: nil, wantErr: llm.ErrEmptyResponse},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: llm.ErrEmptyResponse},
		{
			name: "joins text parts and trims",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("  The sky "), genai.Text("is blue.\n")}},
			}}},
			want: "The sky is blue.",
		},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.resp)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("responseText: %v", err)
			}
			if got != tt.want {
				t.Fatalf("responseText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), " ", "", 0); err == nil {
		t.Fatalf("expected error without api key")
	}
}
