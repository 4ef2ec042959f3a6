package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"docqa-backend/internal/llm"
)

// DefaultModel is used when LLM_MODEL is empty.
const DefaultModel = "gemini-1.5-flash"

// Client implements llm.Capability on the Gemini API.
type Client struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	maxInputChars int
}

// NewClient constructs a Gemini-backed capability. The API key always comes from configuration.
func NewClient(ctx context.Context, apiKey, model string, maxInputChars int) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{
		client:        client,
		model:         client.GenerativeModel(model),
		maxInputChars: maxInputChars,
	}, nil
}

// Answer sends the document and the question as two parts of one prompt.
func (c *Client) Answer(ctx context.Context, docText, question string) (llm.AnswerResult, error) {
	text, err := c.generate(ctx,
		genai.Text(llm.Truncate(docText, c.maxInputChars)),
		genai.Text(question),
	)
	if err != nil {
		return llm.AnswerResult{}, err
	}
	return llm.AnswerResult{Answer: text}, nil
}

// Summarize asks the model for a summary of text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.generate(ctx,
		genai.Text(llm.Truncate(text, c.maxInputChars)),
		genai.Text(llm.SummaryInstruction),
	)
}

// Close releases the underlying client.
func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", llm.ErrEmptyResponse
	}
	var b strings.Builder
	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

var _ llm.Capability = (*Client)(nil)
