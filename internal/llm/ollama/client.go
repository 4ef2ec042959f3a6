package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"docqa-backend/internal/llm"
)

// DefaultModel is used when LLM_MODEL is empty.
const DefaultModel = "llama3.2"

// Client implements llm.Capability on a locally run Ollama server.
type Client struct {
	model         llms.Model
	maxInputChars int
}

// NewClient connects to the Ollama server at serverURL.
func NewClient(serverURL, model string, maxInputChars int) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	httpClient := &http.Client{Timeout: 5 * time.Minute}
	m, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
		ollama.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}
	return &Client{model: m, maxInputChars: maxInputChars}, nil
}

// Answer asks the model about docText.
func (c *Client) Answer(ctx context.Context, docText, question string) (llm.AnswerResult, error) {
	text, err := c.generate(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, llm.AnswerSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, llm.Truncate(docText, c.maxInputChars), question),
	})
	if err != nil {
		return llm.AnswerResult{}, err
	}
	return llm.AnswerResult{Answer: text}, nil
}

// Summarize asks the model for a summary of text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.generate(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, llm.Truncate(text, c.maxInputChars), llm.SummaryInstruction),
	})
}

func (c *Client) generate(ctx context.Context, messages []llms.MessageContent) (string, error) {
	resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

var _ llm.Capability = (*Client)(nil)
