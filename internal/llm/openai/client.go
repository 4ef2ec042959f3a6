package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"docqa-backend/internal/llm"
)

// DefaultModel is used when LLM_MODEL is empty.
const DefaultModel = "gpt-4o-mini"

// Client implements llm.Capability against any OpenAI-compatible chat endpoint.
type Client struct {
	client        *openai.Client
	model         string
	maxInputChars int
}

// NewClient builds a client. An empty baseURL targets api.openai.com.
func NewClient(apiKey, baseURL, model string, maxInputChars int) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	config := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		client:        openai.NewClientWithConfig(config),
		model:         model,
		maxInputChars: maxInputChars,
	}, nil
}

// Answer sends the document and the question as separate user turns.
func (c *Client) Answer(ctx context.Context, docText, question string) (llm.AnswerResult, error) {
	text, err := c.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: llm.AnswerSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: llm.Truncate(docText, c.maxInputChars)},
		{Role: openai.ChatMessageRoleUser, Content: question},
	})
	if err != nil {
		return llm.AnswerResult{}, err
	}
	return llm.AnswerResult{Answer: text}, nil
}

// Summarize asks for a summary of text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: llm.Truncate(text, c.maxInputChars)},
		{Role: openai.ChatMessageRoleUser, Content: llm.SummaryInstruction},
	})
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ llm.Capability = (*Client)(nil)
