package seo

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrMissingAPIKey is returned on the first completion when no key was configured.
var ErrMissingAPIKey = errors.New("summarization service API key is not set")

// AnthropicCompleter implements Completer with the Anthropic Messages API.
type AnthropicCompleter struct {
	client anthropic.Client
	apiKey string
	model  string
}

// NewAnthropicCompleter builds a completer for model. The SDK's automatic
// retries are disabled; extra options (base URL, HTTP client) are applied last.
func NewAnthropicCompleter(apiKey, model string, opts ...option.RequestOption) *AnthropicCompleter {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}

	return &AnthropicCompleter{
		client: anthropic.NewClient(append(base, opts...)...),
		apiKey: apiKey,
		model:  model,
	}
}

// Complete sends prompt as a single user message and returns the first text block.
func (c *AnthropicCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errEmptyCompletion
}
