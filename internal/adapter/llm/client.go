// Package llm wraps the Anthropic Messages API as a plain text completion call.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/secondbrain-backend/internal/config"
)

// ErrEmptyResponse is returned when the model answers without any text block.
var ErrEmptyResponse = errors.New("llm: empty response")

// Client sends single-turn prompts to Claude.
type Client struct {
	api anthropic.Client
	log *slog.Logger
}

// New creates a Client. Requests are never retried by the SDK: callers decide
// whether a failed completion is worth another attempt.
func New(cfg config.LLMConfig, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api: anthropic.NewClient(opts...),
		log: logger.With("adapter", "llm"),
	}
}

// Complete sends prompt as a single user message and returns the concatenated
// text of the reply.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	start := time.Now()

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: messages.new (%s): %w", model, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	c.log.DebugContext(ctx, "llm completion",
		slog.String("model", model),
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
		slog.Duration("duration", time.Since(start)),
	)

	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
