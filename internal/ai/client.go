// Package ai wraps the hosted Gemini model behind the game's side features:
// session-note summarization and save-directory analysis. The game itself
// never requires the model; every caller must tolerate ErrUnavailable.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"nexuschronicles/internal/logging"
)

// ErrUnavailable means no API key is configured. Callers surface this as
// "AI features disabled", not as a failure.
var ErrUnavailable = errors.New("ai: no API key configured")

// Completer is the minimal completion surface the higher-level features
// need. Satisfied by *Client; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client is the Gemini-backed Completer.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Config carries the connection settings from the game config.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewClient creates a Gemini client. Returns ErrUnavailable without a key so
// the caller can degrade instead of erroring at startup.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrUnavailable
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Complete sends one prompt pair and returns the text response. A timeout is
// applied when the context carries no deadline.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}

	var cfg *genai.GenerateContentConfig
	if systemPrompt != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		logging.APIError("completion failed after %v: %v", time.Since(start), err)
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}

	logging.API("completion in %v, response_len=%d", time.Since(start), len(text))
	return text, nil
}
