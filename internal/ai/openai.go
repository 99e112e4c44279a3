// Package ai wraps the chat-completion API used to summarise journal text.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is the chat model used when OPENAI_MODEL is unset.
	DefaultModel = "gpt-4o-mini"
	// DefaultTimeout bounds a single completion call.
	DefaultTimeout = 30 * time.Second
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("OPENAI_API_KEY is not set")

// Config holds the credential and model settings for the client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Configured reports whether a credential is present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Client sends a system + user prompt pair and returns the model's text.
// A Client built from an unconfigured Config is valid but every call fails with ErrNotConfigured.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewClient builds a client from cfg, filling defaults for model and timeout.
func NewClient(cfg Config) *Client {
	c := &Client{
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if !cfg.Configured() {
		return c
	}

	clientConfig := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	c.client = openai.NewClientWithConfig(clientConfig)
	return c
}

func (c *Client) Configured() bool {
	return c != nil && c.client != nil
}

func (c *Client) Model() string { return c.model }

// Timeout is the per-call deadline callers should apply.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Generate runs one chat completion with exactly two messages: system, then user.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
