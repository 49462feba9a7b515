// Package ai provides an optional captioning and question-answering client
// for an OpenAI-compatible chat-completions API. Without a configured
// credential every call is answered locally from deterministic templates,
// so the feature degrades gracefully instead of failing.
package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var aiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nasa_ai_requests_total",
	Help: "Total AI completion requests by kind and outcome",
}, []string{"kind", "outcome"}) // outcome: "ok", "error", "fallback"

const (
	// DefaultBaseURL is the OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com"

	// DefaultModel is the completion model used for captions and answers.
	DefaultModel = "gpt-3.5-turbo"

	captionMaxTokens = 60
	answerMaxTokens  = 120
)

// Client talks to an OpenAI-compatible chat-completions API.
// A Client with an empty APIKey is valid and serves fallback responses only.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// Config holds the AI client configuration.
type Config struct {
	// APIKey is the bearer credential; empty enables fallback mode
	APIKey string

	// BaseURL overrides the completion API host (for testing)
	BaseURL string

	// Model overrides the completion model
	Model string

	// Timeout is the per-request HTTP timeout
	Timeout time.Duration
}

// New creates a new AI client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: log.With().Str("component", "ai-client").Logger(),
	}
}

// Enabled reports whether an API credential is configured.
func (c *Client) Enabled() bool {
	return c.config.APIKey != ""
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Caption generates a caption for a NASA image. Without a credential it
// returns the deterministic fallback caption and never touches the network.
func (c *Client) Caption(ctx context.Context, title, explanation string) (string, error) {
	if !c.Enabled() {
		aiRequestsTotal.WithLabelValues("caption", "fallback").Inc()
		return FallbackCaption(title, explanation), nil
	}

	prompt := fmt.Sprintf(
		"Write a creative, educational, or poetic caption for this NASA image: %s. Description: %s",
		title, explanation)

	return c.complete(ctx, "caption", "You are a poetic space expert.", prompt, captionMaxTokens)
}

// Answer answers a user question about NASA data, given an arbitrary JSON
// context blob assembled by the frontend. Without a credential it returns
// the deterministic fallback answer and never touches the network.
func (c *Client) Answer(ctx context.Context, question string, contextData json.RawMessage) (string, error) {
	if !c.Enabled() {
		aiRequestsTotal.WithLabelValues("answer", "fallback").Inc()
		return FallbackAnswer(question, contextData), nil
	}

	contextJSON := string(contextData)
	if contextJSON == "" {
		contextJSON = "null"
	}
	prompt := fmt.Sprintf("Context: %s\nQuestion: %s", contextJSON, question)

	return c.complete(ctx, "answer",
		"You are a helpful NASA space expert. Use the provided context to answer user questions about NASA data.",
		prompt, answerMaxTokens)
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat-completions response we read.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, kind, system, prompt string, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		aiRequestsTotal.WithLabelValues(kind, "error").Inc()
		c.logger.Error().Err(err).Str("kind", kind).Msg("Completion request failed")
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		aiRequestsTotal.WithLabelValues(kind, "error").Inc()
		c.logger.Warn().
			Str("kind", kind).
			Int("status", resp.StatusCode).
			Msg("Completion request error")
		return "", fmt.Errorf("completion API status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		aiRequestsTotal.WithLabelValues(kind, "error").Inc()
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		aiRequestsTotal.WithLabelValues(kind, "error").Inc()
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		aiRequestsTotal.WithLabelValues(kind, "error").Inc()
		return "", fmt.Errorf("completion response has no choices")
	}

	aiRequestsTotal.WithLabelValues(kind, "ok").Inc()
	return parsed.Choices[0].Message.Content, nil
}
