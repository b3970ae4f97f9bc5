package reading

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultOpenAIURL is the chat completions endpoint.
const DefaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIConfig configures the OpenAI generator.
type OpenAIConfig struct {
	APIKey  string
	URL     string
	Model   string
	Timeout time.Duration
}

// OpenAI generates readings with a chat completion call.
type OpenAI struct {
	cfg        OpenAIConfig
	httpClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

var errEmptyCompletion = errors.New("completion has no content")

// ErrNotConfigured is returned by Generate when no API key is set.
var ErrNotConfigured = errors.New("openai api key not configured")

// Enabled reports whether an API key is configured.
func (o *OpenAI) Enabled() bool {
	return o.cfg.APIKey != ""
}

// NewOpenAI returns a generator for cfg. Without an API key every call
// fails with ErrNotConfigured.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.URL == "" {
		cfg.URL = DefaultOpenAIURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAI{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate sends the rendered prompt and returns the first choice.
func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	if o.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model:       o.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: Prompt(req)}},
		MaxTokens:   500,
		Temperature: 0.8,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("openai status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errEmptyCompletion
	}

	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}
