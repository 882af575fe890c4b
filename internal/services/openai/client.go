package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultHTTPTimeout = 30 * time.Second

	completionTemperature = 0.2
)

// Client wraps an OpenAI-compatible chat completion API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks and
// self-hosted gateways).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(c *Client) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient constructs a chat completion client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Cleanup carries the normalized fields returned by the model.
type Cleanup struct {
	Title       string
	Description string
	Raw         string
}

// CleanupMetadata asks the model to normalize a title and description. When
// descriptionCleanup is false the model is told to touch the title only. The
// model may wrap its JSON in prose or code fences; the payload is recovered
// by taking the substring between the first and last brace.
func (c *Client) CleanupMetadata(ctx context.Context, title, description string, descriptionCleanup bool) (Cleanup, error) {
	var empty Cleanup
	if strings.TrimSpace(c.apiKey) == "" {
		return empty, errors.New("openai cleanup: api key required")
	}

	systemPrompt := TitleOnlyPrompt
	if descriptionCleanup {
		systemPrompt = TitleDescriptionPrompt
	}
	userPrompt := fmt.Sprintf("Title:\n%s\n\nDescription:\n%s\n\nReturn only JSON.", title, description)

	requestBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: completionTemperature,
	}
	endpoint, err := url.JoinPath(c.baseURL, "/chat/completions")
	if err != nil {
		return empty, fmt.Errorf("openai cleanup: build url: %w", err)
	}
	encoded, err := json.Marshal(requestBody)
	if err != nil {
		return empty, fmt.Errorf("openai cleanup: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return empty, fmt.Errorf("openai cleanup: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("openai cleanup: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("openai cleanup: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, fmt.Errorf("openai cleanup: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return empty, fmt.Errorf("openai cleanup: decode response: %w", err)
	}
	if completion.Error != nil {
		return empty, fmt.Errorf("openai cleanup: api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	if len(completion.Choices) == 0 {
		return empty, errors.New("openai cleanup: empty choices")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	payload, ok := extractJSON(content)
	if !ok {
		return empty, errors.New("openai cleanup: no JSON object in content")
	}

	cleanup := Cleanup{
		Title:       gjson.Get(payload, "title").String(),
		Description: gjson.Get(payload, "description").String(),
		Raw:         content,
	}
	if cleanup.Title == "" && cleanup.Description == "" {
		return empty, errors.New("openai cleanup: no usable content")
	}
	return cleanup, nil
}

// extractJSON returns the substring between the first '{' and the last '}'.
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return "", false
	}
	return content[start : end+1], true
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
