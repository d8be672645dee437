package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-agent/internal/llm"
)

const (
	defaultAPIURL   = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel    = "mistralai/mistral-7b-instruct"
	maxOutputTokens = 500
)

// Client implements llm.Completer against an OpenRouter-compatible
// chat-completions endpoint.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	policy     llm.RetryPolicy
	httpClient *http.Client
}

// NewClient constructs a Client. Empty apiURL and model fall back to the
// OpenRouter defaults. The per-attempt timeout lives in the policy, so the
// underlying http.Client carries none of its own.
func NewClient(apiKey, apiURL, model string, policy llm.RetryPolicy) *Client {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultAPIURL
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	defaults := llm.DefaultRetryPolicy()
	if policy.Retries < 0 {
		policy.Retries = 0
	}
	if policy.Timeout <= 0 {
		policy.Timeout = defaults.Timeout
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = defaults.BaseDelay
	}
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
		policy:     policy,
		httpClient: &http.Client{},
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// Complete sends the instruction/input pair and returns the normalized reply.
// A missing credential fails immediately before any network attempt. Transient
// failures (timeout, non-2xx status, transport error) are retried with
// exponential backoff up to the policy budget; attempts are strictly
// sequential.
func (c *Client) Complete(ctx context.Context, input, instruction string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", llm.ErrNoCredential
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: input},
		},
		MaxTokens: maxOutputTokens,
	})
	if err != nil {
		return "", err
	}

	var (
		lastErr    error
		lastStatus int
		lastBody   string
	)
	for attempt := 0; attempt <= c.policy.Retries; attempt++ {
		text, status, body, err := c.attempt(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		lastStatus = status
		lastBody = body

		if attempt < c.policy.Retries {
			select {
			case <-time.After(c.policy.Backoff(attempt)):
			case <-ctx.Done():
				return "", &llm.TransientError{Attempts: attempt + 1, Err: ctx.Err()}
			}
		}
	}

	return "", &llm.TransientError{
		Attempts: c.policy.Retries + 1,
		Status:   lastStatus,
		Body:     lastBody,
		Err:      lastErr,
	}
}

// attempt issues one request under the per-attempt timeout. The returned
// status and body are only meaningful when the failure came from a non-success
// response.
func (c *Client) attempt(ctx context.Context, payload []byte) (string, int, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.policy.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeout expiry aborts the in-flight call; it is retried like any
		// other transport failure.
		return "", 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, "", err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", resp.StatusCode, string(body), fmt.Errorf("openrouter: status %d: %s", resp.StatusCode, body)
	}

	return normalize(body), 0, "", nil
}

// extractors try known response shapes in order; first match wins.
var extractors = []func([]byte) (string, bool){
	extractChatCompletion,
	extractResult,
	extractOutput,
}

// normalize maps a successful response body to reply text. Bodies matching no
// known shape, including non-JSON ones, are returned verbatim so a 2xx
// response is never discarded for being unparsable.
func normalize(body []byte) string {
	for _, extract := range extractors {
		if text, ok := extract(body); ok {
			return text
		}
	}
	return string(body)
}

func extractChatCompletion(body []byte) (string, bool) {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", false
	}
	return parsed.Choices[0].Message.Content, true
}

func extractResult(body []byte) (string, bool) {
	return extractField(body, "result")
}

func extractOutput(body []byte) (string, bool) {
	return extractField(body, "output")
}

func extractField(body []byte, field string) (string, bool) {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false
	}
	raw, ok := parsed[field]
	if !ok || len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		// Empty and null values are no-matches so later extractors get a turn.
		if s == "" {
			return "", false
		}
		return s, true
	}
	return string(raw), true
}

var _ llm.Completer = (*Client)(nil)
