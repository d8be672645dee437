package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const togetherTimeout = 20 * time.Second

// TogetherClient posts an {input, instruction} pair to a configured
// Together-style summarization endpoint. It is deliberately light: when the
// endpoint or key is absent the client reports itself disabled and callers
// skip it.
type TogetherClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewTogetherClient constructs a client; apiURL and apiKey may be empty.
func NewTogetherClient(apiURL, apiKey string) *TogetherClient {
	return &TogetherClient{
		apiURL:     strings.TrimSpace(apiURL),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: togetherTimeout},
	}
}

// Enabled reports whether the integration is configured.
func (c *TogetherClient) Enabled() bool {
	return c.apiURL != "" && c.apiKey != ""
}

type togetherRequest struct {
	Input       string `json:"input"`
	Instruction string `json:"instruction"`
}

// Summarize sends the pair and returns whichever of output/result/summary the
// endpoint replied with.
func (c *TogetherClient) Summarize(ctx context.Context, input, instruction string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("together integration not configured")
	}
	if instruction == "" {
		instruction = "Summarize"
	}

	payload, err := json.Marshal(togetherRequest{Input: input, Instruction: instruction})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("together: status %d: %s", resp.StatusCode, body)
	}

	var parsed struct {
		Output  string `json:"output"`
		Result  string `json:"result"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("together: parse response: %w", err)
	}
	for _, candidate := range []string{parsed.Output, parsed.Result, parsed.Summary} {
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("together: response carried no output")
}
