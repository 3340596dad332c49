// Package inference calls a hosted text-generation API.
package inference

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

// ErrNotConfigured is returned when no model URL is set
var ErrNotConfigured = errors.New("inference: model url not configured")

// Client posts prompts to a text-generation endpoint
type Client struct {
	URL   string
	Token string
	HTTP  *http.Client
}

// New creates a client with the given timeout
func New(url, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		URL:   url,
		Token: token,
		HTTP:  &http.Client{Timeout: timeout},
	}
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

// Generate sends prompt and returns the generated text. The endpoint may answer with a
// single object or a list of generations; the first one is used.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.URL == "" {
		return "", ErrNotConfigured
	}

	body, _ := json.Marshal(map[string]interface{}{
		"inputs": prompt,
		"parameters": map[string]interface{}{
			"return_full_text": false,
		},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("inference error %s: %s", resp.Status, string(data))
	}

	var list []generation
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return "", fmt.Errorf("inference returned no generations")
		}
		return strings.TrimSpace(list[0].GeneratedText), nil
	}

	var single generation
	if err := json.Unmarshal(data, &single); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return strings.TrimSpace(single.GeneratedText), nil
}
