package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultMaxSuggestions caps how many generated suggestions are kept.
const DefaultMaxSuggestions = 3

// Generator produces supplemental, free-text improvement suggestions for
// a scored product. Implementations are external collaborators: any
// failure is returned as an error and the caller degrades to an empty
// list rather than failing the request.
type Generator interface {
	Suggest(ctx context.Context, payload map[string]any, summary string) ([]string, error)
}

// Noop is the generator used when no provider is configured.
// It always returns no suggestions.
type Noop struct{}

func (Noop) Suggest(context.Context, map[string]any, string) ([]string, error) {
	return nil, nil
}

// Client calls an OpenAI-compatible chat-completions endpoint to generate
// up to max improvement suggestions. The response text is expected to be
// plain bullet lines; leading bullet characters are stripped and the
// lines deduplicated.
type Client struct {
	url    string       // base URL of the completion service
	apiKey string       // bearer token, may be empty for local services
	model  string       // model name passed in the request
	max    int          // cap on returned suggestions
	client *http.Client // HTTP client with the configured timeout
}

// NewClient creates a generator client.
// Parameters:
//   - url: base URL of the service (the client appends /chat/completions)
//   - apiKey: bearer token; sent only when non-empty
//   - model: model name for the completion request
//   - timeout: per-request HTTP timeout
//   - max: suggestion cap; values < 1 fall back to DefaultMaxSuggestions
func NewClient(url, apiKey, model string, timeout time.Duration, max int) *Client {
	if max < 1 {
		max = DefaultMaxSuggestions
	}
	return &Client{
		url:    strings.TrimRight(url, "/"),
		apiKey: apiKey,
		model:  model,
		max:    max,
		client: &http.Client{Timeout: timeout},
	}
}

// Suggest asks the completion service for improvement ideas based on the
// raw payload and a short human-readable summary of the scoring outcome.
// Returns at most the configured number of distinct suggestion lines.
func (c *Client) Suggest(ctx context.Context, payload map[string]any, summary string) ([]string, error) {
	prompt := fmt.Sprintf(
		"You are a sustainability analyst. Based on the product payload and summary, "+
			"suggest up to %d concise, actionable improvements. "+
			"Avoid duplicates of common tips. Output as plain bullet lines (no numbering):\n\n"+
			"Payload: %v\nSummary: %s",
		c.max, payload, summary,
	)

	requestBody, err := json.Marshal(map[string]any{
		"model":       c.model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"temperature": 0.2,
		"max_tokens":  180,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/chat/completions", bytes.NewReader(requestBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator response error code=%d status=%s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	content := gjson.GetBytes(body, "choices.0.message.content").String()
	return parseSuggestionLines(content, c.max), nil
}

// parseSuggestionLines turns raw model output into a deduplicated list of
// at most max suggestion lines, stripping leading bullets and dashes.
func parseSuggestionLines(text string, max int) []string {
	seen := make(map[string]bool)
	suggestions := make([]string, 0, max)

	for _, line := range strings.Split(text, "\n") {
		cleaned := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		suggestions = append(suggestions, cleaned)
		if len(suggestions) >= max {
			break
		}
	}
	return suggestions
}
