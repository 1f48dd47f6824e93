package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPEngine calls a remote inference service for one direction.
// The request and response bodies are {"text": "..."}; the per-call
// deadline comes from the caller's context.
type HTTPEngine struct {
	url    string
	client *http.Client
}

// NewHTTPEngine builds an engine backed by the given service URL.
func NewHTTPEngine(url string) *HTTPEngine {
	return &HTTPEngine{
		url:    url,
		client: &http.Client{},
	}
}

type enginePayload struct {
	Text string `json:"text"`
}

func (e *HTTPEngine) Translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(enginePayload{Text: text})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return "", fmt.Errorf("engine returned status %d", resp.StatusCode)
	}

	var out enginePayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Text, nil
}
