package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/vovakirdan/babelroom-server/internal/lang"
)

// HTTPRecognizer posts audio to a whisper-style transcription service
// and decodes the {"text", "language"} response.
type HTTPRecognizer struct {
	url    string
	client *http.Client
}

// NewHTTPRecognizer builds a recognizer backed by the given service URL.
func NewHTTPRecognizer(serviceURL string) *HTTPRecognizer {
	return &HTTPRecognizer{
		url:    serviceURL,
		client: &http.Client{},
	}
}

func (r *HTTPRecognizer) Transcribe(ctx context.Context, audio []byte, langHint string) (Transcript, error) {
	endpoint := r.url
	if hint := lang.Normalize(langHint); hint != "" && hint != lang.Auto {
		u, err := url.Parse(r.url)
		if err != nil {
			return Transcript{}, fmt.Errorf("parse service url: %w", err)
		}
		q := u.Query()
		q.Set("language", hint)
		u.RawQuery = q.Encode()
		endpoint = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return Transcript{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := r.client.Do(req)
	if err != nil {
		return Transcript{}, fmt.Errorf("call transcription service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return Transcript{}, fmt.Errorf("transcription service returned status %d", resp.StatusCode)
	}

	var out Transcript
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Transcript{}, fmt.Errorf("decode transcript: %w", err)
	}
	return out, nil
}
