package asr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRecognizerTranscribe(t *testing.T) {
	audio := []byte{0x1a, 0x45, 0xdf, 0xa3, 0x00, 0x01}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, audio, body)
		require.Equal(t, "vi", r.URL.Query().Get("language"))

		json.NewEncoder(w).Encode(Transcript{Text: "xin chào", Language: "vi", Confidence: 0.97}) //nolint:errcheck
	}))
	t.Cleanup(ts.Close)

	rec := NewHTTPRecognizer(ts.URL)
	tr, err := rec.Transcribe(context.Background(), audio, "vi")
	require.NoError(t, err)
	assert.Equal(t, "xin chào", tr.Text)
	assert.Equal(t, "vi", tr.Language)
}

func TestHTTPRecognizerAutoOmitsLanguage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("language"))
		json.NewEncoder(w).Encode(Transcript{Text: "hello", Language: "en"}) //nolint:errcheck
	}))
	t.Cleanup(ts.Close)

	rec := NewHTTPRecognizer(ts.URL)
	tr, err := rec.Transcribe(context.Background(), []byte("aa"), "auto")
	require.NoError(t, err)
	assert.Equal(t, "en", tr.Language)
}

func TestHTTPRecognizerServiceFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	rec := NewHTTPRecognizer(ts.URL)
	_, err := rec.Transcribe(context.Background(), []byte("aa"), "auto")
	assert.Error(t, err)
}
