package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/vovakirdan/babelroom-server/internal/asr"
)

func TestAudioUploadBroadcastsTranscript(t *testing.T) {
	rec := &stubRecognizer{transcript: asr.Transcript{Text: "xin chào", Language: "vi", Confidence: 0.97}}
	ts, registry := startTestServer(t, rec)
	base := strings.Replace(ts.URL, "http", "ws", 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connB, _, err := websocket.Dial(ctx, base+"/ws/r1/B?lang=en", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer connB.Close(websocket.StatusNormalClosure, "done")
	waitForMembers(t, registry, "r1", 1)

	body, contentType := multipartAudio(t, "file", wavBytes())
	resp, err := ts.Client().Post(ts.URL+"/audio_to_text/r1/A?lang=auto", contentType, body)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	var out TranscriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Text != "xin chào" {
		t.Fatalf("unexpected transcript: %q", out.Text)
	}

	// B speaks English; the vi transcript arrives translated.
	_, data, err := connB.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := string(data); got != "A: hello" {
		t.Fatalf("unexpected message for B: %q", got)
	}
}

func TestAudioUploadRejectsNonAudio(t *testing.T) {
	rec := &stubRecognizer{transcript: asr.Transcript{Text: "never used"}}
	ts, _ := startTestServer(t, rec)

	body, contentType := multipartAudio(t, "file", []byte("just some text, not audio at all"))
	resp, err := ts.Client().Post(ts.URL+"/audio_to_text/r1/A", contentType, body)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.StatusCode)
	}
}

func TestAudioUploadMissingFile(t *testing.T) {
	rec := &stubRecognizer{}
	ts, _ := startTestServer(t, rec)

	body, contentType := multipartAudio(t, "wrong_field", wavBytes())
	resp, err := ts.Client().Post(ts.URL+"/audio_to_text/r1/A", contentType, body)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAudioUploadRecognizerFailure(t *testing.T) {
	rec := &stubRecognizer{err: context.DeadlineExceeded}
	ts, registry := startTestServer(t, rec)
	base := strings.Replace(ts.URL, "http", "ws", 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connB, _, err := websocket.Dial(ctx, base+"/ws/r1/B?lang=en", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer connB.Close(websocket.StatusNormalClosure, "done")
	waitForMembers(t, registry, "r1", 1)

	body, contentType := multipartAudio(t, "file", wavBytes())
	resp, err := ts.Client().Post(ts.URL+"/audio_to_text/r1/A", contentType, body)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	// The failure stays with the uploader; the room hears nothing.
	quietCtx, quietCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer quietCancel()
	if _, data, err := connB.Read(quietCtx); err == nil {
		t.Fatalf("unexpected message for B: %q", string(data))
	}
}

func TestAudioUploadDisabledWithoutRecognizer(t *testing.T) {
	ts, _ := startTestServer(t, nil)

	body, contentType := multipartAudio(t, "file", wavBytes())
	resp, err := ts.Client().Post(ts.URL+"/audio_to_text/r1/A", contentType, body)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}
