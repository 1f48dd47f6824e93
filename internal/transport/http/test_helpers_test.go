package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vovakirdan/babelroom-server/internal/asr"
	"github.com/vovakirdan/babelroom-server/internal/config"
	"github.com/vovakirdan/babelroom-server/internal/core"
	"github.com/vovakirdan/babelroom-server/internal/log"
	"github.com/vovakirdan/babelroom-server/internal/translate"
)

// stubRecognizer returns a fixed transcript or error.
type stubRecognizer struct {
	transcript asr.Transcript
	err        error
}

func (s *stubRecognizer) Transcribe(context.Context, []byte, string) (asr.Transcript, error) {
	return s.transcript, s.err
}

// wavBytes is a minimal RIFF/WAVE header, enough for content sniffing.
func wavBytes() []byte {
	return append([]byte("RIFF"), append([]byte{0x24, 0x00, 0x00, 0x00}, []byte("WAVEfmt ")...)...)
}

func testTranslator() *translate.Translator {
	dict := func(entries map[string]string) translate.Engine {
		return translate.EngineFunc(func(_ context.Context, text string) (string, error) {
			if out, ok := entries[text]; ok {
				return out, nil
			}
			return text, nil
		})
	}

	reg := translate.NewRegistry()
	reg.Register(translate.Direction{From: "vi", To: "en"}, dict(map[string]string{"xin chào": "hello"}))
	reg.Register(translate.Direction{From: "en", To: "vi"}, dict(map[string]string{"hello": "xin chào"}))
	reg.Register(translate.Direction{From: "ja", To: "en"}, dict(map[string]string{"こんにちは": "hello"}))
	reg.Register(translate.Direction{From: "en", To: "ja"}, dict(map[string]string{"hello": "こんにちは"}))
	return translate.New(reg, 100*time.Millisecond, 2000, log.Nop())
}

func startTestServer(t *testing.T, recognizer asr.Recognizer) (*httptest.Server, *core.Registry) {
	t.Helper()

	cfg := config.Default()
	registry := core.NewRegistry()
	caster := core.NewBroadcaster(registry, testTranslator(), cfg.FanoutLimit, log.Nop())

	server := NewServer(cfg, registry, caster, recognizer, log.Nop())
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, registry
}

// waitForMembers blocks until the room has exactly n members; joins run
// in handler goroutines after the ws handshake completes.
func waitForMembers(t *testing.T, registry *core.Registry, roomID string, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(registry.Snapshot(roomID)) == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %q never reached %d members", roomID, n)
}

func multipartAudio(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, "clip.wav")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}
