package core

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/babelroom-server/internal/log"
	"github.com/vovakirdan/babelroom-server/internal/translate"
)

// dictTranslator builds a translator over the vi↔en and ja↔en engine
// set the relay ships by default, backed by fixed dictionaries.
func dictTranslator() *translate.Translator {
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

func mustReceive(t *testing.T, c *Client) string {
	t.Helper()

	select {
	case text, ok := <-c.Outbound():
		if !ok {
			t.Fatalf("outbound queue closed for %s", c.Name)
		}
		return text
	case <-time.After(2 * time.Second):
		t.Fatalf("expected message for %s not received", c.Name)
	}
	return ""
}

func mustReceiveNothing(t *testing.T, c *Client) {
	t.Helper()

	select {
	case text := <-c.Outbound():
		t.Fatalf("unexpected message for %s: %q", c.Name, text)
	case <-time.After(100 * time.Millisecond):
	}
}
