// Package translate routes text between languages through a pivot.
//
// Direct engines exist only for pairs with English on one side; any
// other pair is translated src→en→tgt in exactly one pivot hop. A leg
// with no registered engine, an engine error, or a timed-out call
// degrades to passthrough: translation failures never abort a message.
package translate

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/babelroom-server/internal/lang"
)

// Outcome classifies how a translation was produced.
type Outcome int

const (
	// OutcomeTranslated means every required leg ran an engine successfully.
	OutcomeTranslated Outcome = iota
	// OutcomePassthrough means at least one leg had no registered engine
	// (or source equaled target) and the input passed through unchanged.
	OutcomePassthrough
	// OutcomeTimeout means an engine call exceeded the per-call deadline.
	OutcomeTimeout
	// OutcomeEngineError means an engine returned an error.
	OutcomeEngineError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTranslated:
		return "translated"
	case OutcomePassthrough:
		return "passthrough"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeEngineError:
		return "engine_error"
	default:
		return "unknown"
	}
}

// Degraded reports whether the outcome fell back to the input text.
func (o Outcome) Degraded() bool {
	return o == OutcomeTimeout || o == OutcomeEngineError
}

// Translator routes translation requests through registered engines.
type Translator struct {
	registry *Registry
	timeout  time.Duration
	maxChars int
	log      *zerolog.Logger
}

// New builds a Translator. timeout bounds every engine call; maxChars
// caps engine output length.
func New(registry *Registry, timeout time.Duration, maxChars int, logger *zerolog.Logger) *Translator {
	return &Translator{
		registry: registry,
		timeout:  timeout,
		maxChars: maxChars,
		log:      logger,
	}
}

// Translate converts text from src to tgt. It never fails: the worst
// case is the input returned unchanged with a degraded Outcome.
func (t *Translator) Translate(ctx context.Context, text, src, tgt string) (string, Outcome) {
	src, tgt = lang.Normalize(src), lang.Normalize(tgt)

	if src == tgt {
		return text, OutcomePassthrough
	}

	if src == lang.Pivot || tgt == lang.Pivot {
		return t.leg(ctx, text, Direction{From: src, To: tgt})
	}

	// Neither endpoint is the pivot: exactly one pivot hop, never chained.
	pivotText, first := t.leg(ctx, text, Direction{From: src, To: lang.Pivot})
	out, second := t.leg(ctx, pivotText, Direction{From: lang.Pivot, To: tgt})
	return out, worseOutcome(first, second)
}

// leg runs a single engine invocation, bounded by the per-call timeout.
func (t *Translator) leg(ctx context.Context, text string, d Direction) (string, Outcome) {
	engine, ok := t.registry.Lookup(d)
	if !ok {
		return text, OutcomePassthrough
	}

	legCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		out, err := engine.Translate(legCtx, text)
		done <- result{text: out, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				t.log.Warn().Str("direction", d.String()).Dur("timeout", t.timeout).Msg("translation engine timed out")
				return text, OutcomeTimeout
			}
			t.log.Warn().Err(res.err).Str("direction", d.String()).Msg("translation engine failed")
			return text, OutcomeEngineError
		}
		return t.postprocess(res.text), OutcomeTranslated
	case <-legCtx.Done():
		// The engine call is abandoned; the goroutine drains into the
		// buffered channel when it eventually returns.
		t.log.Warn().Str("direction", d.String()).Dur("timeout", t.timeout).Msg("translation engine timed out")
		return text, OutcomeTimeout
	}
}

func worseOutcome(a, b Outcome) Outcome {
	if b > a {
		return b
	}
	return a
}
