package core

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/babelroom-server/internal/lang"
	"github.com/vovakirdan/babelroom-server/internal/translate"
)

// Broadcaster fans one inbound message out to every other member of a
// room, translated into each member's language through the pivot.
type Broadcaster struct {
	registry   *Registry
	translator *translate.Translator
	limit      int
	log        *zerolog.Logger
}

// NewBroadcaster builds a Broadcaster. limit bounds how many
// per-recipient deliveries of one broadcast run concurrently.
func NewBroadcaster(registry *Registry, translator *translate.Translator, limit int, logger *zerolog.Logger) *Broadcaster {
	if limit <= 0 {
		limit = 32
	}
	return &Broadcaster{
		registry:   registry,
		translator: translator,
		limit:      limit,
		log:        logger,
	}
}

// Broadcast delivers msg to every current member of the room except the
// sending connection. Delivery is fire-and-forget: a stale recipient or
// a degraded translation is logged and isolated, never aborting the
// remaining deliveries. Broadcast returns once every delivery attempt
// has finished.
func (b *Broadcaster) Broadcast(ctx context.Context, msg Message) {
	members := b.registry.Snapshot(msg.Room)
	if len(members) == 0 {
		return
	}

	srcLang := lang.Normalize(msg.Lang)

	// One shared pivot translation, reused for every recipient.
	pivot, outcome := b.translator.Translate(ctx, msg.Text, srcLang, lang.Pivot)
	if outcome.Degraded() {
		b.log.Debug().Str("room", msg.Room).Str("from", msg.From).
			Stringer("outcome", outcome).Msg("pivot translation degraded")
	}

	var g errgroup.Group
	g.SetLimit(b.limit)
	for _, m := range members {
		if msg.Sender != nil && m.Client == msg.Sender {
			continue
		}
		m := m
		g.Go(func() error {
			b.deliver(ctx, m, msg, pivot, srcLang)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // deliveries never return errors
}

func (b *Broadcaster) deliver(ctx context.Context, m Membership, msg Message, pivot, srcLang string) {
	text := msg.Text
	if lang.Normalize(m.Lang) != srcLang {
		var outcome translate.Outcome
		text, outcome = b.translator.Translate(ctx, pivot, lang.Pivot, m.Lang)
		if outcome.Degraded() {
			b.log.Debug().Str("room", msg.Room).Str("to", m.Name).Str("lang", m.Lang).
				Stringer("outcome", outcome).Msg("recipient translation degraded")
		}
	}

	if err := m.Client.Enqueue(msg.From + ": " + text); err != nil {
		b.log.Warn().Err(err).Str("room", msg.Room).Str("to", m.Name).
			Str("client_id", m.Client.ID).Msg("message dropped")
	}
}
