package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/babelroom-server/internal/core"
	"github.com/vovakirdan/babelroom-server/internal/lang"
	"github.com/vovakirdan/babelroom-server/internal/utils"
)

// WSHandler upgrades HTTP connections and runs one session per socket:
// join the room, relay inbound text through the broadcaster, leave on
// disconnect.
type WSHandler struct {
	registry  *core.Registry
	caster    *core.Broadcaster
	queueSize int
	log       *zerolog.Logger
}

// NewWSHandler builds a new WebSocket session handler.
func NewWSHandler(registry *core.Registry, caster *core.Broadcaster, queueSize int, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{
		registry:  registry,
		caster:    caster,
		queueSize: queueSize,
		log:       logger,
	}
}

// Handle serves GET /ws/:room/:client?lang=xx.
func (h *WSHandler) Handle(c *gin.Context) {
	roomID := strings.TrimSpace(c.Param("room"))
	clientID := strings.TrimSpace(c.Param("client"))
	tag := lang.Normalize(c.Query("lang"))
	if roomID == "" || clientID == "" || tag == "" {
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "room, client and lang are required"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client := core.NewClient(utils.NewID(), clientID, tag, h.queueSize)
	h.registry.Join(roomID, client)

	h.log.Info().Str("room", roomID).Str("client", clientID).Str("lang", tag).
		Str("client_id", client.ID).Msg("client joined")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, roomID, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	client.BeginClose()
	cancel() // stop the other goroutine
	<-errCh

	// Deregistration and resource release happen regardless of how the
	// loops ended.
	h.registry.Leave(roomID, client)
	client.Close()

	h.log.Info().Str("room", roomID).Str("client", clientID).
		Str("client_id", client.ID).Msg("client left")

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("client_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// readLoop receives inbound text frames and hands each one to the
// broadcaster synchronously, preserving per-sender ordering.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, roomID string, client *core.Client) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			continue
		}
		text := string(data)
		if strings.TrimSpace(text) == "" {
			continue
		}

		h.caster.Broadcast(ctx, core.Message{
			Room:   roomID,
			From:   client.Name,
			Text:   text,
			Lang:   client.Lang,
			Sender: client,
		})
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case text, ok := <-client.Outbound():
			if !ok {
				return nil
			}
			if err := conn.Write(ctx, websocket.MessageText, []byte(text)); err != nil {
				h.log.Warn().Err(err).Str("client_id", client.ID).Msg("write ws message")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
