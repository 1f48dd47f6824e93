// Package http exposes the relay over HTTP: a health probe, the
// WebSocket session endpoint, and the audio upload endpoint.
package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/babelroom-server/internal/asr"
	"github.com/vovakirdan/babelroom-server/internal/config"
	"github.com/vovakirdan/babelroom-server/internal/core"
)

// NewServer builds the HTTP server with all routes wired.
func NewServer(cfg config.Config, registry *core.Registry, caster *core.Broadcaster, recognizer asr.Recognizer, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	ws := NewWSHandler(registry, caster, cfg.SendQueueSize, logger)
	router.GET("/ws/:room/:client", ws.Handle)

	upload := NewASRHandler(caster, recognizer, cfg.MaxUploadBytes, logger)
	router.POST("/audio_to_text/:room/:client", upload.Handle)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

// ErrorResponse is the JSON body of failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
