// Package app wires configuration, translation engines, the room
// registry, and the HTTP transport into a runnable server.
package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/babelroom-server/internal/asr"
	"github.com/vovakirdan/babelroom-server/internal/config"
	"github.com/vovakirdan/babelroom-server/internal/core"
	"github.com/vovakirdan/babelroom-server/internal/translate"
	transporthttp "github.com/vovakirdan/babelroom-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	engines := translate.NewRegistry()
	for key, url := range cfg.TranslateEndpoints {
		if url == "" {
			continue
		}
		direction, err := translate.ParseDirection(key)
		if err != nil {
			return nil, fmt.Errorf("translate endpoint %q: %w", key, err)
		}
		engines.Register(direction, translate.NewHTTPEngine(url))
		logger.Info().Str("direction", direction.String()).Str("url", url).Msg("translation engine registered")
	}

	translator := translate.New(engines, cfg.TranslateTimeout, cfg.MaxMessageChars, logger)
	registry := core.NewRegistry()
	caster := core.NewBroadcaster(registry, translator, cfg.FanoutLimit, logger)

	var recognizer asr.Recognizer
	if cfg.ASRURL != "" {
		recognizer = asr.NewHTTPRecognizer(cfg.ASRURL)
		logger.Info().Str("url", cfg.ASRURL).Msg("transcription service configured")
	} else {
		logger.Info().Msg("transcription service not configured, audio uploads disabled")
	}

	server := transporthttp.NewServer(cfg, registry, caster, recognizer, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
