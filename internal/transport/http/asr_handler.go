package http

import (
	"io"
	stdhttp "net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/babelroom-server/internal/asr"
	"github.com/vovakirdan/babelroom-server/internal/core"
	"github.com/vovakirdan/babelroom-server/internal/lang"
)

// ASRHandler accepts an audio clip, transcribes it through the external
// recognizer, and relays the transcript into the room as if the
// uploader had typed it. Transcription failures are surfaced to the
// uploader only; room state is never touched on failure.
type ASRHandler struct {
	caster     *core.Broadcaster
	recognizer asr.Recognizer
	maxUpload  int64
	log        *zerolog.Logger
}

// NewASRHandler builds the upload handler. A nil recognizer disables
// the endpoint.
func NewASRHandler(caster *core.Broadcaster, recognizer asr.Recognizer, maxUpload int64, logger *zerolog.Logger) *ASRHandler {
	if maxUpload <= 0 {
		maxUpload = 16 << 20
	}
	return &ASRHandler{
		caster:     caster,
		recognizer: recognizer,
		maxUpload:  maxUpload,
		log:        logger,
	}
}

// TranscriptResponse is the JSON body returned to the uploader.
type TranscriptResponse struct {
	Text string `json:"text"`
}

// Handle serves POST /audio_to_text/:room/:client?lang=auto with a
// multipart "file" field.
func (h *ASRHandler) Handle(c *gin.Context) {
	roomID := strings.TrimSpace(c.Param("room"))
	clientID := strings.TrimSpace(c.Param("client"))
	if roomID == "" || clientID == "" {
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "room and client are required"})
		return
	}
	if h.recognizer == nil {
		c.JSON(stdhttp.StatusServiceUnavailable, ErrorResponse{Error: "transcription is not configured"})
		return
	}

	hint := lang.Normalize(c.DefaultQuery("lang", lang.Auto))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "missing file upload"})
		return
	}
	if fileHeader.Size > h.maxUpload {
		c.JSON(stdhttp.StatusRequestEntityTooLarge, ErrorResponse{Error: "upload too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "unreadable file upload"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, h.maxUpload))
	if err != nil {
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "unreadable file upload"})
		return
	}

	if mt := mimetype.Detect(audio); !isAudioContainer(mt) {
		c.JSON(stdhttp.StatusUnsupportedMediaType, ErrorResponse{Error: "unsupported media type " + mt.String()})
		return
	}

	transcript, err := h.recognizer.Transcribe(c.Request.Context(), audio, hint)
	if err != nil {
		h.log.Error().Err(err).Str("room", roomID).Str("client", clientID).Msg("transcription failed")
		c.JSON(stdhttp.StatusBadGateway, ErrorResponse{Error: "transcription failed"})
		return
	}

	text := strings.TrimSpace(transcript.Text)
	if text != "" {
		h.caster.Broadcast(c.Request.Context(), core.Message{
			Room: roomID,
			From: clientID,
			Text: text,
			Lang: h.sourceLang(hint, transcript, text),
		})
	}

	h.log.Info().Str("room", roomID).Str("client", clientID).Str("lang", hint).
		Int("chars", len(text)).Msg("audio transcribed")

	c.JSON(stdhttp.StatusOK, TranscriptResponse{Text: text})
}

// sourceLang resolves the language the transcript arrived in: an
// explicit hint wins, then the recognizer's detection, then detection
// over the transcript text itself.
func (h *ASRHandler) sourceLang(hint string, transcript asr.Transcript, text string) string {
	if hint != "" && hint != lang.Auto {
		return hint
	}
	if detected := lang.Normalize(transcript.Language); detected != "" {
		return detected
	}
	return lang.Detect(text, lang.Pivot)
}

// isAudioContainer accepts audio types plus the webm/mp4 video
// containers browsers use for microphone recordings.
func isAudioContainer(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "audio/") {
			return true
		}
	}
	return mt.Is("video/webm") || mt.Is("video/mp4")
}
