// Package asr defines the speech-to-text boundary. The server treats
// transcription as an opaque external capability: raw audio bytes in,
// plain text out, with failures surfaced to the uploader only.
package asr

import "context"

// Transcript is the result of transcribing one audio clip.
type Transcript struct {
	// Text is the transcribed utterance.
	Text string `json:"text"`
	// Language is the detected source language (ISO 639-1), if the
	// service reports one.
	Language string `json:"language,omitempty"`
	// Confidence is the service's confidence score (0.0 - 1.0).
	Confidence float64 `json:"confidence,omitempty"`
}

// Recognizer transcribes an audio clip to text. langHint narrows
// detection to one language; "auto" (or empty) lets the service decide.
type Recognizer interface {
	Transcribe(ctx context.Context, audio []byte, langHint string) (Transcript, error)
}
