// Package lang normalizes language tags and detects the language of text.
//
// Tags form an open set: anything that looks like a short ISO 639-1 code is
// accepted as-is, and unknown tags are valid (translation degrades to
// passthrough for them).
package lang

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Pivot is the shared intermediate language all cross-language
// translations route through.
const Pivot = "en"

// Auto asks the transcription path to detect the language itself.
const Auto = "auto"

// Normalize lowercases and trims a language tag.
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Detect returns the ISO 639-1 code of the dominant language in text,
// or fallback when detection yields nothing usable.
func Detect(text, fallback string) string {
	info := whatlanggo.Detect(text)
	if info.Lang < 0 {
		return fallback
	}
	if code := info.Lang.Iso6391(); code != "" {
		return code
	}
	return fallback
}
