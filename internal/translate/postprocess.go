package translate

import "strings"

// repeatRunLimit is the run length at which identical tokens are
// considered degenerate model output and collapsed to one instance.
const repeatRunLimit = 5

// postprocess contains runaway engine output: pathological token
// repetition is collapsed and the result is capped to maxChars runes.
// It applies only to engine output, never to passthrough text.
func (t *Translator) postprocess(text string) string {
	text = collapseRuns(text)
	if t.maxChars > 0 {
		text = truncateRunes(text, t.maxChars)
	}
	return text
}

func collapseRuns(text string) string {
	tokens := strings.Fields(text)
	if len(tokens) < repeatRunLimit {
		return text
	}

	collapsed := false
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		j := i
		for j < len(tokens) && tokens[j] == tokens[i] {
			j++
		}
		if j-i >= repeatRunLimit {
			out = append(out, tokens[i])
			collapsed = true
		} else {
			out = append(out, tokens[i:j]...)
		}
		i = j
	}

	if !collapsed {
		return text
	}
	return strings.Join(out, " ")
}

func truncateRunes(text string, max int) string {
	if len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
