package llm

import (
	"encoding/json"
	"strings"

	"deckmaker/internal/deck"
)

// extractJSON strips markdown code fences that models often wrap around
// JSON payloads and returns the inner text.
func extractJSON(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s)
}

// parseSlides decodes a model response into slide records. It accepts
// either a bare JSON array or an object wrapping the array under "slides".
func parseSlides(content string) ([]deck.Slide, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, generationErr("empty response")
	}

	var slides []deck.Slide
	if err := json.Unmarshal([]byte(raw), &slides); err != nil {
		var wrapped struct {
			Slides []deck.Slide `json:"slides"`
		}
		if err2 := json.Unmarshal([]byte(raw), &wrapped); err2 != nil {
			return nil, generationErr("parse response: %v", err)
		}
		slides = wrapped.Slides
	}

	if len(slides) == 0 {
		return nil, generationErr("response contains no slides")
	}
	for i, s := range slides {
		if strings.TrimSpace(s.Title) == "" {
			return nil, generationErr("slide %d has no title", i+1)
		}
	}

	return slides, nil
}
