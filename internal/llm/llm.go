package llm

import (
	"context"
	"fmt"

	"deckmaker/internal/deck"
)

// Client generates structured slide content for a topic. Implementations
// make exactly one API call per request; any failure aborts the whole
// generation and is returned as a *GenerationError.
type Client interface {
	GenerateSlides(ctx context.Context, topic string, slideCount int) ([]deck.Slide, error)
}

// GenerationError marks a fatal content-generation failure: the provider
// call errored or returned something that does not parse into slides.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func generationErr(format string, args ...any) error {
	return &GenerationError{Err: fmt.Errorf(format, args...)}
}
