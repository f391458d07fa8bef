package llm

import (
	"context"
	"fmt"

	"github.com/conneroisu/groq-go"

	"deckmaker/internal/deck"
	"deckmaker/pkg/prompts"
)

const defaultGroqModel = "llama-3.3-70b-versatile"

// GroqClient generates slide content through the Groq chat API using its
// JSON response mode.
type GroqClient struct {
	client  *groq.Client
	model   groq.ChatModel
	prompts *prompts.Prompts
}

func NewGroqClient(apiKey, model string, p *prompts.Prompts) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq api key is required")
	}

	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	if model == "" {
		model = defaultGroqModel
	}

	return &GroqClient{
		client:  client,
		model:   groq.ChatModel(model),
		prompts: p,
	}, nil
}

func (c *GroqClient) GenerateSlides(ctx context.Context, topic string, slideCount int) ([]deck.Slide, error) {
	prompt, err := c.prompts.RenderSlides(prompts.SlidesParams{
		Topic:      topic,
		SlideCount: slideCount,
	})
	if err != nil {
		return nil, generationErr("render prompt: %v", err)
	}

	resp, err := c.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: c.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: c.prompts.System.Slides},
			{Role: groq.RoleUser, Content: prompt},
		},
		ResponseFormat: &groq.ChatResponseFormat{
			Type: "json_object",
		},
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, generationErr("no response")
	}

	return parseSlides(resp.Choices[0].Message.Content)
}
