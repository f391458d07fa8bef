package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"deckmaker/internal/deck"
	"deckmaker/pkg/prompts"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"

	// Low temperature keeps the slide JSON structurally stable.
	openAITemperature = 0.3
	openAIMaxTokens   = 4000
)

// OpenAIClient generates slide content through the OpenAI chat API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	prompts *prompts.Prompts
}

// OpenAIConfig configures the OpenAI provider. BaseURL is optional and
// mainly useful for OpenAI-compatible endpoints and tests.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewOpenAIClient(cfg OpenAIConfig, p *prompts.Prompts) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		prompts: p,
	}, nil
}

func (c *OpenAIClient) GenerateSlides(ctx context.Context, topic string, slideCount int) ([]deck.Slide, error) {
	prompt, err := c.prompts.RenderSlides(prompts.SlidesParams{
		Topic:      topic,
		SlideCount: slideCount,
	})
	if err != nil {
		return nil, generationErr("render prompt: %v", err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: openAITemperature,
		MaxTokens:   openAIMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.prompts.System.Slides},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
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
