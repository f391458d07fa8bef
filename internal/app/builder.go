package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"deckmaker/internal/imagecache"
	"deckmaker/internal/llm"
	"deckmaker/internal/pexels"
	"deckmaker/pkg/config"
	"deckmaker/pkg/prompts"
)

// pexelsSearcher narrows the Pexels client to the cache's Searcher
// contract, pinning the landscape orientation slides need.
type pexelsSearcher struct {
	client *pexels.Client
}

func (p *pexelsSearcher) Search(ctx context.Context, query string) ([]imagecache.Photo, error) {
	photos, err := p.client.Search(ctx, query, pexels.Landscape)
	if err != nil {
		return nil, err
	}
	result := make([]imagecache.Photo, len(photos))
	for i, ph := range photos {
		result[i] = imagecache.Photo{URL: ph.URL, Width: ph.Width, Height: ph.Height}
	}
	return result, nil
}

func (p *pexelsSearcher) Download(ctx context.Context, url string) ([]byte, error) {
	return p.client.Download(ctx, url)
}

func BuildService(cfg *config.Config) (*Service, error) {
	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLMClient(cfg, p)
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{cfg.Deck.OutputDir, cfg.Deck.TemplateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	var cache *imagecache.Cache
	if cfg.Images.Enabled {
		pexelsClient := pexels.NewClient(pexels.Config{APIKey: cfg.PexelsAPIKey})
		cache, err = imagecache.New(imagecache.Config{
			Dir:       cfg.Images.CacheDir,
			Retention: time.Duration(cfg.Images.RetentionHours) * time.Hour,
			MaxWidth:  cfg.Images.MaxWidth,
		}, &pexelsSearcher{client: pexelsClient})
		if err != nil {
			return nil, fmt.Errorf("open image cache: %w", err)
		}
		if err := cache.Cleanup(); err != nil {
			slog.Warn("Image cache cleanup failed", "error", err)
		}
	}

	return NewService(ServiceOptions{
		Config: cfg,
		LLM:    llmClient,
		Cache:  cache,
	}), nil
}

func buildLLMClient(cfg *config.Config, p *prompts.Prompts) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case "openai":
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.LLM.Model,
		}, p)
	case "groq":
		return llm.NewGroqClient(cfg.GroqAPIKey, cfg.LLM.Model, p)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
}
