package app

import (
	"deckmaker/internal/imagecache"
	"deckmaker/internal/llm"
	"deckmaker/pkg/config"
)

type Service struct {
	cfg   *config.Config
	llm   llm.Client
	cache *imagecache.Cache
}

type ServiceOptions struct {
	Config *config.Config
	LLM    llm.Client
	Cache  *imagecache.Cache
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:   opts.Config,
		llm:   opts.LLM,
		cache: opts.Cache,
	}
}

func (s *Service) Config() *config.Config   { return s.cfg }
func (s *Service) LLM() llm.Client          { return s.llm }
func (s *Service) Cache() *imagecache.Cache { return s.cache }

// Close releases the cache index. Safe on a service without a cache.
func (s *Service) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}
