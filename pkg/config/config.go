package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath     = "config.yaml"
	defaultProvider       = "openai"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultGroqModel      = "llama-3.3-70b-versatile"
	defaultCacheDir       = "./.cache/images"
	defaultTemplateDir    = "./templates"
	defaultOutputDir      = "./output"
	defaultTemplate       = "modern_blue"
	defaultSlideCount     = 10
	defaultRetentionHours = 168
	defaultMaxImageWidth  = 1600
	defaultHTMLStyle      = "vibrant"
)

type Config struct {
	OpenAIAPIKey string
	GroqAPIKey   string
	PexelsAPIKey string

	LLM    LLMConfig    `yaml:"llm"`
	Images ImagesConfig `yaml:"images"`
	Deck   DeckConfig   `yaml:"deck"`
	HTML   HTMLConfig   `yaml:"html"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "groq"
	Model    string `yaml:"model"`
}

type ImagesConfig struct {
	Enabled        bool   `yaml:"enabled"`
	CacheDir       string `yaml:"cache_dir"`
	RetentionHours int    `yaml:"retention_hours"`
	MaxWidth       int    `yaml:"max_width"`
}

type DeckConfig struct {
	SlideCount  int    `yaml:"slide_count"`
	Template    string `yaml:"template"`
	TemplateDir string `yaml:"template_dir"`
	OutputDir   string `yaml:"output_dir"`
}

type HTMLConfig struct {
	Style string `yaml:"style"` // "vibrant", "modern" or "dark"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		PexelsAPIKey: os.Getenv("PEXELS_API_KEY"),
	}
	cfg.Images.Enabled = true

	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	return cfg
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = defaultProvider
	}
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case "groq":
			cfg.LLM.Model = defaultGroqModel
		default:
			cfg.LLM.Model = defaultOpenAIModel
		}
	}
	if cfg.Images.CacheDir == "" {
		cfg.Images.CacheDir = defaultCacheDir
	}
	if cfg.Images.RetentionHours <= 0 {
		cfg.Images.RetentionHours = defaultRetentionHours
	}
	if cfg.Images.MaxWidth <= 0 {
		cfg.Images.MaxWidth = defaultMaxImageWidth
	}
	if cfg.Deck.SlideCount <= 0 {
		cfg.Deck.SlideCount = defaultSlideCount
	}
	if cfg.Deck.Template == "" {
		cfg.Deck.Template = defaultTemplate
	}
	if cfg.Deck.TemplateDir == "" {
		cfg.Deck.TemplateDir = defaultTemplateDir
	}
	if cfg.Deck.OutputDir == "" {
		cfg.Deck.OutputDir = defaultOutputDir
	}
	if cfg.HTML.Style == "" {
		cfg.HTML.Style = defaultHTMLStyle
	}
}

// Validate checks that the API keys needed for a generation run are
// present. A missing key is a configuration error reported to the user,
// not something to degrade around.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set (add it to .env or the environment)")
		}
	case "groq":
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is not set (add it to .env or the environment)")
		}
	default:
		return fmt.Errorf("unknown llm provider %q: use \"openai\" or \"groq\"", c.LLM.Provider)
	}

	if c.Images.Enabled && c.PexelsAPIKey == "" {
		return fmt.Errorf("PEXELS_API_KEY is not set (add it to .env, or disable images)")
	}

	return nil
}
