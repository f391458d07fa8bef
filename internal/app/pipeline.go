package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"deckmaker/internal/deck"
	"deckmaker/internal/htmlexport"
	"deckmaker/internal/keywords"
	"deckmaker/internal/pptx"
)

const (
	FormatPPTX = "pptx"
	FormatHTML = "html"
)

type Pipeline struct {
	service *Service
}

type Request struct {
	Topic      string
	SlideCount int
	Template   string
	Format     string
	Style      string
	OutputName string
	NoImages   bool
}

type GenerateResult struct {
	Deck        *deck.Deck
	OutputPath  string
	ImagesUsed  int
	ImagesEmpty int
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service}
}

// Generate runs the whole flow for one deck: slide content, per-slide
// images, then assembly into the requested output format. Image failures
// degrade to placeholders; everything else is fatal.
func (pipeline *Pipeline) Generate(ctx context.Context, request Request) (*GenerateResult, error) {
	cfg := pipeline.service.Config()

	if request.SlideCount <= 0 {
		request.SlideCount = cfg.Deck.SlideCount
	}
	if request.Template == "" {
		request.Template = cfg.Deck.Template
	}
	if request.Format == "" {
		request.Format = FormatPPTX
	}
	if request.Style == "" {
		request.Style = cfg.HTML.Style
	}
	if request.Format != FormatPPTX && request.Format != FormatHTML {
		return nil, fmt.Errorf("unknown output format %q: use %q or %q", request.Format, FormatPPTX, FormatHTML)
	}

	slog.Info("Generating slide content...", "topic", request.Topic, "slides", request.SlideCount)
	slides, err := pipeline.service.LLM().GenerateSlides(ctx, request.Topic, request.SlideCount)
	if err != nil {
		return nil, err
	}
	d := &deck.Deck{Topic: request.Topic, Slides: slides}

	imagePaths, used, missing := pipeline.fetchImages(ctx, slides, request.NoImages)

	outputPath := filepath.Join(cfg.Deck.OutputDir, outputFileName(request.Topic, request.OutputName, request.Format))

	switch request.Format {
	case FormatHTML:
		slog.Info("Rendering HTML presentation...", "style", request.Style)
		if err := htmlexport.Export(slides, imagePaths, htmlexport.Style(request.Style), outputPath); err != nil {
			return nil, err
		}
	default:
		templatePath, err := pipeline.templatePath(request.Template)
		if err != nil {
			return nil, err
		}
		slog.Info("Assembling presentation...", "template", request.Template)
		if err := pptx.Assemble(slides, imagePaths, templatePath, outputPath); err != nil {
			return nil, err
		}
	}

	return &GenerateResult{
		Deck:        d,
		OutputPath:  outputPath,
		ImagesUsed:  used,
		ImagesEmpty: missing,
	}, nil
}

// fetchImages resolves an image path per slide, empty where none is
// wanted or available. Every failure is logged and degraded, never
// returned.
func (pipeline *Pipeline) fetchImages(ctx context.Context, slides []deck.Slide, skip bool) (paths []string, used, missing int) {
	paths = make([]string, len(slides))
	cache := pipeline.service.Cache()

	for i, s := range slides {
		if i == 0 || !s.WantsImage {
			continue
		}
		if skip || cache == nil {
			missing++
			continue
		}

		term := keywords.Extract(s.Title)
		result := cache.Fetch(ctx, term)
		if result.Available() {
			paths[i] = result.Path
			used++
			continue
		}
		missing++
		slog.Warn("No image for slide, using placeholder", "slide", i+1, "term", term)
	}
	return paths, used, missing
}

// templatePath resolves the template name inside the template directory,
// materializing built-in templates on first use.
func (pipeline *Pipeline) templatePath(name string) (string, error) {
	cfg := pipeline.service.Config()
	if filepath.Ext(name) == ".pptx" {
		return name, nil
	}

	path := filepath.Join(cfg.Deck.TemplateDir, name+".pptx")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		for _, builtin := range pptx.TemplateNames() {
			if builtin == name {
				slog.Info("Creating built-in template", "name", name)
				if err := pptx.CreateTemplate(name, path); err != nil {
					return "", err
				}
				return path, nil
			}
		}
	}
	return path, nil
}

// Cleanup prunes expired image cache entries.
func (pipeline *Pipeline) Cleanup() error {
	cache := pipeline.service.Cache()
	if cache == nil {
		return nil
	}
	return cache.Cleanup()
}
