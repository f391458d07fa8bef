package app

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"deckmaker/internal/deck"
	"deckmaker/internal/imagecache"
	"deckmaker/internal/llm"
	"deckmaker/pkg/config"
)

type fakeLLM struct {
	slides []deck.Slide
	err    error
	topic  string
	count  int
}

func (f *fakeLLM) GenerateSlides(_ context.Context, topic string, slideCount int) ([]deck.Slide, error) {
	f.topic = topic
	f.count = slideCount
	if f.err != nil {
		return nil, f.err
	}
	return f.slides, nil
}

type fakeSearcher struct {
	photo []byte
}

func (f *fakeSearcher) Search(context.Context, string) ([]imagecache.Photo, error) {
	return []imagecache.Photo{{URL: "https://images.example/1.jpg", Width: 8, Height: 6}}, nil
}

func (f *fakeSearcher) Download(context.Context, string) ([]byte, error) {
	return f.photo, nil
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.Set(0, 0, color.RGBA{G: 180, A: 255})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testSlides() []deck.Slide {
	return []deck.Slide{
		{Title: "Photosynthesis", Bullets: []string{"How plants make food"}, Notes: "Intro."},
		{Title: "Chloroplasts", Bullets: []string{"Where the work happens"}, WantsImage: true},
		{Title: "The Equation", Bullets: []string{"CO2 + H2O + light"}, WantsImage: false},
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Deck.SlideCount = 3
	cfg.Deck.Template = "modern_blue"
	cfg.Deck.TemplateDir = filepath.Join(dir, "templates")
	cfg.Deck.OutputDir = filepath.Join(dir, "output")
	cfg.HTML.Style = "vibrant"
	for _, d := range []string{cfg.Deck.TemplateDir, cfg.Deck.OutputDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func newTestPipeline(t *testing.T, client llm.Client, cache *imagecache.Cache) *Pipeline {
	t.Helper()
	service := NewService(ServiceOptions{Config: testConfig(t), LLM: client, Cache: cache})
	return NewPipeline(service)
}

func slideCountInPPTX(t *testing.T, path string) int {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer zr.Close()
	n := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			n++
		}
	}
	return n
}

func TestGeneratePPTX(t *testing.T) {
	client := &fakeLLM{slides: testSlides()}
	pipeline := newTestPipeline(t, client, nil)

	result, err := pipeline.Generate(context.Background(), Request{Topic: "Photosynthesis for kids"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if client.topic != "Photosynthesis for kids" {
		t.Errorf("llm got topic %q", client.topic)
	}
	if client.count != 3 {
		t.Errorf("llm got slide count %d, want config default 3", client.count)
	}
	if got := slideCountInPPTX(t, result.OutputPath); got != 3 {
		t.Errorf("output has %d slides, want 3", got)
	}
	if !strings.HasSuffix(result.OutputPath, "Photosynthesis_for_kids_presentation.pptx") {
		t.Errorf("unexpected output path %s", result.OutputPath)
	}
	if result.ImagesUsed != 0 || result.ImagesEmpty != 1 {
		t.Errorf("images used=%d empty=%d, want 0/1 without a cache", result.ImagesUsed, result.ImagesEmpty)
	}
}

func TestGenerateHTML(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeLLM{slides: testSlides()}, nil)

	result, err := pipeline.Generate(context.Background(), Request{Topic: "Photosynthesis", Format: FormatHTML})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "cdn.tailwindcss.com") {
		t.Error("html output missing tailwind")
	}
	if !strings.HasSuffix(result.OutputPath, ".html") {
		t.Errorf("unexpected output path %s", result.OutputPath)
	}
}

func TestGenerateWithImages(t *testing.T) {
	cacheDir := t.TempDir()
	cache, err := imagecache.New(imagecache.Config{
		Dir:       cacheDir,
		Retention: time.Hour,
		MaxWidth:  1600,
	}, &fakeSearcher{photo: jpegBytes(t)})
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	pipeline := newTestPipeline(t, &fakeLLM{slides: testSlides()}, cache)

	result, err := pipeline.Generate(context.Background(), Request{Topic: "Photosynthesis"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.ImagesUsed != 1 || result.ImagesEmpty != 0 {
		t.Errorf("images used=%d empty=%d, want 1/0", result.ImagesUsed, result.ImagesEmpty)
	}
}

func TestGenerateNoImagesFlag(t *testing.T) {
	cache, err := imagecache.New(imagecache.Config{
		Dir:       t.TempDir(),
		Retention: time.Hour,
		MaxWidth:  1600,
	}, &fakeSearcher{photo: jpegBytes(t)})
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	pipeline := newTestPipeline(t, &fakeLLM{slides: testSlides()}, cache)

	result, err := pipeline.Generate(context.Background(), Request{Topic: "Photosynthesis", NoImages: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.ImagesUsed != 0 {
		t.Errorf("images fetched despite NoImages, used=%d", result.ImagesUsed)
	}
}

func TestGenerateLLMErrorIsFatal(t *testing.T) {
	genErr := &llm.GenerationError{Err: errors.New("model unavailable")}
	pipeline := newTestPipeline(t, &fakeLLM{err: genErr}, nil)

	_, err := pipeline.Generate(context.Background(), Request{Topic: "anything"})
	var target *llm.GenerationError
	if !errors.As(err, &target) {
		t.Fatalf("want GenerationError, got %v", err)
	}
}

func TestGenerateUnknownFormat(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeLLM{slides: testSlides()}, nil)
	if _, err := pipeline.Generate(context.Background(), Request{Topic: "x", Format: "pdf"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		name   string
		topic  string
		custom string
		format string
		want   string
	}{
		{name: "derived", topic: "The Water Cycle!", format: "pptx", want: "The_Water_Cycle__presentation.pptx"},
		{name: "custom", topic: "ignored", custom: "mydeck.pptx", format: "pptx", want: "mydeck.pptx"},
		{name: "customNoExt", topic: "ignored", custom: "mydeck", format: "html", want: "mydeck.html"},
		{name: "truncated", topic: strings.Repeat("a", 80), format: "pptx", want: strings.Repeat("a", 50) + "_presentation.pptx"},
		{name: "empty", topic: "", format: "pptx", want: "untitled_presentation.pptx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputFileName(tt.topic, tt.custom, tt.format); got != tt.want {
				t.Errorf("outputFileName(%q, %q, %q) = %q, want %q", tt.topic, tt.custom, tt.format, got, tt.want)
			}
		})
	}
}
