package htmlexport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deckmaker/internal/deck"
)

func sampleSlides() []deck.Slide {
	return []deck.Slide{
		{Title: "Volcanoes", Bullets: []string{"Mountains that erupt"}, Notes: "Welcome."},
		{Title: "How They Form", Bullets: []string{"Magma rises through **weak spots**", "Pressure builds over time"}, Notes: "Point at the diagram.", WantsImage: true},
		{Title: "Famous Eruptions", Bullets: []string{"Vesuvius, 79 AD"}, WantsImage: true},
	}
}

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "magma.jpg")
	writeJPEG(t, imgPath)
	out := filepath.Join(dir, "deck.html")

	if err := Export(sampleSlides(), []string{"", imgPath, ""}, StyleVibrant, out); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	for _, want := range []string{
		"Volcanoes",
		"How They Form",
		"cdn.tailwindcss.com",
		"<strong>weak spots</strong>",
		"data:image/jpeg;base64,",
		"Add image or diagram",
		"Point at the diagram.",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestExportStyles(t *testing.T) {
	tests := []struct {
		style Style
		want  string
	}{
		{style: StyleVibrant, want: "from-purple-600 to-blue-600"},
		{style: StyleModern, want: "from-blue-600 to-indigo-700"},
		{style: StyleDark, want: "bg-gray-900"},
		{style: Style("unknown"), want: "from-purple-600 to-blue-600"},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "deck.html")
			if err := Export(sampleSlides(), nil, tt.style, out); err != nil {
				t.Fatalf("Export: %v", err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("style %s output missing %q", tt.style, tt.want)
			}
		})
	}
}

func TestExportEscapesTitles(t *testing.T) {
	slides := []deck.Slide{{Title: `<script>alert("x")</script>`, Bullets: []string{"safe"}}}
	out := filepath.Join(t.TempDir(), "deck.html")
	if err := Export(slides, nil, StyleModern, out); err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `<script>alert`) {
		t.Error("title injected unescaped markup")
	}
}

func TestExportEmptyDeck(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.html")
	if err := Export(nil, nil, StyleVibrant, out); err == nil {
		t.Fatal("expected error for empty deck")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output written for empty deck")
	}
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello world", want: "hello world"},
		{name: "bold", in: "a **b** c", want: "a <strong>b</strong> c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(renderInline(tt.in)); got != tt.want {
				t.Errorf("renderInline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
