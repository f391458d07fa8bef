package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"deckmaker/internal/deck"
)

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write jpeg: %v", err)
	}
}

func readPart(t *testing.T, path, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open part %s: %v", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read part %s: %v", name, err)
			}
			return string(data)
		}
	}
	t.Fatalf("part %s not found in %s", name, path)
	return ""
}

func partNames(t *testing.T, path string) map[string]bool {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer zr.Close()
	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	return names
}

func TestCreateTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modern_blue.pptx")
	if err := CreateTemplate("modern_blue", path); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	names := partNames(t, path)
	for _, want := range []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
	} {
		if !names[want] {
			t.Errorf("template missing part %s", want)
		}
	}

	slide1 := readPart(t, path, "ppt/slides/slide1.xml")
	if !strings.Contains(slide1, "1A237E") {
		t.Errorf("title layout slide missing theme primary color")
	}
}

func TestCreateTemplateUnknownName(t *testing.T) {
	err := CreateTemplate("neon_pink", filepath.Join(t.TempDir(), "x.pptx"))
	if err == nil {
		t.Fatal("expected error for unknown template name")
	}
}

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "modern_blue.pptx")
	if err := CreateTemplate("modern_blue", tmpl); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	imgPath := filepath.Join(dir, "cycle.jpg")
	writeJPEG(t, imgPath)

	slides := []deck.Slide{
		{Title: "The Water Cycle", Bullets: []string{"How water moves through nature"}, Notes: "Welcome everyone."},
		{Title: "Evaporation", Bullets: []string{"Heat turns **liquid** into vapor", "Oceans drive most of it"}, Notes: "Mention the sun.", WantsImage: true},
		{Title: "Condensation", Bullets: []string{"Vapor cools into droplets"}, Notes: "", WantsImage: true},
	}
	out := filepath.Join(dir, "deck.pptx")
	if err := Assemble(slides, []string{"", imgPath, ""}, tmpl, out); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	names := partNames(t, out)
	for _, want := range []string{
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/slide3.xml",
		"ppt/notesSlides/notesSlide1.xml",
		"ppt/media/image1.jpg",
	} {
		if !names[want] {
			t.Errorf("output missing part %s", want)
		}
	}
	if names["ppt/slides/slide4.xml"] {
		t.Error("output has more slides than input")
	}

	slide1 := readPart(t, out, "ppt/slides/slide1.xml")
	if !strings.Contains(slide1, "The Water Cycle") {
		t.Error("title slide missing deck title")
	}
	if !strings.Contains(slide1, "How water moves through nature") {
		t.Error("title slide missing subtitle")
	}
	if !strings.Contains(slide1, "1A237E") {
		t.Error("title slide missing cloned template decoration")
	}

	slide2 := readPart(t, out, "ppt/slides/slide2.xml")
	if !strings.Contains(slide2, "Evaporation") {
		t.Error("content slide missing title")
	}
	if !strings.Contains(slide2, `r:embed="rId3"`) {
		t.Error("content slide with image missing picture reference")
	}
	if strings.Contains(slide2, placeholderText) {
		t.Error("content slide with image should not carry a placeholder")
	}

	slide3 := readPart(t, out, "ppt/slides/slide3.xml")
	if !strings.Contains(slide3, placeholderText) {
		t.Error("content slide without image missing placeholder")
	}

	notes := readPart(t, out, "ppt/notesSlides/notesSlide2.xml")
	if !strings.Contains(notes, "Mention the sun.") {
		t.Error("notes slide missing speaker notes")
	}
}

func TestAssembleTemplateErrors(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "broken.pptx")
	if err := os.WriteFile(malformed, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	slides := []deck.Slide{{Title: "Only Slide"}}
	tests := []struct {
		name     string
		template string
	}{
		{name: "missing", template: filepath.Join(dir, "nope.pptx")},
		{name: "malformed", template: malformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+"_out.pptx")
			err := Assemble(slides, nil, tt.template, out)
			var terr *TemplateError
			if !errors.As(err, &terr) {
				t.Fatalf("want TemplateError, got %v", err)
			}
			if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
				t.Error("output file written despite template failure")
			}
		})
	}
}

func TestAssembleEscapesXML(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "elegant_dark.pptx")
	if err := CreateTemplate("elegant_dark", tmpl); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	slides := []deck.Slide{
		{Title: "Salt & Water <Basics>", Bullets: []string{`"Pure" H2O`}},
	}
	out := filepath.Join(dir, "deck.pptx")
	if err := Assemble(slides, nil, tmpl, out); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	slide1 := readPart(t, out, "ppt/slides/slide1.xml")
	if !strings.Contains(slide1, "Salt &amp; Water &lt;Basics&gt;") {
		t.Errorf("title not escaped: %s", slide1)
	}
}

func TestSplitRuns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []run
	}{
		{name: "plain", in: "just text", want: []run{{text: "just text"}}},
		{name: "bold", in: "a **b** c", want: []run{{text: "a "}, {text: "b", bold: true}, {text: " c"}}},
		{name: "leadingBold", in: "**hot** topic", want: []run{{text: "hot", bold: true}, {text: " topic"}}},
		{name: "unbalanced", in: "a **b", want: []run{{text: "a **b"}}},
		{name: "onlyBold", in: "**all**", want: []run{{text: "all", bold: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitRuns(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitRuns(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestThemeFor(t *testing.T) {
	if got := themeFor("templates/modern_blue.pptx"); got.Primary != "1A237E" {
		t.Errorf("modern_blue primary = %s", got.Primary)
	}
	if got := themeFor("/tmp/custom_corporate.pptx"); got.Name != defaultTheme.Name {
		t.Errorf("custom template should fall back to default theme, got %s", got.Name)
	}
}
