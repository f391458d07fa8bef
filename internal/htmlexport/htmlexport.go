// Package htmlexport renders a deck as a single self-contained HTML file
// built on the Tailwind CDN. Images are embedded base64 so the file can
// be opened or shared without the cache directory.
package htmlexport

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"deckmaker/internal/deck"
)

// Style selects one of the built-in Tailwind color schemes.
type Style string

const (
	StyleVibrant Style = "vibrant"
	StyleModern  Style = "modern"
	StyleDark    Style = "dark"
)

// Styles lists the valid style names.
func Styles() []Style {
	return []Style{StyleVibrant, StyleModern, StyleDark}
}

type palette struct {
	Primary   string
	Text      string
	Bg        string
	Accent    string
	ContentBg string
	CardBg    string
	Border    string
}

var palettes = map[Style]palette{
	StyleVibrant: {
		Primary:   "bg-gradient-to-r from-purple-600 to-blue-600",
		Text:      "text-gray-800",
		Bg:        "bg-white",
		Accent:    "text-orange-500",
		ContentBg: "bg-gradient-to-br from-gray-50 to-gray-100",
		CardBg:    "bg-white/80",
		Border:    "border-gray-200/50",
	},
	StyleModern: {
		Primary:   "bg-gradient-to-r from-blue-600 to-indigo-700",
		Text:      "text-gray-900",
		Bg:        "bg-gray-50",
		Accent:    "text-blue-600",
		ContentBg: "bg-gradient-to-br from-gray-50 to-gray-100",
		CardBg:    "bg-white/80",
		Border:    "border-gray-200/50",
	},
	StyleDark: {
		Primary:   "bg-gradient-to-r from-gray-900 to-gray-800",
		Text:      "text-gray-100",
		Bg:        "bg-gray-900",
		Accent:    "text-yellow-400",
		ContentBg: "bg-gradient-to-br from-gray-800 to-gray-900",
		CardBg:    "bg-gray-800/80",
		Border:    "border-gray-600/50",
	},
}

// markdown renders inline formatting in bullet text. Unsafe HTML stays
// escaped; only the markdown constructs themselves come through.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

type slideView struct {
	Index    int
	Title    string
	Subtitle template.HTML
	Bullets  []template.HTML
	Notes    string
	Image    template.URL
	IsTitle  bool
	Wants    bool
}

type pageView struct {
	Title  string
	Theme  palette
	Slides []slideView
	Count  int
}

// Export writes the deck as an interactive standalone HTML presentation.
// imagePaths lines up with slides; empty entries fall back to the dashed
// placeholder card on slides that want an image.
func Export(slides []deck.Slide, imagePaths []string, style Style, outputPath string) error {
	if len(slides) == 0 {
		return fmt.Errorf("no slides to export")
	}
	theme, ok := palettes[style]
	if !ok {
		theme = palettes[StyleVibrant]
	}

	page := pageView{
		Title: strings.ReplaceAll(slides[0].Title, "**", ""),
		Theme: theme,
		Count: len(slides),
	}
	for i, s := range slides {
		v := slideView{
			Index:   i,
			Title:   strings.ReplaceAll(s.Title, "**", ""),
			Notes:   s.Notes,
			IsTitle: i == 0,
			Wants:   s.WantsImage,
		}
		for _, b := range s.Bullets {
			v.Bullets = append(v.Bullets, renderInline(b))
		}
		if i == 0 && len(s.Bullets) > 0 {
			v.Subtitle = renderInline(s.Bullets[0])
		}
		if i < len(imagePaths) && imagePaths[i] != "" {
			if data, err := os.ReadFile(imagePaths[i]); err == nil {
				v.Image = template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data))
			}
		}
		page.Slides = append(page.Slides, v)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	tmp := outputPath + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return os.Rename(tmp, outputPath)
}

// renderInline converts one line of markdown to an HTML fragment without
// the block-level paragraph wrapper goldmark adds.
func renderInline(text string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return template.HTML(out)
}
