package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Theme holds the color palette used both when generating a built-in
// template and when choosing text colors for slides assembled from it.
type Theme struct {
	Name       string
	Primary    string // header bars, hero background
	Accent     string // lines and sidebars
	Background string // content slide background
	Surface    string // secondary fill
	TitleText  string
	BodyText   string
}

// themes is keyed by template file base name (without extension).
var themes = map[string]Theme{
	"modern_blue": {
		Name:       "Modern Blue",
		Primary:    "1A237E",
		Accent:     "2196F3",
		Background: "FFFFFF",
		Surface:    "F5F5F5",
		TitleText:  "FFFFFF",
		BodyText:   "212121",
	},
	"elegant_dark": {
		Name:       "Elegant Dark",
		Primary:    "121212",
		Accent:     "FFC107",
		Background: "121212",
		Surface:    "212121",
		TitleText:  "FAFAFA",
		BodyText:   "FAFAFA",
	},
	"ocean_breeze": {
		Name:       "Ocean Breeze",
		Primary:    "0277BD",
		Accent:     "4FC3F7",
		Background: "FFFFFF",
		Surface:    "E1F5FE",
		TitleText:  "FFFFFF",
		BodyText:   "01579B",
	},
	"forest_fresh": {
		Name:       "Forest Fresh",
		Primary:    "2E7D32",
		Accent:     "81C784",
		Background: "FFFFFF",
		Surface:    "E8F5E9",
		TitleText:  "FFFFFF",
		BodyText:   "1B5E20",
	},
}

var defaultTheme = Theme{
	Name:       "Default",
	Primary:    "37474F",
	Accent:     "607D8B",
	Background: "FFFFFF",
	Surface:    "ECEFF1",
	TitleText:  "FFFFFF",
	BodyText:   "212121",
}

// TemplateNames lists the built-in template names in a stable order.
func TemplateNames() []string {
	return []string{"modern_blue", "elegant_dark", "ocean_breeze", "forest_fresh"}
}

// themeFor resolves a theme by template path base name, falling back to a
// neutral palette for user-supplied templates.
func themeFor(templatePath string) Theme {
	base := strings.TrimSuffix(filepath.Base(templatePath), filepath.Ext(templatePath))
	if t, ok := themes[strings.ToLower(base)]; ok {
		return t
	}
	return defaultTheme
}

// CreateTemplate writes a themed template presentation to path. The
// template holds two slides: slide 1 carries the title layout decoration,
// slide 2 the content layout decoration. Unknown names are an error.
func CreateTemplate(name, path string) error {
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
	}

	parts := packageSkeleton(2, 0, t.Name+" template")

	titleShapes := []string{
		rectXML(2, "Top Bar", box{inches(0), inches(0), inches(10), inches(2)}, t.Primary, "", 0, "", 0, ""),
		rectXML(3, "Body Panel", box{inches(0), inches(2), inches(10), inches(5.5)}, t.Surface, "", 0, "", 0, ""),
		rectXML(4, "Accent Line", box{inches(0), inches(2), inches(10), inches(0.1)}, t.Accent, "", 0, "", 0, ""),
	}
	contentShapes := []string{
		rectXML(2, "Header Bar", box{inches(0), inches(0), inches(10), inches(1)}, t.Primary, "", 0, "", 0, ""),
		rectXML(3, "Accent Sidebar", box{inches(0), inches(1), inches(0.2), inches(6.5)}, t.Accent, "", 0, "", 0, ""),
	}

	for i, shapes := range [][]string{titleShapes, contentShapes} {
		n := i + 1
		parts = append(parts,
			part{name: fmt.Sprintf("ppt/slides/slide%d.xml", n), data: slideXML(t.Background, shapes)},
			part{name: fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), data: relsXML([]relationship{
				{id: "rId1", relTyp: relTypeSlideLayout, target: "../slideLayouts/slideLayout1.xml"},
			})},
			part{name: fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), data: notesSlideXML("")},
			part{name: fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), data: notesSlideRels(n)},
		)
	}

	return writePackage(path, parts)
}

// layout carries the decoration cloned from a template into output slides.
type layout struct {
	background string
	shapes     []string
}

type templateLayouts struct {
	title   layout
	content layout
}

// loadTemplate opens a template presentation and extracts the background
// and decorative shapes of its first two slides. Slide 1 decorates title
// slides, slide 2 decorates content slides; a single-slide template is
// used for both.
func loadTemplate(path string) (*templateLayouts, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &TemplateError{Path: path, Err: err}
	}
	defer zr.Close()

	slides := map[string][]byte{}
	for _, f := range zr.File {
		if f.Name == "ppt/slides/slide1.xml" || f.Name == "ppt/slides/slide2.xml" {
			rc, err := f.Open()
			if err != nil {
				return nil, &TemplateError{Path: path, Err: err}
			}
			data, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, &TemplateError{Path: path, Err: err}
			}
			slides[f.Name] = data
		}
	}

	first, ok := slides["ppt/slides/slide1.xml"]
	if !ok {
		return nil, &TemplateError{Path: path, Err: fmt.Errorf("no slides found")}
	}

	title := extractLayout(string(first))
	content := title
	if second, ok := slides["ppt/slides/slide2.xml"]; ok {
		content = extractLayout(string(second))
	}
	return &templateLayouts{title: title, content: content}, nil
}

// extractLayout pulls the slide background fill and every top-level shape
// out of a slide part.
func extractLayout(xml string) layout {
	var l layout
	l.background = between(xml, `<a:srgbClr val="`, `"`, strings.Index(xml, "<p:bg>"))
	rest := xml
	for {
		start := strings.Index(rest, "<p:sp>")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], "</p:sp>")
		if end < 0 {
			break
		}
		end += start + len("</p:sp>")
		l.shapes = append(l.shapes, rest[start:end])
		rest = rest[end:]
	}
	return l
}

// between returns the text between open and close, starting the search at
// from. Returns "" when either marker is missing.
func between(s, open, close string, from int) string {
	if from < 0 {
		return ""
	}
	i := strings.Index(s[from:], open)
	if i < 0 {
		return ""
	}
	i += from + len(open)
	j := strings.Index(s[i:], close)
	if j < 0 {
		return ""
	}
	return s[i : i+j]
}
