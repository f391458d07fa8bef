package pptx

import (
	"fmt"
	"os"
	"strings"

	"deckmaker/internal/deck"
)

const (
	titleSizePt    = 44
	subtitleSizePt = 24
	headingSizePt  = 32
	bulletSizePt   = 18
	captionSizePt  = 16

	placeholderFill    = "DCDCDC"
	placeholderLine    = "969696"
	placeholderCaption = "646464"
	placeholderText    = "[Image Placeholder]"
)

// Assemble writes a presentation for the given slides to outputPath.
// imagePaths is indexed alongside slides; an empty entry means no image
// was available, and slides that want one get the gray placeholder
// instead. The template at templatePath supplies the decorative layout;
// a missing or unreadable template fails with a TemplateError and no
// output file is written.
func Assemble(slides []deck.Slide, imagePaths []string, templatePath, outputPath string) error {
	if len(slides) == 0 {
		return fmt.Errorf("no slides to assemble")
	}

	layouts, err := loadTemplate(templatePath)
	if err != nil {
		return err
	}
	theme := themeFor(templatePath)

	images := 0
	for i := range slides {
		if i < len(imagePaths) && imagePaths[i] != "" {
			images++
		}
	}

	parts := packageSkeleton(len(slides), images, slides[0].Title)

	imageN := 0
	for i, s := range slides {
		n := i + 1

		imagePath := ""
		if i < len(imagePaths) {
			imagePath = imagePaths[i]
		}

		var shapes []string
		var background string
		rels := []relationship{
			{id: "rId1", relTyp: relTypeSlideLayout, target: "../slideLayouts/slideLayout1.xml"},
			{id: "rId2", relTyp: relTypeNotesSlide, target: fmt.Sprintf("../notesSlides/notesSlide%d.xml", n)},
		}

		if i == 0 {
			background = layouts.title.background
			shapes = append(shapes, layouts.title.shapes...)
			shapes = append(shapes, titleSlideShapes(s, theme)...)
		} else {
			background = layouts.content.background
			shapes = append(shapes, layouts.content.shapes...)

			var imageData []byte
			if s.WantsImage && imagePath != "" {
				imageData, err = os.ReadFile(imagePath)
				if err != nil {
					imageData = nil
				}
			}

			body, pic := contentSlideShapes(s, theme)
			shapes = append(shapes, body...)
			if imageData != nil {
				imageN++
				name := fmt.Sprintf("ppt/media/image%d.jpg", imageN)
				parts = append(parts, part{name: name, data: imageData})
				rels = append(rels, relationship{id: "rId3", relTyp: relTypeImage, target: fmt.Sprintf("../media/image%d.jpg", imageN)})
				shapes = append(shapes, pictureXML(pic.id, "Slide Image", "rId3", pic.box))
			} else if s.WantsImage {
				shapes = append(shapes, rectXML(pic.id, "Image Placeholder", pic.box,
					placeholderFill, placeholderLine, 2, placeholderText, captionSizePt, placeholderCaption))
			}
		}

		parts = append(parts,
			part{name: fmt.Sprintf("ppt/slides/slide%d.xml", n), data: slideXML(background, shapes)},
			part{name: fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), data: relsXML(rels)},
			part{name: fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), data: notesSlideXML(s.Notes)},
			part{name: fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), data: notesSlideRels(n)},
		)
	}

	return writePackage(outputPath, parts)
}

func titleSlideShapes(s deck.Slide, t Theme) []string {
	shapes := []string{
		textboxXML(100, "Title", box{inches(1), inches(2.5), inches(8), inches(1.5)},
			[]string{stripBold(s.Title)}, textOpts{sizePt: titleSizePt, color: t.TitleText, bold: true, align: "ctr"}),
	}
	if len(s.Bullets) > 0 {
		shapes = append(shapes,
			textboxXML(101, "Subtitle", box{inches(1), inches(4.2), inches(8), inches(1)},
				[]string{s.Bullets[0]}, textOpts{sizePt: subtitleSizePt, color: t.BodyText, align: "ctr"}))
	}
	return shapes
}

type picSlot struct {
	id  int
	box box
}

// contentSlideShapes lays out the heading and bullet column; the bullet
// column narrows when an image or placeholder sits to its right.
func contentSlideShapes(s deck.Slide, t Theme) ([]string, picSlot) {
	shapes := []string{
		textboxXML(100, "Heading", box{inches(0.5), inches(0.25), inches(9), inches(0.7)},
			[]string{stripBold(s.Title)}, textOpts{sizePt: headingSizePt, color: t.TitleText, bold: true}),
	}

	bullets := box{inches(0.7), inches(1.8), inches(8.6), inches(4.5)}
	if s.WantsImage {
		bullets = box{inches(0.5), inches(1.8), inches(4.5), inches(4.5)}
	}
	if len(s.Bullets) > 0 {
		shapes = append(shapes, textboxXML(101, "Body", bullets, s.Bullets,
			textOpts{sizePt: bulletSizePt, color: t.BodyText, bullet: true}))
	}

	return shapes, picSlot{id: 102, box: box{inches(5.5), inches(2), inches(4), inches(4)}}
}

func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
