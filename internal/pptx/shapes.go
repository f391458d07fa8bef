package pptx

import (
	"fmt"
	"strings"
)

// run is a span of text within one paragraph.
type run struct {
	text string
	bold bool
}

// splitRuns breaks markdown-style **bold** markers into styled runs.
// Unbalanced markers are left in the text as written.
func splitRuns(text string) []run {
	parts := strings.Split(text, "**")
	if len(parts)%2 == 0 {
		return []run{{text: text}}
	}
	runs := make([]run, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		runs = append(runs, run{text: p, bold: i%2 == 1})
	}
	if len(runs) == 0 {
		runs = append(runs, run{text: ""})
	}
	return runs
}

func runXML(r run, sizePt int, color string) string {
	bold := "0"
	if r.bold {
		bold = "1"
	}
	return fmt.Sprintf(
		`<a:r><a:rPr lang="en-US" sz="%d" b="%s" dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr><a:t>%s</a:t></a:r>`,
		points(sizePt), bold, color, escape(r.text))
}

type box struct {
	x, y, w, h int // EMU
}

func (b box) xfrm() string {
	return fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, b.x, b.y, b.w, b.h)
}

type textOpts struct {
	sizePt int
	color  string
	bold   bool
	align  string // "ctr" or "" for left
	bullet bool
}

// textboxXML builds a borderless text shape. Each line becomes its own
// paragraph; lines are rendered with splitRuns so inline bold survives.
func textboxXML(id int, name string, b box, lines []string, o textOpts) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, escape(name))
	sb.WriteString(`<p:spPr>`)
	sb.WriteString(b.xfrm())
	sb.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	sb.WriteString(`<p:txBody><a:bodyPr wrap="square" anchor="t"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	for _, line := range lines {
		sb.WriteString(`<a:p><a:pPr`)
		if o.align != "" {
			fmt.Fprintf(&sb, ` algn="%s"`, o.align)
		}
		sb.WriteString(`>`)
		if o.bullet {
			sb.WriteString(`<a:buFont typeface="Arial"/><a:buChar char="&#8226;"/>`)
		} else {
			sb.WriteString(`<a:buNone/>`)
		}
		sb.WriteString(`</a:pPr>`)
		for _, r := range splitRuns(line) {
			if o.bold {
				r.bold = true
			}
			sb.WriteString(runXML(r, o.sizePt, o.color))
		}
		sb.WriteString(`</a:p>`)
	}
	sb.WriteString(`</p:txBody></p:sp>`)
	return sb.String()
}

// rectXML builds a solid filled rectangle, optionally with an outline and
// centered caption text.
func rectXML(id int, name string, b box, fill, line string, lineWidthPt float64, caption string, captionSizePt int, captionColor string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id, escape(name))
	sb.WriteString(`<p:spPr>`)
	sb.WriteString(b.xfrm())
	sb.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	fmt.Fprintf(&sb, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, fill)
	if line != "" {
		fmt.Fprintf(&sb, `<a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>`, int(lineWidthPt*12700), line)
	}
	sb.WriteString(`</p:spPr>`)
	sb.WriteString(`<p:txBody><a:bodyPr anchor="ctr"/><a:lstStyle/><a:p><a:pPr algn="ctr"><a:buNone/></a:pPr>`)
	if caption != "" {
		sb.WriteString(runXML(run{text: caption}, captionSizePt, captionColor))
	}
	sb.WriteString(`</a:p></p:txBody></p:sp>`)
	return sb.String()
}

// pictureXML references an image part through the slide relationship relID.
func pictureXML(id int, name, relID string, b box) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`, id, escape(name))
	fmt.Fprintf(&sb, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, relID)
	sb.WriteString(`<p:spPr>`)
	sb.WriteString(b.xfrm())
	sb.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
	return sb.String()
}

// slideXML wraps a list of shape fragments in a slide part, with an
// optional solid background color.
func slideXML(background string, shapes []string) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld>`)
	if background != "" {
		fmt.Fprintf(&b, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, background)
	}
	b.WriteString(`<p:spTree>`)
	b.WriteString(emptyGroupHeader)
	for _, s := range shapes {
		b.WriteString(s)
	}
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return []byte(b.String())
}

// notesSlideXML holds the speaker notes for one slide.
func notesSlideXML(notes string) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(emptyGroupHeader)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>`)
	b.WriteString(`<p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" dirty="0"/>`)
	fmt.Fprintf(&b, `<a:t>%s</a:t>`, escape(notes))
	b.WriteString(`</a:r></a:p></p:txBody></p:sp>`)
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:notes>`)
	return []byte(b.String())
}

func notesSlideRels(slideIndex int) []byte {
	return relsXML([]relationship{
		{id: "rId1", relTyp: relTypeNotesMaster, target: "../notesMasters/notesMaster1.xml"},
		{id: "rId2", relTyp: relTypeSlide, target: fmt.Sprintf("../slides/slide%d.xml", slideIndex)},
	})
}
