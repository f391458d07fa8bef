package pptx

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"
)

// part is a single file inside the OPC package.
type part struct {
	name string
	data []byte
}

// writePackage writes the parts as a zip archive to a temporary file and
// renames it into place, so a failed assembly never leaves a partial
// output file behind.
func writePackage(path string, parts []part) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	zw := zip.NewWriter(f)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err == nil {
			_, err = w.Write(p.data)
		}
		if err != nil {
			_ = zw.Close()
			_ = f.Close()
			_ = os.Remove(tmp)
			return fmt.Errorf("write part %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize package: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close output file: %w", err)
	}

	return os.Rename(tmp, path)
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"

	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeNotesMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
	relTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeNotesSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

type relationship struct {
	id     string
	relTyp string
	target string
}

func relsXML(rels []relationship) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.id, r.relTyp, r.target)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

// contentTypesXML lists every part of the package. slideCount covers both
// slides and their notes slides.
func contentTypesXML(slideCount, imageCount int) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	if imageCount > 0 {
		b.WriteString(`<Default Extension="jpg" ContentType="image/jpeg"/>`)
		b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
		b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	}
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/notesMasters/notesMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme2.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
		fmt.Fprintf(&b, `<Override PartName="/ppt/notesSlides/notesSlide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"/>`, i)
	}
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	b.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

func presentationXML(slideCount int) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:notesMasterIdLst><p:notesMasterId r:id="rId2"/></p:notesMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 0; i < slideCount; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 3+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, slideWidthEMU, slideHeightEMU)
	fmt.Fprintf(&b, `<p:notesSz cx="%d" cy="%d"/>`, slideHeightEMU, slideWidthEMU)
	b.WriteString(`</p:presentation>`)
	return []byte(b.String())
}

func presentationRels(slideCount int) []byte {
	rels := []relationship{
		{id: "rId1", relTyp: relTypeSlideMaster, target: "slideMasters/slideMaster1.xml"},
		{id: "rId2", relTyp: relTypeNotesMaster, target: "notesMasters/notesMaster1.xml"},
	}
	for i := 1; i <= slideCount; i++ {
		rels = append(rels, relationship{
			id:     fmt.Sprintf("rId%d", 2+i),
			relTyp: relTypeSlide,
			target: fmt.Sprintf("slides/slide%d.xml", i),
		})
	}
	return relsXML(rels)
}

func slideMasterXML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(emptyGroupHeader)
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`)
	b.WriteString(`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>`)
	b.WriteString(`</p:sldMaster>`)
	return []byte(b.String())
}

func slideMasterRels() []byte {
	return relsXML([]relationship{
		{id: "rId1", relTyp: relTypeSlideLayout, target: "../slideLayouts/slideLayout1.xml"},
		{id: "rId2", relTyp: relTypeTheme, target: "../theme/theme1.xml"},
	})
}

func slideLayoutXML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="blank">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld name="Blank"><p:spTree>`)
	b.WriteString(emptyGroupHeader)
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sldLayout>`)
	return []byte(b.String())
}

func slideLayoutRels() []byte {
	return relsXML([]relationship{
		{id: "rId1", relTyp: relTypeSlideMaster, target: "../slideMasters/slideMaster1.xml"},
	})
}

func notesMasterXML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:notesMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(emptyGroupHeader)
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`)
	b.WriteString(`</p:notesMaster>`)
	return []byte(b.String())
}

func notesMasterRels() []byte {
	return relsXML([]relationship{
		{id: "rId1", relTyp: relTypeTheme, target: "../theme/theme2.xml"},
	})
}

const emptyGroupHeader = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

// themeXML is a minimal but complete Office theme part; PowerPoint
// requires the full format scheme even though our slides set explicit
// colors on every shape.
func themeXML(name string) []byte {
	fills := `<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>`
	lines := `<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>`
	effects := `<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>`
	bgFills := `<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>`

	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<a:theme xmlns:a="%s" name="%s">`, nsA, escape(name))
	b.WriteString(`<a:themeElements>`)
	b.WriteString(`<a:clrScheme name="Office">`)
	b.WriteString(`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>`)
	b.WriteString(`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>`)
	b.WriteString(`<a:dk2><a:srgbClr val="44546A"/></a:dk2>`)
	b.WriteString(`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>`)
	b.WriteString(`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>`)
	b.WriteString(`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>`)
	b.WriteString(`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>`)
	b.WriteString(`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>`)
	b.WriteString(`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>`)
	b.WriteString(`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>`)
	b.WriteString(`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>`)
	b.WriteString(`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>`)
	b.WriteString(`</a:clrScheme>`)
	b.WriteString(`<a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme>`)
	b.WriteString(`<a:fmtScheme name="Office">` + fills + lines + effects + bgFills + `</a:fmtScheme>`)
	b.WriteString(`</a:themeElements>`)
	b.WriteString(`</a:theme>`)
	return []byte(b.String())
}

func corePropsXML(title string) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	fmt.Fprintf(&b, `<dc:title>%s</dc:title>`, escape(title))
	b.WriteString(`<dc:creator>deckmaker</dc:creator>`)
	b.WriteString(`</cp:coreProperties>`)
	return []byte(b.String())
}

func appPropsXML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`)
	b.WriteString(`<Application>deckmaker</Application>`)
	b.WriteString(`</Properties>`)
	return []byte(b.String())
}

// packageSkeleton returns every part shared by templates and decks.
func packageSkeleton(slideCount int, imageCount int, title string) []part {
	return []part{
		{name: "[Content_Types].xml", data: contentTypesXML(slideCount, imageCount)},
		{name: "_rels/.rels", data: relsXML([]relationship{
			{id: "rId1", relTyp: relTypeOfficeDocument, target: "ppt/presentation.xml"},
			{id: "rId2", relTyp: relTypeCoreProps, target: "docProps/core.xml"},
			{id: "rId3", relTyp: relTypeExtProps, target: "docProps/app.xml"},
		})},
		{name: "docProps/core.xml", data: corePropsXML(title)},
		{name: "docProps/app.xml", data: appPropsXML()},
		{name: "ppt/presentation.xml", data: presentationXML(slideCount)},
		{name: "ppt/_rels/presentation.xml.rels", data: presentationRels(slideCount)},
		{name: "ppt/slideMasters/slideMaster1.xml", data: slideMasterXML()},
		{name: "ppt/slideMasters/_rels/slideMaster1.xml.rels", data: slideMasterRels()},
		{name: "ppt/slideLayouts/slideLayout1.xml", data: slideLayoutXML()},
		{name: "ppt/slideLayouts/_rels/slideLayout1.xml.rels", data: slideLayoutRels()},
		{name: "ppt/notesMasters/notesMaster1.xml", data: notesMasterXML()},
		{name: "ppt/notesMasters/_rels/notesMaster1.xml.rels", data: notesMasterRels()},
		{name: "ppt/theme/theme1.xml", data: themeXML("deckmaker")},
		{name: "ppt/theme/theme2.xml", data: themeXML("deckmaker notes")},
	}
}
