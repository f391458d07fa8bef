// Package pptx assembles PowerPoint presentations the same way the rest
// of this codebase reads them: as OPC zip packages of hand-built XML
// parts. It also generates the themed template files the assembler
// clones decorative shapes from.
package pptx

import (
	"fmt"
	"strings"
)

const emuPerInch = 914400

// Slide canvas is fixed at 10 x 7.5 inches (4:3).
const (
	slideWidthEMU  = 10 * emuPerInch
	slideHeightEMU = 15 * emuPerInch / 2
)

// TemplateError marks a missing or malformed template file. Assembly
// fails with it before any output is written.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

func inches(in float64) int {
	return int(in * emuPerInch)
}

// points converts a font size in points to the hundredths-of-a-point
// unit DrawingML uses.
func points(pt int) int {
	return pt * 100
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}
