// Package render — PDF renderer.
// Optional companion output: renders each converted document's Markdown
// into a simply styled PDF using gofpdf. Headings, paragraphs, lists, and
// code blocks are handled; images are left as their canonical paths.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/mdforge/core"
)

// headingSizes maps Markdown heading level to font size in points.
var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

var orderedItem = regexp.MustCompile(`^\d+\.\s`)

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.DocumentMeta) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, meta.Title, "", "L", false)
		pdf.Ln(4)
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, "Converted from: "+meta.SourcePath, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			pdf.Ln(2)
			continue
		}
		if inCode {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, line, "", "L", true)
			continue
		}
		if trimmed == "" {
			pdf.Ln(3)
			continue
		}
		if strings.HasPrefix(line, "#") {
			level := len(line) - len(strings.TrimLeft(line, "#"))
			writeHeading(pdf, strings.TrimSpace(strings.TrimLeft(line, "# ")), level)
			continue
		}

		text := trimmed
		if strings.HasPrefix(text, "- ") || strings.HasPrefix(text, "* ") {
			text = "• " + strings.TrimSpace(text[2:])
		} else if !orderedItem.MatchString(text) {
			text = line
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, stripInline(text), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func writeHeading(pdf *gofpdf.Fpdf, text string, level int) {
	size, ok := headingSizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, stripInline(text), "", "L", false)
	pdf.Ln(2)
}

var (
	emphasisMarks = strings.NewReplacer("**", "", "__", "")
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	inlineLink    = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]+\)`)
)

// stripInline removes inline Markdown formatting; PDF text is unstyled.
func stripInline(text string) string {
	text = emphasisMarks.Replace(text)
	text = inlineCode.ReplaceAllString(text, "$1")
	text = inlineLink.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
