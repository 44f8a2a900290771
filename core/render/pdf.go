// Package render — PDF renderer.
// Lays out a Document with gofpdf: a title page followed by one page per
// section. Section bodies are laid out from ToPDFNodes output.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin      = 15.0
	listIndent      = 8.0
	listMarkerInset = 2.0
)

// PDFRenderer renders a Document as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the Document into PDF bytes.
func (r *PDFRenderer) Render(doc *core.Document) ([]byte, error) {
	style := doc.Style.WithDefaults()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Meta.CompanyName+" RFP Response", true)
	pdf.SetAuthor(doc.Meta.CompanyName, true)
	pdf.SetCreator("rfpdraft", true)

	w := &pdfWriter{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		family: pdfFontFamily(style.FontFamily),
	}

	w.titlePage(doc.Meta, style)
	for _, sec := range doc.Sections {
		pdf.AddPage()
		w.sectionTitle(sec.Title, style)
		for _, node := range ToPDFNodes(sec.Blocks, style) {
			w.node(node)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: laying out PDF: %v", core.ErrRenderFailure, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: writing PDF: %v", core.ErrRenderFailure, err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	family string
}

// lineHeight converts a font size in points to a line height in mm.
func lineHeight(size float64) float64 {
	return size * 0.5
}

func (w *pdfWriter) titlePage(meta core.DocumentMeta, style core.DocumentStyle) {
	pdf := w.pdf
	text := parseHexColor(style.TextColor, RGB{})
	heading := parseHexColor(style.HeadingColor, RGB{})

	pdf.AddPage()
	pdf.SetY(70)

	pdf.SetFont(w.family, "B", 26)
	pdf.SetTextColor(heading.R, heading.G, heading.B)
	pdf.MultiCell(0, 12, w.tr("RFP Response Document"), "", "C", false)
	pdf.Ln(10)

	pdf.SetFont(w.family, "", 13)
	pdf.SetTextColor(text.R, text.G, text.B)
	pdf.MultiCell(0, 8, w.tr("Company: "+meta.CompanyName), "", "C", false)
	if date := formatDate(meta); date != "" {
		pdf.MultiCell(0, 8, w.tr("Date: "+date), "", "C", false)
	}
	if meta.ProjectName != "" {
		pdf.MultiCell(0, 8, w.tr("Project Name: "+meta.ProjectName), "", "C", false)
	}
	if meta.CompanyDescription != "" {
		pdf.Ln(8)
		pdf.SetFont(w.family, "I", 11)
		pdf.MultiCell(0, 6, w.tr(meta.CompanyDescription), "", "C", false)
	}
}

func (w *pdfWriter) sectionTitle(title string, style core.DocumentStyle) {
	color := parseHexColor(style.HeadingColor, RGB{})
	w.pdf.SetFont(w.family, "B", style.HeadingFontSize+2)
	w.pdf.SetTextColor(color.R, color.G, color.B)
	w.pdf.MultiCell(0, lineHeight(style.HeadingFontSize+2), w.tr(title), "", "L", false)
	w.pdf.Ln(4)
}

func (w *pdfWriter) node(n PDFNode) {
	switch n.Kind {
	case PDFSpacer:
		w.pdf.Ln(n.Height)
	case PDFText:
		w.runs(n.Runs, n.FontSize, n.Color)
	case PDFList:
		w.list(n)
	}
}

// runs writes one line of styled text and moves to the next line.
func (w *pdfWriter) runs(runs []TextRun, size float64, color RGB) {
	lh := lineHeight(size)
	w.pdf.SetTextColor(color.R, color.G, color.B)
	for _, run := range runs {
		w.pdf.SetFont(w.family, runStyle(run), size)
		w.pdf.Write(lh, w.tr(run.Text))
	}
	w.pdf.Ln(lh)
}

func (w *pdfWriter) list(n PDFNode) {
	pdf := w.pdf
	left, _, _, _ := pdf.GetMargins()
	lh := lineHeight(n.FontSize)

	for i, item := range n.Items {
		marker := "•"
		if n.Ordered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		pdf.SetFont(w.family, "", n.FontSize)
		pdf.SetTextColor(n.Color.R, n.Color.G, n.Color.B)
		pdf.SetX(left + listMarkerInset)
		pdf.CellFormat(listIndent-listMarkerInset, lh, w.tr(marker), "", 0, "L", false, 0, "")

		pdf.SetLeftMargin(left + listIndent)
		w.runs(item, n.FontSize, n.Color)
		pdf.SetLeftMargin(left)
	}
	pdf.SetX(left)
}

// runStyle maps run formatting onto a gofpdf style string.
func runStyle(run TextRun) string {
	var style strings.Builder
	if run.Bold {
		style.WriteByte('B')
	}
	if run.Italic {
		style.WriteByte('I')
	}
	if run.Underline {
		style.WriteByte('U')
	}
	return style.String()
}

// pdfFontFamily maps a CSS font-family list onto a gofpdf core font.
func pdfFontFamily(css string) string {
	for _, name := range strings.Split(css, ",") {
		name = strings.ToLower(strings.Trim(strings.TrimSpace(name), `"'`))
		switch {
		case name == "sans-serif" || strings.Contains(name, "arial") ||
			strings.Contains(name, "helvetica") || strings.Contains(name, "verdana"):
			return "Helvetica"
		case name == "serif" || strings.Contains(name, "times") || strings.Contains(name, "georgia"):
			return "Times"
		case name == "monospace" || strings.Contains(name, "courier"):
			return "Courier"
		}
	}
	return "Helvetica"
}
