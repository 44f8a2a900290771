// Package render provides output renderers for rfpdraft documents.
// This file implements the Markdown renderer, which converts the sanitized
// HTML of each section with html-to-markdown.
package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/rfpdraft/core"
	"golang.org/x/net/html"
)

// MarkdownRenderer writes a Document as Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the Document into Markdown bytes.
func (r *MarkdownRenderer) Render(doc *core.Document) ([]byte, error) {
	markdown, err := htmltomarkdown.ConvertString(bodyFragment(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: converting HTML to markdown: %v", core.ErrRenderFailure, err)
	}
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// bodyFragment is the unstyled document body: a title block, then each section
// as an <h2> followed by its sanitized content.
func bodyFragment(doc *core.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s RFP Response</h1>", html.EscapeString(doc.Meta.CompanyName))
	if date := formatDate(doc.Meta); date != "" {
		fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p>", html.EscapeString(date))
	}
	if doc.Meta.ProjectName != "" {
		fmt.Fprintf(&b, "<p><strong>Project Name:</strong> %s</p>", html.EscapeString(doc.Meta.ProjectName))
	}
	for _, sec := range doc.Sections {
		fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(sec.Title))
		b.WriteString(ToSanitizedHTML(sec.Blocks))
	}
	return b.String()
}
