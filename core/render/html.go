// Package render — HTML renderer.
// ToSanitizedHTML turns canonical blocks into display markup. Every fragment
// passes through bluemonday because block text carries model- and
// user-supplied markup.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/microcosm-cc/bluemonday"
)

// sanitizer is safe for concurrent use once built.
var sanitizer = bluemonday.UGCPolicy()

// blockFragmentPattern matches paragraph text that is already block-level HTML
// (legacy responses carry pre-rendered fragments).
var blockFragmentPattern = regexp.MustCompile(`(?i)^\s*<(p|div|ul|ol|h[1-6]|table|blockquote|pre|section)[\s>]`)

// ToSanitizedHTML renders blocks to sanitized HTML.
func ToSanitizedHTML(blocks []core.ContentBlock) string {
	var b strings.Builder
	for _, block := range blocks {
		writeBlockHTML(&b, block)
	}
	return sanitizer.Sanitize(b.String())
}

func writeBlockHTML(b *strings.Builder, block core.ContentBlock) {
	switch block.Kind {
	case core.BlockParagraph:
		if blockFragmentPattern.MatchString(block.Text) {
			b.WriteString(block.Text)
			return
		}
		fmt.Fprintf(b, "<p>%s</p>", strings.ReplaceAll(block.Text, "\n", "<br>"))
	case core.BlockHeading:
		fmt.Fprintf(b, "<h%d>%s</h%d>", block.Level, block.Text, block.Level)
	case core.BlockList:
		tag := "ul"
		if block.Ordered {
			tag = "ol"
		}
		fmt.Fprintf(b, "<%s>", tag)
		for _, item := range block.Items {
			fmt.Fprintf(b, "<li>%s</li>", item)
		}
		fmt.Fprintf(b, "</%s>", tag)
	}
}

// HTMLRenderer renders a Document as a standalone, styled HTML page.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

type pageSection struct {
	ID    string
	Title string
	Body  template.HTML
}

type pageData struct {
	Meta         core.DocumentMeta
	Date         string
	FontFamily   template.CSS
	HeadingColor string
	TextColor    string
	HeadingSize  float64
	TextSize     float64
	Sections     []pageSection
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Meta.CompanyName}} RFP Response</title>
<style>
body { font-family: {{.FontFamily}}; color: {{.TextColor}}; font-size: {{.TextSize}}pt; }
h1 { text-align: center; }
h2 { color: {{.HeadingColor}}; font-size: {{.HeadingSize}}pt; }
.title-page, .section { page-break-after: always; }
.metadata { color: #6b7280; }
</style>
</head>
<body>
<div class="title-page">
<h1>RFP Response Document</h1>
<div class="metadata">
<p><strong>Company:</strong> {{.Meta.CompanyName}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
{{- if .Meta.ProjectName}}
<p><strong>Project Name:</strong> {{.Meta.ProjectName}}</p>
{{- end}}
</div>
</div>
{{- range .Sections}}
<div class="section" id="{{.ID}}">
<h2>{{.Title}}</h2>
{{.Body}}
</div>
{{- end}}
</body>
</html>
`))

// Render produces the full HTML page.
func (r *HTMLRenderer) Render(doc *core.Document) ([]byte, error) {
	style := doc.Style.WithDefaults()
	def := core.DefaultStyle()

	data := pageData{
		Meta:         doc.Meta,
		Date:         formatDate(doc.Meta),
		FontFamily:   cssFontFamily(style.FontFamily),
		HeadingColor: parseHexColor(style.HeadingColor, parseHexColor(def.HeadingColor, RGB{})).Hex(),
		TextColor:    parseHexColor(style.TextColor, parseHexColor(def.TextColor, RGB{})).Hex(),
		HeadingSize:  style.HeadingFontSize,
		TextSize:     style.TextFontSize,
		Sections:     make([]pageSection, 0, len(doc.Sections)),
	}
	for _, sec := range doc.Sections {
		data.Sections = append(data.Sections, pageSection{
			ID:    sec.ID,
			Title: sec.Title,
			// Sanitized above; safe to embed unescaped.
			Body: template.HTML(ToSanitizedHTML(sec.Blocks)),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: executing page template: %v", core.ErrRenderFailure, err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

// fontNamePattern is what a single font family name may contain.
var fontNamePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// cssFontFamily rebuilds a font-family list from names that pass
// fontNamePattern, quoting names with spaces. Anything else is dropped; an
// empty result falls back to the default family list.
func cssFontFamily(list string) template.CSS {
	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(strings.Trim(strings.TrimSpace(name), `"'`))
		if name == "" || !fontNamePattern.MatchString(name) {
			continue
		}
		if strings.Contains(name, " ") {
			name = `"` + name + `"`
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		if def := core.DefaultStyle().FontFamily; list != def {
			return cssFontFamily(def)
		}
		return "sans-serif"
	}
	return template.CSS(strings.Join(names, ", "))
}

// formatDate is the title-page date line.
func formatDate(meta core.DocumentMeta) string {
	if meta.GeneratedAt.IsZero() {
		return ""
	}
	return meta.GeneratedAt.Format("January 2, 2006")
}
