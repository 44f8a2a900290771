package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/rfpdraft/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PDFNodeKind names a layout primitive.
type PDFNodeKind string

const (
	PDFText   PDFNodeKind = "text"
	PDFList   PDFNodeKind = "list"
	PDFSpacer PDFNodeKind = "spacer"
)

// TextRun is a span of text sharing one font style.
type TextRun struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// PDFNode is one layout primitive. A text node is exactly one line: the PDF
// engine does not break on newlines embedded in a single text cell.
type PDFNode struct {
	Kind     PDFNodeKind
	Runs     []TextRun   // PDFText
	Items    [][]TextRun // PDFList
	Ordered  bool        // PDFList
	FontSize float64
	Color    RGB
	Height   float64 // PDFSpacer, in mm
}

// blockSpacing separates consecutive blocks.
const blockSpacing = 2.0

// ToPDFNodes converts blocks into layout primitives styled from style.
func ToPDFNodes(blocks []core.ContentBlock, style core.DocumentStyle) []PDFNode {
	style = style.WithDefaults()
	def := core.DefaultStyle()
	textColor := parseHexColor(style.TextColor, parseHexColor(def.TextColor, RGB{}))
	headingColor := parseHexColor(style.HeadingColor, parseHexColor(def.HeadingColor, RGB{}))

	var nodes []PDFNode
	for i, block := range blocks {
		if i > 0 {
			nodes = append(nodes, PDFNode{Kind: PDFSpacer, Height: blockSpacing})
		}
		switch block.Kind {
		case core.BlockParagraph:
			for _, line := range inlineLines(block.Text) {
				nodes = append(nodes, PDFNode{
					Kind:     PDFText,
					Runs:     line,
					FontSize: style.TextFontSize,
					Color:    textColor,
				})
			}
		case core.BlockHeading:
			runs := joinLines(inlineLines(block.Text))
			for j := range runs {
				runs[j].Bold = true
			}
			nodes = append(nodes, PDFNode{
				Kind:     PDFText,
				Runs:     runs,
				FontSize: headingSize(block.Level, style),
				Color:    headingColor,
			})
		case core.BlockList:
			items := make([][]TextRun, 0, len(block.Items))
			for _, item := range block.Items {
				items = append(items, joinLines(inlineLines(item)))
			}
			nodes = append(nodes, PDFNode{
				Kind:     PDFList,
				Items:    items,
				Ordered:  block.Ordered,
				FontSize: style.TextFontSize,
				Color:    textColor,
			})
		}
	}
	return nodes
}

// headingSize shrinks the heading font by 2pt per level, never below body text.
func headingSize(level int, style core.DocumentStyle) float64 {
	size := style.HeadingFontSize - float64(level-1)*2
	if size < style.TextFontSize {
		size = style.TextFontSize
	}
	return size
}

// joinLines flattens lines into one run list, separated by spaces.
func joinLines(lines [][]TextRun) []TextRun {
	var out []TextRun
	for i, line := range lines {
		if i > 0 && len(line) > 0 && len(out) > 0 {
			out = append(out, TextRun{Text: " "})
		}
		out = append(out, line...)
	}
	return out
}

// inlineLines splits inline HTML into lines of styled runs. Newlines, <br> and
// block-level element boundaries start a new line.
func inlineLines(fragment string) [][]TextRun {
	c := &runCollector{}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		c.text(fragment, TextRun{})
		return c.finish()
	}
	c.walk(doc.Find("body"), TextRun{})
	return c.finish()
}

type runCollector struct {
	lines [][]TextRun
	cur   []TextRun
}

func (c *runCollector) breakLine() {
	c.lines = append(c.lines, c.cur)
	c.cur = nil
}

// softBreak ends the current line only if it has content.
func (c *runCollector) softBreak() {
	if len(c.cur) > 0 {
		c.breakLine()
	}
}

func (c *runCollector) text(s string, format TextRun) {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			c.breakLine()
		}
		if part == "" {
			continue
		}
		run := format
		run.Text = part
		c.cur = append(c.cur, run)
	}
}

func (c *runCollector) walk(sel *goquery.Selection, format TextRun) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch node.Type {
		case html.TextNode:
			c.text(node.Data, format)
		case html.ElementNode:
			if node.DataAtom == atom.Br {
				c.breakLine()
				return
			}
			next := format
			switch node.DataAtom {
			case atom.Strong, atom.B:
				next.Bold = true
			case atom.Em, atom.I:
				next.Italic = true
			case atom.U:
				next.Underline = true
			}
			block := isBlockElement(node.DataAtom)
			if block {
				c.softBreak()
			}
			c.walk(s, next)
			if block {
				c.softBreak()
			}
		}
	})
}

func (c *runCollector) finish() [][]TextRun {
	if len(c.cur) > 0 || len(c.lines) == 0 {
		c.breakLine()
	}
	return c.lines
}

func isBlockElement(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Blockquote, atom.Pre, atom.Section,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Table, atom.Tr:
		return true
	}
	return false
}
