package core

import "time"

// BlockKind names a ContentBlock variant.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockList      BlockKind = "list"
)

// ContentBlock is the canonical content unit within a section.
// Text holds inline HTML for paragraphs and headings; Items holds inline HTML
// per list entry.
type ContentBlock struct {
	Kind    BlockKind `json:"kind"`
	Text    string    `json:"text,omitempty"`
	Level   int       `json:"level,omitempty"`
	Ordered bool      `json:"ordered,omitempty"`
	Items   []string  `json:"items,omitempty"`
}

// Paragraph builds a paragraph block.
func Paragraph(text string) ContentBlock {
	return ContentBlock{Kind: BlockParagraph, Text: text}
}

// Heading builds a heading block, clamping level into 1..6.
func Heading(level int, text string) ContentBlock {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return ContentBlock{Kind: BlockHeading, Level: level, Text: text}
}

// List builds a list block. A nil item slice is stored as empty.
func List(ordered bool, items []string) ContentBlock {
	if items == nil {
		items = []string{}
	}
	return ContentBlock{Kind: BlockList, Ordered: ordered, Items: items}
}

// NormalizedSection is one titled unit of the response document.
type NormalizedSection struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Blocks []ContentBlock `json:"blocks"`
}

// DocumentMeta holds document-level metadata shown on the title page.
type DocumentMeta struct {
	CompanyName        string    `json:"company_name"`
	CompanyDescription string    `json:"company_description"`
	ProjectName        string    `json:"project_name,omitempty"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// DocumentStyle controls fonts and colors for HTML and PDF output.
type DocumentStyle struct {
	FontFamily      string  `json:"font_family" yaml:"font_family"`
	HeadingColor    string  `json:"heading_color" yaml:"heading_color"`
	TextColor       string  `json:"text_color" yaml:"text_color"`
	HeadingFontSize float64 `json:"heading_font_size" yaml:"heading_font_size"`
	TextFontSize    float64 `json:"text_font_size" yaml:"text_font_size"`
}

// DefaultStyle returns the stock document style.
func DefaultStyle() DocumentStyle {
	return DocumentStyle{
		FontFamily:      "Arial, sans-serif",
		HeadingColor:    "#1E40AF",
		TextColor:       "#333333",
		HeadingFontSize: 18,
		TextFontSize:    11,
	}
}

// WithDefaults fills zero fields from DefaultStyle.
func (s DocumentStyle) WithDefaults() DocumentStyle {
	def := DefaultStyle()
	if s.FontFamily == "" {
		s.FontFamily = def.FontFamily
	}
	if s.HeadingColor == "" {
		s.HeadingColor = def.HeadingColor
	}
	if s.TextColor == "" {
		s.TextColor = def.TextColor
	}
	if s.HeadingFontSize <= 0 {
		s.HeadingFontSize = def.HeadingFontSize
	}
	if s.TextFontSize <= 0 {
		s.TextFontSize = def.TextFontSize
	}
	return s
}

// Document is the ordered section list plus metadata handed to renderers.
type Document struct {
	Meta     DocumentMeta        `json:"meta"`
	Style    DocumentStyle       `json:"style"`
	Sections []NormalizedSection `json:"sections"`
}

// Section returns the section with the given ID.
func (d *Document) Section(id string) (*NormalizedSection, bool) {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i], true
		}
	}
	return nil, false
}

// ReplaceBlocks swaps a section's whole block list. Sections are never
// partially updated.
func (d *Document) ReplaceBlocks(id string, blocks []ContentBlock) bool {
	sec, ok := d.Section(id)
	if !ok {
		return false
	}
	if blocks == nil {
		blocks = []ContentBlock{}
	}
	sec.Blocks = blocks
	return true
}
