// Package normalize converts heterogeneous raw section content into the
// canonical block list, and serializes blocks back into the wire shape.
//
// Normalization never fails. Only an Editor.js document with an empty block
// array yields an empty list; every other shape yields at least one block.
package normalize

import (
	"bytes"
	"regexp"

	"github.com/gaurav-prasanna/rfpdraft/core"
)

// Inline markup the generation API emits instead of real tags.
var (
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern    = regexp.MustCompile(`\*(.*?)\*`)
	underlinePattern = regexp.MustCompile(`__(.*?)__`)
)

// ConvertInlineMarkup rewrites **bold**, *italic* and __underline__ into
// <strong>, <em> and <u>. Bold runs first so its markers are not read as italics.
func ConvertInlineMarkup(text string) string {
	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicPattern.ReplaceAllString(text, "<em>$1</em>")
	text = underlinePattern.ReplaceAllString(text, "<u>$1</u>")
	return text
}

// Normalize converts one raw content value into canonical blocks.
// The first matching rule wins:
//  1. tagged paragraph with string data → one Paragraph (inline markup converted)
//  2. tagged list with array data → one unordered List (non-string items keep
//     their JSON text)
//  3. string holding an Editor.js document → its mapped blocks, in order
//  4. anything else → one verbatim Paragraph
//
// A sequence normalizes each element and concatenates them. Null elements are
// skipped; any other unrecognized element falls back on its own.
func Normalize(raw core.RawContent) []core.ContentBlock {
	switch raw.Kind {
	case core.RawTagged:
		if blocks, ok := normalizeTagged(raw.Tagged); ok {
			return blocks
		}
	case core.RawString:
		if blocks, ok := ParseEditorJSON(raw.Text); ok {
			return blocks
		}
	case core.RawSequence:
		blocks := make([]core.ContentBlock, 0, len(raw.Sequence))
		for _, item := range raw.Sequence {
			if item.Kind == core.RawNull {
				continue
			}
			blocks = append(blocks, Normalize(item)...)
		}
		if len(blocks) > 0 {
			return blocks
		}
	}
	return []core.ContentBlock{core.Paragraph(opaqueText(raw))}
}

func normalizeTagged(t core.TaggedContent) ([]core.ContentBlock, bool) {
	switch t.Type {
	case "paragraph":
		if text, ok := t.DataString(); ok {
			return []core.ContentBlock{core.Paragraph(ConvertInlineMarkup(text))}, true
		}
	case "list":
		if items, ok := t.DataStrings(); ok {
			return []core.ContentBlock{core.List(false, items)}, true
		}
	}
	return nil, false
}

// opaqueText is the fallback text for content no rule recognized.
// Null, objects and arrays without string data render as an empty paragraph.
func opaqueText(raw core.RawContent) string {
	switch raw.Kind {
	case core.RawString:
		return raw.Text
	case core.RawTagged:
		if text, ok := raw.Tagged.DataString(); ok {
			return text
		}
	case core.RawOther:
		trimmed := bytes.TrimSpace(raw.JSON)
		if len(trimmed) > 0 && trimmed[0] != '{' && trimmed[0] != '[' {
			return string(trimmed)
		}
	}
	return ""
}
