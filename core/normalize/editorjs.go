package normalize

import (
	"bytes"
	"encoding/json"

	"github.com/gaurav-prasanna/rfpdraft/core"
)

// editorVersion is stamped on documents handed to the editor.
const editorVersion = "2.28.2"

// ParseEditorJSON decodes text as an Editor.js document. It reports false when
// the text is not JSON or has no "blocks" array, so callers can fall back.
func ParseEditorJSON(text string) ([]core.ContentBlock, bool) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(fields["blocks"], &elems); err != nil || elems == nil {
		return nil, false
	}

	doc := core.EditorDocument{Blocks: make([]core.EditorBlock, 0, len(elems))}
	for _, elem := range elems {
		var b core.EditorBlock
		if err := json.Unmarshal(elem, &b); err != nil {
			continue
		}
		doc.Blocks = append(doc.Blocks, b)
	}
	return FromEditor(doc), true
}

// FromEditor maps editor blocks onto canonical blocks, preserving order.
// Unknown or undecodable blocks are dropped.
func FromEditor(doc core.EditorDocument) []core.ContentBlock {
	blocks := make([]core.ContentBlock, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		switch b.Type {
		case "paragraph":
			var p core.EditorParagraph
			if err := json.Unmarshal(b.Data, &p); err != nil {
				continue
			}
			blocks = append(blocks, core.Paragraph(p.Text))
		case "header":
			var h core.EditorHeader
			if err := json.Unmarshal(b.Data, &h); err != nil {
				continue
			}
			if h.Level == 0 {
				h.Level = 2
			}
			blocks = append(blocks, core.Heading(h.Level, h.Text))
		case "list":
			var l core.EditorList
			if err := json.Unmarshal(b.Data, &l); err != nil {
				continue
			}
			blocks = append(blocks, core.List(l.Style == "ordered", flattenItems(l.Items, nil)))
		}
	}
	return blocks
}

// nestedItem is the object form list items take in newer list tools.
type nestedItem struct {
	Content string            `json:"content"`
	Items   []json.RawMessage `json:"items"`
}

// flattenItems collects list item text depth-first.
func flattenItems(raw []json.RawMessage, out []string) []string {
	if out == nil {
		out = make([]string, 0, len(raw))
	}
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var n nestedItem
		if err := json.Unmarshal(r, &n); err != nil {
			continue
		}
		out = append(out, n.Content)
		out = flattenItems(n.Items, out)
	}
	return out
}

// ToEditor reshapes canonical blocks into an editor document.
func ToEditor(blocks []core.ContentBlock) core.EditorDocument {
	doc := core.EditorDocument{
		Blocks:  make([]core.EditorBlock, 0, len(blocks)),
		Version: editorVersion,
	}
	for _, b := range blocks {
		var (
			typ  string
			data any
		)
		switch b.Kind {
		case core.BlockParagraph:
			typ, data = "paragraph", core.EditorParagraph{Text: b.Text}
		case core.BlockHeading:
			typ, data = "header", core.EditorHeader{Text: b.Text, Level: b.Level}
		case core.BlockList:
			style := "unordered"
			if b.Ordered {
				style = "ordered"
			}
			items := make([]json.RawMessage, 0, len(b.Items))
			for _, item := range b.Items {
				enc, _ := json.Marshal(item)
				items = append(items, enc)
			}
			typ, data = "list", core.EditorList{Style: style, Items: items}
		default:
			continue
		}
		enc, err := json.Marshal(data)
		if err != nil {
			continue
		}
		doc.Blocks = append(doc.Blocks, core.EditorBlock{Type: typ, Data: enc})
	}
	return doc
}
