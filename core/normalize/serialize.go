package normalize

import (
	"encoding/json"

	"github.com/gaurav-prasanna/rfpdraft/core"
)

// Serialize converts canonical blocks back into a raw content value such that
// Normalize(Serialize(blocks)) reproduces blocks exactly.
//
// A lone paragraph or unordered list uses the {type, data} shape the API emits.
// Everything else, including paragraphs whose text would be altered by inline
// markup conversion, is stored as an Editor.js document string.
func Serialize(blocks []core.ContentBlock) core.RawContent {
	if len(blocks) == 1 {
		b := blocks[0]
		switch {
		case b.Kind == core.BlockParagraph && ConvertInlineMarkup(b.Text) == b.Text:
			return core.RawTaggedParagraph(b.Text)
		case b.Kind == core.BlockList && !b.Ordered:
			return core.RawTaggedList(b.Items)
		}
	}

	data, err := json.Marshal(ToEditor(blocks))
	if err != nil {
		// EditorDocument holds only strings and ints; Marshal cannot fail here.
		return core.RawText("")
	}
	return core.RawText(string(data))
}
