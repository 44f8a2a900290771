package render

import (
	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/normalize"
)

// ToEditableDocument reshapes blocks into the editor widget's document format.
func ToEditableDocument(blocks []core.ContentBlock) core.EditorDocument {
	return normalize.ToEditor(blocks)
}

// FromEditableDocument reshapes the editor's saved output into blocks.
// Block types the editor may add that have no canonical form are dropped.
func FromEditableDocument(doc core.EditorDocument) []core.ContentBlock {
	return normalize.FromEditor(doc)
}
