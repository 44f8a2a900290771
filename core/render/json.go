// Package render — JSON renderer.
// Writes the canonical document alongside its envelope snapshot, so the output
// can be fed back to `rfpdraft render` or re-submitted unchanged.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/envelope"
)

// JSONRenderer produces structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// documentJSON is the complete JSON output for a document.
type documentJSON struct {
	Meta     core.DocumentMeta        `json:"meta"`
	Style    core.DocumentStyle       `json:"style"`
	Sections []core.NormalizedSection `json:"sections"`
	Response json.RawMessage          `json:"response"`
}

// Render marshals the document and its envelope snapshot.
func (r *JSONRenderer) Render(doc *core.Document) ([]byte, error) {
	snapshot, err := envelope.Snapshot(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailure, err)
	}

	// The snapshot is {"response": [...]}; lift the array out.
	var wrapped struct {
		Response json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(snapshot, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailure, err)
	}

	data, err := json.MarshalIndent(documentJSON{
		Meta:     doc.Meta,
		Style:    doc.Style,
		Sections: doc.Sections,
		Response: wrapped.Response,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling JSON: %v", core.ErrRenderFailure, err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
