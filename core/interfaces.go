// Package core defines the document model and pipeline interfaces for rfpdraft.
// Each stage of the pipeline (submit → parse → normalize → render) is a small,
// testable unit that exchanges these types.
package core

import (
	"context"
	"io"
)

// Upload is the payload sent to the generation API.
type Upload struct {
	FileName    string
	File        io.Reader
	Description string
}

// Submitter posts an RFP upload to the generation API and returns the raw
// response body.
type Submitter interface {
	Submit(ctx context.Context, upload Upload) ([]byte, error)
}

// Renderer converts a Document into a final output format.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
