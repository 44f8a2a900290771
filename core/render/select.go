package render

import (
	"fmt"

	"github.com/gaurav-prasanna/rfpdraft/core"
)

// Formats lists the supported output format names.
var Formats = []string{"pdf", "html", "markdown", "json"}

// ForFormat returns the renderer for a format name.
func ForFormat(format string) (core.Renderer, error) {
	switch format {
	case "pdf":
		return NewPDFRenderer(), nil
	case "html":
		return NewHTMLRenderer(), nil
	case "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
