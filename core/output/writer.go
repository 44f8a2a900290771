// Package output handles file naming and writing for rfpdraft exports.
// Files are named after the company: "Acme Corp" → Acme_Corp_RFP_Response.pdf.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const fileSuffix = "_RFP_Response"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data under the export filename for companyName.
func (w *Writer) Write(companyName string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FileName(companyName, ext))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FileName builds the export filename: whitespace runs in the company name
// become underscores. Path separators are replaced so the name stays a single
// path element.
func FileName(companyName, ext string) string {
	name := whitespaceRun.ReplaceAllString(companyName, "_")
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		return strings.TrimPrefix(fileSuffix, "_") + ext
	}
	return name + fileSuffix + ext
}
