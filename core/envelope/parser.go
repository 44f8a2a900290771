// Package envelope parses the generation API's JSON response into raw sections
// and serializes a reviewed Document back into the same envelope shape.
//
// Parsing is tolerant per section: a malformed record becomes an untitled
// section instead of failing the whole document.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/normalize"
)

// sectionKeys are the top-level keys that may hold the section array, in
// lookup order.
var sectionKeys = []string{"response", "sections"}

// Parse decodes a raw response body into ordered raw sections.
func Parse(raw []byte) ([]core.RawSection, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		if json.Valid(raw) {
			return nil, fmt.Errorf("%w: top-level value is not an object", core.ErrMissingSectionArray)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedEnvelope, err)
	}

	elems, ok := sectionArray(top)
	if !ok {
		return nil, fmt.Errorf("%w: expected %q or %q array", core.ErrMissingSectionArray, sectionKeys[0], sectionKeys[1])
	}

	sections := make([]core.RawSection, 0, len(elems))
	for _, elem := range elems {
		sections = append(sections, parseSection(elem))
	}
	return sections, nil
}

// ParseValue parses an envelope that may already be decoded. Strings and byte
// slices are treated as JSON text; anything else is re-encoded first.
func ParseValue(v any) ([]core.RawSection, error) {
	switch val := v.(type) {
	case string:
		return Parse([]byte(val))
	case []byte:
		return Parse(val)
	case json.RawMessage:
		return Parse(val)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedEnvelope, err)
	}
	return Parse(data)
}

// sectionArray returns the first section key whose value is a JSON array.
func sectionArray(top map[string]json.RawMessage) ([]json.RawMessage, bool) {
	for _, key := range sectionKeys {
		val, ok := top[key]
		if !ok {
			continue
		}
		trimmed := bytes.TrimSpace(val)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			continue
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			continue
		}
		return elems, true
	}
	return nil, false
}

// parseSection decodes one array element, defaulting whatever is missing.
func parseSection(elem json.RawMessage) core.RawSection {
	section := core.RawSection{Title: core.DefaultSectionTitle}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil {
		return section
	}

	var title string
	if err := json.Unmarshal(fields["title"], &title); err == nil && strings.TrimSpace(title) != "" {
		section.Title = title
	}
	section.Content = core.ParseRawContent(fields["content"])
	return section
}

// snapshotSection is one record of the serialized envelope.
type snapshotSection struct {
	Title   string          `json:"title"`
	Content core.RawContent `json:"content"`
}

// Snapshot serializes a Document into the {"response": [...]} envelope shape.
// Parsing and normalizing the snapshot reproduces the document's blocks.
func Snapshot(doc *core.Document) ([]byte, error) {
	out := struct {
		Response []snapshotSection `json:"response"`
	}{Response: make([]snapshotSection, 0, len(doc.Sections))}

	for _, sec := range doc.Sections {
		out.Response = append(out.Response, snapshotSection{
			Title:   sec.Title,
			Content: normalize.Serialize(sec.Blocks),
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}
	return data, nil
}
