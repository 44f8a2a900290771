package core

import (
	"bytes"
	"encoding/json"
)

// DefaultSectionTitle replaces missing or empty section titles.
const DefaultSectionTitle = "Untitled Section"

// RawKind identifies which variant a RawContent holds.
type RawKind int

const (
	// RawNull is a missing or JSON null content field.
	RawNull RawKind = iota
	// RawString is plain text, an HTML fragment, or a JSON-encoded string.
	RawString
	// RawTagged is a {type, data} object.
	RawTagged
	// RawSequence is an array holding at least one tagged object or string.
	RawSequence
	// RawOther is any JSON value that matches none of the above.
	RawOther
)

func (k RawKind) String() string {
	switch k {
	case RawNull:
		return "null"
	case RawString:
		return "string"
	case RawTagged:
		return "tagged"
	case RawSequence:
		return "sequence"
	default:
		return "other"
	}
}

// TaggedContent is the {type, data} envelope the generation API emits per section.
type TaggedContent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// RawContent is the section content exactly as it arrived, classified once at
// ingestion so downstream code matches on Kind instead of re-sniffing shapes.
type RawContent struct {
	Kind     RawKind
	Text     string          // RawString
	Tagged   TaggedContent   // RawTagged
	Sequence []RawContent    // RawSequence
	JSON     json.RawMessage // RawOther
}

// RawSection is one {title, content} record from the envelope.
type RawSection struct {
	Title   string     `json:"title"`
	Content RawContent `json:"content"`
}

// RawText wraps a plain string.
func RawText(s string) RawContent {
	return RawContent{Kind: RawString, Text: s}
}

// RawTaggedParagraph builds a {"type":"paragraph","data":text} content value.
func RawTaggedParagraph(text string) RawContent {
	data, _ := json.Marshal(text)
	return RawContent{Kind: RawTagged, Tagged: TaggedContent{Type: "paragraph", Data: data}}
}

// RawTaggedList builds a {"type":"list","data":[...]} content value.
func RawTaggedList(items []string) RawContent {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return RawContent{Kind: RawTagged, Tagged: TaggedContent{Type: "list", Data: data}}
}

// ParseRawContent classifies a JSON value into a RawContent variant.
// It never fails: anything unrecognized becomes RawOther.
func ParseRawContent(data []byte) RawContent {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return RawContent{Kind: RawNull}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return RawText(s)
		}
	case '{':
		if tagged, ok := parseTagged(trimmed); ok {
			return RawContent{Kind: RawTagged, Tagged: tagged}
		}
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err == nil {
			// Unrecognized elements stay in place so one bad entry degrades
			// only itself.
			seq := make([]RawContent, 0, len(elems))
			recognized := false
			for _, e := range elems {
				item := ParseRawContent(e)
				if item.Kind == RawTagged || item.Kind == RawString || item.Kind == RawSequence {
					recognized = true
				}
				seq = append(seq, item)
			}
			if recognized {
				return RawContent{Kind: RawSequence, Sequence: seq}
			}
		}
	}

	return RawContent{Kind: RawOther, JSON: append(json.RawMessage(nil), trimmed...)}
}

// parseTagged accepts an object whose "type" field is a string.
func parseTagged(obj []byte) (TaggedContent, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(obj, &fields); err != nil {
		return TaggedContent{}, false
	}
	var typ string
	if err := json.Unmarshal(fields["type"], &typ); err != nil || typ == "" {
		return TaggedContent{}, false
	}
	return TaggedContent{Type: typ, Data: fields["data"]}, true
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *RawContent) UnmarshalJSON(data []byte) error {
	*c = ParseRawContent(data)
	return nil
}

// MarshalJSON implements json.Marshaler, emitting the original wire shape.
func (c RawContent) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case RawString:
		return json.Marshal(c.Text)
	case RawTagged:
		return json.Marshal(c.Tagged)
	case RawSequence:
		return json.Marshal(c.Sequence)
	case RawOther:
		if len(c.JSON) > 0 {
			return c.JSON, nil
		}
	}
	return []byte("null"), nil
}

// DataString returns the tagged data as a string, if it is one.
func (t TaggedContent) DataString() (string, bool) {
	var s string
	if len(t.Data) == 0 || json.Unmarshal(t.Data, &s) != nil {
		return "", false
	}
	return s, true
}

// DataStrings returns the tagged data as a list of item texts, if it is an
// array. String elements are kept as-is, null becomes "" and any other element
// keeps its JSON text.
func (t TaggedContent) DataStrings() ([]string, bool) {
	var elems []json.RawMessage
	if len(t.Data) == 0 || json.Unmarshal(t.Data, &elems) != nil || elems == nil {
		return nil, false
	}
	items := make([]string, 0, len(elems))
	for _, e := range elems {
		var s string
		if err := json.Unmarshal(e, &s); err != nil {
			s = string(bytes.TrimSpace(e))
		}
		items = append(items, s)
	}
	return items, true
}
