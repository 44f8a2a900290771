package core

import "encoding/json"

// EditorDocument is the block-tree structure the rich-text editor loads and
// saves (Editor.js output format).
type EditorDocument struct {
	Time    int64         `json:"time,omitempty"`
	Blocks  []EditorBlock `json:"blocks"`
	Version string        `json:"version,omitempty"`
}

// EditorBlock is one editor block; Data depends on Type.
type EditorBlock struct {
	ID   string          `json:"id,omitempty"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EditorParagraph is the data payload of a "paragraph" block.
type EditorParagraph struct {
	Text string `json:"text"`
}

// EditorHeader is the data payload of a "header" block.
type EditorHeader struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// EditorList is the data payload of a "list" block. Items are either plain
// strings or nested {content, items} objects depending on the list tool version.
type EditorList struct {
	Style string            `json:"style"`
	Items []json.RawMessage `json:"items"`
}
