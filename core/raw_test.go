package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawContentKinds(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want RawKind
	}{
		{"null", `null`, RawNull},
		{"empty", ``, RawNull},
		{"string", `"hello"`, RawString},
		{"tagged", `{"type":"paragraph","data":"x"}`, RawTagged},
		{"sequence", `[{"type":"paragraph","data":"x"},"y"]`, RawSequence},
		{"mixed array", `[{"type":"paragraph","data":"x"},1,null]`, RawSequence},
		{"unrecognized array", `[1,{"foo":"bar"}]`, RawOther},
		{"empty array", `[]`, RawOther},
		{"untyped object", `{"text":"x"}`, RawOther},
		{"number", `42`, RawOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRawContent([]byte(tc.in)).Kind)
		})
	}
}

func TestRawContentUnmarshalInSection(t *testing.T) {
	var sec RawSection
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Scope","content":{"type":"list","data":["a","b"]}}`), &sec))

	assert.Equal(t, "Scope", sec.Title)
	require.Equal(t, RawTagged, sec.Content.Kind)
	items, ok := sec.Content.Tagged.DataStrings()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestRawContentMarshalKeepsWireShape(t *testing.T) {
	for _, in := range []string{
		`"plain"`,
		`{"type":"paragraph","data":"x"}`,
		`[{"type":"paragraph","data":"x"},"y"]`,
		`[{"type":"paragraph","data":"x"},null,{"foo":"bar"}]`,
		`{"text":"x"}`,
		`null`,
	} {
		out, err := json.Marshal(ParseRawContent([]byte(in)))
		require.NoError(t, err)
		assert.JSONEq(t, in, string(out))
	}
}

func TestTaggedDataAccessors(t *testing.T) {
	p := RawTaggedParagraph("hi")
	s, ok := p.Tagged.DataString()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)
	_, ok = p.Tagged.DataStrings()
	assert.False(t, ok)

	mixed := ParseRawContent([]byte(`{"type":"list","data":["a",2,null,{"k":true}]}`))
	items, ok := mixed.Tagged.DataStrings()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "2", "", `{"k":true}`}, items)

	l := RawTaggedList(nil)
	items, ok = l.Tagged.DataStrings()
	assert.True(t, ok)
	assert.Empty(t, items)
}

func TestStyleWithDefaults(t *testing.T) {
	s := DocumentStyle{HeadingColor: "#000000"}.WithDefaults()
	def := DefaultStyle()

	assert.Equal(t, "#000000", s.HeadingColor)
	assert.Equal(t, def.FontFamily, s.FontFamily)
	assert.Equal(t, def.TextColor, s.TextColor)
	assert.Equal(t, def.HeadingFontSize, s.HeadingFontSize)
	assert.Equal(t, def.TextFontSize, s.TextFontSize)
}

func TestHeadingClampsLevel(t *testing.T) {
	assert.Equal(t, 1, Heading(0, "x").Level)
	assert.Equal(t, 6, Heading(9, "x").Level)
	assert.Equal(t, 3, Heading(3, "x").Level)
}

func TestReplaceBlocks(t *testing.T) {
	doc := &Document{Sections: []NormalizedSection{
		{ID: "section-0", Blocks: []ContentBlock{Paragraph("old")}},
		{ID: "section-1", Blocks: []ContentBlock{Paragraph("keep")}},
	}}

	assert.True(t, doc.ReplaceBlocks("section-0", []ContentBlock{Paragraph("new"), List(false, nil)}))
	assert.False(t, doc.ReplaceBlocks("section-9", nil))

	sec, ok := doc.Section("section-0")
	require.True(t, ok)
	assert.Equal(t, []ContentBlock{Paragraph("new"), List(false, []string{})}, sec.Blocks)
	assert.Equal(t, []ContentBlock{Paragraph("keep")}, doc.Sections[1].Blocks)
}
