package normalize

import (
	"testing"
	"time"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDocument(t *testing.T) {
	raws := []core.RawSection{
		{Title: "Executive Summary", Content: core.RawTaggedParagraph("Project Name: Apollo Upgrade\nWe **deliver**.")},
		{Title: "", Content: core.RawTaggedList([]string{"a"})},
	}

	doc := BuildDocument(raws, core.DocumentMeta{CompanyName: "Acme"}, core.DocumentStyle{})

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "section-0", doc.Sections[0].ID)
	assert.Equal(t, "section-1", doc.Sections[1].ID)
	assert.Equal(t, core.DefaultSectionTitle, doc.Sections[1].Title)
	assert.Equal(t, "Apollo Upgrade", doc.Meta.ProjectName)
	assert.Equal(t, "Acme", doc.Meta.CompanyName)
	assert.False(t, doc.Meta.GeneratedAt.IsZero())
	assert.Equal(t, core.DefaultStyle(), doc.Style)
}

func TestBuildDocumentKeepsGivenMeta(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	raws := []core.RawSection{{Title: "A", Content: core.RawText("Project Name: Detected")}}

	doc := BuildDocument(raws, core.DocumentMeta{ProjectName: "Given", GeneratedAt: at}, core.DefaultStyle())

	assert.Equal(t, "Given", doc.Meta.ProjectName)
	assert.Equal(t, at, doc.Meta.GeneratedAt)
}

func TestDetectProjectName(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"br separated", "Intro line<br>Project Name: Harbor Bridge<br>More", "Harbor Bridge"},
		{"bold label", "<strong>Project Name:</strong> Skyline", "Skyline"},
		{"case insensitive", "project name - Nova", "- Nova"},
		{"absent", "Nothing here", ""},
		{"empty value", "Project Name:", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sections := []core.NormalizedSection{{Blocks: []core.ContentBlock{core.Paragraph(tc.text)}}}
			assert.Equal(t, tc.want, DetectProjectName(sections))
		})
	}
}

func TestDetectProjectNameSkipsLists(t *testing.T) {
	sections := []core.NormalizedSection{{Blocks: []core.ContentBlock{
		core.List(false, []string{"Project Name: Hidden"}),
		core.Paragraph("Project Name: Visible"),
	}}}

	assert.Equal(t, "Visible", DetectProjectName(sections))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Fish & Chips bold", PlainText("Fish &amp; Chips <b>bold</b>"))
}
