package render

import (
	"bytes"
	"testing"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTexts(runs []TextRun) []string {
	out := make([]string, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.Text)
	}
	return out
}

func textNodes(nodes []PDFNode) []PDFNode {
	var out []PDFNode
	for _, n := range nodes {
		if n.Kind == PDFText {
			out = append(out, n)
		}
	}
	return out
}

func TestToPDFNodesSplitsParagraphLines(t *testing.T) {
	nodes := ToPDFNodes([]core.ContentBlock{core.Paragraph("First line\nSecond line<br>Third")}, core.DefaultStyle())

	require.Len(t, nodes, 3)
	assert.Equal(t, []string{"First line"}, runTexts(nodes[0].Runs))
	assert.Equal(t, []string{"Second line"}, runTexts(nodes[1].Runs))
	assert.Equal(t, []string{"Third"}, runTexts(nodes[2].Runs))
	for _, n := range nodes {
		assert.Equal(t, PDFText, n.Kind)
		assert.Equal(t, 11.0, n.FontSize)
		assert.Equal(t, RGB{0x33, 0x33, 0x33}, n.Color)
	}
}

func TestToPDFNodesInlineFormatting(t *testing.T) {
	nodes := ToPDFNodes([]core.ContentBlock{core.Paragraph("Plain <strong>bold</strong> <em>it</em> <u>under</u>")}, core.DefaultStyle())

	require.Len(t, nodes, 1)
	runs := nodes[0].Runs
	require.Len(t, runs, 6)
	assert.Equal(t, TextRun{Text: "Plain "}, runs[0])
	assert.Equal(t, TextRun{Text: "bold", Bold: true}, runs[1])
	assert.Equal(t, TextRun{Text: "it", Italic: true}, runs[3])
	assert.Equal(t, TextRun{Text: "under", Underline: true}, runs[5])
}

func TestToPDFNodesList(t *testing.T) {
	nodes := ToPDFNodes([]core.ContentBlock{core.List(true, []string{"Alpha", "<b>Beta</b>"})}, core.DefaultStyle())

	require.Len(t, nodes, 1)
	list := nodes[0]
	assert.Equal(t, PDFList, list.Kind)
	assert.True(t, list.Ordered)
	require.Len(t, list.Items, 2)
	assert.Equal(t, []TextRun{{Text: "Alpha"}}, list.Items[0])
	assert.Equal(t, []TextRun{{Text: "Beta", Bold: true}}, list.Items[1])
}

func TestToPDFNodesTaggedBulletList(t *testing.T) {
	raw := core.ParseRawContent([]byte(`{"type":"list","data":["Item A","Item B"]}`))

	nodes := ToPDFNodes(normalize.Normalize(raw), core.DefaultStyle())

	require.Len(t, nodes, 1)
	list := nodes[0]
	assert.Equal(t, PDFList, list.Kind)
	assert.False(t, list.Ordered)
	require.Len(t, list.Items, 2)
	assert.Equal(t, []TextRun{{Text: "Item A"}}, list.Items[0])
	assert.Equal(t, []TextRun{{Text: "Item B"}}, list.Items[1])
}

func TestToPDFNodesHeadingAndSpacing(t *testing.T) {
	style := core.DefaultStyle()
	nodes := ToPDFNodes([]core.ContentBlock{
		core.Heading(2, "Scope"),
		core.Paragraph("Body"),
	}, style)

	require.Len(t, nodes, 3)
	assert.Equal(t, PDFSpacer, nodes[1].Kind)
	assert.Equal(t, blockSpacing, nodes[1].Height)

	heading := nodes[0]
	assert.Equal(t, 16.0, heading.FontSize)
	assert.Equal(t, RGB{0x1E, 0x40, 0xAF}, heading.Color)
	require.Len(t, heading.Runs, 1)
	assert.True(t, heading.Runs[0].Bold)

	assert.Equal(t, style.TextFontSize, headingSize(6, core.DocumentStyle{HeadingFontSize: 12, TextFontSize: 11}))
}

func TestToPDFNodesEmptyParagraph(t *testing.T) {
	nodes := textNodes(ToPDFNodes([]core.ContentBlock{core.Paragraph("")}, core.DefaultStyle()))

	require.Len(t, nodes, 1)
	assert.Empty(t, nodes[0].Runs)
}

func TestPDFRenderer(t *testing.T) {
	out, err := NewPDFRenderer().Render(testDocument())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, ".pdf", NewPDFRenderer().Extension())
}

func TestRunStyleAndFontFamily(t *testing.T) {
	assert.Equal(t, "", runStyle(TextRun{}))
	assert.Equal(t, "BIU", runStyle(TextRun{Bold: true, Italic: true, Underline: true}))

	assert.Equal(t, "Helvetica", pdfFontFamily("Arial, sans-serif"))
	assert.Equal(t, "Times", pdfFontFamily(`"Georgia", serif`))
	assert.Equal(t, "Courier", pdfFontFamily("monospace"))
	assert.Equal(t, "Helvetica", pdfFontFamily("Comic Sans"))
}
