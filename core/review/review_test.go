package review

import (
	"encoding/json"
	"testing"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReview() *Review {
	doc := &core.Document{
		Style: core.DefaultStyle(),
		Sections: []core.NormalizedSection{
			{ID: "section-0", Title: "One", Blocks: []core.ContentBlock{core.Paragraph("first")}},
			{ID: "section-1", Title: "Two", Blocks: []core.ContentBlock{core.List(false, []string{"a"})}},
		},
	}
	return New(doc, nil)
}

func paragraphBlock(t *testing.T, text string) core.EditorBlock {
	t.Helper()
	data, err := json.Marshal(core.EditorParagraph{Text: text})
	require.NoError(t, err)
	return core.EditorBlock{Type: "paragraph", Data: data}
}

func TestSectionsStartExpanded(t *testing.T) {
	r := newTestReview()

	for _, id := range []string{"section-0", "section-1"} {
		st, err := r.State(id)
		require.NoError(t, err)
		assert.Equal(t, Expanded, st)
	}
	assert.Empty(t, r.Editing())

	_, err := r.State("section-9")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestCollapseExpandToggle(t *testing.T) {
	r := newTestReview()

	require.NoError(t, r.Collapse("section-0"))
	st, _ := r.State("section-0")
	assert.Equal(t, Collapsed, st)

	require.NoError(t, r.Toggle("section-0"))
	st, _ = r.State("section-0")
	assert.Equal(t, Expanded, st)

	require.NoError(t, r.Toggle("section-0"))
	require.NoError(t, r.Expand("section-0"))
	st, _ = r.State("section-0")
	assert.Equal(t, Expanded, st)

	assert.ErrorIs(t, r.Expand("nope"), ErrUnknownSection)
}

func TestBeginEditRequiresExpanded(t *testing.T) {
	r := newTestReview()
	require.NoError(t, r.Collapse("section-0"))

	_, _, err := r.BeginEdit("section-0")

	assert.ErrorIs(t, err, ErrSectionCollapsed)
	assert.Empty(t, r.Editing())
}

func TestBeginEditReturnsDraft(t *testing.T) {
	r := newTestReview()

	draft, cancelled, err := r.BeginEdit("section-1")

	require.NoError(t, err)
	assert.Empty(t, cancelled)
	assert.Equal(t, "section-1", r.Editing())
	require.Len(t, draft.Blocks, 1)
	assert.Equal(t, "list", draft.Blocks[0].Type)

	st, _ := r.State("section-1")
	assert.Equal(t, Editing, st)
	assert.ErrorIs(t, r.Collapse("section-1"), ErrSectionEditing)
}

func TestOnlyOneSectionEditing(t *testing.T) {
	r := newTestReview()
	_, _, err := r.BeginEdit("section-0")
	require.NoError(t, err)

	_, cancelled, err := r.BeginEdit("section-1")
	require.NoError(t, err)

	assert.Equal(t, "section-0", cancelled)
	assert.Equal(t, "section-1", r.Editing())
	st, _ := r.State("section-0")
	assert.Equal(t, Expanded, st)

	sec, _ := r.Document().Section("section-0")
	assert.Equal(t, []core.ContentBlock{core.Paragraph("first")}, sec.Blocks, "cancelled draft must not be saved")
}

func TestSaveReplacesBlocks(t *testing.T) {
	r := newTestReview()
	_, _, err := r.BeginEdit("section-0")
	require.NoError(t, err)

	header, err := json.Marshal(core.EditorHeader{Text: "New", Level: 2})
	require.NoError(t, err)
	saved := core.EditorDocument{Blocks: []core.EditorBlock{
		{Type: "header", Data: header},
		paragraphBlock(t, "Rewritten **text**"),
		{Type: "image", Data: json.RawMessage(`{"url":"x"}`)},
	}}

	blocks, err := r.Save(saved)
	require.NoError(t, err)

	want := []core.ContentBlock{core.Heading(2, "New"), core.Paragraph("Rewritten **text**")}
	assert.Equal(t, want, blocks)
	sec, _ := r.Document().Section("section-0")
	assert.Equal(t, want, sec.Blocks)
	assert.Empty(t, r.Editing())
	st, _ := r.State("section-0")
	assert.Equal(t, Expanded, st)
}

func TestSaveSingleParagraphKeepsText(t *testing.T) {
	r := newTestReview()
	_, _, err := r.BeginEdit("section-0")
	require.NoError(t, err)

	blocks, err := r.Save(core.EditorDocument{Blocks: []core.EditorBlock{paragraphBlock(t, "Keep *stars*")}})

	require.NoError(t, err)
	assert.Equal(t, []core.ContentBlock{core.Paragraph("Keep *stars*")}, blocks)
}

func TestSaveWithoutEditing(t *testing.T) {
	r := newTestReview()

	_, err := r.Save(core.EditorDocument{})

	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestCancelDiscardsDraft(t *testing.T) {
	r := newTestReview()
	_, _, err := r.BeginEdit("section-0")
	require.NoError(t, err)

	r.Cancel()
	r.Cancel()

	assert.Empty(t, r.Editing())
	st, _ := r.State("section-0")
	assert.Equal(t, Expanded, st)
	sec, _ := r.Document().Section("section-0")
	assert.Equal(t, []core.ContentBlock{core.Paragraph("first")}, sec.Blocks)
}

func TestSetStyleFillsDefaults(t *testing.T) {
	r := newTestReview()

	r.SetStyle(core.DocumentStyle{HeadingColor: "#FF0000"})

	assert.Equal(t, "#FF0000", r.Document().Style.HeadingColor)
	assert.Equal(t, core.DefaultStyle().TextColor, r.Document().Style.TextColor)
}
