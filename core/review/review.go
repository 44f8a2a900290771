// Package review implements the per-section review state machine:
//
//	Collapsed → Expanded → Editing → Expanded (save or cancel)
//
// At most one section is Editing. Starting an edit elsewhere cancels the
// current draft without saving it.
package review

import (
	"errors"
	"fmt"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/normalize"
	"github.com/gaurav-prasanna/rfpdraft/core/render"
	"github.com/gaurav-prasanna/rfpdraft/logger"
)

// State is a section's review state.
type State string

const (
	Collapsed State = "collapsed"
	Expanded  State = "expanded"
	Editing   State = "editing"
)

var (
	ErrUnknownSection   = errors.New("unknown section")
	ErrSectionCollapsed = errors.New("section is collapsed")
	ErrSectionEditing   = errors.New("section is being edited")
	ErrNotEditing       = errors.New("no section is being edited")
)

// Review owns a Document for the lifetime of a review screen.
// It is not safe for concurrent use.
type Review struct {
	doc     *core.Document
	states  map[string]State
	editing string
	log     *logger.Logger
}

// New starts a review with every section expanded.
func New(doc *core.Document, log *logger.Logger) *Review {
	if log == nil {
		log = logger.Nop()
	}
	r := &Review{
		doc:    doc,
		states: make(map[string]State, len(doc.Sections)),
		log:    log,
	}
	for _, sec := range doc.Sections {
		r.states[sec.ID] = Expanded
	}
	return r
}

// Document returns the reviewed document.
func (r *Review) Document() *core.Document {
	return r.doc
}

// State returns a section's state.
func (r *Review) State(id string) (State, error) {
	st, ok := r.states[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}
	return st, nil
}

// Editing returns the ID of the section being edited, or "".
func (r *Review) Editing() string {
	return r.editing
}

// Expand opens a collapsed section. Expanded or editing sections are unchanged.
func (r *Review) Expand(id string) error {
	st, err := r.State(id)
	if err != nil {
		return err
	}
	if st == Collapsed {
		r.states[id] = Expanded
	}
	return nil
}

// Collapse closes an expanded section.
func (r *Review) Collapse(id string) error {
	st, err := r.State(id)
	if err != nil {
		return err
	}
	if st == Editing {
		return fmt.Errorf("%w: %s", ErrSectionEditing, id)
	}
	r.states[id] = Collapsed
	return nil
}

// Toggle flips a section between collapsed and expanded.
func (r *Review) Toggle(id string) error {
	st, err := r.State(id)
	if err != nil {
		return err
	}
	if st == Collapsed {
		return r.Expand(id)
	}
	return r.Collapse(id)
}

// BeginEdit puts an expanded section into Editing and returns its editor draft.
// If another section was mid-edit its draft is discarded, never saved, and its
// ID is returned as cancelled.
func (r *Review) BeginEdit(id string) (draft core.EditorDocument, cancelled string, err error) {
	st, err := r.State(id)
	if err != nil {
		return core.EditorDocument{}, "", err
	}
	if st == Collapsed {
		return core.EditorDocument{}, "", fmt.Errorf("%w: %s", ErrSectionCollapsed, id)
	}

	if r.editing != "" && r.editing != id {
		cancelled = r.editing
		r.states[cancelled] = Expanded
		r.log.Warn("discarding unsaved edit", "section", cancelled, "next", id)
	}

	sec, _ := r.doc.Section(id)
	r.states[id] = Editing
	r.editing = id
	return render.ToEditableDocument(sec.Blocks), cancelled, nil
}

// Save replaces the editing section's blocks with the editor output and
// returns the stored blocks. The stored list is what re-normalizing the
// section's serialized content yields.
func (r *Review) Save(saved core.EditorDocument) ([]core.ContentBlock, error) {
	if r.editing == "" {
		return nil, ErrNotEditing
	}
	id := r.editing

	blocks := normalize.Normalize(normalize.Serialize(render.FromEditableDocument(saved)))
	r.doc.ReplaceBlocks(id, blocks)

	r.states[id] = Expanded
	r.editing = ""
	r.log.Debug("section saved", "section", id, "blocks", len(blocks))
	return blocks, nil
}

// Cancel discards the current draft. It is a no-op when nothing is being edited.
func (r *Review) Cancel() {
	if r.editing == "" {
		return
	}
	r.states[r.editing] = Expanded
	r.editing = ""
}

// SetStyle replaces the document style, filling unset fields with defaults.
func (r *Review) SetStyle(style core.DocumentStyle) {
	r.doc.Style = style.WithDefaults()
}
