// Package session holds per-user application state: company details, the
// submission phase, and the reviewed Document. It replaces a globally shared
// context with an explicit container that every page reads and writes through.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/envelope"
	"github.com/gaurav-prasanna/rfpdraft/core/normalize"
	"github.com/gaurav-prasanna/rfpdraft/core/review"
	"github.com/gaurav-prasanna/rfpdraft/logger"
	"github.com/google/uuid"
)

// Phase is the session's position in the upload → loading → review flow.
type Phase string

const (
	PhaseUpload  Phase = "upload"
	PhaseLoading Phase = "loading"
	PhaseReview  Phase = "review"
)

var (
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrNotInReview      = errors.New("session has no document under review")
	ErrMissingDetails   = errors.New("company name and description are required")
)

// Company is what the upload step collects besides the file.
type Company struct {
	Name        string `json:"company_name"`
	Description string `json:"company_description"`
	ProjectName string `json:"project_name,omitempty"`
}

// Session is one upload-and-review flow. Methods are safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	company Company
	style   core.DocumentStyle
	phase   Phase
	lastErr error
	review  *review.Review
	log     *logger.Logger
}

// Snapshot is a point-in-time copy of a session's visible state.
type Snapshot struct {
	ID        string                  `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	Company   Company                 `json:"company"`
	Phase     Phase                   `json:"phase"`
	LastError string                  `json:"last_error,omitempty"`
	Editing   string                  `json:"editing,omitempty"`
	Document  *core.Document          `json:"document,omitempty"`
	States    map[string]review.State `json:"states,omitempty"`
}

// New creates a session in the upload phase.
func New(company Company, style core.DocumentStyle, log *logger.Logger) (*Session, error) {
	if company.Name == "" || company.Description == "" {
		return nil, ErrMissingDetails
	}
	if log == nil {
		log = logger.Nop()
	}
	id := uuid.NewString()
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		company:   company,
		style:     style.WithDefaults(),
		phase:     PhaseUpload,
		log:       log.With("session", id),
	}, nil
}

// Submit sends the upload and, on success, builds the document and enters
// review. While a submission is outstanding further calls fail with
// ErrSubmitInProgress. On failure the session returns to the upload phase
// with the error recorded so the user can retry.
func (s *Session) Submit(ctx context.Context, submitter core.Submitter, fileName string, file []byte) error {
	s.mu.Lock()
	if s.phase == PhaseLoading {
		s.mu.Unlock()
		return ErrSubmitInProgress
	}
	s.phase = PhaseLoading
	s.lastErr = nil
	s.review = nil // a new upload tears down the previous document
	company := s.company
	s.mu.Unlock()

	s.log.Info("submitting RFP", "file", fileName, "bytes", len(file))
	doc, err := generate(ctx, submitter, company, s.style, fileName, file)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseUpload
		s.lastErr = err
		s.log.Warn("submission failed", "error", err)
		return err
	}
	s.review = review.New(doc, s.log)
	s.phase = PhaseReview
	s.log.Info("document ready", "sections", len(doc.Sections))
	return nil
}

// generate runs submit → parse → normalize.
func generate(ctx context.Context, submitter core.Submitter, company Company, style core.DocumentStyle, fileName string, file []byte) (*core.Document, error) {
	body, err := submitter.Submit(ctx, core.Upload{
		FileName:    fileName,
		File:        bytes.NewReader(file),
		Description: company.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	raws, err := envelope.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	return normalize.BuildDocument(raws, core.DocumentMeta{
		CompanyName:        company.Name,
		CompanyDescription: company.Description,
		ProjectName:        company.ProjectName,
	}, style), nil
}

// Load skips the submission and reviews an already-received envelope.
func (s *Session) Load(body []byte) error {
	raws, err := envelope.Parse(body)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseLoading {
		return ErrSubmitInProgress
	}
	doc := normalize.BuildDocument(raws, core.DocumentMeta{
		CompanyName:        s.company.Name,
		CompanyDescription: s.company.Description,
		ProjectName:        s.company.ProjectName,
	}, s.style)
	s.review = review.New(doc, s.log)
	s.phase = PhaseReview
	s.lastErr = nil
	return nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// LastError returns the most recent submission failure, if any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Snapshot copies the session state for display.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Company:   s.company,
		Phase:     s.phase,
	}
	if s.lastErr != nil {
		snap.LastError = s.lastErr.Error()
	}
	if s.review != nil {
		doc := *s.review.Document()
		doc.Sections = append([]core.NormalizedSection(nil), doc.Sections...)
		snap.Document = &doc
		snap.Editing = s.review.Editing()
		snap.States = make(map[string]review.State, len(doc.Sections))
		for _, sec := range doc.Sections {
			st, _ := s.review.State(sec.ID)
			snap.States[sec.ID] = st
		}
	}
	return snap
}

// WithReview runs fn against the review under the session lock.
func (s *Session) WithReview(fn func(r *review.Review) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.review == nil {
		return ErrNotInReview
	}
	return fn(s.review)
}

// Render renders the reviewed document under the session lock.
func (s *Session) Render(r core.Renderer) ([]byte, *core.DocumentMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.review == nil {
		return nil, nil, ErrNotInReview
	}
	doc := s.review.Document()
	data, err := r.Render(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}
	meta := doc.Meta
	return data, &meta, nil
}
