package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/output"
	"github.com/gaurav-prasanna/rfpdraft/core/render"
	"github.com/gaurav-prasanna/rfpdraft/core/review"
	"github.com/gaurav-prasanna/rfpdraft/core/session"
	"github.com/gin-gonic/gin"
)

var errMissingFile = errors.New("file is required")

func (s *Server) session(c *gin.Context) (*session.Session, bool) {
	sess, err := s.store.Get(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) createSession(c *gin.Context) {
	var company session.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	sess, err := s.store.Create(company)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	RespondOK(c, sess.Snapshot())
}

func (s *Server) deleteSession(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// submit forwards the uploaded RFP to the backend and blocks until the
// document is ready or the submission fails.
func (s *Server) submit(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "missing_file", errMissingFile)
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}

	// Submissions are not cancellable once started; the client timeout bounds them.
	ctx := context.WithoutCancel(c.Request.Context())
	if err := sess.Submit(ctx, s.submitter, fh.Filename, data); err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, sess.Snapshot())
}

// load reviews an envelope supplied directly in the request body.
func (s *Server) load(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes))
	if err != nil {
		RespondError(c, http.StatusRequestEntityTooLarge, "body_too_large", err)
		return
	}
	if err := sess.Load(body); err != nil {
		status, code := errorStatus(err)
		if status == http.StatusBadGateway {
			status = http.StatusBadRequest
		}
		RespondError(c, status, code, err)
		return
	}
	RespondOK(c, sess.Snapshot())
}

func (s *Server) setStyle(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var style core.DocumentStyle
	if err := c.ShouldBindJSON(&style); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	var applied core.DocumentStyle
	err := sess.WithReview(func(r *review.Review) error {
		r.SetStyle(style)
		applied = r.Document().Style
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, applied)
}

type sectionView struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	State review.State `json:"state"`
	HTML  string       `json:"html"`
}

func (s *Server) sectionHTML(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sid := c.Param("sid")
	var view sectionView
	err := sess.WithReview(func(r *review.Review) error {
		st, err := r.State(sid)
		if err != nil {
			return err
		}
		sec, _ := r.Document().Section(sid)
		view = sectionView{
			ID:    sec.ID,
			Title: sec.Title,
			State: st,
			HTML:  render.ToSanitizedHTML(sec.Blocks),
		}
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, view)
}

func (s *Server) expand(c *gin.Context) {
	s.transition(c, (*review.Review).Expand)
}

func (s *Server) collapse(c *gin.Context) {
	s.transition(c, (*review.Review).Collapse)
}

func (s *Server) toggle(c *gin.Context) {
	s.transition(c, (*review.Review).Toggle)
}

func (s *Server) transition(c *gin.Context, fn func(*review.Review, string) error) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sid := c.Param("sid")
	var st review.State
	err := sess.WithReview(func(r *review.Review) error {
		if err := fn(r, sid); err != nil {
			return err
		}
		st, _ = r.State(sid)
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"id": sid, "state": st})
}

type editResponse struct {
	ID        string              `json:"id"`
	Draft     core.EditorDocument `json:"draft"`
	Cancelled string              `json:"cancelled,omitempty"`
}

func (s *Server) beginEdit(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sid := c.Param("sid")
	var resp editResponse
	err := sess.WithReview(func(r *review.Review) error {
		draft, cancelled, err := r.BeginEdit(sid)
		if err != nil {
			return err
		}
		resp = editResponse{ID: sid, Draft: draft, Cancelled: cancelled}
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, resp)
}

func (s *Server) saveEdit(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sid := c.Param("sid")
	var draft core.EditorDocument
	if err := c.ShouldBindJSON(&draft); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	var view sectionView
	err := sess.WithReview(func(r *review.Review) error {
		if r.Editing() != sid {
			return fmt.Errorf("%w: %s", review.ErrNotEditing, sid)
		}
		blocks, err := r.Save(draft)
		if err != nil {
			return err
		}
		sec, _ := r.Document().Section(sid)
		view = sectionView{
			ID:    sid,
			Title: sec.Title,
			State: review.Expanded,
			HTML:  render.ToSanitizedHTML(blocks),
		}
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, view)
}

func (s *Server) cancelEdit(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sid := c.Param("sid")
	err := sess.WithReview(func(r *review.Review) error {
		if _, err := r.State(sid); err != nil {
			return err
		}
		if r.Editing() == sid {
			r.Cancel()
		}
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"id": sid, "state": review.Expanded})
}

func (s *Server) export(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	renderer, err := render.ForFormat(c.Param("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unknown_format", err)
		return
	}
	data, meta, err := sess.Render(renderer)
	if err != nil {
		respondErr(c, err)
		return
	}
	name := output.FileName(meta.CompanyName, renderer.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType(renderer.Extension()), data)
}

func contentType(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".html":
		return "text/html; charset=utf-8"
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
