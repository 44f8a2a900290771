package server

import (
	"errors"
	"net/http"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/review"
	"github.com/gaurav-prasanna/rfpdraft/core/session"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// errorStatus maps pipeline and state errors onto HTTP status and code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, review.ErrUnknownSection):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, session.ErrMissingDetails):
		return http.StatusBadRequest, "missing_details"
	case errors.Is(err, session.ErrSubmitInProgress):
		return http.StatusConflict, "submit_in_progress"
	case errors.Is(err, session.ErrNotInReview):
		return http.StatusConflict, "not_in_review"
	case errors.Is(err, review.ErrSectionCollapsed):
		return http.StatusConflict, "section_collapsed"
	case errors.Is(err, review.ErrSectionEditing):
		return http.StatusConflict, "section_editing"
	case errors.Is(err, review.ErrNotEditing):
		return http.StatusConflict, "not_editing"
	case errors.Is(err, core.ErrMalformedEnvelope):
		return http.StatusBadGateway, "malformed_envelope"
	case errors.Is(err, core.ErrMissingSectionArray):
		return http.StatusBadGateway, "missing_section_array"
	case errors.Is(err, core.ErrNetworkFailure):
		return http.StatusBadGateway, "network_failure"
	case errors.Is(err, core.ErrRenderFailure):
		return http.StatusInternalServerError, "render_failure"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondErr(c *gin.Context, err error) {
	status, code := errorStatus(err)
	RespondError(c, status, code, err)
}
