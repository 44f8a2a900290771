package core

import "errors"

// Pipeline error taxonomy. Stages wrap these with fmt.Errorf("...: %w") so callers
// can match with errors.Is.
var (
	// ErrMalformedEnvelope means the response body is not valid JSON.
	ErrMalformedEnvelope = errors.New("malformed envelope")
	// ErrMissingSectionArray means the JSON is valid but has no section array.
	ErrMissingSectionArray = errors.New("missing section array")
	// ErrNetworkFailure means the submission request failed or timed out.
	ErrNetworkFailure = errors.New("network failure")
	// ErrRenderFailure means a document could not be converted to an output form.
	ErrRenderFailure = errors.New("render failure")
)
