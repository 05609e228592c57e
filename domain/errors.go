package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyPrompt reports a blank prompt. The pipeline rejects it before any
// upstream call is made.
var ErrEmptyPrompt = errors.New("prompt is empty")

// UpstreamError wraps a failure from an external service the pipeline
// depends on. Cache I/O failures never become an UpstreamError; those are
// absorbed inside the pipeline.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream failure: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err is, or wraps, an UpstreamError.
func IsUpstream(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}
