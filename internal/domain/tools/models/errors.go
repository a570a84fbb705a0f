package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument means a required input was missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotConfigured means no Gemini credential was supplied at start-up.
	ErrNotConfigured = errors.New("GEMINI_API_KEY not configured")
	// ErrMalformedOutput means the model text held no parseable JSON of the expected shape.
	ErrMalformedOutput = errors.New("malformed model output")
	// ErrUnknownTool means the requested tool name is not registered.
	ErrUnknownTool = errors.New("unknown tool")
)

// UpstreamError wraps a failed call to the generative-language API.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// InvalidArgument builds an ErrInvalidArgument with a caller-facing message.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
