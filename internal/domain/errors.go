package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument marks a transcript that parsed cleanly but yielded no
// usable segments. Callers skip the document without logging an error.
var ErrEmptyDocument = errors.New("document has no usable segments")

// ErrInvalidQuery rejects a request with an empty or missing query string.
var ErrInvalidQuery = errors.New("query is required")

// ParseError wraps a failure to decode a source transcript. The indexing
// pipeline logs it and moves on to the next document.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
