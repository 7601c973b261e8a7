package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every ValidationError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// FetchError reports that the page at URL could not be retrieved.
// It is the caller's fault as far as the API is concerned.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IndexingError reports a failure while chunking, embedding or storing a page.
type IndexingError struct {
	URL string
	Err error
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("failed to index %s: %v", e.URL, e.Err)
}

func (e *IndexingError) Unwrap() error {
	return e.Err
}

// QueryError reports a failure while embedding a query or searching the store.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("failed to run query: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
