package invoice

import (
	"errors"
	"fmt"
)

// Common invoice loading errors
var (
	// ErrEmptyPayload is returned when the input holds no JSON at all.
	ErrEmptyPayload = errors.New("empty invoice payload")

	// ErrPayloadTooLarge is returned when the input exceeds the configured size limit.
	ErrPayloadTooLarge = errors.New("payload exceeds maximum size limit")

	// ErrInvalidPayload is returned when the input is not valid JSON or one of
	// its records is not a JSON object.
	ErrInvalidPayload = errors.New("invalid invoice payload")

	// ErrUnsupportedFormat is returned when the top-level JSON value is neither
	// an invoice, an array of invoices, nor a query result envelope.
	ErrUnsupportedFormat = errors.New("unsupported payload format")

	// ErrContextCanceled is returned when loading is canceled via context.
	ErrContextCanceled = errors.New("invoice loading was canceled")
)

// LoadError wraps errors with additional context about loading failures.
type LoadError struct {
	// Op is the operation that failed (e.g., "Load", "LoadRelated").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string

	// Path is the file being read (if available).
	Path string

	// Size is the size of the payload in bytes (if available).
	Size int64
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("invoice: %s failed (file: %s): %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *LoadError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewLoadError creates a new LoadError with the specified operation and underlying error.
func NewLoadError(op string, err error, details string) *LoadError {
	return &LoadError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapLoadError wraps an error as a LoadError if it isn't already one.
func WrapLoadError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return err // Already wrapped
	}

	return NewLoadError(op, err, details)
}
