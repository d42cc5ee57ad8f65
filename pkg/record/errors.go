package record

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Common record layer errors
var (
	// ErrMalformedPayload is returned when a payload is not a JSON object.
	ErrMalformedPayload = errors.New("payload is not a JSON object")

	// ErrUnknownInclude is returned when an include name matches no relation of the schema.
	ErrUnknownInclude = errors.New("unknown include")
)

// FieldError describes a single field whose value could not be decoded or
// does not match its declared format.
type FieldError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewFieldError creates a new FieldError.
func NewFieldError(field string, value interface{}, message string) *FieldError {
	return &FieldError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// FieldErrors collects the field problems found on one record.
type FieldErrors []*FieldError

// Err returns nil when there are no field errors.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the names of the offending fields in order.
func (fe FieldErrors) Fields() []string {
	names := make([]string, len(fe))
	for i, e := range fe {
		names[i] = e.Field
	}
	return names
}

// rawValue shortens raw JSON for error reporting.
func rawValue(raw []byte) string {
	const max = 64
	s := string(raw)
	if len(s) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	return s
}
