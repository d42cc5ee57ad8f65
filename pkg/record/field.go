package record

import (
	"bytes"
	"encoding/json"
)

// Type is the primitive JSON type of a declared field.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

// Format is the format hint attached to a field.
type Format string

const (
	FormatNone     Format = ""
	FormatUUID     Format = "uuid"
	FormatDate     Format = "date"
	FormatDateTime Format = "date-time"
	FormatDouble   Format = "double"
	FormatCurrency Format = "iso-4217"
)

// Field declares one scalar field of record type T.
type Field[T any] struct {
	Name   string
	Type   Type
	Format Format

	// Enum lists the documented values of the field. It is informational:
	// values outside the list decode and validate like any other string.
	Enum []string

	decode func(dst *T, raw json.RawMessage) error
	value  func(src *T) (interface{}, bool)
}

// Value returns the field's value on src and whether it is set.
func (f Field[T]) Value(src *T) (interface{}, bool) {
	return f.value(src)
}

// String declares a string field.
func String[T any](name string, format Format, ptr func(*T) **string) Field[T] {
	return scalar(name, TypeString, format, ptr)
}

// Enum declares a string field with documented values. S is usually a named
// string type carrying the known constants.
func Enum[T any, S ~string](name string, values []S, ptr func(*T) **S) Field[T] {
	f := scalar(name, TypeString, FormatNone, ptr)
	for _, v := range values {
		f.Enum = append(f.Enum, string(v))
	}
	return f
}

// Number declares a double-precision number field.
func Number[T any](name string, ptr func(*T) **float64) Field[T] {
	return scalar(name, TypeNumber, FormatDouble, ptr)
}

// Bool declares a boolean field.
func Bool[T any](name string, ptr func(*T) **bool) Field[T] {
	return scalar(name, TypeBoolean, FormatNone, ptr)
}

// DateField declares a calendar date field.
func DateField[T any](name string, ptr func(*T) **Date) Field[T] {
	return scalar(name, TypeString, FormatDate, ptr)
}

// DateTimeField declares a timestamp field.
func DateTimeField[T any](name string, ptr func(*T) **DateTime) Field[T] {
	return scalar(name, TypeString, FormatDateTime, ptr)
}

func scalar[T, V any](name string, typ Type, format Format, ptr func(*T) **V) Field[T] {
	return Field[T]{
		Name:   name,
		Type:   typ,
		Format: format,
		decode: func(dst *T, raw json.RawMessage) error {
			p := ptr(dst)
			*p = nil
			if isNull(raw) {
				return nil
			}
			var v V
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*p = &v
			return nil
		},
		value: func(src *T) (interface{}, bool) {
			p := *ptr(src)
			if p == nil {
				return nil, false
			}
			return *p, true
		},
	}
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
