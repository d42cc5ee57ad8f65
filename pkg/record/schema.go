// Package record maps platform API payloads onto typed Go values.
//
// A Schema is a static table of field and relation declarations for one
// record type. It decodes a JSON object into the record, encodes the record
// back in declaration order, checks format hints, and interprets the
// "include" names that ask the API to embed related records.
//
// Decoding is lenient. A declared key that is missing, null, or holds a value
// of the wrong JSON type leaves the field unset; the last case is reported as
// a FieldError instead of failing the whole record. Only a payload that is not
// a JSON object is an error.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// Schema describes record type T.
type Schema[T any] struct {
	name      string
	fields    []Field[T]
	relations []Relation[T]

	fieldIndex    map[string]int
	relationIndex map[string]int
	includeIndex  map[string]string
}

// NewSchema builds a schema from its declaration tables. The object type
// name is what polymorphic targets use to point back at T. NewSchema panics
// on duplicate names since the tables are static.
func NewSchema[T any](name string, fields []Field[T], relations []Relation[T]) *Schema[T] {
	s := &Schema[T]{
		name:          name,
		fields:        fields,
		relations:     relations,
		fieldIndex:    make(map[string]int, len(fields)),
		relationIndex: make(map[string]int, len(relations)),
		includeIndex:  make(map[string]string),
	}
	for i, f := range fields {
		key := foldKey(f.Name)
		if _, dup := s.fieldIndex[key]; dup {
			panic(fmt.Sprintf("record: duplicate field %q in schema %s", f.Name, name))
		}
		s.fieldIndex[key] = i
	}
	for i, r := range relations {
		for _, n := range r.Names() {
			key := foldKey(n)
			if _, dup := s.relationIndex[key]; dup {
				panic(fmt.Sprintf("record: duplicate relation %q in schema %s", n, name))
			}
			if _, dup := s.fieldIndex[key]; dup {
				panic(fmt.Sprintf("record: relation %q shadows a field in schema %s", n, name))
			}
			s.relationIndex[key] = i
			if r.Include != "" {
				s.includeIndex[key] = r.Include
			}
		}
		if r.Include != "" {
			s.includeIndex[foldKey(r.Include)] = r.Include
		}
	}
	return s
}

// Name returns the object type name of T.
func (s *Schema[T]) Name() string { return s.name }

// Fields returns the declared fields in table order.
func (s *Schema[T]) Fields() []Field[T] { return s.fields }

// Relations returns the declared relations in table order.
func (s *Schema[T]) Relations() []Relation[T] { return s.relations }

// Field looks a field up by name in any spelling.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	i, ok := s.fieldIndex[foldKey(name)]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

// Relation looks a relation up by name or alias in any spelling.
func (s *Schema[T]) Relation(name string) (Relation[T], bool) {
	i, ok := s.relationIndex[foldKey(name)]
	if !ok {
		return Relation[T]{}, false
	}
	return s.relations[i], true
}

// Decode reads a JSON object into dst, replacing its previous contents.
func (s *Schema[T]) Decode(data []byte, dst *T) (FieldErrors, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrMalformedPayload
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return s.DecodeObject(obj, dst), nil
}

// DecodeObject reads an already split JSON object into dst.
func (s *Schema[T]) DecodeObject(obj map[string]json.RawMessage, dst *T) FieldErrors {
	var zero T
	*dst = zero

	lookup := newKeyLookup(obj)
	var errs FieldErrors
	for _, f := range s.fields {
		raw, ok := lookup.get(f.Name)
		if !ok {
			continue
		}
		if err := f.decode(dst, raw); err != nil {
			errs = append(errs, NewFieldError(f.Name, rawValue(raw), err.Error()))
		}
	}
	for _, r := range s.relations {
		if !r.Embedded() {
			continue
		}
		raw, ok := lookup.get(r.Name)
		if !ok {
			continue
		}
		if err := r.decode(dst, raw); err != nil {
			errs = append(errs, NewFieldError(r.Name, rawValue(raw), err.Error()))
		}
	}
	return errs
}

// Encode writes src as a JSON object holding its set fields in table order,
// followed by its embedded relations.
func (s *Schema[T]) Encode(src *T) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	write := func(name string, v interface{}) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s.%s: %w", s.name, name, err)
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(b)
		n++
		return nil
	}
	for _, f := range s.fields {
		if v, ok := f.value(src); ok {
			if err := write(f.Name, v); err != nil {
				return nil, err
			}
		}
	}
	for _, r := range s.relations {
		if v, ok := r.Value(src); ok {
			if err := write(r.Name, v); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Validate checks the set fields of src against their format hints.
// Enumerated fields are not restricted to their documented values.
func (s *Schema[T]) Validate(src *T) FieldErrors {
	var errs FieldErrors
	for _, f := range s.fields {
		v, ok := f.value(src)
		if !ok {
			continue
		}
		str, isString := v.(string)
		if !isString {
			continue
		}
		switch f.Format {
		case FormatUUID:
			if _, err := uuid.Parse(str); err != nil {
				errs = append(errs, NewFieldError(f.Name, str, "not a valid uuid"))
			}
		case FormatCurrency:
			if _, err := currency.ParseISO(str); err != nil {
				errs = append(errs, NewFieldError(f.Name, str, "not an ISO 4217 currency code"))
			}
		}
	}
	return errs
}

// keyLookup finds payload keys by exact name, falling back to any spelling
// that folds to the same key.
type keyLookup struct {
	obj    map[string]json.RawMessage
	folded map[string]string
}

func newKeyLookup(obj map[string]json.RawMessage) keyLookup {
	folded := make(map[string]string, len(obj))
	for k := range obj {
		fk := foldKey(k)
		if prev, ok := folded[fk]; ok && prev < k {
			continue
		}
		folded[fk] = k
	}
	return keyLookup{obj: obj, folded: folded}
}

func (l keyLookup) get(name string) (json.RawMessage, bool) {
	if raw, ok := l.obj[name]; ok {
		return raw, true
	}
	k, ok := l.folded[foldKey(name)]
	if !ok {
		return nil, false
	}
	return l.obj[k], true
}
