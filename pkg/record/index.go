package record

import "strings"

// Key addresses related records by object type and identifier.
// Comparison is case-insensitive on both parts.
type Key struct {
	Type string
	ID   string
}

// NewKey returns the normalized key for the given type and id.
func NewKey(objectType, id string) Key {
	return Key{
		Type: strings.ToLower(strings.TrimSpace(objectType)),
		ID:   strings.ToLower(strings.TrimSpace(id)),
	}
}

// Index groups records of type R under their key. It is read-only after
// construction and safe for concurrent use.
type Index[R any] struct {
	items map[Key][]R
	size  int
}

// NewIndex indexes records with the key function. Records for which key
// reports false, or whose key has an empty id, are skipped.
func NewIndex[R any](records []R, key func(R) (Key, bool)) *Index[R] {
	ix := &Index[R]{items: make(map[Key][]R)}
	for _, rec := range records {
		k, ok := key(rec)
		if !ok {
			continue
		}
		k = NewKey(k.Type, k.ID)
		if k.ID == "" {
			continue
		}
		ix.items[k] = append(ix.items[k], rec)
		ix.size++
	}
	return ix
}

// Lookup returns the records filed under the key, in input order.
func (ix *Index[R]) Lookup(k Key) []R {
	if ix == nil {
		return nil
	}
	return ix.items[NewKey(k.Type, k.ID)]
}

// First returns the first record filed under the key.
func (ix *Index[R]) First(k Key) (R, bool) {
	recs := ix.Lookup(k)
	if len(recs) == 0 {
		var zero R
		return zero, false
	}
	return recs[0], true
}

// Len returns the number of indexed records.
func (ix *Index[R]) Len() int {
	if ix == nil {
		return 0
	}
	return ix.size
}

// Value dereferences p, returning the zero value for nil.
func Value[V any](p *V) V {
	if p == nil {
		var zero V
		return zero
	}
	return *p
}
