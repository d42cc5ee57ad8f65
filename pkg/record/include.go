package record

import (
	"fmt"
	"strings"
)

// Includes is a set of canonical include names, in schema order.
type Includes []string

// Has reports whether the include name is part of the set.
func (in Includes) Has(name string) bool {
	key := foldKey(name)
	for _, n := range in {
		if foldKey(n) == key {
			return true
		}
	}
	return false
}

// QueryValue renders the set the way the API's include parameter expects it,
// e.g. "Company,Lines,CreditMemos".
func (in Includes) QueryValue() string {
	parts := make([]string, len(in))
	for i, n := range in {
		parts[i] = pascalCase(n)
	}
	return strings.Join(parts, ",")
}

// IncludeNames returns every include name the schema understands, in table order.
func (s *Schema[T]) IncludeNames() Includes {
	var names Includes
	seen := make(map[string]bool)
	for _, r := range s.relations {
		if r.Include == "" || seen[r.Include] {
			continue
		}
		seen[r.Include] = true
		names = append(names, r.Include)
	}
	return names
}

// ParseIncludes reads a comma separated include list. Names are matched in
// any case or spelling and may be relation names or aliases.
func (s *Schema[T]) ParseIncludes(raw string) (Includes, error) {
	wanted := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		include, ok := s.includeIndex[foldKey(part)]
		if !ok {
			return nil, fmt.Errorf("%w %q for %s", ErrUnknownInclude, part, s.name)
		}
		wanted[include] = true
	}
	var out Includes
	for _, n := range s.IncludeNames() {
		if wanted[n] {
			out = append(out, n)
		}
	}
	return out, nil
}

// Wants reports whether the named relation is covered by the include set.
// Reference-only relations are never covered.
func (s *Schema[T]) Wants(in Includes, relation string) bool {
	r, ok := s.Relation(relation)
	if !ok || r.Include == "" {
		return false
	}
	return in.Has(r.Include)
}

// Prune unsets the embedded relations of dst that the include set does not cover.
func (s *Schema[T]) Prune(dst *T, in Includes) {
	for _, r := range s.relations {
		if !r.Embedded() || in.Has(r.Include) {
			continue
		}
		r.clear(dst)
	}
}
