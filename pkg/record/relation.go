package record

import (
	"encoding/json"
)

// Kind is the multiplicity of a relation.
type Kind string

const (
	BelongsTo Kind = "belongs_to"
	HasMany   Kind = "has_many"
)

// Relation declares a link from record type T to records of another type.
type Relation[T any] struct {
	Name    string
	Aliases []string
	Kind    Kind

	// Target is the record type on the other side, e.g. "Account".
	Target string

	// PrimaryKey is the key on the target record; ForeignKey is the key
	// holding the reference (on T for belongs_to, on the target for has_many).
	PrimaryKey string
	ForeignKey string

	// Polymorphic is the object type discriminator the target uses to point
	// back at T, e.g. "Invoice" for notes. Empty for plain relations.
	Polymorphic string

	// Include is the include name that makes the API embed this relation.
	// Empty for reference-only relations.
	Include string

	decode func(dst *T, raw json.RawMessage) error
	value  func(src *T) (interface{}, bool)
}

// Embedded reports whether the relation is carried inside API payloads.
func (r Relation[T]) Embedded() bool {
	return r.decode != nil
}

// Value returns the embedded related data on src and whether it is present.
func (r Relation[T]) Value(src *T) (interface{}, bool) {
	if r.value == nil {
		return nil, false
	}
	return r.value(src)
}

// Names returns the relation name followed by its aliases.
func (r Relation[T]) Names() []string {
	return append([]string{r.Name}, r.Aliases...)
}

// clear unsets the embedded relation on dst.
func (r Relation[T]) clear(dst *T) {
	if r.decode != nil {
		_ = r.decode(dst, nil)
	}
}

// RelationOption customizes a relation declaration.
type RelationOption func(*relationConfig)

type relationConfig struct {
	aliases     []string
	target      string
	primaryKey  string
	foreignKey  string
	polymorphic string
	include     string
	noInclude   bool
}

// Alias adds alternative accessor names for the relation.
func Alias(names ...string) RelationOption {
	return func(c *relationConfig) { c.aliases = append(c.aliases, names...) }
}

// Target names the related record type.
func Target(name string) RelationOption {
	return func(c *relationConfig) { c.target = name }
}

// Keys sets the primary key on the target and the foreign key holding the reference.
func Keys(primaryKey, foreignKey string) RelationOption {
	return func(c *relationConfig) {
		c.primaryKey = primaryKey
		c.foreignKey = foreignKey
	}
}

// Polymorphic marks a has_many whose targets point back through an object
// type discriminator.
func Polymorphic(objectType string) RelationOption {
	return func(c *relationConfig) { c.polymorphic = objectType }
}

// IncludedBy sets the include name that embeds the relation when it differs
// from the relation name.
func IncludedBy(include string) RelationOption {
	return func(c *relationConfig) { c.include = include }
}

func buildRelation[T any](name string, kind Kind, opts []RelationOption) Relation[T] {
	cfg := relationConfig{include: name}
	for _, opt := range opts {
		opt(&cfg)
	}
	rel := Relation[T]{
		Name:        name,
		Aliases:     cfg.aliases,
		Kind:        kind,
		Target:      cfg.target,
		PrimaryKey:  cfg.primaryKey,
		ForeignKey:  cfg.foreignKey,
		Polymorphic: cfg.polymorphic,
	}
	if !cfg.noInclude {
		rel.Include = cfg.include
	}
	return rel
}

// One declares an embedded belongs_to relation stored in *R.
func One[T, R any](name string, ptr func(*T) **R, opts ...RelationOption) Relation[T] {
	rel := buildRelation[T](name, BelongsTo, opts)
	rel.decode = func(dst *T, raw json.RawMessage) error {
		p := ptr(dst)
		*p = nil
		if isNull(raw) {
			return nil
		}
		var v R
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*p = &v
		return nil
	}
	rel.value = func(src *T) (interface{}, bool) {
		p := *ptr(src)
		if p == nil {
			return nil, false
		}
		return p, true
	}
	return rel
}

// Many declares an embedded has_many relation stored in []R. A nil slice
// means absent; an empty non-nil slice is an embedded empty list.
func Many[T, R any](name string, ptr func(*T) *[]R, opts ...RelationOption) Relation[T] {
	rel := buildRelation[T](name, HasMany, opts)
	rel.decode = func(dst *T, raw json.RawMessage) error {
		p := ptr(dst)
		*p = nil
		if isNull(raw) {
			return nil
		}
		v := []R{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*p = v
		return nil
	}
	rel.value = func(src *T) (interface{}, bool) {
		p := *ptr(src)
		if p == nil {
			return nil, false
		}
		return p, true
	}
	return rel
}

// Reference declares a belongs_to relation that API payloads never embed.
// It exists for callers resolving records they loaded separately.
func Reference[T any](name string, opts ...RelationOption) Relation[T] {
	opts = append(opts, func(c *relationConfig) { c.noInclude = true })
	return buildRelation[T](name, BelongsTo, opts)
}
