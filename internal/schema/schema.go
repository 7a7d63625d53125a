// Package schema holds the static description of the relational schema graph:
// relations, their fields, and the associations between them. The registry is
// built once at startup from configuration and is read-only afterward, so it
// can be shared across concurrent requests without locking.
package schema

import (
	"fmt"
)

// FieldType is the semantic type of a field, used for documentation and
// response schema output rather than SQL type mapping.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeInt    FieldType = "integer"
	TypeFloat  FieldType = "float"
	TypeBool   FieldType = "boolean"
	TypeTime   FieldType = "datetime"
	TypeID     FieldType = "id"
)

// Field is one column of a relation.
type Field struct {
	Name string
	Type FieldType
}

// Cardinality describes how many related rows an association can yield.
type Cardinality int

const (
	// One is a belongs-to / has-one association.
	One Cardinality = iota
	// Many is a has-many association.
	Many
)

// Association is an edge in the schema graph. A direct association joins the
// owner relation to Target via OwnerKey = Target.RelatedKey. When Through is
// non-empty the association is logical: it names a chain of other associations
// that must be expanded before the edge is joinable, and the key fields are
// unused.
type Association struct {
	Name        string
	Target      string
	OwnerKey    string
	RelatedKey  string
	Cardinality Cardinality
	Through     []string
}

// IsThrough reports whether the association is a logical through-chain.
func (a Association) IsThrough() bool {
	return len(a.Through) > 0
}

// Schema describes one relation: its table, ordered fields, and associations.
type Schema struct {
	Name         string
	Table        string
	PrimaryKey   string
	Fields       []Field
	Associations []Association
}

// Field returns the field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Association returns the association with the given name.
func (s Schema) Association(name string) (Association, bool) {
	for _, a := range s.Associations {
		if a.Name == name {
			return a, true
		}
	}
	return Association{}, false
}

// Registry is the process-wide set of schemas. It is immutable once built.
type Registry struct {
	schemas map[string]Schema
	order   []string
}

// NewRegistry builds a registry from the given schemas and validates the
// association graph: every association target must name a registered schema,
// every through hop must name an association on the schema it is walked from,
// and direct associations must carry both key fields.
func NewRegistry(schemas ...Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]Schema, len(schemas))}
	for _, s := range schemas {
		if s.Name == "" {
			return nil, fmt.Errorf("schema with empty name")
		}
		if _, dup := r.schemas[s.Name]; dup {
			return nil, fmt.Errorf("duplicate schema %q", s.Name)
		}
		r.schemas[s.Name] = s
		r.order = append(r.order, s.Name)
	}

	for _, s := range schemas {
		for _, a := range s.Associations {
			if a.IsThrough() {
				continue
			}
			if _, ok := r.schemas[a.Target]; !ok {
				return nil, fmt.Errorf("schema %q: association %q targets unknown schema %q", s.Name, a.Name, a.Target)
			}
			if a.OwnerKey == "" || a.RelatedKey == "" {
				return nil, fmt.Errorf("schema %q: association %q is missing key fields", s.Name, a.Name)
			}
		}
	}

	// Through chains are validated by resolving each of them once. This also
	// rejects cyclic chains at startup instead of per request.
	for _, s := range schemas {
		for _, a := range s.Associations {
			if !a.IsThrough() {
				continue
			}
			if _, err := Resolve(r, s, []string{a.Name}); err != nil {
				return nil, fmt.Errorf("schema %q: association %q: %w", s.Name, a.Name, err)
			}
		}
	}

	return r, nil
}

// Schema returns the schema registered under the given name.
func (r *Registry) Schema(name string) (Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns the registered schema names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
