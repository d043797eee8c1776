package mapping

import (
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

// Binding ties a logical field to one destination property
type Binding struct {
	Field    Field
	Property string
	Type     schema.FieldType
}

// Bindings is the resolved field-to-property table for one schema snapshot
type Bindings struct {
	byField map[Field]Binding
}

// Resolve binds every field to the first candidate present in s. The title
// field falls back to the schema's title property when exactly one exists.
func Resolve(fm FieldMap, s *schema.Schema) Bindings {
	b := Bindings{byField: make(map[Field]Binding)}
	for _, f := range AllFields {
		for _, name := range fm.Candidates(f) {
			if p, ok := s.Property(name); ok {
				b.byField[f] = Binding{Field: f, Property: p.Name, Type: p.Type}
				break
			}
		}
	}

	if _, ok := b.byField[FieldTitle]; !ok && s != nil {
		if titles := s.OfType(schema.FieldTitle); len(titles) == 1 {
			b.byField[FieldTitle] = Binding{Field: FieldTitle, Property: titles[0], Type: schema.FieldTitle}
		}
	}
	return b
}

// Get returns the binding of a field
func (b Bindings) Get(f Field) (Binding, bool) {
	bd, ok := b.byField[f]
	return bd, ok
}

// Property returns the bound property name, or "" when unbound
func (b Bindings) Property(f Field) string {
	return b.byField[f].Property
}

// Has reports whether the field is bound
func (b Bindings) Has(f Field) bool {
	_, ok := b.byField[f]
	return ok
}

// All returns the bound fields in payload order
func (b Bindings) All() []Binding {
	out := make([]Binding, 0, len(b.byField))
	for _, f := range AllFields {
		if bd, ok := b.byField[f]; ok {
			out = append(out, bd)
		}
	}
	return out
}

// Missing returns the unbound fields in payload order
func (b Bindings) Missing() []Field {
	var out []Field
	for _, f := range AllFields {
		if _, ok := b.byField[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}
