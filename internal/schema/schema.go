package schema

import (
	"sort"

	"github.com/osse101/AssignmentSync_Go/internal/notion"
)

// FieldType is the closed set of property kinds the sync understands
type FieldType string

const (
	FieldTitle       FieldType = "title"
	FieldText        FieldType = "rich_text"
	FieldBoolean     FieldType = "checkbox"
	FieldDate        FieldType = "date"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multi_select"
	FieldStatus      FieldType = "status"
	FieldNumber      FieldType = "number"
	FieldURL         FieldType = "url"
	FieldPeople      FieldType = "people"
	FieldUnsupported FieldType = "unsupported"
)

// ParseFieldType maps an API property type onto a FieldType
func ParseFieldType(apiType string) FieldType {
	switch t := FieldType(apiType); t {
	case FieldTitle, FieldText, FieldBoolean, FieldDate, FieldSelect,
		FieldMultiSelect, FieldStatus, FieldNumber, FieldURL, FieldPeople:
		return t
	default:
		return FieldUnsupported
	}
}

// Option is one select, multi-select or status choice
type Option struct {
	ID    string
	Name  string
	Color string
}

// Property is one typed column of the destination
type Property struct {
	ID      string
	Name    string
	Type    FieldType
	Options []Option // only for select-like types
}

// SelectLike reports whether options can be appended to the property
func (p Property) SelectLike() bool {
	return p.Type == FieldSelect || p.Type == FieldMultiSelect
}

// HasOption reports whether an option with exactly this name exists
func (p Property) HasOption(name string) bool {
	for _, o := range p.Options {
		if o.Name == name {
			return true
		}
	}
	return false
}

// Schema is an immutable snapshot of the destination's properties
type Schema struct {
	DatabaseID string
	Title      string
	Properties map[string]Property
}

// FromDatabase builds a Schema from the API database object
func FromDatabase(db *notion.Database) *Schema {
	s := &Schema{
		DatabaseID: db.ID,
		Title:      db.Name(),
		Properties: make(map[string]Property, len(db.Properties)),
	}
	for key, ps := range db.Properties {
		name := ps.Name
		if name == "" {
			name = key
		}
		p := Property{ID: ps.ID, Name: name, Type: ParseFieldType(ps.Type)}
		var list *notion.OptionList
		switch p.Type {
		case FieldSelect:
			list = ps.Select
		case FieldMultiSelect:
			list = ps.MultiSelect
		case FieldStatus:
			list = ps.Status
		}
		if list != nil {
			for _, o := range list.Options {
				p.Options = append(p.Options, Option{ID: o.ID, Name: o.Name, Color: o.Color})
			}
		}
		s.Properties[name] = p
	}
	return s
}

// Property looks up a property by exact name
func (s *Schema) Property(name string) (Property, bool) {
	if s == nil {
		return Property{}, false
	}
	p, ok := s.Properties[name]
	return p, ok
}

// Has reports whether a property with this name exists
func (s *Schema) Has(name string) bool {
	_, ok := s.Property(name)
	return ok
}

// OfType returns the names of every property of type t, sorted
func (s *Schema) OfType(t FieldType) []string {
	var names []string
	for name, p := range s.Properties {
		if p.Type == t {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Names returns every property name, sorted
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
