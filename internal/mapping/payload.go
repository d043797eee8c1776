package mapping

import (
	"github.com/osse101/AssignmentSync_Go/internal/notion"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

// Entry is one property write
type Entry struct {
	Field    Field
	Property string
	Type     schema.FieldType
	Value    any // inner wire value, unused when Clear is set

	// Clear asks for the property to be emptied. Creates drop it.
	Clear bool

	// CreateOnly entries are written when the page is created and left
	// alone afterwards so user edits survive.
	CreateOnly bool
}

// Omission records a field that was left out of the payload
type Omission struct {
	Field    Field
	Property string
	Reason   string
}

// Payload is the ordered set of property writes for one record
type Payload struct {
	entries []Entry
	omitted []Omission
}

func (p *Payload) add(e Entry) {
	p.entries = append(p.entries, e)
}

func (p *Payload) omit(f Field, property, reason string) {
	p.omitted = append(p.omitted, Omission{Field: f, Property: property, Reason: reason})
}

// Entries returns the writes in field order
func (p *Payload) Entries() []Entry {
	return p.entries
}

// Omitted returns the fields that were skipped and why
func (p *Payload) Omitted() []Omission {
	return p.omitted
}

// Get returns the entry for a property
func (p *Payload) Get(property string) (Entry, bool) {
	for _, e := range p.entries {
		if e.Property == property {
			return e, true
		}
	}
	return Entry{}, false
}

// ForCreate renders the create body. Clear entries are dropped because an
// explicit empty date is rejected on creation.
func (p *Payload) ForCreate() notion.Properties {
	props := notion.Properties{}
	for _, e := range p.entries {
		if e.Clear {
			continue
		}
		props[e.Property] = map[string]any{string(e.Type): e.Value}
	}
	return props
}

// ForUpdate renders the update body. Create-only entries are dropped and
// Clear entries become explicit empty values.
func (p *Payload) ForUpdate() notion.Properties {
	props := notion.Properties{}
	for _, e := range p.entries {
		if e.CreateOnly {
			continue
		}
		if e.Clear {
			props[e.Property] = map[string]any{string(e.Type): clearValue(e.Type)}
			continue
		}
		props[e.Property] = map[string]any{string(e.Type): e.Value}
	}
	return props
}

func clearValue(t schema.FieldType) any {
	switch t {
	case schema.FieldText, schema.FieldMultiSelect, schema.FieldPeople:
		return []any{}
	default:
		return nil
	}
}
