package taxonomy

import (
	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/mapping"
)

var facetFields = []mapping.Field{
	mapping.FieldClass,
	mapping.FieldTeacher,
	mapping.FieldTags,
	mapping.FieldKind,
	mapping.FieldStatus,
	mapping.FieldPriority,
}

// Facets collects the labels of a run, per logical field, in first-seen order
type Facets struct {
	values map[mapping.Field][]string
}

// NewFacets returns an empty collection seeded with the closed label sets
// (kinds, statuses and priorities) so their options exist up front
func NewFacets() *Facets {
	f := &Facets{values: make(map[mapping.Field][]string)}
	for _, k := range domain.AllKinds {
		f.add(mapping.FieldKind, string(k))
	}
	f.add(mapping.FieldStatus, domain.AllStatuses...)
	f.add(mapping.FieldPriority, domain.AllPriorities...)
	return f
}

// Add records the labels of one record
func (f *Facets) Add(l mapping.Labels) {
	f.add(mapping.FieldClass, l.Class)
	f.add(mapping.FieldTeacher, l.Teachers...)
	f.add(mapping.FieldTags, l.Tags...)
	f.add(mapping.FieldKind, l.Kind)
	f.add(mapping.FieldStatus, l.Status)
	f.add(mapping.FieldPriority, l.Priority)
}

// Values returns the unique labels collected for a field
func (f *Facets) Values(field mapping.Field) []string {
	return domain.UniqueNames(f.values[field])
}

func (f *Facets) add(field mapping.Field, names ...string) {
	f.values[field] = append(f.values[field], names...)
}
