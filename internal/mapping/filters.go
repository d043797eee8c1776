package mapping

import (
	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/notion"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

// IdentityFilter builds the exact-match lookup for a source id. It returns
// false when the id cannot be encoded for the bound property type, in which
// case the id lookup is skipped.
func IdentityFilter(b Binding, sourceID string) (notion.Filter, bool) {
	v, ok := EncodeIdentity(b.Type, sourceID)
	if !ok {
		return nil, false
	}
	switch b.Type {
	case schema.FieldNumber:
		return notion.Filter{"property": b.Property, "number": map[string]any{"equals": v}}, true
	default:
		// text and title filters compare against the plain string
		return notion.Filter{"property": b.Property, string(b.Type): map[string]any{"equals": Truncate(sourceID, notion.MaxTextLength)}}, true
	}
}

// FallbackFilter matches on title AND due date, rendered exactly as the
// payload renders them. It needs both a title and a due binding of a usable type.
// When rec carries an id the bound identity property can hold, only rows whose
// identity is still empty match: a row linked to another id is a different item.
func (m *Mapper) FallbackFilter(b Bindings, rec domain.SourceRecord) (notion.Filter, bool) {
	title, ok := b.Get(FieldTitle)
	if !ok || (title.Type != schema.FieldTitle && title.Type != schema.FieldText) {
		return nil, false
	}
	due, ok := b.Get(FieldDue)
	if !ok || (due.Type != schema.FieldDate && due.Type != schema.FieldText) {
		return nil, false
	}

	name := rec.Title
	if name == "" {
		name = domain.DefaultTitle
	}
	titleFilter := notion.Filter{
		"property":         title.Property,
		string(title.Type): map[string]any{"equals": Truncate(name, notion.MaxTextLength)},
	}

	var cond map[string]any
	if rec.DueAt == nil {
		cond = map[string]any{"is_empty": true}
	} else {
		cond = map[string]any{"equals": m.FormatDue(*rec.DueAt, rec.AllDay)}
	}
	dueFilter := notion.Filter{"property": due.Property, string(due.Type): cond}

	filters := []notion.Filter{titleFilter, dueFilter}
	if unlinked, ok := unlinkedFilter(b, rec); ok {
		filters = append(filters, unlinked)
	}
	return notion.And(filters...), true
}

// unlinkedFilter matches rows with an empty identity property
func unlinkedFilter(b Bindings, rec domain.SourceRecord) (notion.Filter, bool) {
	id, ok := b.Get(FieldSourceID)
	if !ok || (id.Type != schema.FieldNumber && id.Type != schema.FieldText) {
		return nil, false
	}
	if _, ok := EncodeIdentity(id.Type, rec.SourceID); !ok {
		return nil, false
	}
	return notion.Filter{"property": id.Property, string(id.Type): map[string]any{"is_empty": true}}, true
}
