package mapping

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/notion"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

// Options configures how values are rendered
type Options struct {
	Location  *time.Location
	DateOnly  bool
	Directory *Directory
}

// Mapper turns source records into property payloads. It performs no I/O.
type Mapper struct {
	loc      *time.Location
	dateOnly bool
	dir      *Directory
}

// NewMapper creates a mapper. A nil location means UTC.
func NewMapper(opts Options) *Mapper {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Mapper{loc: loc, dateOnly: opts.DateOnly, dir: opts.Directory}
}

// WithDirectory returns a copy of the mapper resolving people through dir
func (m *Mapper) WithDirectory(dir *Directory) *Mapper {
	cp := *m
	cp.dir = dir
	return &cp
}

// FormatDate renders a due time the way date properties and fallback
// filters expect it
func (m *Mapper) FormatDate(t time.Time) string {
	t = t.In(m.loc)
	if m.dateOnly {
		return t.Format(DateLayout)
	}
	return t.Format(time.RFC3339)
}

// FormatDue renders a record's due time; all-day dates keep their own
// calendar day whatever the mapper's zone
func (m *Mapper) FormatDue(t time.Time, allDay bool) string {
	if allDay {
		return t.Format(DateLayout)
	}
	return m.FormatDate(t)
}

// value is a logical field value before type-specific encoding
type value struct {
	text   string
	list   []string
	isList bool
	due    *time.Time
	allDay bool
	isDate bool
	flag   *bool
}

func textValue(s string) value { return value{text: s} }
func listValue(l []string) value { return value{list: l, isList: true} }
func dateValue(t *time.Time, allDay bool) value {
	return value{due: t, allDay: allDay, isDate: true}
}
func boolValue(b bool) value { return value{flag: &b} }

// BuildProperties renders rec against the schema snapshot. Fields whose
// property is absent, mistyped or unencodable are omitted, never errors.
func (m *Mapper) BuildProperties(rec domain.SourceRecord, s *schema.Schema, b Bindings, l Labels) *Payload {
	p := &Payload{}

	for _, f := range AllFields {
		bd, ok := b.Get(f)
		if !ok {
			p.omit(f, "", ReasonAbsent)
			continue
		}
		prop, ok := s.Property(bd.Property)
		if !ok {
			p.omit(f, bd.Property, ReasonAbsent)
			continue
		}

		if f == FieldSourceID {
			if !rec.HasSourceID() {
				p.omit(f, prop.Name, ReasonEmpty)
				continue
			}
			v, ok := EncodeIdentity(prop.Type, rec.SourceID)
			if !ok {
				p.omit(f, prop.Name, ReasonMismatch)
				continue
			}
			p.add(Entry{Field: f, Property: prop.Name, Type: prop.Type, Value: v})
			continue
		}

		inner, cleared, reason := m.encode(prop, m.logicalValue(f, rec, l))
		if reason != "" {
			p.omit(f, prop.Name, reason)
			continue
		}

		createOnly := (f == FieldStatus || f == FieldDone) && !rec.Completed
		p.add(Entry{Field: f, Property: prop.Name, Type: prop.Type, Value: inner, Clear: cleared, CreateOnly: createOnly})
	}
	return p
}

func (m *Mapper) logicalValue(f Field, rec domain.SourceRecord, l Labels) value {
	switch f {
	case FieldTitle:
		return textValue(rec.Title)
	case FieldDue:
		return dateValue(rec.DueAt, rec.AllDay)
	case FieldClass:
		return textValue(l.Class)
	case FieldTeacher:
		return listValue(l.Teachers)
	case FieldTags:
		return listValue(l.Tags)
	case FieldKind:
		return textValue(l.Kind)
	case FieldStatus:
		return textValue(l.Status)
	case FieldDone:
		return boolValue(rec.Completed)
	case FieldURL:
		return textValue(rec.Link)
	case FieldPriority:
		return textValue(l.Priority)
	case FieldPoints:
		return textValue(rec.Points)
	default:
		return value{}
	}
}

// encode returns the inner wire value for prop. A non-empty reason means the
// field must be omitted.
func (m *Mapper) encode(prop schema.Property, v value) (inner any, cleared bool, reason string) {
	switch prop.Type {
	case schema.FieldTitle:
		if v.flag != nil {
			return nil, false, ReasonMismatch
		}
		s := strings.TrimSpace(m.asText(v))
		if s == "" {
			s = domain.DefaultTitle
		}
		return richText(s), false, ""

	case schema.FieldText:
		if v.flag != nil {
			return nil, false, ReasonMismatch
		}
		if v.isDate && v.due == nil {
			return nil, true, ""
		}
		s := m.asText(v)
		if s == "" {
			return nil, false, ReasonEmpty
		}
		return richText(s), false, ""

	case schema.FieldBoolean:
		if v.flag == nil {
			return nil, false, ReasonMismatch
		}
		return *v.flag, false, ""

	case schema.FieldDate:
		if !v.isDate {
			return nil, false, ReasonMismatch
		}
		if v.due == nil {
			return nil, true, ""
		}
		return map[string]any{"start": m.FormatDue(*v.due, v.allDay)}, false, ""

	case schema.FieldSelect, schema.FieldStatus:
		if v.isDate || v.flag != nil {
			return nil, false, ReasonMismatch
		}
		name := v.text
		if v.isList {
			name = ""
			if len(v.list) > 0 {
				name = v.list[0]
			}
		}
		if name == "" {
			return nil, false, ReasonEmpty
		}
		// status options cannot be created through the API
		if prop.Type == schema.FieldStatus && !prop.HasOption(name) {
			return nil, false, ReasonMismatch
		}
		return map[string]any{"name": name}, false, ""

	case schema.FieldMultiSelect:
		if v.isDate || v.flag != nil {
			return nil, false, ReasonMismatch
		}
		names := v.list
		if !v.isList && v.text != "" {
			names = []string{v.text}
		}
		opts := make([]map[string]any, 0, len(names))
		for _, n := range domain.UniqueNames(names) {
			opts = append(opts, map[string]any{"name": n})
		}
		return opts, false, ""

	case schema.FieldNumber:
		if v.isDate || v.flag != nil || v.isList {
			return nil, false, ReasonMismatch
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, false, ReasonNotNumeric
		}
		return n, false, ""

	case schema.FieldURL:
		if v.isDate || v.flag != nil || v.isList {
			return nil, false, ReasonMismatch
		}
		if v.text == "" {
			return nil, false, ReasonEmpty
		}
		return v.text, false, ""

	case schema.FieldPeople:
		if !v.isList {
			return nil, false, ReasonMismatch
		}
		var people []map[string]any
		for _, name := range v.list {
			if id, ok := m.dir.Lookup(name); ok {
				people = append(people, map[string]any{"id": id})
			}
		}
		if len(people) == 0 {
			return nil, false, ReasonUnresolved
		}
		return people, false, ""

	default:
		return nil, false, ReasonUnsupported
	}
}

func (m *Mapper) asText(v value) string {
	switch {
	case v.isDate:
		if v.due == nil {
			return ""
		}
		return m.FormatDue(*v.due, v.allDay)
	case v.isList:
		return strings.Join(v.list, ListSeparator)
	default:
		return v.text
	}
}

// EncodeIdentity renders a source id for an identity property. Number
// properties take the numeric value, text and title properties the exact
// string. The lookup filter uses the same rendering.
func EncodeIdentity(t schema.FieldType, id string) (any, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	switch t {
	case schema.FieldNumber:
		n, err := strconv.ParseFloat(id, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, false
		}
		return n, true
	case schema.FieldText, schema.FieldTitle:
		return richText(id), true
	default:
		return nil, false
	}
}

func richText(s string) []map[string]any {
	return []map[string]any{{"text": map[string]any{"content": Truncate(s, notion.MaxTextLength)}}}
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
