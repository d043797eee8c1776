package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AssignmentSync_Go/internal/notion"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

func TestIdentityFilter(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
		id      string
		want    notion.Filter
		ok      bool
	}{
		{
			name:    "number",
			binding: Binding{Field: FieldSourceID, Property: "Canvas ID", Type: schema.FieldNumber},
			id:      "501",
			want:    notion.Filter{"property": "Canvas ID", "number": map[string]any{"equals": 501.0}},
			ok:      true,
		},
		{
			name:    "text",
			binding: Binding{Field: FieldSourceID, Property: "Source ID", Type: schema.FieldText},
			id:      "evt_1",
			want:    notion.Filter{"property": "Source ID", "rich_text": map[string]any{"equals": "evt_1"}},
			ok:      true,
		},
		{
			name:    "non-numeric against number",
			binding: Binding{Field: FieldSourceID, Property: "Canvas ID", Type: schema.FieldNumber},
			id:      "evt_1",
			ok:      false,
		},
		{
			name:    "empty id",
			binding: Binding{Field: FieldSourceID, Property: "Source ID", Type: schema.FieldText},
			id:      "",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := IdentityFilter(tt.binding, tt.id)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, f)
			}
		})
	}
}

func TestFallbackFilter_Dated(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	b := Resolve(DefaultFieldMap(), essaySchema())

	f, ok := m.FallbackFilter(b, essayRecord())

	require.True(t, ok)
	assert.Equal(t, notion.Filter{"and": []notion.Filter{
		{"property": "Assignment Name", "title": map[string]any{"equals": "Essay 1"}},
		{"property": "Due date", "date": map[string]any{"equals": "2025-03-10"}},
		{"property": "Source ID", "number": map[string]any{"is_empty": true}},
	}}, f)
}

func TestFallbackFilter_IdlessRecordMatchesLinkedRows(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	b := Resolve(DefaultFieldMap(), essaySchema())
	rec := essayRecord()
	rec.SourceID = ""

	f, ok := m.FallbackFilter(b, rec)

	require.True(t, ok)
	assert.Len(t, f["and"], 2, "no identity condition without an id")
}

func TestFallbackFilter_UnencodableIdSkipsIdentityCondition(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	b := Resolve(DefaultFieldMap(), essaySchema())
	rec := essayRecord()
	rec.SourceID = "evt_1"

	f, ok := m.FallbackFilter(b, rec)

	require.True(t, ok)
	assert.Len(t, f["and"], 2)
}

func TestFallbackFilter_AllDayMatchesWrittenDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	m := NewMapper(Options{Location: loc, DateOnly: true})
	b := Resolve(DefaultFieldMap(), essaySchema())

	f, ok := m.FallbackFilter(b, allDayRecord(t))

	require.True(t, ok)
	conds := f["and"].([]notion.Filter)
	assert.Equal(t, notion.Filter{"property": "Due date", "date": map[string]any{"equals": "2025-03-10"}}, conds[1])
}

func TestFallbackFilter_Undated(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	b := Resolve(DefaultFieldMap(), essaySchema())
	rec := essayRecord()
	rec.DueAt = nil

	f, ok := m.FallbackFilter(b, rec)

	require.True(t, ok)
	parts := f["and"].([]notion.Filter)
	assert.Equal(t, map[string]any{"is_empty": true}, parts[1]["date"])
}

func TestFallbackFilter_RequiresTitleAndDue(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	s := newSchema(map[string]schema.FieldType{
		"Name":  schema.FieldTitle,
		"Class": schema.FieldSelect,
	})

	_, ok := m.FallbackFilter(Resolve(DefaultFieldMap(), s), essayRecord())

	assert.False(t, ok)
}
