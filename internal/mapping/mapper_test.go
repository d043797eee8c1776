package mapping

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/notion"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

func newSchema(props map[string]schema.FieldType) *schema.Schema {
	s := &schema.Schema{DatabaseID: "db1", Properties: make(map[string]schema.Property, len(props))}
	for name, t := range props {
		s.Properties[name] = schema.Property{Name: name, Type: t}
	}
	return s
}

// essaySchema is the homework database from the first-run scenario
func essaySchema() *schema.Schema {
	return newSchema(map[string]schema.FieldType{
		"Assignment Name": schema.FieldTitle,
		"Due date":        schema.FieldDate,
		"Class":           schema.FieldSelect,
		"Teacher":         schema.FieldMultiSelect,
		"Status":          schema.FieldSelect,
		"Done":            schema.FieldBoolean,
		"Source ID":       schema.FieldNumber,
	})
}

func essayRecord() domain.SourceRecord {
	due := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	return domain.SourceRecord{
		Source:   "canvas",
		SourceID: "501",
		Title:    "Essay 1",
		DueAt:    &due,
		Category: "History 101",
		Owners:   []string{"J. Smith"},
		Kind:     domain.KindAssignment,
	}.Normalize()
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func build(t *testing.T, m *Mapper, rec domain.SourceRecord, s *schema.Schema) *Payload {
	t.Helper()
	b := Resolve(DefaultFieldMap(), s)
	return m.BuildProperties(rec, s, b, LabelsFor(rec, testNow))
}

func TestBuildProperties_FirstRunGolden(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})

	p := build(t, m, essayRecord(), essaySchema())

	data, err := json.MarshalIndent(p.ForCreate(), "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "essay1_create", append(data, '\n'))
}

func TestBuildProperties_UpdateDropsCreateOnlyFields(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})

	props := build(t, m, essayRecord(), essaySchema()).ForUpdate()

	assert.NotContains(t, props, "Status")
	assert.NotContains(t, props, "Done")
	assert.Contains(t, props, "Class")
	assert.Contains(t, props, "Source ID")
}

func TestBuildProperties_CompletedRecordUpdatesStatus(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	rec := essayRecord()
	rec.Completed = true

	props := build(t, m, rec, essaySchema()).ForUpdate()

	assert.Equal(t, map[string]any{"select": map[string]any{"name": domain.StatusCompleted}}, props["Status"])
	assert.Equal(t, map[string]any{"checkbox": true}, props["Done"])
}

func statusProperty(options ...string) schema.Property {
	p := schema.Property{Name: "Status", Type: schema.FieldStatus}
	for _, o := range options {
		p.Options = append(p.Options, schema.Option{Name: o})
	}
	return p
}

func TestBuildProperties_UnknownStatusOptionIsOmitted(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	s := essaySchema()
	s.Properties["Status"] = statusProperty("Not started", "In progress", "Done")
	rec := essayRecord()
	rec.Completed = true

	p := build(t, m, rec, s)

	assert.NotContains(t, p.ForUpdate(), "Status")
	assert.NotContains(t, p.ForCreate(), "Status")
	assert.Contains(t, p.Omitted(), Omission{Field: FieldStatus, Property: "Status", Reason: ReasonMismatch})
	assert.Equal(t, map[string]any{"checkbox": true}, p.ForUpdate()["Done"], "the rest of the record is still written")
}

func TestBuildProperties_UndatedCreateOmitsAndUpdateClears(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	rec := essayRecord()
	rec.DueAt = nil

	p := build(t, m, rec, essaySchema())

	assert.NotContains(t, p.ForCreate(), "Due date")
	update := p.ForUpdate()
	require.Contains(t, update, "Due date")
	assert.Nil(t, update["Due date"].(map[string]any)["date"])
}

func TestBuildProperties_TextDueClearsToEmptyList(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	s := newSchema(map[string]schema.FieldType{
		"Name": schema.FieldTitle,
		"Due":  schema.FieldText,
	})
	rec := essayRecord()
	rec.DueAt = nil

	update := build(t, m, rec, s).ForUpdate()

	assert.Equal(t, map[string]any{"rich_text": []any{}}, update["Due"])
}

func TestBuildProperties_MissingTeacherPropertyIsOmitted(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	s := essaySchema()
	delete(s.Properties, "Teacher")

	p := build(t, m, essayRecord(), s)

	_, ok := p.Get("Teacher")
	assert.False(t, ok)
	var omitted []Field
	for _, o := range p.Omitted() {
		omitted = append(omitted, o.Field)
	}
	assert.Contains(t, omitted, FieldTeacher)
	assert.Contains(t, p.ForCreate(), "Class")
}

func TestBuildProperties_AdaptsToPropertyType(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	s := newSchema(map[string]schema.FieldType{
		"Name":      schema.FieldTitle,
		"Class":     schema.FieldText,
		"Teacher":   schema.FieldSelect,
		"Canvas ID": schema.FieldText,
		"Done":      schema.FieldText,
		"Status":    schema.FieldStatus,
	})
	s.Properties["Status"] = statusProperty(domain.StatusNotStarted)

	props := build(t, m, essayRecord(), s).ForCreate()

	assert.Equal(t, map[string]any{"rich_text": richText("History 101")}, props["Class"])
	assert.Equal(t, map[string]any{"select": map[string]any{"name": "J. Smith"}}, props["Teacher"])
	assert.Equal(t, map[string]any{"rich_text": richText("501")}, props["Canvas ID"])
	assert.Equal(t, map[string]any{"status": map[string]any{"name": domain.StatusNotStarted}}, props["Status"])
	assert.NotContains(t, props, "Done", "a boolean cannot be written to a text property")
}

func TestBuildProperties_DateTimePrecision(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	m := NewMapper(Options{Location: loc, DateOnly: false})

	props := build(t, m, essayRecord(), essaySchema()).ForCreate()

	assert.Equal(t, map[string]any{"date": map[string]any{"start": "2025-03-10T19:59:00-04:00"}}, props["Due date"])
}

func TestBuildProperties_DateOnlyUsesLocalDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	m := NewMapper(Options{Location: loc, DateOnly: true})

	props := build(t, m, essayRecord(), essaySchema()).ForCreate()

	assert.Equal(t, map[string]any{"date": map[string]any{"start": "2025-03-11"}}, props["Due date"])
}

// allDayRecord is a calendar event for 2025-03-10 in a Tokyo calendar
func allDayRecord(t *testing.T) domain.SourceRecord {
	t.Helper()
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	rec := essayRecord()
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, tokyo)
	rec.DueAt = &due
	rec.AllDay = true
	return rec
}

func TestBuildProperties_AllDayKeepsCalendarDate(t *testing.T) {
	for _, dateOnly := range []bool{true, false} {
		m := NewMapper(Options{Location: time.UTC, DateOnly: dateOnly})

		props := build(t, m, allDayRecord(t), essaySchema()).ForCreate()

		assert.Equal(t, map[string]any{"date": map[string]any{"start": "2025-03-10"}}, props["Due date"], "date_only=%v", dateOnly)
	}
}

func TestBuildProperties_NonNumericIdAgainstNumber(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	rec := essayRecord()
	rec.SourceID = "evt_abc"

	p := build(t, m, rec, essaySchema())

	assert.NotContains(t, p.ForCreate(), "Source ID")
}

func TestBuildProperties_PeopleResolvedThroughDirectory(t *testing.T) {
	dir := NewDirectory([]notion.User{
		{ID: "u1", Type: "person", Name: "J. Smith"},
		{ID: "b1", Type: "bot", Name: "J. Smith"},
	})
	m := NewMapper(Options{Location: time.UTC, DateOnly: true}).WithDirectory(dir)
	s := newSchema(map[string]schema.FieldType{
		"Name":    schema.FieldTitle,
		"Teacher": schema.FieldPeople,
	})

	props := build(t, m, essayRecord(), s).ForCreate()

	assert.Equal(t, map[string]any{"people": []map[string]any{{"id": "u1"}}}, props["Teacher"])
}

func TestBuildProperties_UnresolvedPeopleOmitted(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	s := newSchema(map[string]schema.FieldType{
		"Name":    schema.FieldTitle,
		"Teacher": schema.FieldPeople,
	})

	p := build(t, m, essayRecord(), s)

	assert.NotContains(t, p.ForCreate(), "Teacher")
}

func TestBuildProperties_LongTitleTruncated(t *testing.T) {
	m := NewMapper(Options{Location: time.UTC, DateOnly: true})
	rec := essayRecord()
	rec.Title = strings.Repeat("é", notion.MaxTextLength+10)

	props := build(t, m, rec, essaySchema()).ForCreate()

	title := props["Assignment Name"].(map[string]any)["title"].([]map[string]any)
	content := title[0]["text"].(map[string]any)["content"].(string)
	assert.Equal(t, notion.MaxTextLength, len([]rune(content)))
}

func TestResolve_TitleFallsBackToOnlyTitleProperty(t *testing.T) {
	s := newSchema(map[string]schema.FieldType{
		"Homework": schema.FieldTitle,
		"Due":      schema.FieldDate,
	})

	b := Resolve(DefaultFieldMap(), s)

	assert.Equal(t, "Homework", b.Property(FieldTitle))
	assert.Equal(t, "Due", b.Property(FieldDue))
	assert.Contains(t, b.Missing(), FieldClass)
}

func TestResolve_FirstCandidateWins(t *testing.T) {
	s := newSchema(map[string]schema.FieldType{
		"Name":      schema.FieldTitle,
		"Canvas ID": schema.FieldNumber,
		"Source ID": schema.FieldText,
	})

	b := Resolve(DefaultFieldMap(), s)

	bd, ok := b.Get(FieldSourceID)
	require.True(t, ok)
	assert.Equal(t, "Canvas ID", bd.Property)
	assert.Equal(t, schema.FieldNumber, bd.Type)
}

func TestLabelsFor(t *testing.T) {
	rec := essayRecord()
	rec.Category = "History, 101"
	rec.Owners = []string{"J. Smith", "A.  Jones"}

	l := LabelsFor(rec, testNow)

	assert.Equal(t, "History 101", l.Class)
	assert.Equal(t, []string{"J. Smith", "A. Jones"}, l.Teachers)
	assert.Equal(t, []string{"History 101", "J. Smith", "A. Jones"}, l.Tags)
	assert.Equal(t, domain.PriorityLow, l.Priority)
	assert.Equal(t, domain.StatusNotStarted, l.Status)
}

func TestEncodeIdentity(t *testing.T) {
	v, ok := EncodeIdentity(schema.FieldNumber, " 501 ")
	require.True(t, ok)
	assert.Equal(t, 501.0, v)

	_, ok = EncodeIdentity(schema.FieldNumber, "abc")
	assert.False(t, ok)

	_, ok = EncodeIdentity(schema.FieldText, "")
	assert.False(t, ok)

	_, ok = EncodeIdentity(schema.FieldDate, "501")
	assert.False(t, ok)
}
