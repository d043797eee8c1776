// Package notionfake is an in-memory destination for tests. It evaluates the
// query filters the sync issues and counts every call.
package notionfake

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/osse101/AssignmentSync_Go/internal/notion"
)

// Method names used for call counting and fault injection
const (
	MethodGetDatabase    = "GetDatabase"
	MethodUpdateDatabase = "UpdateDatabase"
	MethodQueryDatabase  = "QueryDatabase"
	MethodCreatePage     = "CreatePage"
	MethodUpdatePage     = "UpdatePage"
	MethodListUsers      = "ListUsers"
	MethodMe             = "Me"
)

// Row is a stored page with generic property values
type Row struct {
	ID         string
	Archived   bool
	Properties map[string]any
}

// Fake implements the destination interface in memory
type Fake struct {
	mu sync.Mutex

	DatabaseID string
	Title      string
	Schema     map[string]notion.PropertySchema
	Rows       []*Row
	Users      []notion.User

	// ReadOnlySchema makes schema writes fail with a permission error
	ReadOnlySchema bool

	calls   map[string]int
	faults  map[string][]error
	queries []notion.Query
	nextID  int
}

// New creates a fake database with the given property types, keyed by name
func New(databaseID string, props map[string]string) *Fake {
	f := &Fake{
		DatabaseID: databaseID,
		Title:      "Homework",
		Schema:     make(map[string]notion.PropertySchema, len(props)),
		calls:      make(map[string]int),
		faults:     make(map[string][]error),
	}
	for name, t := range props {
		ps := notion.PropertySchema{ID: name, Name: name, Type: t}
		switch t {
		case notion.TypeSelect:
			ps.Select = &notion.OptionList{}
		case notion.TypeMultiSelect:
			ps.MultiSelect = &notion.OptionList{}
		case notion.TypeStatus:
			ps.Status = &notion.OptionList{Options: []notion.SelectOption{
				{Name: "Not started"}, {Name: "In progress"}, {Name: "Done"},
			}}
		}
		f.Schema[name] = ps
	}
	return f
}

// Fail makes the next calls of method return errs, one per call
func (f *Fake) Fail(method string, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[method] = append(f.faults[method], errs...)
}

// Calls returns how many times method was invoked
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Queries returns every query received, in order
func (f *Fake) Queries() []notion.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notion.Query(nil), f.queries...)
}

// ResetCalls clears the call counters and recorded queries
func (f *Fake) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = make(map[string]int)
	f.queries = nil
}

// Live returns the rows that are not archived
func (f *Fake) Live() []*Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Row
	for _, r := range f.Rows {
		if !r.Archived {
			out = append(out, r)
		}
	}
	return out
}

// Insert stores a row directly, bypassing call counting
func (f *Fake) Insert(props notion.Properties) *Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(props)
}

// Options returns the option names of a select-like property
func (f *Fake) Options(property string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ps, ok := f.Schema[property]
	if !ok {
		return nil
	}
	list := optionList(&ps)
	if list == nil {
		return nil
	}
	names := make([]string, 0, len(list.Options))
	for _, o := range list.Options {
		names = append(names, o.Name)
	}
	return names
}

func (f *Fake) enter(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	if q := f.faults[method]; len(q) > 0 {
		f.faults[method] = q[1:]
		return q[0]
	}
	return nil
}

// GetDatabase returns the schema
func (f *Fake) GetDatabase(_ context.Context, databaseID string) (*notion.Database, error) {
	if err := f.enter(MethodGetDatabase); err != nil {
		return nil, err
	}
	if err := f.checkDatabase(databaseID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.database(), nil
}

// UpdateDatabase adds properties or replaces option lists
func (f *Fake) UpdateDatabase(_ context.Context, databaseID string, properties map[string]any) (*notion.Database, error) {
	if err := f.enter(MethodUpdateDatabase); err != nil {
		return nil, err
	}
	if err := f.checkDatabase(databaseID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadOnlySchema {
		return nil, &notion.APIError{Status: http.StatusForbidden, Code: notion.CodeRestrictedResource, Message: "Insufficient permissions"}
	}

	for name, raw := range properties {
		var spec map[string]json.RawMessage
		if err := roundTrip(raw, &spec); err != nil {
			return nil, validationError(err.Error())
		}
		for t, body := range spec {
			if t == "name" || t == "type" {
				continue
			}
			ps, exists := f.Schema[name]
			if !exists {
				ps = notion.PropertySchema{ID: name, Name: name, Type: t}
			} else if ps.Type != t {
				return nil, validationError(fmt.Sprintf("property %s is %s, not %s", name, ps.Type, t))
			}
			var list notion.OptionList
			if err := json.Unmarshal(body, &list); err == nil && list.Options != nil {
				for i := range list.Options {
					if list.Options[i].ID == "" {
						list.Options[i].ID = fmt.Sprintf("opt-%s-%d", name, i)
					}
				}
				switch t {
				case notion.TypeSelect:
					ps.Select = &list
				case notion.TypeMultiSelect:
					ps.MultiSelect = &list
				}
			}
			f.Schema[name] = ps
		}
	}
	return f.database(), nil
}

// QueryDatabase filters live rows in insertion order
func (f *Fake) QueryDatabase(_ context.Context, databaseID string, q notion.Query) ([]notion.Page, error) {
	if err := f.enter(MethodQueryDatabase); err != nil {
		return nil, err
	}
	if err := f.checkDatabase(databaseID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)

	var generic map[string]any
	if q.Filter != nil {
		if err := roundTrip(q.Filter, &generic); err != nil {
			return nil, validationError(err.Error())
		}
	}

	var pages []notion.Page
	for _, r := range f.Rows {
		if r.Archived {
			continue
		}
		ok, err := f.matches(r, generic)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		pages = append(pages, r.page())
		if q.PageSize > 0 && len(pages) == q.PageSize {
			break
		}
	}
	return pages, nil
}

// CreatePage stores a new row after checking every property against the schema
func (f *Fake) CreatePage(_ context.Context, databaseID string, props notion.Properties) (*notion.Page, error) {
	if err := f.enter(MethodCreatePage); err != nil {
		return nil, err
	}
	if err := f.checkDatabase(databaseID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkProperties(props, true); err != nil {
		return nil, err
	}
	p := f.insert(props).page()
	return &p, nil
}

// UpdatePage merges properties into an existing row
func (f *Fake) UpdatePage(_ context.Context, pageID string, props notion.Properties) (*notion.Page, error) {
	if err := f.enter(MethodUpdatePage); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkProperties(props, false); err != nil {
		return nil, err
	}
	for _, r := range f.Rows {
		if r.ID != pageID {
			continue
		}
		var generic map[string]any
		if err := roundTrip(props, &generic); err != nil {
			return nil, validationError(err.Error())
		}
		for k, v := range generic {
			r.Properties[k] = v
		}
		p := r.page()
		return &p, nil
	}
	return nil, &notion.APIError{Status: http.StatusNotFound, Code: notion.CodeObjectNotFound, Message: "page not found"}
}

// ListUsers returns the configured users
func (f *Fake) ListUsers(_ context.Context) ([]notion.User, error) {
	if err := f.enter(MethodListUsers); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notion.User(nil), f.Users...), nil
}

// Me returns the integration bot
func (f *Fake) Me(_ context.Context) (*notion.User, error) {
	if err := f.enter(MethodMe); err != nil {
		return nil, err
	}
	return &notion.User{ID: "bot", Type: "bot", Name: "Assignment Sync", Bot: &notion.Bot{WorkspaceName: "Test"}}, nil
}

// Text returns the plain text of a title or rich text property of a row
func (r *Row) Text(property string) string {
	v, _ := r.Properties[property].(map[string]any)
	for _, t := range []string{notion.TypeTitle, notion.TypeRichText} {
		if list, ok := v[t].([]any); ok {
			return joinText(list)
		}
	}
	return ""
}

// Value returns the inner value of a property, e.g. the number or the date object
func (r *Row) Value(property string) any {
	v, _ := r.Properties[property].(map[string]any)
	for _, inner := range v {
		return inner
	}
	return nil
}

func (r *Row) page() notion.Page {
	props := make(map[string]json.RawMessage, len(r.Properties))
	for k, v := range r.Properties {
		data, _ := json.Marshal(v)
		props[k] = data
	}
	return notion.Page{ID: r.ID, URL: "https://www.notion.so/" + r.ID, Properties: props}
}

func (f *Fake) insert(props notion.Properties) *Row {
	f.nextID++
	var generic map[string]any
	_ = roundTrip(props, &generic)
	if generic == nil {
		generic = map[string]any{}
	}
	r := &Row{ID: fmt.Sprintf("page-%d", f.nextID), Properties: generic}
	f.Rows = append(f.Rows, r)
	return r
}

func (f *Fake) database() *notion.Database {
	props := make(map[string]notion.PropertySchema, len(f.Schema))
	for k, v := range f.Schema {
		props[k] = v
	}
	return &notion.Database{
		ID:         f.DatabaseID,
		Title:      []notion.RichText{{PlainText: f.Title}},
		Properties: props,
	}
}

func (f *Fake) checkDatabase(id string) error {
	if id != f.DatabaseID {
		return &notion.APIError{Status: http.StatusNotFound, Code: notion.CodeObjectNotFound, Message: "Could not find database with ID: " + id}
	}
	return nil
}

// checkProperties rejects unknown properties, mistyped values, unknown
// status options and, on creation, explicit null dates
func (f *Fake) checkProperties(props notion.Properties, creating bool) error {
	var generic map[string]map[string]any
	if err := roundTrip(props, &generic); err != nil {
		return validationError(err.Error())
	}
	for name, v := range generic {
		ps, ok := f.Schema[name]
		if !ok {
			return validationError(name + " is not a property that exists")
		}
		inner, ok := v[ps.Type]
		if !ok || len(v) != 1 {
			return validationError(fmt.Sprintf("%s is expected to be %s", name, ps.Type))
		}
		if creating && ps.Type == notion.TypeDate && inner == nil {
			return validationError(name + " date cannot be null on creation")
		}
		if ps.Type == notion.TypeStatus {
			opt, _ := inner.(map[string]any)
			if !hasOption(ps.Status, fmt.Sprint(opt["name"])) {
				return validationError(fmt.Sprintf("status option %v does not exist", opt["name"]))
			}
		}
	}
	return nil
}

func (f *Fake) matches(r *Row, filter map[string]any) (bool, error) {
	if filter == nil {
		return true, nil
	}
	if and, ok := filter["and"].([]any); ok {
		for _, sub := range and {
			m, _ := sub.(map[string]any)
			ok, err := f.matches(r, m)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}

	name, _ := filter["property"].(string)
	ps, ok := f.Schema[name]
	if !ok {
		return false, validationError("Could not find property with name or id: " + name)
	}
	cond, ok := filter[ps.Type].(map[string]any)
	if !ok {
		return false, validationError(fmt.Sprintf("filter for %s must use %s", name, ps.Type))
	}
	value := r.Value(name)

	if empty, ok := cond["is_empty"]; ok && empty == true {
		return isEmpty(value), nil
	}
	want, ok := cond["equals"]
	if !ok {
		return false, validationError("unsupported filter condition")
	}

	switch ps.Type {
	case notion.TypeNumber:
		return value != nil && value == want, nil
	case notion.TypeTitle, notion.TypeRichText:
		list, _ := value.([]any)
		return joinText(list) == want, nil
	case notion.TypeDate:
		d, _ := value.(map[string]any)
		start, _ := d["start"].(string)
		w, _ := want.(string)
		return start != "" && (start == w || start[:min(len(start), 10)] == w), nil
	default:
		return false, validationError("unsupported filter type " + ps.Type)
	}
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case []any:
		return len(x) == 0
	case string:
		return x == ""
	default:
		return false
	}
}

func joinText(list []any) string {
	var b strings.Builder
	for _, item := range list {
		m, _ := item.(map[string]any)
		text, _ := m["text"].(map[string]any)
		s, _ := text["content"].(string)
		b.WriteString(s)
	}
	return b.String()
}

func optionList(ps *notion.PropertySchema) *notion.OptionList {
	switch ps.Type {
	case notion.TypeSelect:
		return ps.Select
	case notion.TypeMultiSelect:
		return ps.MultiSelect
	case notion.TypeStatus:
		return ps.Status
	default:
		return nil
	}
}

func hasOption(list *notion.OptionList, name string) bool {
	if list == nil {
		return false
	}
	for _, o := range list.Options {
		if o.Name == name {
			return true
		}
	}
	return false
}

func validationError(msg string) error {
	return &notion.APIError{Status: http.StatusBadRequest, Code: notion.CodeValidation, Message: msg}
}

func roundTrip(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// SortedNames returns the property names of the schema, sorted
func (f *Fake) SortedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.Schema))
	for n := range f.Schema {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
