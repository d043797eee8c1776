package notion

import (
	"encoding/json"
	"strings"
)

// Database is the subset of a database object the sync reads
type Database struct {
	ID         string                    `json:"id"`
	Title      []RichText                `json:"title"`
	Properties map[string]PropertySchema `json:"properties"`
}

// Name returns the plain-text database title
func (d *Database) Name() string {
	var b strings.Builder
	for _, t := range d.Title {
		b.WriteString(t.PlainText)
	}
	return b.String()
}

// PropertySchema describes one database property
type PropertySchema struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Select      *OptionList `json:"select,omitempty"`
	MultiSelect *OptionList `json:"multi_select,omitempty"`
	Status      *OptionList `json:"status,omitempty"`
}

// OptionList holds select, multi-select or status options
type OptionList struct {
	Options []SelectOption `json:"options"`
}

// SelectOption is one option of a select-like property
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// RichText is a rich text fragment
type RichText struct {
	PlainText string `json:"plain_text"`
}

// Properties is a page property payload keyed by property name.
// Values are already in API wire shape.
type Properties map[string]any

// Filter is a database query filter in API wire shape
type Filter map[string]any

// And combines filters into a compound filter
func And(filters ...Filter) Filter {
	if len(filters) == 1 {
		return filters[0]
	}
	list := make([]Filter, 0, len(filters))
	list = append(list, filters...)
	return Filter{"and": list}
}

// Query is a database query request
type Query struct {
	Filter   Filter `json:"filter,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

// Page is a database row
type Page struct {
	ID         string                     `json:"id"`
	URL        string                     `json:"url,omitempty"`
	Archived   bool                       `json:"archived,omitempty"`
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
}

// User is a workspace member or bot
type User struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Name   string  `json:"name"`
	Person *Person `json:"person,omitempty"`
	Bot    *Bot    `json:"bot,omitempty"`
}

// Person carries the email of a person user
type Person struct {
	Email string `json:"email"`
}

// Bot carries the workspace name of the integration
type Bot struct {
	WorkspaceName string `json:"workspace_name,omitempty"`
}

type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type usersResponse struct {
	Results    []User  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type updateDatabaseRequest struct {
	Properties map[string]any `json:"properties"`
}

type createPageRequest struct {
	Parent     parent     `json:"parent"`
	Properties Properties `json:"properties"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type updatePageRequest struct {
	Properties Properties `json:"properties"`
}
