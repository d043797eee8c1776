package domain

import (
	"strings"
	"time"
)

// Kind is the closed set of work item kinds
type Kind string

const (
	KindAssignment Kind = "Assignment"
	KindQuiz       Kind = "Quiz"
	KindTest       Kind = "Test"
)

// AllKinds lists every kind in display order
var AllKinds = []Kind{KindAssignment, KindQuiz, KindTest}

// Status labels written to the destination
const (
	StatusNotStarted = "Not started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// AllStatuses lists every status label in display order
var AllStatuses = []string{StatusNotStarted, StatusInProgress, StatusCompleted}

// Priority labels derived from due proximity
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// AllPriorities lists every priority label in display order
var AllPriorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// DefaultTitle replaces an empty upstream title
const DefaultTitle = "Untitled"

// SourceRecord is one upstream work item, rebuilt fresh on every run
type SourceRecord struct {
	Source    string     // adapter name, e.g. "canvas"
	SourceID  string     // stable upstream id; empty when the item has none
	Title     string     // never empty once normalized
	DueAt     *time.Time // nil means undated
	AllDay    bool       // DueAt carries a calendar date only
	Category  string     // course or calendar name
	Owners    []string   // teacher names, unique, insertion order kept
	Kind      Kind
	Completed bool
	Link      string
	Points    string // raw numeric text, coerced by the mapper
}

// HasSourceID reports whether the record carries an upstream identifier
func (r SourceRecord) HasSourceID() bool {
	return strings.TrimSpace(r.SourceID) != ""
}

// IsDated reports whether the record has a due time
func (r SourceRecord) IsDated() bool {
	return r.DueAt != nil
}

// Normalize applies the record invariants: non-empty title, unique owners, known kind
func (r SourceRecord) Normalize() SourceRecord {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	r.Owners = UniqueNames(r.Owners)
	if r.Kind == "" {
		r.Kind = KindAssignment
	}
	return r
}

// Collection groups source records, e.g. a course with its teacher roster
type Collection struct {
	ID     string
	Name   string
	Owners []string
}

// Profile identifies the account behind a set of credentials
type Profile struct {
	ID   string
	Name string
}

// UniqueNames trims names, drops blanks and duplicates, and keeps first-seen order
func UniqueNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

var testKeywords = []string{"exam", "midterm", "final", "test"}

// InferKind guesses the kind from the item name, its URL and submission types
func InferKind(name, link string, submissionTypes []string) Kind {
	lname := strings.ToLower(name)
	llink := strings.ToLower(link)

	if strings.Contains(lname, "quiz") || strings.Contains(llink, "/quizzes/") {
		return KindQuiz
	}
	for _, s := range submissionTypes {
		if strings.EqualFold(s, "online_quiz") {
			return KindQuiz
		}
	}
	for _, w := range testKeywords {
		if strings.Contains(lname, w) {
			return KindTest
		}
	}
	return KindAssignment
}

// PriorityFor buckets a due time relative to now
func PriorityFor(due *time.Time, now time.Time) string {
	if due == nil {
		return ""
	}
	until := due.Sub(now)
	switch {
	case until <= 48*time.Hour:
		return PriorityHigh
	case until <= 7*24*time.Hour:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
