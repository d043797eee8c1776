package mapping

import (
	"strings"
	"time"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
)

// Labels are the facet values derived from one record
type Labels struct {
	Class    string
	Teachers []string
	Tags     []string
	Kind     string
	Status   string
	Priority string
}

// LabelsFor derives the facet values of a record. Tags combine the class
// with the teachers.
func LabelsFor(rec domain.SourceRecord, now time.Time) Labels {
	class := OptionName(rec.Category)
	var teachers []string
	for _, o := range rec.Owners {
		teachers = append(teachers, OptionName(o))
	}
	teachers = domain.UniqueNames(teachers)

	status := domain.StatusNotStarted
	if rec.Completed {
		status = domain.StatusCompleted
	}

	return Labels{
		Class:    class,
		Teachers: teachers,
		Tags:     domain.UniqueNames(append([]string{class}, teachers...)),
		Kind:     string(rec.Kind),
		Status:   status,
		Priority: domain.PriorityFor(rec.DueAt, now),
	}
}

// OptionName makes a label usable as a select option name.
// The API rejects commas in option names.
func OptionName(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.Join(strings.Fields(s), " ")
}
