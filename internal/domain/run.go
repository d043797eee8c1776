package domain

import "time"

// Action is what the upsert engine did with a record
type Action string

const (
	ActionCreated     Action = "created"
	ActionUpdated     Action = "updated"
	ActionWouldCreate Action = "would_create"
	ActionWouldUpdate Action = "would_update"
	ActionSkipped     Action = "skipped"
	ActionFailed      Action = "failed"
)

// RecordFailure describes one record that could not be synced
type RecordFailure struct {
	Source   string `json:"source"`
	SourceID string `json:"source_id"`
	Title    string `json:"title"`
	Error    string `json:"error"`
}

// RunSummary aggregates the outcome of one sync run
type RunSummary struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Sources    []string        `json:"sources"`
	DryRun     bool            `json:"dry_run"`
	Processed  int             `json:"processed"`
	Created    int             `json:"created"`
	Updated    int             `json:"updated"`
	Skipped    int             `json:"skipped"`
	Failed     int             `json:"failed"`
	Failures   []RecordFailure `json:"failures,omitempty"`
	Err        string          `json:"error,omitempty"`
}

// Duration returns the wall time of the run
func (s *RunSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Succeeded reports whether the run finished without a fatal error
func (s *RunSummary) Succeeded() bool {
	return s.Err == ""
}

// Count records one action in the summary
func (s *RunSummary) Count(a Action) {
	switch a {
	case ActionCreated, ActionWouldCreate:
		s.Processed++
		s.Created++
	case ActionUpdated, ActionWouldUpdate:
		s.Processed++
		s.Updated++
	case ActionSkipped:
		s.Skipped++
	case ActionFailed:
		s.Processed++
		s.Failed++
	}
}

// AddFailure records a per-record failure
func (s *RunSummary) AddFailure(rec SourceRecord, err error) {
	s.Count(ActionFailed)
	s.Failures = append(s.Failures, RecordFailure{
		Source:   rec.Source,
		SourceID: rec.SourceID,
		Title:    rec.Title,
		Error:    err.Error(),
	})
}
