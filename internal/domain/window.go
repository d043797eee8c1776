package domain

import "time"

// Window bounds the due dates a run syncs. Both ends are inclusive.
type Window struct {
	Start          time.Time
	End            time.Time
	IncludeUndated bool
}

// NewWindow returns [now - pastDays, now + futureDays]
func NewWindow(now time.Time, pastDays, futureDays int, includeUndated bool) Window {
	return Window{
		Start:          now.AddDate(0, 0, -pastDays),
		End:            now.AddDate(0, 0, futureDays),
		IncludeUndated: includeUndated,
	}
}

// Contains reports whether a record with the given due time is in scope
func (w Window) Contains(due *time.Time) bool {
	if due == nil {
		return w.IncludeUndated
	}
	return !due.Before(w.Start) && !due.After(w.End)
}
