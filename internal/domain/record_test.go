package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInferKind(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		link     string
		subTypes []string
		expected Kind
	}{
		{"quiz in name", "Chapter 3 Quiz", "", nil, KindQuiz},
		{"quiz url", "Checkpoint", "https://canvas.example.edu/courses/1/quizzes/9", nil, KindQuiz},
		{"online quiz submission", "Checkpoint", "", []string{"online_quiz"}, KindQuiz},
		{"midterm", "Midterm Review", "", nil, KindTest},
		{"final exam", "Final Exam", "", nil, KindTest},
		{"plain assignment", "Essay 1", "", []string{"online_upload"}, KindAssignment},
		{"quiz wins over test", "Practice Test Quiz", "", nil, KindQuiz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferKind(tt.title, tt.link, tt.subTypes))
		})
	}
}

func TestUniqueNames(t *testing.T) {
	got := UniqueNames([]string{"J. Smith", " A. Jones ", "", "J. Smith", "B. Lee"})
	assert.Equal(t, []string{"J. Smith", "A. Jones", "B. Lee"}, got)
	assert.Nil(t, UniqueNames(nil))
}

func TestSourceRecord_Normalize(t *testing.T) {
	rec := SourceRecord{Title: "   ", Owners: []string{"A", "A"}}.Normalize()

	assert.Equal(t, DefaultTitle, rec.Title)
	assert.Equal(t, []string{"A"}, rec.Owners)
	assert.Equal(t, KindAssignment, rec.Kind)
	assert.False(t, rec.HasSourceID())
	assert.False(t, rec.IsDated())
}

func TestPriorityFor(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	assert.Equal(t, "", PriorityFor(nil, now))
	assert.Equal(t, PriorityHigh, PriorityFor(at(-time.Hour), now))
	assert.Equal(t, PriorityHigh, PriorityFor(at(48*time.Hour), now))
	assert.Equal(t, PriorityMedium, PriorityFor(at(72*time.Hour), now))
	assert.Equal(t, PriorityLow, PriorityFor(at(10*24*time.Hour), now))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(fmt.Errorf("%w: token rejected", ErrAuth)))
	assert.True(t, IsFatal(fmt.Errorf("%w: %w", ErrRemoteSchema, ErrTransient)))
	assert.True(t, IsFatal(ErrConfig))
	assert.True(t, IsFatal(ErrNotFound))
	assert.False(t, IsFatal(ErrPermission))
	assert.False(t, IsFatal(ErrTransient))
	assert.False(t, IsFatal(errors.New("boom")))
	assert.True(t, IsTransient(fmt.Errorf("wrapped: %w", ErrTransient)))
}

func TestRunSummary_Count(t *testing.T) {
	s := &RunSummary{}
	s.Count(ActionCreated)
	s.Count(ActionUpdated)
	s.Count(ActionWouldUpdate)
	s.Count(ActionSkipped)
	s.AddFailure(SourceRecord{SourceID: "7", Title: "Lab"}, errors.New("boom"))

	assert.Equal(t, 4, s.Processed)
	assert.Equal(t, 1, s.Created)
	assert.Equal(t, 2, s.Updated)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, "boom", s.Failures[0].Error)
	assert.True(t, s.Succeeded())
}

func TestWindow_Contains(t *testing.T) {
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	w := NewWindow(now, 2, 60, false)
	at := func(tm time.Time) *time.Time { return &tm }

	assert.True(t, w.Contains(at(now)))
	assert.True(t, w.Contains(at(w.Start)), "start is inclusive")
	assert.True(t, w.Contains(at(w.End)), "end is inclusive")
	assert.False(t, w.Contains(at(w.Start.Add(-time.Second))))
	assert.False(t, w.Contains(at(w.End.Add(time.Second))))
	assert.False(t, w.Contains(nil), "undated excluded by default")

	w.IncludeUndated = true
	assert.True(t, w.Contains(nil))
}
