package calendar

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/retry"
)

type stubTeachers struct {
	calls  map[string]int
	answer map[string]string
	err    error
}

func (s *stubTeachers) TeacherForCourse(_ context.Context, courseID string) (string, error) {
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[courseID]++
	return s.answer[courseID], s.err
}

func noWait() retry.Policy {
	p := retry.DefaultPolicy()
	p.Sleep = func(context.Context, time.Duration) error { return nil }
	return p
}

func newTestSource(t *testing.T, teachers TeacherLookup, h http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	svc, err := NewService(context.Background(), "",
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return NewSource(svc, []string{"school"}, teachers, noWait())
}

const calendarBody = `{"id": "school", "summary": "School", "timeZone": "Asia/Tokyo"}`

const eventsBody = `{
	"items": [
		{
			"id": "ev1",
			"status": "confirmed",
			"summary": "Essay 1",
			"description": "Submit at https://school.instructure.com/courses/7/assignments/501",
			"start": {"dateTime": "2025-03-10T23:59:00Z"}
		},
		{
			"id": "ev2",
			"status": "confirmed",
			"summary": "Unit quiz",
			"start": {"date": "2025-03-12"},
			"extendedProperties": {"private": {"Teacher": "MARY JONES"}}
		},
		{
			"id": "ev3",
			"status": "cancelled",
			"summary": "Cancelled test",
			"start": {"date": "2025-03-13"}
		},
		{
			"id": "ev4",
			"status": "confirmed",
			"summary": "Lab report",
			"description": "see https://school.instructure.com/courses/7/assignments/502",
			"start": {"dateTime": "2025-03-14T10:00:00+09:00"}
		},
		{
			"id": "ev5",
			"status": "confirmed",
			"summary": "No start"
		}
	]
}`

func TestProfileAndCollections(t *testing.T) {
	s := newTestSource(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/school", r.URL.Path)
		_, _ = io.WriteString(w, calendarBody)
	})

	p, err := s.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "School", p.Name)

	cols, err := s.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Collection{{ID: "school", Name: "School"}}, cols)
	assert.Equal(t, SourceName, s.Name())
}

func TestProfile_RequiresCalendar(t *testing.T) {
	s := newTestSource(t, nil, func(w http.ResponseWriter, r *http.Request) {})
	s.calendarIDs = nil

	_, err := s.Profile(context.Background())

	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestListItems(t *testing.T) {
	teachers := &stubTeachers{answer: map[string]string{"7": "j. smith"}}
	var query map[string]string
	s := newTestSource(t, teachers, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/calendars/school":
			_, _ = io.WriteString(w, calendarBody)
		case "/calendars/school/events":
			q := r.URL.Query()
			query = map[string]string{
				"singleEvents": q.Get("singleEvents"),
				"orderBy":      q.Get("orderBy"),
				"timeMin":      q.Get("timeMin"),
				"timeMax":      q.Get("timeMax"),
			}
			_, _ = io.WriteString(w, eventsBody)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	w := domain.Window{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	recs, err := s.ListItems(context.Background(), domain.Collection{ID: "school", Name: "School"}, w)

	require.NoError(t, err)
	assert.Equal(t, "true", query["singleEvents"])
	assert.Equal(t, "startTime", query["orderBy"])
	assert.Equal(t, "2025-03-01T00:00:00Z", query["timeMin"])
	assert.Equal(t, "2025-03-31T00:00:00Z", query["timeMax"])

	require.Len(t, recs, 3, "cancelled and startless events are skipped")

	essay := recs[0]
	assert.Equal(t, "ev1", essay.SourceID)
	assert.Equal(t, SourceName, essay.Source)
	assert.Equal(t, "School", essay.Category)
	assert.Equal(t, []string{"J. Smith"}, essay.Owners)
	assert.Equal(t, "https://school.instructure.com/courses/7/assignments/501", essay.Link)
	require.NotNil(t, essay.DueAt)
	assert.True(t, essay.DueAt.Equal(time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)))

	quiz := recs[1]
	assert.Equal(t, []string{"Mary Jones"}, quiz.Owners)
	assert.Equal(t, domain.KindQuiz, quiz.Kind)
	require.NotNil(t, quiz.DueAt)
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	assert.True(t, quiz.DueAt.Equal(time.Date(2025, 3, 12, 0, 0, 0, 0, tokyo)), "all-day events start at midnight in the calendar zone")
	assert.True(t, quiz.AllDay)
	assert.False(t, essay.AllDay)

	assert.Equal(t, []string{"J. Smith"}, recs[2].Owners)
	assert.Equal(t, 1, teachers.calls["7"], "course teacher looked up once per listing")
}

func TestListItems_TeacherLookupFailureIsNotFatal(t *testing.T) {
	teachers := &stubTeachers{err: errors.New("canvas down")}
	s := newTestSource(t, teachers, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendars/school" {
			_, _ = io.WriteString(w, calendarBody)
			return
		}
		_, _ = io.WriteString(w, eventsBody)
	})

	recs, err := s.ListItems(context.Background(), domain.Collection{ID: "school", Name: "School"}, domain.Window{})

	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Empty(t, recs[0].Owners)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{"unauthorized", 401, `{"error": {"code": 401, "message": "Invalid Credentials"}}`, domain.ErrAuth},
		{"forbidden", 403, `{"error": {"code": 403, "message": "no access", "errors": [{"reason": "forbidden"}]}}`, domain.ErrPermission},
		{"rate limited", 403, `{"error": {"code": 403, "message": "slow", "errors": [{"reason": "rateLimitExceeded"}]}}`, domain.ErrTransient},
		{"not found", 404, `{"error": {"code": 404, "message": "Not Found"}}`, domain.ErrNotFound},
		{"bad request", 400, `{"error": {"code": 400, "message": "Bad Request"}}`, domain.ErrValidation},
		{"unavailable", 503, `{"error": {"code": 503, "message": "Backend Error"}}`, domain.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			s := newTestSource(t, nil, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := s.ListCollections(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
			if errors.Is(tt.expected, domain.ErrTransient) {
				assert.GreaterOrEqual(t, calls.Load(), int32(2), "transient errors are retried")
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	s := NewSource(nil, nil, nil, noWait())

	assert.Equal(t, "Mary Jones", s.normalizeName("MARY  JONES"))
	assert.Equal(t, "Mary Jones", s.normalizeName("mary jones"))
	assert.Equal(t, "McDonald", s.normalizeName("McDonald"))
}
