package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/retry"
)

// canvasURL finds a Canvas assignment link in event text
var canvasURL = regexp.MustCompile(`(?i)https?://[^\s]+/courses/(\d+)/assignments/(\d+)`)

// TeacherLookup resolves the teacher of a Canvas course
type TeacherLookup interface {
	TeacherForCourse(ctx context.Context, courseID string) (string, error)
}

// Source reads events from one or more Google calendars
type Source struct {
	svc         *gcal.Service
	calendarIDs []string
	teachers    TeacherLookup
	policy      retry.Policy
	titleCase   cases.Caser
}

// NewService creates a read-only calendar client. Options override the
// default service-account credentials, e.g. in tests.
func NewService(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*gcal.Service, error) {
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(credentialsFile),
			option.WithScopes(gcal.CalendarReadonlyScope),
		}
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: google calendar credentials %s: %v", domain.ErrConfig, credentialsFile, err)
	}
	return svc, nil
}

// NewSource creates the calendar source. teachers may be nil.
func NewSource(svc *gcal.Service, calendarIDs []string, teachers TeacherLookup, policy retry.Policy) *Source {
	return &Source{
		svc:         svc,
		calendarIDs: calendarIDs,
		teachers:    teachers,
		policy:      policy,
		titleCase:   cases.Title(language.English),
	}
}

// Name identifies the source
func (s *Source) Name() string {
	return SourceName
}

// Profile checks that the first calendar is readable
func (s *Source) Profile(ctx context.Context) (*domain.Profile, error) {
	if len(s.calendarIDs) == 0 {
		return nil, fmt.Errorf("%w: no calendar id configured", domain.ErrConfig)
	}
	cal, err := s.getCalendar(ctx, s.calendarIDs[0])
	if err != nil {
		return nil, err
	}
	return &domain.Profile{ID: cal.Id, Name: cal.Summary}, nil
}

// ListCollections returns one collection per configured calendar
func (s *Source) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	out := make([]domain.Collection, 0, len(s.calendarIDs))
	for _, id := range s.calendarIDs {
		cal, err := s.getCalendar(ctx, id)
		if err != nil {
			return nil, err
		}
		name := cal.Summary
		if name == "" {
			name = id
		}
		out = append(out, domain.Collection{ID: id, Name: name})
	}
	return out, nil
}

// ListItems returns the events of a calendar inside the window, expanded
// into single instances and ordered by start
func (s *Source) ListItems(ctx context.Context, c domain.Collection, w domain.Window) ([]domain.SourceRecord, error) {
	log := logger.FromContext(ctx)

	cal, err := s.getCalendar(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cal.TimeZone)
	if err != nil || cal.TimeZone == "" {
		loc = time.UTC
	}

	res := retry.Do(ctx, s.policy, opListEvents, func(ctx context.Context) ([]*gcal.Event, error) {
		var events []*gcal.Event
		call := s.svc.Events.List(c.ID).
			SingleEvents(true).
			OrderBy(orderByStart).
			MaxResults(maxResults)
		if !w.Start.IsZero() {
			call = call.TimeMin(w.Start.Format(time.RFC3339))
		}
		if !w.End.IsZero() {
			call = call.TimeMax(w.End.Format(time.RFC3339))
		}
		err := call.Pages(ctx, func(page *gcal.Events) error {
			events = append(events, page.Items...)
			return nil
		})
		return events, classify(ctx, err)
	})
	if res.Err != nil {
		return nil, fmt.Errorf("calendar %s: %w", c.ID, res.Err)
	}
	log.Debug(LogMsgEventsListed, "calendar", c.ID, "count", len(res.Value))

	teachers := map[string]string{}
	records := make([]domain.SourceRecord, 0, len(res.Value))
	for _, ev := range res.Value {
		if ev.Status == statusCancel {
			log.Debug(LogMsgEventCancelled, "event_id", ev.Id)
			continue
		}
		rec, ok := s.toRecord(ctx, ev, c, loc, teachers)
		if !ok {
			log.Debug(LogMsgEventSkipped, "event_id", ev.Id)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Source) toRecord(ctx context.Context, ev *gcal.Event, c domain.Collection, loc *time.Location, teachers map[string]string) (domain.SourceRecord, bool) {
	due, allDay, ok := startOf(ev, loc)
	if !ok {
		return domain.SourceRecord{}, false
	}

	link := ev.HtmlLink
	courseID := ""
	if m := canvasURL.FindStringSubmatch(ev.Description + "\n" + ev.Summary); m != nil {
		link = m[0]
		courseID = m[1]
	}

	var owners []string
	if ev.ExtendedProperties != nil && ev.ExtendedProperties.Private[teacherKey] != "" {
		owners = append(owners, ev.ExtendedProperties.Private[teacherKey])
	} else if courseID != "" {
		if t := s.teacherFor(ctx, courseID, teachers); t != "" {
			owners = append(owners, t)
		}
	}
	for i, o := range owners {
		owners[i] = s.normalizeName(o)
	}

	return domain.SourceRecord{
		Source:   SourceName,
		SourceID: ev.Id,
		Title:    ev.Summary,
		DueAt:    due,
		AllDay:   allDay,
		Category: c.Name,
		Owners:   owners,
		Kind:     domain.InferKind(ev.Summary, link, nil),
		Link:     link,
	}.Normalize(), true
}

// teacherFor looks a course up once per listing
func (s *Source) teacherFor(ctx context.Context, courseID string, cache map[string]string) string {
	if s.teachers == nil {
		return ""
	}
	if t, ok := cache[courseID]; ok {
		return t
	}
	t, err := s.teachers.TeacherForCourse(ctx, courseID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgTeacherLookup, "course_id", courseID, "error", err)
	}
	cache[courseID] = t
	return t
}

// normalizeName title-cases names written entirely in one case
func (s *Source) normalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == strings.ToUpper(name) || name == strings.ToLower(name) {
		return s.titleCase.String(name)
	}
	return name
}

func (s *Source) getCalendar(ctx context.Context, id string) (*gcal.Calendar, error) {
	res := retry.Do(ctx, s.policy, opGetCalendar, func(ctx context.Context) (*gcal.Calendar, error) {
		cal, err := s.svc.Calendars.Get(id).Context(ctx).Do()
		return cal, classify(ctx, err)
	})
	if res.Err != nil {
		return nil, fmt.Errorf("calendar %s: %w", id, res.Err)
	}
	return res.Value, nil
}

// startOf returns the event start. All-day events start at midnight in loc
// and are flagged so their date is never shifted into another zone.
func startOf(ev *gcal.Event, loc *time.Location) (start *time.Time, allDay bool, ok bool) {
	if ev.Start == nil {
		return nil, false, false
	}
	if ev.Start.DateTime != "" {
		t, err := time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			return nil, false, false
		}
		return &t, false, true
	}
	if ev.Start.Date != "" {
		t, err := time.ParseInLocation(dateLayout, ev.Start.Date, loc)
		if err != nil {
			return nil, false, false
		}
		return &t, true, true
	}
	return nil, false, false
}

// classify maps API failures onto the domain error taxonomy
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	switch {
	case apiErr.Code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	case apiErr.Code == http.StatusForbidden && isRateLimit(apiErr):
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	case apiErr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %v", domain.ErrPermission, err)
	case apiErr.Code == http.StatusNotFound:
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
}

func isRateLimit(err *googleapi.Error) bool {
	for _, item := range err.Errors {
		if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
			return true
		}
	}
	return false
}
