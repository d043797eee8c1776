package canvas

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
)

// Source adapts Canvas courses and assignments to sync records
type Source struct {
	client *Client
}

// NewSource creates the Canvas source
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// Name identifies the source
func (s *Source) Name() string {
	return SourceName
}

// Profile returns the user behind the token
func (s *Source) Profile(ctx context.Context) (*domain.Profile, error) {
	var p profile
	if _, err := s.client.get(ctx, pathProfile, "", nil, &p); err != nil {
		return nil, err
	}
	name := p.Name
	if name == "" {
		name = p.LoginID
	}
	return &domain.Profile{ID: strconv.FormatInt(p.ID, 10), Name: name}, nil
}

// ListCollections returns the active courses with their teachers. Courses
// listed without teachers are looked up through their teacher enrollments.
func (s *Source) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	log := logger.FromContext(ctx)

	params := pageParams()
	params.Set("enrollment_state", "active")
	params.Add("include[]", "teachers")
	courses, err := getAll[course](ctx, s.client, pathCourses, "", params)
	if err != nil {
		return nil, err
	}
	log.Debug(LogMsgCoursesListed, "count", len(courses))

	out := make([]domain.Collection, 0, len(courses))
	for _, c := range courses {
		id := strconv.FormatInt(c.ID, 10)
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = fmt.Sprintf(courseNameFormat, c.ID)
		}

		var owners []string
		for _, t := range c.Teachers {
			owners = append(owners, t.DisplayName())
		}
		if len(owners) == 0 {
			owners, err = s.teachers(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrAuth) {
					return nil, err
				}
				log.Warn(LogMsgTeachersFailed, "course_id", id, "error", err)
			}
		}
		out = append(out, domain.Collection{ID: id, Name: name, Owners: domain.UniqueNames(owners)})
	}
	return out, nil
}

// ListItems returns the assignments of a course, ordered by due date
func (s *Source) ListItems(ctx context.Context, c domain.Collection, _ domain.Window) ([]domain.SourceRecord, error) {
	params := pageParams()
	params.Add("include[]", "submission")
	params.Set("order_by", "due_at")
	assignments, err := getAll[assignment](ctx, s.client, pathAssignments, c.ID, params)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug(LogMsgAssignmentsRead, "course_id", c.ID, "count", len(assignments))

	records := make([]domain.SourceRecord, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, toRecord(a, c))
	}
	return records, nil
}

// TeacherForCourse returns the first teacher of a course, or "" when it has none
func (s *Source) TeacherForCourse(ctx context.Context, courseID string) (string, error) {
	teachers, err := s.teachers(ctx, courseID)
	if err != nil || len(teachers) == 0 {
		return "", err
	}
	return teachers[0], nil
}

func (s *Source) teachers(ctx context.Context, courseID string) ([]string, error) {
	params := pageParams()
	params.Add("enrollment_type[]", "teacher")
	users, err := getAll[user](ctx, s.client, pathCourseUsers, courseID, params)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, u := range users {
		if n := u.DisplayName(); n != "" {
			names = append(names, n)
		}
	}
	return domain.UniqueNames(names), nil
}

func toRecord(a assignment, c domain.Collection) domain.SourceRecord {
	completed := a.HasSubmittedSubmissions
	if a.Submission != nil {
		switch strings.ToLower(a.Submission.WorkflowState) {
		case stateSubmitted, stateGraded:
			completed = true
		}
	}

	var points string
	if a.PointsPossible != nil {
		points = strconv.FormatFloat(*a.PointsPossible, 'f', -1, 64)
	}

	return domain.SourceRecord{
		Source:    SourceName,
		SourceID:  strconv.FormatInt(a.ID, 10),
		Title:     a.Name,
		DueAt:     a.DueAt,
		Category:  c.Name,
		Owners:    c.Owners,
		Kind:      domain.InferKind(a.Name, a.HTMLURL, a.SubmissionTypes),
		Completed: completed,
		Link:      a.HTMLURL,
		Points:    points,
	}.Normalize()
}
