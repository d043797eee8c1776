package canvas

import "time"

type profile struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PrimaryEmail string `json:"primary_email"`
	LoginID      string `json:"login_id"`
}

type user struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ShortName    string `json:"short_name"`
	SortableName string `json:"sortable_name"`
}

// DisplayName returns the first non-empty name
func (u user) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.ShortName != "":
		return u.ShortName
	default:
		return u.SortableName
	}
}

type course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
	Teachers   []user `json:"teachers"`
}

type submission struct {
	WorkflowState string `json:"workflow_state"`
}

type assignment struct {
	ID                      int64       `json:"id"`
	Name                    string      `json:"name"`
	DueAt                   *time.Time  `json:"due_at"`
	HTMLURL                 string      `json:"html_url"`
	SubmissionTypes         []string    `json:"submission_types"`
	PointsPossible          *float64    `json:"points_possible"`
	HasSubmittedSubmissions bool        `json:"has_submitted_submissions"`
	Submission              *submission `json:"submission"`
}

type apiError struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Message string `json:"message"`
}

func (e apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	for _, m := range e.Errors {
		if m.Message != "" {
			return m.Message
		}
	}
	return ""
}
