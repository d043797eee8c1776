package canvas

import "time"

// API settings
const (
	ServiceName    = "canvas"
	SourceName     = "canvas"
	DefaultTimeout = 30 * time.Second
	PageSize       = 100
)

// API paths
const (
	pathProfile     = "/api/v1/users/self/profile"
	pathCourses     = "/api/v1/courses"
	pathCourseUsers = "/api/v1/courses/{id}/users"
	pathAssignments = "/api/v1/courses/{id}/assignments"
)

// Submission workflow states that count as done
const (
	stateSubmitted = "submitted"
	stateGraded    = "graded"
)

// courseNameFormat names courses the API returns without a name
const courseNameFormat = "Course %d"

// Log messages
const (
	LogMsgRequest         = "Canvas request"
	LogMsgRequestFailed   = "Canvas request failed"
	LogMsgTeachersFailed  = "Failed to list course teachers"
	LogMsgCoursesListed   = "Listed Canvas courses"
	LogMsgAssignmentsRead = "Listed Canvas assignments"
)
