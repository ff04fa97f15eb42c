// Package visualization derives the course path, degree plan and tree payloads
// the client renders. Everything here is pure and recomputed per request.
package visualization

import (
	"strconv"
	"strings"

	"github.com/yigit/uniadvisor/internal/app/catalog"
)

// Payload types
const (
	TypeCoursePath = "course_path"
	TypeDegreePlan = "degree_plan"
)

// DefaultSemester labels course path entries when the caller has no term in mind
const DefaultSemester = "Fall 2025"

const (
	defaultCredits    = 3
	maxSessions       = 3
	defaultDifficulty = "medium"
)

// Session is the client view of a scheduled section
type Session struct {
	Section    string `json:"section"`
	Schedule   string `json:"schedule"`
	Instructor string `json:"instructor"`
	Location   string `json:"location"`
	ClassDate  string `json:"classDate"`
	Capacity   string `json:"capacity"`
	Enrolled   string `json:"enrolled"`
	Status     string `json:"status"`
}

// Course is one visualized course
type Course struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Semester      string    `json:"semester,omitempty"`
	Credits       int       `json:"credits"`
	Difficulty    string    `json:"difficulty,omitempty"`
	Prerequisites []string  `json:"prerequisites"`
	Description   string    `json:"description,omitempty"`
	Sessions      []Session `json:"sessions,omitempty"`
	SemesterIndex *int      `json:"semesterIndex,omitempty"`
}

// CoursePath is the payload of a course listing
type CoursePath struct {
	Type    string   `json:"type"`
	Courses []Course `json:"courses"`
}

// NewCoursePath wraps courses in a course_path payload
func NewCoursePath(courses []Course) *CoursePath {
	if courses == nil {
		courses = []Course{}
	}
	return &CoursePath{Type: TypeCoursePath, Courses: courses}
}

// FromCatalog converts catalog entries into visualized courses
func FromCatalog(courses []catalog.Course, semester string) []Course {
	if semester == "" {
		semester = DefaultSemester
	}

	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		out = append(out, Course{
			ID:            orDefault(c.ID, "Unknown ID"),
			Name:          orDefault(c.Title, "Untitled course"),
			Semester:      semester,
			Credits:       sessionCredits(c.Sessions),
			Difficulty:    defaultDifficulty,
			Prerequisites: catalog.ExtractPrerequisites(c),
			Description:   c.Description,
			Sessions:      convertSessions(c.Sessions),
		})
	}
	return out
}

// sessionCredits reads "3/3" style credits from the first session
func sessionCredits(sessions []catalog.Session) int {
	if len(sessions) == 0 || sessions[0].Credits == "" {
		return defaultCredits
	}
	head, _, _ := strings.Cut(sessions[0].Credits, "/")
	credits, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || credits <= 0 {
		return defaultCredits
	}
	return credits
}

func convertSessions(sessions []catalog.Session) []Session {
	if len(sessions) > maxSessions {
		sessions = sessions[:maxSessions]
	}

	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, Session{
			Section:    orDefault(s.Section, "N/A"),
			Schedule:   orDefault(s.Schedule, "TBA"),
			Instructor: orDefault(s.Instructor, "TBA"),
			Location:   orDefault(s.Location, "TBA"),
			ClassDate:  orDefault(s.ClassDates, "TBA"),
			Capacity:   orDefault(s.Capacity, "0"),
			Enrolled:   orDefault(s.Enrolled, "0"),
			Status:     orDefault(s.Status, "Unknown"),
		})
	}
	return out
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
