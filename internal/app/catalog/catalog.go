// Package catalog loads static course catalogs and answers prefix lookups.
package catalog

import (
	"regexp"
	"strings"
)

// Session is one scheduled section of a course
type Session struct {
	Section       string `json:"section,omitempty"`
	ClassNumber   string `json:"class_number,omitempty"`
	Schedule      string `json:"schedule,omitempty"`
	Instructor    string `json:"instructor,omitempty"`
	Location      string `json:"location,omitempty"`
	SessionType   string `json:"session_type,omitempty"`
	ClassDates    string `json:"dates,omitempty"`
	Capacity      string `json:"capacity,omitempty"`
	Enrolled      string `json:"enrolled,omitempty"`
	Status        string `json:"status,omitempty"`
	Credits       string `json:"credits,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Prerequisites string `json:"session_prerequisites,omitempty"`
	Attributes    string `json:"course_attributes,omitempty"`
}

// Course is a read-only catalog entry
type Course struct {
	ID               string
	Title            string
	Description      string
	PrerequisiteText string
	// PrerequisiteList is set when the dataset already split the statements
	PrerequisiteList []string
	Sessions         []Session
	Extra            map[string]any
}

// Catalog is an immutable, ordered list of courses for one university
type Catalog struct {
	university string
	courses    []Course
}

// New creates a catalog. The slice is copied.
func New(university string, courses []Course) *Catalog {
	return &Catalog{
		university: university,
		courses:    append([]Course(nil), courses...),
	}
}

// University returns the catalog's university code
func (c *Catalog) University() string {
	if c == nil {
		return ""
	}
	return c.university
}

// Len returns the number of courses
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.courses)
}

// Courses returns a copy of every course in catalog order
func (c *Catalog) Courses() []Course {
	if c == nil {
		return []Course{}
	}
	return append([]Course{}, c.courses...)
}

// Lookup returns every course whose id starts with prefix, ignoring case.
// An empty prefix matches nothing. Catalog order is preserved.
func (c *Catalog) Lookup(prefix string) []Course {
	return c.LookupExcluding(prefix, nil)
}

// LookupExcluding is Lookup minus courses matching any of the excluded prefixes
func (c *Catalog) LookupExcluding(prefix string, exclude []string) []Course {
	result := []Course{}
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if c == nil || prefix == "" {
		return result
	}

	excluded := make([]string, 0, len(exclude))
	for _, e := range exclude {
		if e = strings.ToUpper(strings.TrimSpace(e)); e != "" {
			excluded = append(excluded, e)
		}
	}

next:
	for _, course := range c.courses {
		id := strings.ToUpper(course.ID)
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		for _, e := range excluded {
			if strings.HasPrefix(id, e) {
				continue next
			}
		}
		result = append(result, course)
	}
	return result
}

// Find returns the course with the given id, compared after NormalizeID
func (c *Catalog) Find(id string) (Course, bool) {
	if c == nil {
		return Course{}, false
	}
	target := NormalizeID(id)
	for _, course := range c.courses {
		if NormalizeID(course.ID) == target {
			return course, true
		}
	}
	return Course{}, false
}

// NormalizeID uppercases a course id and strips whitespace ("cs 110" => "CS110")
func NormalizeID(id string) string {
	return strings.ToUpper(strings.Join(strings.Fields(id), ""))
}

var courseCodePattern = regexp.MustCompile(`[A-Z]{2,4}\s?\d{3}`)

// ExtractPrerequisites returns the course codes named in the prerequisite text.
// Without codes, short free text is returned as a single entry.
func ExtractPrerequisites(course Course) []string {
	if len(course.PrerequisiteList) > 0 {
		return append([]string(nil), course.PrerequisiteList...)
	}

	text := course.PrerequisiteText
	if codes := courseCodePattern.FindAllString(text, -1); len(codes) > 0 {
		return codes
	}

	trimmed := strings.TrimSpace(text)
	if trimmed != "" && len(text) < 200 && !strings.Contains(strings.ToLower(text), "none") {
		return []string{trimmed}
	}
	return []string{}
}

// Summary renders courses as "ID — Title\nDescription" blocks separated by blank lines
func Summary(courses []Course) string {
	blocks := make([]string, 0, len(courses))
	for _, course := range courses {
		blocks = append(blocks, course.ID+" — "+course.Title+"\n"+course.Description)
	}
	return strings.Join(blocks, "\n\n")
}
