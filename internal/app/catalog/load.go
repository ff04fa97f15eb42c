package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// rawCourse is one entry of the scraped dataset, an object keyed by course id
type rawCourse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Descriptors map[string]any   `json:"course_descriptors"`
	Sessions    []map[string]any `json:"sessions"`
}

// structuredCourse is the canonical array form written by catalogctl normalize
type structuredCourse struct {
	CourseID          string          `json:"courseid"`
	CourseName        string          `json:"coursename"`
	CourseDescription string          `json:"coursedescription"`
	Prerequisites     json.RawMessage `json:"course-prerequsities,omitempty"`
	PrerequisitesAlt  json.RawMessage `json:"course-prerequisites,omitempty"`
	Sessions          []Session       `json:"sessions,omitempty"`
	Other             map[string]any  `json:"other,omitempty"`
}

// Raw session keys and the Session field each one fills
var rawSessionFields = map[string]func(*Session, string){
	"section":           func(s *Session, v string) { s.Section = v },
	"class_number":      func(s *Session, v string) { s.ClassNumber = v },
	"schedule/time":     func(s *Session, v string) { s.Schedule = v },
	"instructor":        func(s *Session, v string) { s.Instructor = v },
	"location":          func(s *Session, v string) { s.Location = v },
	"session":           func(s *Session, v string) { s.SessionType = v },
	"class dates":       func(s *Session, v string) { s.ClassDates = v },
	"capacity":          func(s *Session, v string) { s.Capacity = v },
	"enrolled":          func(s *Session, v string) { s.Enrolled = v },
	"status":            func(s *Session, v string) { s.Status = v },
	"credits":           func(s *Session, v string) { s.Credits = v },
	"class notes":       func(s *Session, v string) { s.Notes = v },
	"pre requisites":    func(s *Session, v string) { s.Prerequisites = v },
	"course attributes": func(s *Session, v string) { s.Attributes = v },
}

// LoadFile reads a catalog file in any supported shape
func LoadFile(path, university string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Load(f, university)
}

// Load decodes a catalog. It accepts an object keyed by course id, an array of
// structured entries, or an array of raw entries (shapes may be mixed in an array).
func Load(r io.Reader, university string) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("catalog is empty")
	}

	var courses []Course
	switch data[0] {
	case '{':
		courses, err = decodeKeyed(data)
	case '[':
		courses, err = decodeArray(data)
	default:
		err = errors.New("catalog must be a JSON object or array")
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s catalog: %w", university, err)
	}

	return New(university, courses), nil
}

// decodeKeyed walks the top-level object token by token to keep key order
func decodeKeyed(data []byte) ([]Course, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var courses []Course
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var entry json.RawMessage
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}

		course, err := decodeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		if course.ID == "" {
			course.ID = cleanText(key)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func decodeArray(data []byte) ([]Course, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	courses := make([]Course, 0, len(entries))
	for i, entry := range entries {
		if bytes.Equal(bytes.TrimSpace(entry), []byte("null")) {
			continue
		}
		course, err := decodeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if course.ID == "" {
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// decodeEntry picks the structured or raw decoding by the keys present
func decodeEntry(entry json.RawMessage) (Course, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(entry, &keys); err != nil {
		return Course{}, err
	}

	if _, ok := keys["courseid"]; ok {
		return decodeStructured(entry)
	}
	if _, ok := keys["coursename"]; ok {
		return decodeStructured(entry)
	}
	return decodeRaw(entry)
}

func decodeRaw(entry json.RawMessage) (Course, error) {
	var raw rawCourse
	if err := json.Unmarshal(entry, &raw); err != nil {
		return Course{}, err
	}

	course := Course{
		ID:    cleanText(raw.ID),
		Title: cleanText(raw.Title),
	}

	extra := map[string]any{}
	for key, value := range raw.Descriptors {
		text := cleanText(stringify(value))
		switch key {
		case "description":
			course.Description = text
		case "pre requisites", "prerequisites":
			if course.PrerequisiteText == "" {
				course.PrerequisiteText = text
			}
		default:
			if text != "" {
				extra[key] = text
			}
		}
	}
	if len(extra) > 0 {
		course.Extra = map[string]any{"descriptors": extra}
	}

	for _, rawSession := range raw.Sessions {
		var session Session
		for key, value := range rawSession {
			if set, ok := rawSessionFields[key]; ok {
				set(&session, cleanText(stringify(value)))
			}
		}
		if session != (Session{}) {
			course.Sessions = append(course.Sessions, session)
		}
	}
	return course, nil
}

func decodeStructured(entry json.RawMessage) (Course, error) {
	var sc structuredCourse
	if err := json.Unmarshal(entry, &sc); err != nil {
		return Course{}, err
	}

	course := Course{
		ID:          cleanText(sc.CourseID),
		Title:       cleanText(sc.CourseName),
		Description: cleanText(sc.CourseDescription),
		Sessions:    sc.Sessions,
	}

	prereqs := sc.Prerequisites
	if len(prereqs) == 0 {
		prereqs = sc.PrerequisitesAlt
	}
	list, text, err := decodePrerequisites(prereqs)
	if err != nil {
		return Course{}, fmt.Errorf("prerequisites: %w", err)
	}
	course.PrerequisiteList = list
	course.PrerequisiteText = text

	// The structurer nests sessions under "other"
	if len(course.Sessions) == 0 {
		if nested, ok := sc.Other["sessions"]; ok {
			encoded, err := json.Marshal(nested)
			if err != nil {
				return Course{}, err
			}
			if err := json.Unmarshal(encoded, &course.Sessions); err != nil {
				return Course{}, fmt.Errorf("sessions: %w", err)
			}
		}
	}

	extra := map[string]any{}
	for key, value := range sc.Other {
		if key != "sessions" {
			extra[key] = value
		}
	}
	if len(extra) > 0 {
		course.Extra = extra
	}
	return course, nil
}

// decodePrerequisites accepts a list of statements, a plain string, or null
func decodePrerequisites(data json.RawMessage) ([]string, string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, "", nil
	}

	if data[0] == '[' {
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, "", err
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			if text := cleanText(stringify(item)); text != "" {
				list = append(list, text)
			}
		}
		return list, strings.Join(list, " "), nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return nil, "", err
	}
	return nil, cleanText(text), nil
}

// Encode writes courses in the canonical structured array form
func Encode(w io.Writer, courses []Course) error {
	out := make([]structuredCourse, 0, len(courses))
	for _, course := range courses {
		sc := structuredCourse{
			CourseID:          course.ID,
			CourseName:        course.Title,
			CourseDescription: course.Description,
			Sessions:          course.Sessions,
			Other:             course.Extra,
		}

		// Free text stays a string so a reload still extracts course codes from it
		var prereqs any = course.PrerequisiteList
		if len(course.PrerequisiteList) == 0 {
			prereqs = course.PrerequisiteText
		}
		encoded, err := json.Marshal(prereqs)
		if err != nil {
			return err
		}
		sc.Prerequisites = encoded

		out = append(out, sc)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// cleanText collapses runs of whitespace and trims the ends
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
