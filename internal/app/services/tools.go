package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/yigit/uniadvisor/internal/app/models"
	"github.com/yigit/uniadvisor/internal/llm"
	"github.com/yigit/uniadvisor/internal/pkg/validation"
)

// ToolAction enumerates the tools the model may call
type ToolAction int

const (
	ToolUnknown ToolAction = iota
	ToolUpdateProfile
	ToolLookupCourses
)

// Tool names as declared to the model
const (
	ToolNameUpdateProfile = "updateUserProfile"
	ToolNameLookupCourses = "lookupCourses"
)

// ParseToolAction maps a tool name from the model onto a ToolAction
func ParseToolAction(name string) ToolAction {
	switch name {
	case ToolNameUpdateProfile:
		return ToolUpdateProfile
	case ToolNameLookupCourses, "getCoursesByMajor":
		return ToolLookupCourses
	default:
		return ToolUnknown
	}
}

func (a ToolAction) String() string {
	switch a {
	case ToolUpdateProfile:
		return ToolNameUpdateProfile
	case ToolLookupCourses:
		return ToolNameLookupCourses
	default:
		return "unknown"
	}
}

// ToolSpecs are declared on every first completion of a turn
var ToolSpecs = []llm.ToolSpec{
	{
		Name:        ToolNameLookupCourses,
		Description: `Retrieves the courses whose id starts with the department code given as "major", from the catalog of the university with index "university_id".`,
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"major":         {Type: jsonschema.String, Description: "Department code, such as CS or MATH"},
				"university_id": {Type: jsonschema.Integer, Description: "Index of the university"},
			},
			Required: []string{"major"},
		},
	},
	{
		Name:        ToolNameUpdateProfile,
		Description: "Saves user profile information. Only include the fields that are known.",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"university_id": {Type: jsonschema.Integer, Description: "Index of the university"},
				"major":         {Type: jsonschema.String},
				"year":          {Type: jsonschema.Integer, Description: "1 freshman, 2 sophomore, 3 junior, 4 senior"},
				"isstudent":     {Type: jsonschema.Boolean},
				"interests": {
					Type:  jsonschema.Array,
					Items: &jsonschema.Definition{Type: jsonschema.String},
				},
			},
		},
	},
}

// yearArg accepts a year as a number or as a name like "junior"
type yearArg int

func (y *yearArg) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	year, ok := models.ParseYear(raw)
	if !ok {
		return fmt.Errorf("invalid year %s", data)
	}
	*y = yearArg(year)
	return nil
}

// UpdateProfileArgs are the arguments of updateUserProfile
type UpdateProfileArgs struct {
	UniversityID *int     `json:"university_id" validate:"omitempty,min=0"`
	Major        *string  `json:"major" validate:"omitempty,min=1,max=128"`
	Year         *yearArg `json:"year" validate:"omitempty,min=1,max=6"`
	IsStudent    *bool    `json:"isstudent"`
	Interests    []string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=64"`
}

// LookupCoursesArgs are the arguments of lookupCourses
type LookupCoursesArgs struct {
	Major        string `json:"major" validate:"required,min=1,max=64"`
	UniversityID *int   `json:"university_id" validate:"omitempty,min=0"`
}

// decodeToolArgs strictly decodes and validates raw JSON arguments
func decodeToolArgs(raw string, dst interface{}) error {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("malformed tool arguments: %w", err)
	}
	return validation.Struct(dst)
}

// majorPrefixes maps spelled-out majors onto catalog prefixes
var majorPrefixes = map[string]string{
	"COMPUTER SCIENCE":       "CS",
	"COMPUTER SCIENCES":      "CS",
	"MATH":                   "MATH",
	"MATHEMATICS":            "MATH",
	"PHYSICS":                "PHYS",
	"AFRICANA STUDIES":       "AFRSTY",
	"AMERICAN STUDIES":       "AMST",
	"ACCOUNTING AND FINANCE": "AF",
	"ENGLISH":                "ENGL",
	"BIOLOGY":                "BIOL",
	"CHEMISTRY":              "CHEM",
	"ECONOMICS":              "ECON",
	"PSYCHOLOGY":             "PSYCH",
	"INFORMATION TECHNOLOGY": "IT",
	"ELECTRICAL ENGINEERING": "ENGIN",
	"MANAGEMENT":             "MGT",
}

// MajorPrefix turns a major as the model or user wrote it into a course id prefix
func MajorPrefix(major string) string {
	key := strings.ToUpper(strings.Join(strings.Fields(major), " "))
	if prefix, ok := majorPrefixes[key]; ok {
		return prefix
	}
	return strings.ReplaceAll(key, " ", "")
}
