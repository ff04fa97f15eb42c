package services

import (
	"regexp"
	"strings"
)

// Intent selects the template and the post-processing of a chat turn
type Intent int

const (
	IntentGeneral Intent = iota
	IntentDegreePlan
	IntentVisualization
	IntentOnboarding
)

func (i Intent) String() string {
	switch i {
	case IntentDegreePlan:
		return "degree_plan"
	case IntentVisualization:
		return "visualization"
	case IntentOnboarding:
		return "onboarding"
	default:
		return "general"
	}
}

// Template returns the system prompt used for the intent
func (i Intent) Template() Template {
	switch i {
	case IntentVisualization:
		return TemplateVisualization
	case IntentOnboarding:
		return TemplateOnboarding
	default:
		return TemplateAdvisor
	}
}

// OnboardCommand forces the onboarding template
const OnboardCommand = "onboard"

var degreePlanKeywords = []string{
	"degree plan",
	"four year plan",
	"four-year plan",
	"roadmap",
	"map to complete",
	"plan to complete",
	"degree roadmap",
	"bs in computer science",
	"cs degree plan",
	"cs roadmap",
	"complete cs degree",
}

var visualizationKeywords = []string{
	"show me my path",
	"course plan",
	"what courses should i take",
	"semester plan",
	"roadmap",
	"plan my courses",
	"course sequence",
	"what should i take",
	"degree plan",
	"academic plan",
	"show courses",
	"show me courses",
	"visualize",
	"courses",
	"classes",
}

// ClassifyIntent picks the intent of message. firstContact is true when the
// identity has no transcript and an empty profile.
func ClassifyIntent(message string, firstContact bool) Intent {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, degreePlanKeywords):
		return IntentDegreePlan
	case containsAny(lower, visualizationKeywords):
		return IntentVisualization
	case strings.TrimSpace(lower) == OnboardCommand || firstContact:
		return IntentOnboarding
	default:
		return IntentGeneral
	}
}

var courseRequestPattern = regexp.MustCompile(`(?i)\bcourse|class|classes\b`)

// IsCourseRequest reports whether message asks about courses or classes
func IsCourseRequest(message string) bool {
	return courseRequestPattern.MatchString(message)
}

var (
	departmentBeforeNoun = regexp.MustCompile(`(?i)\b([a-z]{2,5})\s*(?:courses?|classes?)\b`)
	departmentToken      = regexp.MustCompile(`(?i)\b([a-z]{2,4})\d{0,3}\b`)
)

// Short words that look like department codes but never are
var departmentStopwords = map[string]bool{
	"A": true, "AN": true, "THE": true, "ME": true, "MY": true, "ALL": true, "ANY": true,
	"SOME": true, "FOR": true, "OF": true, "IN": true, "ON": true, "TO": true, "AND": true,
	"OR": true, "WHAT": true, "SHOW": true, "LIST": true, "TAKE": true, "GIVE": true,
	"CAN": true, "YOU": true, "I": true, "IS": true, "ARE": true, "HI": true, "HEY": true,
	"WITH": true, "ABOUT": true, "WHICH": true, "OTHER": true, "MORE": true, "NEED": true,
	"WANT": true, "FIND": true, "GET": true, "THAT": true, "THIS": true, "YOUR": true,
	"HOW": true, "WHY": true, "WHEN": true, "DO": true, "DOES": true, "BE": true, "AT": true,
	"PLEASE": true, "GOOD": true, "BEST": true, "EASY": true, "HARD": true, "MAJOR": true,
}

// ExtractDepartment finds the department code a message refers to, such as
// "CS" in "show me cs courses". It returns "" when nothing looks like one.
func ExtractDepartment(message string) string {
	for _, pattern := range []*regexp.Regexp{departmentBeforeNoun, departmentToken} {
		for _, m := range pattern.FindAllStringSubmatch(message, -1) {
			code := strings.ToUpper(m[1])
			if !departmentStopwords[code] {
				return code
			}
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
