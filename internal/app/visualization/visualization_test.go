package visualization

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniadvisor/internal/app/catalog"
)

func intPtr(i int) *int { return &i }

func TestFromCatalog(t *testing.T) {
	courses := []catalog.Course{
		{
			ID:               "CS 110",
			Title:            "Introduction to Computer Science",
			Description:      "Basics.",
			PrerequisiteText: "Pre-req: MATH 140",
			Sessions: []catalog.Session{
				{Section: "01", Credits: "4/4", Instructor: "Ada"},
				{}, {}, {},
			},
		},
		{ID: "CS 210", Title: "Data Structures", PrerequisiteText: "None"},
	}

	got := FromCatalog(courses, "")
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "CS 110", first.ID)
	assert.Equal(t, DefaultSemester, first.Semester)
	assert.Equal(t, 4, first.Credits)
	assert.Equal(t, "medium", first.Difficulty)
	assert.Equal(t, []string{"MATH 140"}, first.Prerequisites)
	require.Len(t, first.Sessions, 3)
	assert.Equal(t, "01", first.Sessions[0].Section)
	assert.Equal(t, "Ada", first.Sessions[0].Instructor)
	assert.Equal(t, Session{
		Section: "N/A", Schedule: "TBA", Instructor: "TBA", Location: "TBA",
		ClassDate: "TBA", Capacity: "0", Enrolled: "0", Status: "Unknown",
	}, first.Sessions[1])

	second := got[1]
	assert.Equal(t, 3, second.Credits)
	assert.Empty(t, second.Prerequisites)
	assert.Empty(t, second.Sessions)
}

func TestSessionCredits(t *testing.T) {
	tests := []struct {
		credits string
		want    int
	}{
		{"3/3", 3},
		{"4", 4},
		{"", 3},
		{"var", 3},
		{"0/0", 3},
	}
	for _, tt := range tests {
		t.Run(tt.credits, func(t *testing.T) {
			assert.Equal(t, tt.want, sessionCredits([]catalog.Session{{Credits: tt.credits}}))
		})
	}
}

func TestNewCoursePath_JSON(t *testing.T) {
	body, err := json.Marshal(NewCoursePath(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"course_path","courses":[]}`, string(body))
}

func planCatalog() *catalog.Catalog {
	return catalog.New("UMASS_BOSTON", []catalog.Course{
		{ID: "CS 110", Title: "Intro to CS", Description: "First course."},
		{ID: "CS 210", Title: "Data Structures", PrerequisiteText: "CS 110"},
		{ID: "PHYS 113", Title: "Fundamentals of Physics I"},
		{ID: "CS 437", Title: "Database Systems"},
		{ID: "CS 438", Title: "Applied Machine Learning"},
		{ID: "CS 620", Title: "Graduate Topics"},
		{ID: "MATH 270", Title: "Not a gen ed"},
		{ID: "HIST 101", Title: "World History"},
		{ID: "ART 350", Title: "Too advanced"},
	})
}

func TestBuildDegreePlan(t *testing.T) {
	plan := BuildDegreePlan(planCatalog())

	assert.Equal(t, TypeDegreePlan, plan.Type)
	assert.Equal(t, DegreePlanNotes, plan.Notes)
	require.Len(t, plan.Semesters, 8)

	terms := make([]string, 0, 8)
	for _, s := range plan.Semesters {
		terms = append(terms, s.Term)
	}
	assert.Equal(t, []string{
		"Freshman Fall", "Freshman Spring", "Sophomore Fall", "Sophomore Spring",
		"Junior Fall", "Junior Spring", "Senior Fall", "Senior Spring",
	}, terms)
	assert.Equal(t, 15, plan.Semesters[0].TotalCredits)
	assert.Equal(t, 14, plan.Semesters[1].TotalCredits)
	assert.Equal(t, 16, plan.Semesters[3].TotalCredits)

	freshmanFall := plan.Semesters[0].Courses
	assert.Equal(t, "CS 110", freshmanFall[0].ID)
	assert.Equal(t, "Intro to CS", freshmanFall[0].Name)
	assert.Equal(t, "First course.", freshmanFall[0].Description)
	assert.Equal(t, 4, freshmanFall[0].Credits, "credits come from the plan")
	require.NotNil(t, freshmanFall[0].SemesterIndex)
	assert.Equal(t, 0, *freshmanFall[0].SemesterIndex)

	// missing required course keeps the template entry
	assert.Equal(t, "MATH 140", freshmanFall[1].ID)
	assert.Equal(t, "Calculus I", freshmanFall[1].Name)
	assert.Empty(t, freshmanFall[1].Prerequisites)

	// the only gen ed candidate fills gen ed slots round-robin
	assert.Equal(t, "HIST 101", freshmanFall[2].ID)
	assert.Equal(t, "HIST 101", freshmanFall[3].ID)

	assert.Equal(t, []string{"CS 110"}, plan.Semesters[1].Courses[0].Prerequisites)

	physicsI := plan.Semesters[4].Courses[3]
	assert.Equal(t, "PHYS 113", physicsI.ID)
	assert.Equal(t, "Fundamentals of Physics I", physicsI.Name)

	seniorFall := plan.Semesters[6].Courses
	assert.Equal(t, "CS 437", seniorFall[0].ID)
	assert.Equal(t, "CS 438", seniorFall[1].ID)
	assert.Equal(t, "CS 437", plan.Semesters[7].Courses[1].ID, "pool wraps around")
}

func TestBuildDegreePlan_EmptyCatalog(t *testing.T) {
	plan := BuildDegreePlan(nil)
	require.Len(t, plan.Semesters, 8)

	seniorFall := plan.Semesters[6].Courses
	assert.Equal(t, "CS ELECTIVE", seniorFall[0].ID)
	assert.Equal(t, "CS Elective (300+)", seniorFall[0].Name)
	assert.Equal(t, "GENERAL EDUCATION", seniorFall[2].ID)

	assert.Len(t, plan.Courses(), 38)
}

func TestSubjectAndNumber(t *testing.T) {
	subject, number, ok := subjectAndNumber("cs 285L")
	require.True(t, ok)
	assert.Equal(t, "CS", subject)
	assert.Equal(t, 285, number)

	_, _, ok = subjectAndNumber("GENERAL EDUCATION")
	assert.False(t, ok)
}

func TestParseMarker(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantOK   bool
		wantRest string
		wantType string
	}{
		{
			name:     "plain",
			text:     "Here you go.\nVISUALIZATION_DATA: {\"type\":\"course_path\",\"courses\":[]}",
			wantOK:   true,
			wantRest: "Here you go.",
			wantType: "course_path",
		},
		{
			name:     "fenced with trailing text",
			text:     "Plan below\nVISUALIZATION_DATA:\n```json\n{\"type\":\"degree_plan\",\"semesters\":[]}\n```\nEnjoy!",
			wantOK:   true,
			wantRest: "Plan below",
			wantType: "degree_plan",
		},
		{
			name:     "no marker",
			text:     "Just words",
			wantRest: "Just words",
		},
		{
			name:     "broken json",
			text:     "x VISUALIZATION_DATA: {\"type\": ",
			wantRest: "x VISUALIZATION_DATA: {\"type\": ",
		},
		{
			name:     "no object",
			text:     "VISUALIZATION_DATA: none",
			wantRest: "VISUALIZATION_DATA: none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, rest, ok := ParseMarker(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRest, rest)
			if tt.wantOK {
				assert.Equal(t, tt.wantType, PayloadType(payload))
			} else {
				assert.Nil(t, payload)
			}
		})
	}
}

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestBuildTree_Grouping(t *testing.T) {
	courses := []Course{
		{ID: "CS 310", Semester: "Sophomore Spring", Credits: 3, SemesterIndex: intPtr(3)},
		{ID: "GENED 100", Semester: "Freshman Fall", SemesterIndex: intPtr(0)},
		{ID: "CS 110", Semester: "Freshman Fall", Credits: 4, Difficulty: "medium", SemesterIndex: intPtr(0)},
		{ID: "MATH 140", Semester: "Freshman Fall", Credits: 4, SemesterIndex: intPtr(0)},
		{ID: "CS 999", Semester: "Winter Intersession"},
		{ID: "CS 210", Semester: "Freshman Spring", SemesterIndex: intPtr(1)},
		{ID: "CS 100", Semester: "Freshman Summer", SemesterIndex: intPtr(2)},
		{ID: "CS 101", Semester: ""},
	}

	root := BuildTree(courses, nil, TreeOptions{})
	require.NotNil(t, root)
	assert.Equal(t, RootName, root.Name)
	assert.Nil(t, root.Attributes)
	assert.Equal(t, []string{"Freshman Year", "Sophomore Year", "Other"}, names(root.Children))

	freshman := root.Children[0]
	assert.True(t, freshman.Attributes.IsYear)
	assert.Equal(t, []string{"Fall", "Spring", "Summer"}, names(freshman.Children))

	fall := freshman.Children[0]
	assert.True(t, fall.Attributes.IsTerm)
	assert.Equal(t, "Fall", fall.Attributes.TermName)
	assert.Equal(t, []string{"CS 110", "MATH 140"}, names(fall.Children), "hidden prefixes are dropped")
	assert.Equal(t, "4", fall.Children[0].Attributes.Credits)
	assert.Equal(t, "CS 110", fall.Children[0].Attributes.CourseID)

	other := root.Children[2]
	assert.Equal(t, []string{"Other", "Winter Intersession"}, names(other.Children))
}

func TestBuildTree_OnlyPrefixes(t *testing.T) {
	courses := []Course{
		{ID: "CS 110", Semester: "Freshman Fall"},
		{ID: "ENGL 101", Semester: "Freshman Fall"},
		{ID: "AFRSTY 101", Semester: "Freshman Fall"},
		{ID: "AF 210", Semester: "Freshman Fall"},
	}

	root := BuildTree(courses, nil, TreeOptions{OnlyPrefixes: CSRoadmapPrefixes})
	require.NotNil(t, root)
	fall := root.Children[0].Children[0]
	assert.Equal(t, []string{"CS 110", "AF 210"}, names(fall.Children))

	assert.Nil(t, BuildTree(courses, nil, TreeOptions{OnlyPrefixes: []string{"BIO"}}))
	assert.Nil(t, BuildTree(nil, nil, TreeOptions{}))
}

func TestBuildTree_ExpandedPrerequisites(t *testing.T) {
	courses := []Course{
		{ID: "CS 110", Semester: "Freshman Fall", Prerequisites: []string{"MATH 140"}},
		{ID: "CS 210", Semester: "Freshman Spring", Prerequisites: []string{"CS 110", "CS 220"}},
		{ID: "CS 220", Semester: "Sophomore Fall", Prerequisites: []string{"CS 210"}},
	}

	expanded := map[string]bool{"cs210": true, "CS 110": true, "CS 220": true}
	root := BuildTree(courses, expanded, TreeOptions{})
	require.NotNil(t, root)

	cs110 := root.Children[0].Children[0].Children[0]
	assert.Equal(t, []string{"MATH 140"}, names(cs110.Children))
	assert.Equal(t, "MATH 140", cs110.Children[0].Attributes.CourseID)

	cs210 := root.Children[0].Children[1].Children[0]
	require.Equal(t, []string{"CS 110", "CS 220"}, names(cs210.Children))
	assert.Equal(t, []string{"MATH 140"}, names(cs210.Children[0].Children), "known expanded prereqs recurse")

	// CS 220 points back at CS 210 and stops there
	cycle := cs210.Children[1]
	require.Equal(t, []string{"CS 210"}, names(cycle.Children))
	assert.Empty(t, cycle.Children[0].Children)

	collapsed := BuildTree(courses, nil, TreeOptions{})
	assert.Empty(t, collapsed.Children[0].Children[0].Children[0].Children)
}

func TestBuildTree_FromDegreePlan(t *testing.T) {
	plan := BuildDegreePlan(planCatalog())
	root := BuildTree(plan.Courses(), nil, TreeOptions{OnlyPrefixes: CSRoadmapPrefixes})
	require.NotNil(t, root)
	assert.Equal(t, []string{"Freshman Year", "Sophomore Year", "Junior Year", "Senior Year"}, names(root.Children))

	for _, year := range root.Children {
		for _, term := range year.Children {
			for _, course := range term.Children {
				assert.False(t, strings.HasPrefix(course.Name, "GENERAL"), course.Name)
			}
		}
	}
}
