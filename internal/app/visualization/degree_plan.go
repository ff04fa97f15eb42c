package visualization

import (
	"regexp"
	"strconv"

	"github.com/yigit/uniadvisor/internal/app/catalog"
)

// DegreePlanReply is the fixed reply that accompanies a degree plan payload
const DegreePlanReply = "Here’s the mapped four-year CS degree plan for UMass Boston, with prerequisites and credits per term."

// DegreePlanNotes are appended to every degree plan
var DegreePlanNotes = []string{
	"Complete the Writing Proficiency Requirement (WPR) between 60–75 credits.",
	"Residency: Take at least four upper-level (300/400) CS/Math courses at UMass Boston.",
	"Meet with an advisor each semester to validate electives and pacing.",
}

// PlanSemester is one term of a degree plan
type PlanSemester struct {
	Term         string   `json:"term"`
	TotalCredits int      `json:"totalCredits"`
	Courses      []Course `json:"courses"`
}

// DegreePlan is the payload of a four-year plan
type DegreePlan struct {
	Type      string         `json:"type"`
	Semesters []PlanSemester `json:"semesters"`
	Notes     []string       `json:"notes"`
}

type slotKind int

const (
	slotRequired slotKind = iota
	slotPhysics
	slotGenEd
	slotCSElective
)

type planSlot struct {
	id      string
	title   string
	credits int
	kind    slotKind
}

type planTerm struct {
	term         string
	totalCredits int
	slots        []planSlot
}

func required(id, title string, credits int) planSlot {
	return planSlot{id: id, title: title, credits: credits, kind: slotRequired}
}

func physics(id, title string, credits int) planSlot {
	return planSlot{id: id, title: title, credits: credits, kind: slotPhysics}
}

func gened(id, title string, credits int) planSlot {
	return planSlot{id: id, title: title, credits: credits, kind: slotGenEd}
}

func csElective(id string) planSlot {
	return planSlot{id: id, title: "CS Elective (300+)", credits: 3, kind: slotCSElective}
}

var degreePlanTemplate = []planTerm{
	{"Freshman Fall", 15, []planSlot{
		required("CS 110", "Introduction to Computer Science", 4),
		required("MATH 140", "Calculus I", 4),
		gened("FIRST YEAR SEMINAR", "First Year Seminar", 4),
		gened("ENGL 101", "English Composition I", 3),
	}},
	{"Freshman Spring", 14, []planSlot{
		required("CS 210", "Intermediate Computing with Data Structures", 4),
		required("CS 240", "Programming in C", 3),
		required("MATH 141", "Calculus II", 4),
		gened("ENGL 102", "English Composition II", 3),
	}},
	{"Sophomore Fall", 15, []planSlot{
		required("MATH 260", "Linear Algebra", 3),
		required("CS 220", "Applied Discrete Mathematics", 3),
		required("CS 285L", "Social Issues & Ethics in Computing", 3),
		gened("GENERAL EDUCATION", "General Education", 3),
		gened("ELECTIVE", "Elective", 3),
	}},
	{"Sophomore Spring", 16, []planSlot{
		required("CS 310", "Advanced Data Structures and Algorithms", 3),
		required("CS 341", "Computer Architecture", 3),
		gened("GENERAL EDUCATION", "General Education", 3),
		gened("INTERMEDIATE SEMINAR", "Intermediate Seminar", 3),
		gened("ELECTIVE", "Elective", 4),
	}},
	{"Junior Fall", 15, []planSlot{
		required("CS 420", "Introduction to Software Engineering", 3),
		required("CS 444", "Operating Systems", 3),
		required("CS 446", "Networks", 3),
		physics("PHYS 113", "Physics I", 3),
		physics("PHYS 181", "Physics I Lab", 3),
	}},
	{"Junior Spring", 15, []planSlot{
		required("CS 451", "Programming Languages", 3),
		required("CS 449", "Compilers / Advanced Systems", 3),
		physics("PHYS 114", "Physics II", 3),
		physics("PHYS 182", "Physics II Lab", 3),
		required("MATH 345", "Probability and Statistics", 3),
	}},
	{"Senior Fall", 15, []planSlot{
		csElective("CS ELECTIVE"),
		csElective("CS ELECTIVE 2"),
		gened("GENERAL EDUCATION", "General Education", 3),
		gened("GENERAL EDUCATION 2", "General Education", 3),
		gened("ELECTIVE", "Elective", 3),
	}},
	{"Senior Spring", 15, []planSlot{
		required("CS 410", "Senior CS Capstone", 3),
		csElective("CS ELECTIVE 3"),
		gened("GENERAL EDUCATION", "General Education", 3),
		gened("GENERAL EDUCATION 2", "General Education", 3),
		gened("ELECTIVE", "Elective", 3),
	}},
}

var courseNumberPattern = regexp.MustCompile(`^([A-Z]+)(\d{3})`)

// subjectAndNumber splits a normalized id like CS310 into CS and 310
func subjectAndNumber(id string) (string, int, bool) {
	m := courseNumberPattern.FindStringSubmatch(catalog.NormalizeID(id))
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// electivePools partitions the catalog into the courses that may fill open slots
func electivePools(c *catalog.Catalog) (csPool, genEdPool []catalog.Course) {
	requiredIDs := make(map[string]struct{})
	for _, term := range degreePlanTemplate {
		for _, slot := range term.slots {
			if slot.kind == slotRequired || slot.kind == slotPhysics {
				requiredIDs[catalog.NormalizeID(slot.id)] = struct{}{}
			}
		}
	}

	for _, course := range c.Courses() {
		if _, ok := requiredIDs[catalog.NormalizeID(course.ID)]; ok {
			continue
		}
		subject, number, ok := subjectAndNumber(course.ID)
		if !ok {
			continue
		}
		switch {
		case subject == "CS" && number < 600:
			csPool = append(csPool, course)
		case subject != "CS" && subject != "MATH" && subject != "PHYS" && number >= 100 && number < 300:
			genEdPool = append(genEdPool, course)
		}
	}
	return csPool, genEdPool
}

// roundRobin hands out pool entries in order and wraps around
type roundRobin struct {
	pool []catalog.Course
	next int
}

func (r *roundRobin) take() (catalog.Course, bool) {
	if len(r.pool) == 0 {
		return catalog.Course{}, false
	}
	course := r.pool[r.next%len(r.pool)]
	r.next++
	return course, true
}

// BuildDegreePlan maps the four-year CS template onto a catalog. Slots whose
// course is missing from the catalog keep the template id and title.
func BuildDegreePlan(c *catalog.Catalog) DegreePlan {
	csPool, genEdPool := electivePools(c)
	electives := &roundRobin{pool: csPool}
	genEds := &roundRobin{pool: genEdPool}

	semesters := make([]PlanSemester, 0, len(degreePlanTemplate))
	for i, term := range degreePlanTemplate {
		index := i
		courses := make([]Course, 0, len(term.slots))
		for _, slot := range term.slots {
			var (
				match catalog.Course
				found bool
			)
			switch slot.kind {
			case slotRequired, slotPhysics:
				match, found = c.Find(slot.id)
			case slotCSElective:
				match, found = electives.take()
			case slotGenEd:
				match, found = genEds.take()
			}

			course := Course{
				ID:            slot.id,
				Name:          slot.title,
				Semester:      term.term,
				Credits:       slot.credits,
				Difficulty:    defaultDifficulty,
				Prerequisites: []string{},
				Description:   slot.title,
				SemesterIndex: &index,
			}
			if found {
				course.ID = orDefault(match.ID, slot.id)
				course.Name = orDefault(match.Title, slot.title)
				course.Description = orDefault(match.Description, slot.title)
				course.Prerequisites = catalog.ExtractPrerequisites(match)
				course.Sessions = convertSessions(match.Sessions)
			}
			courses = append(courses, course)
		}

		semesters = append(semesters, PlanSemester{
			Term:         term.term,
			TotalCredits: term.totalCredits,
			Courses:      courses,
		})
	}

	return DegreePlan{
		Type:      TypeDegreePlan,
		Semesters: semesters,
		Notes:     append([]string(nil), DegreePlanNotes...),
	}
}

// Courses flattens the plan into term-tagged courses suitable for BuildTree
func (p DegreePlan) Courses() []Course {
	var out []Course
	for _, semester := range p.Semesters {
		out = append(out, semester.Courses...)
	}
	return out
}
