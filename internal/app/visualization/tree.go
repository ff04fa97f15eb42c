package visualization

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yigit/uniadvisor/internal/app/catalog"
)

// RootName labels the top of every course tree
const RootName = "Course"

// HiddenPrefixes never appear in a tree
var HiddenPrefixes = []string{"AFRSTY", "AFRS", "GENED", "ELECTIVE", "GENERALEDUCATION", "AMST"}

// CSRoadmapPrefixes is the whitelist clients use for a CS roadmap
var CSRoadmapPrefixes = []string{"CS", "MATH", "PHYS", "PHYSICS", "AF"}

const (
	yearOther          = "Other"
	unknownSemesterPos = 999
)

var yearOrder = map[string]int{
	"Freshman Year":  0,
	"Sophomore Year": 1,
	"Junior Year":    2,
	"Senior Year":    3,
	yearOther:        4,
}

var termOrder = map[string]int{"Fall": 0, "Spring": 1, "Summer": 2}

// NodeAttributes carries the per-node data rendered next to a tree node
type NodeAttributes struct {
	CourseID      string   `json:"courseId,omitempty"`
	Credits       string   `json:"credits,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	IsYear        bool     `json:"isYear,omitempty"`
	IsTerm        bool     `json:"isTerm,omitempty"`
	TermName      string   `json:"termName,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
}

// Node is one element of the year → term → course hierarchy
type Node struct {
	Name       string          `json:"name"`
	Attributes *NodeAttributes `json:"attributes,omitempty"`
	Children   []*Node         `json:"children,omitempty"`
}

// TreeOptions narrows which courses are placed in the tree
type TreeOptions struct {
	// OnlyPrefixes, when set, keeps only courses whose id starts with one of them
	OnlyPrefixes []string
}

// BuildTree groups courses by year and term under a single root. Courses whose
// normalized id is in expanded get their prerequisites as children.
func BuildTree(courses []Course, expanded map[string]bool, opts TreeOptions) *Node {
	visible := filterCourses(courses, opts)
	if len(visible) == 0 {
		return nil
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return semesterIndex(visible[i]) < semesterIndex(visible[j])
	})

	b := &treeBuilder{
		known:    make(map[string]Course, len(visible)),
		expanded: make(map[string]bool, len(expanded)),
	}
	for _, course := range visible {
		id := catalog.NormalizeID(course.ID)
		if _, ok := b.known[id]; !ok {
			b.known[id] = course
		}
	}
	for id, open := range expanded {
		if open {
			b.expanded[catalog.NormalizeID(id)] = true
		}
	}

	years := make(map[string]map[string][]Course)
	for _, course := range visible {
		year, term := yearOf(course.Semester), termOf(course.Semester)
		if years[year] == nil {
			years[year] = make(map[string][]Course)
		}
		years[year][term] = append(years[year][term], course)
	}

	root := &Node{Name: RootName}
	for _, year := range sortedYears(years) {
		yearNode := &Node{Name: year, Attributes: &NodeAttributes{IsYear: true}}
		for _, term := range sortedTerms(years[year]) {
			termNode := &Node{Name: term, Attributes: &NodeAttributes{IsTerm: true, TermName: term}}
			for _, course := range years[year][term] {
				termNode.Children = append(termNode.Children, b.courseNode(course, map[string]bool{}))
			}
			yearNode.Children = append(yearNode.Children, termNode)
		}
		root.Children = append(root.Children, yearNode)
	}
	return root
}

type treeBuilder struct {
	known    map[string]Course
	expanded map[string]bool
}

func (b *treeBuilder) courseNode(course Course, visiting map[string]bool) *Node {
	id := catalog.NormalizeID(course.ID)
	node := &Node{
		Name: course.ID,
		Attributes: &NodeAttributes{
			CourseID:      course.ID,
			Credits:       strconv.Itoa(course.Credits),
			Difficulty:    course.Difficulty,
			Prerequisites: course.Prerequisites,
		},
	}
	if !b.expanded[id] || visiting[id] {
		return node
	}

	visiting[id] = true
	defer delete(visiting, id)

	for _, prereq := range course.Prerequisites {
		prereqID := catalog.NormalizeID(prereq)
		if known, ok := b.known[prereqID]; ok && b.expanded[prereqID] && !visiting[prereqID] {
			node.Children = append(node.Children, b.courseNode(known, visiting))
			continue
		}
		node.Children = append(node.Children, &Node{
			Name:       prereq,
			Attributes: &NodeAttributes{CourseID: prereq},
		})
	}
	return node
}

func filterCourses(courses []Course, opts TreeOptions) []Course {
	only := make([]string, 0, len(opts.OnlyPrefixes))
	for _, p := range opts.OnlyPrefixes {
		if p = catalog.NormalizeID(p); p != "" {
			only = append(only, p)
		}
	}

	out := make([]Course, 0, len(courses))
	for _, course := range courses {
		id := catalog.NormalizeID(course.ID)
		if id == "" || hasAnyPrefix(id, HiddenPrefixes) {
			continue
		}
		if len(only) > 0 && !hasAnyPrefix(id, only) {
			continue
		}
		out = append(out, course)
	}
	return out
}

func hasAnyPrefix(id string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

func semesterIndex(c Course) int {
	if c.SemesterIndex == nil {
		return unknownSemesterPos
	}
	return *c.SemesterIndex
}

// yearOf maps "Sophomore Spring" to "Sophomore Year"
func yearOf(semester string) string {
	lower := strings.ToLower(semester)
	for _, y := range []string{"freshman", "sophomore", "junior", "senior"} {
		if strings.Contains(lower, y) {
			return strings.ToUpper(y[:1]) + y[1:] + " Year"
		}
	}
	return yearOther
}

// termOf maps "Sophomore Spring" to "Spring". Unrecognized labels are kept as is.
func termOf(semester string) string {
	if strings.TrimSpace(semester) == "" {
		return yearOther
	}
	lower := strings.ToLower(semester)
	for _, t := range []string{"fall", "spring", "summer"} {
		if strings.Contains(lower, t) {
			return strings.ToUpper(t[:1]) + t[1:]
		}
	}
	return semester
}

func sortedYears(years map[string]map[string][]Course) []string {
	out := make([]string, 0, len(years))
	for y := range years {
		out = append(out, y)
	}
	sort.Slice(out, func(i, j int) bool { return yearOrder[out[i]] < yearOrder[out[j]] })
	return out
}

func sortedTerms(terms map[string][]Course) []string {
	out := make([]string, 0, len(terms))
	for t := range terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iKnown := termOrder[out[i]]
		oj, jKnown := termOrder[out[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown:
			return true
		case jKnown:
			return false
		}
		return out[i] < out[j]
	})
	return out
}
