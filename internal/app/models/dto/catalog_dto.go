package dto

import "github.com/yigit/uniadvisor/internal/app/catalog"

// CatalogLookupRequest holds the query parameters of a catalog lookup
type CatalogLookupRequest struct {
	University string `form:"university" binding:"omitempty,max=64"`
	Prefix     string `form:"prefix" binding:"required,max=16"`
}

// CourseResponse is one catalog entry as exposed over HTTP
type CourseResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Prerequisites []string          `json:"prerequisites"`
	Sessions      []catalog.Session `json:"sessions"`
}

// CatalogLookupResponse lists the courses matching a prefix
type CatalogLookupResponse struct {
	University string           `json:"university"`
	Prefix     string           `json:"prefix"`
	Courses    []CourseResponse `json:"courses"`
}

// UniversityResponse describes one supported university
type UniversityResponse struct {
	ID     int    `json:"university_id"`
	Code   string `json:"code"`
	Loaded bool   `json:"loaded"`
}

// NewCourseResponses converts catalog courses for output
func NewCourseResponses(courses []catalog.Course) []CourseResponse {
	result := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		sessions := c.Sessions
		if sessions == nil {
			sessions = []catalog.Session{}
		}
		result = append(result, CourseResponse{
			ID:            c.ID,
			Title:         c.Title,
			Description:   c.Description,
			Prerequisites: catalog.ExtractPrerequisites(c),
			Sessions:      sessions,
		})
	}
	return result
}
