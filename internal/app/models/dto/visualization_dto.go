package dto

import "github.com/yigit/uniadvisor/internal/app/visualization"

// TreeRequest is the body of the course tree endpoint
type TreeRequest struct {
	Courses      []visualization.Course `json:"courses" binding:"required,max=500"`
	Expanded     []string               `json:"expanded" binding:"omitempty,max=500"`
	OnlyPrefixes []string               `json:"only_prefixes" binding:"omitempty,max=32"`
	// Roadmap keeps only CS roadmap subjects when OnlyPrefixes is empty
	Roadmap bool `json:"roadmap"`
}
