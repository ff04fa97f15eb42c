package dto

import "github.com/yigit/uniadvisor/internal/app/models"

// ProfileResponse bundles a profile with its transcript page
type ProfileResponse struct {
	UserID     string              `json:"user_id"`
	Data       *models.UserProfile `json:"data"`
	Chats      []*models.ChatTurn  `json:"chats"`
	Pagination PaginationInfo      `json:"pagination"`
}

// UpdateProfileRequest is a partial profile update; omitted fields are kept
type UpdateProfileRequest struct {
	University *string  `json:"university,omitempty" binding:"omitempty,max=64"`
	Major      *string  `json:"major,omitempty" binding:"omitempty,min=1,max=128"`
	Year       *int     `json:"year,omitempty" binding:"omitempty,min=1,max=6"`
	IsStudent  *bool    `json:"isstudent,omitempty"`
	Interests  []string `json:"interests,omitempty" binding:"omitempty,max=20,dive,min=1,max=64"`
}

// ToPatch converts the request into a model patch
func (r UpdateProfileRequest) ToPatch() models.ProfilePatch {
	return models.ProfilePatch{
		University: r.University,
		Major:      r.Major,
		Year:       r.Year,
		IsStudent:  r.IsStudent,
		Interests:  r.Interests,
	}
}

// ChatTranscriptResponse is one page of a single chat session
type ChatTranscriptResponse struct {
	ChatID     string             `json:"chat_id"`
	Chats      []*models.ChatTurn `json:"chats"`
	Pagination PaginationInfo     `json:"pagination"`
}
