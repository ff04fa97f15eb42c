// Package models holds the persisted domain records.
package models

import (
	"strconv"
	"strings"
	"time"
)

// Role identifies who authored a chat turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// IsTranscriptRole reports whether turns with this role are stored in the transcript
func (r Role) IsTranscriptRole() bool {
	return r == RoleUser || r == RoleAssistant
}

// Year of study constants as stored in profiles
const (
	YearFreshman  = 1
	YearSophomore = 2
	YearJunior    = 3
	YearSenior    = 4
)

// YearName renders a stored year the way advisors talk about it
func YearName(year int) string {
	switch year {
	case YearFreshman:
		return "freshman"
	case YearSophomore:
		return "sophomore"
	case YearJunior:
		return "junior"
	case YearSenior:
		return "senior"
	default:
		return "graduate"
	}
}

// ParseYear accepts a year number or name ("3", "junior", "Junior year")
func ParseYear(value string) (int, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if n, err := strconv.Atoi(value); err == nil {
		return n, n > 0
	}
	for year := YearFreshman; year <= YearSenior; year++ {
		if strings.HasPrefix(value, YearName(year)) {
			return year, true
		}
	}
	return 0, false
}

// ChatTurn is one message in a user's transcript
type ChatTurn struct {
	ID        int64     `json:"id" db:"id"`
	ChatID    string    `json:"chat_id" db:"chat_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Role      Role      `json:"role" db:"role"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
