package models

import (
	"fmt"
	"strings"
	"time"
)

// UserProfile is the per-identity advising record
type UserProfile struct {
	UserID     string    `json:"user_id" db:"user_id"`
	University string    `json:"university,omitempty" db:"university"`
	Major      string    `json:"major,omitempty" db:"major"`
	Year       *int      `json:"year,omitempty" db:"year"`
	IsStudent  *bool     `json:"isstudent,omitempty" db:"is_student"`
	Interests  []string  `json:"interests" db:"interests"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// IsEmpty reports whether no advising field has been filled in yet
func (p *UserProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.University == "" && p.Major == "" && p.Year == nil && p.IsStudent == nil && len(p.Interests) == 0
}

// Summary renders the known fields as prompt context
func (p *UserProfile) Summary() string {
	if p.IsEmpty() {
		return "No profile information is known yet."
	}

	var b strings.Builder
	b.WriteString("Known profile information:")
	if p.IsStudent != nil {
		if *p.IsStudent {
			b.WriteString("\n- currently a student")
		} else {
			b.WriteString("\n- not currently a student")
		}
	}
	if p.University != "" {
		fmt.Fprintf(&b, "\n- university: %s", p.University)
	}
	if p.Major != "" {
		fmt.Fprintf(&b, "\n- major: %s", p.Major)
	}
	if p.Year != nil {
		fmt.Fprintf(&b, "\n- year: %s", YearName(*p.Year))
	}
	if len(p.Interests) > 0 {
		fmt.Fprintf(&b, "\n- interests: %s", strings.Join(p.Interests, ", "))
	}
	return b.String()
}

// ProfilePatch carries a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	University *string
	Major      *string
	Year       *int
	IsStudent  *bool
	Interests  []string
}

// IsZero reports whether the patch changes nothing
func (p ProfilePatch) IsZero() bool {
	return p.University == nil && p.Major == nil && p.Year == nil && p.IsStudent == nil && p.Interests == nil
}
