package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentProfile struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"` // owning account
	UserEmail         string     `json:"user_email"`
	FullName          string     `json:"full_name"`
	Phone             string     `json:"phone"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	Gender            string     `json:"gender"`
	City              string     `json:"city"`
	Board             string     `json:"board"` // 12th standard board, e.g. "State Board", "CBSE"
	TwelfthPercentage *float64   `json:"twelfth_percentage"`
	PreferredCourses  []string   `json:"preferred_courses"`
	PhotoURL          string     `json:"photo_url"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IsComplete checks the fields a college needs before a student can apply
func (p *StudentProfile) IsComplete() bool {
	return p.FullName != "" &&
		p.Phone != "" &&
		p.DateOfBirth != nil &&
		p.Board != "" &&
		p.TwelfthPercentage != nil
}
