package model

import (
	"time"

	"github.com/google/uuid"
)

type AccountType string

const (
	AccountTypeStudent AccountType = "student"
	AccountTypeCollege AccountType = "college"
)

func (t AccountType) Valid() bool {
	return t == AccountTypeStudent || t == AccountTypeCollege
}

type User struct {
	ID           uuid.UUID    `json:"id"`
	TelegramID   int64        `json:"telegram_id"`
	Username     string       `json:"username"`
	FullName     string       `json:"full_name"`
	Email        string       `json:"email"`
	AccountType  *AccountType `json:"account_type"` // nil until a role is chosen
	CollegeID    *uuid.UUID   `json:"college_id"`   // set for college admins
	LanguageCode string       `json:"language_code"`
	CreatedAt    time.Time    `json:"created_at"`
}

// HasRole checks if the user has already picked an account type
func (u *User) HasRole() bool {
	return u.AccountType != nil
}

func (u *User) IsStudent() bool {
	return u.AccountType != nil && *u.AccountType == AccountTypeStudent
}

func (u *User) IsCollegeAdmin() bool {
	return u.AccountType != nil && *u.AccountType == AccountTypeCollege
}

// ManagesCollege checks if the user is the admin of the given college
func (u *User) ManagesCollege(collegeID uuid.UUID) bool {
	return u.IsCollegeAdmin() && u.CollegeID != nil && *u.CollegeID == collegeID
}

// UserUpdate carries a partial update of the current user. Nil fields are left as is.
type UserUpdate struct {
	Email        *string
	FullName     *string
	AccountType  **AccountType // pointer to nil clears the account type
	CollegeID    *uuid.UUID
	LanguageCode *string
}

// Apply copies the set fields onto the user
func (uu UserUpdate) Apply(u *User) {
	if uu.Email != nil {
		u.Email = *uu.Email
	}
	if uu.FullName != nil {
		u.FullName = *uu.FullName
	}
	if uu.AccountType != nil {
		u.AccountType = *uu.AccountType
	}
	if uu.CollegeID != nil {
		id := *uu.CollegeID
		u.CollegeID = &id
	}
	if uu.LanguageCode != nil {
		u.LanguageCode = *uu.LanguageCode
	}
}
