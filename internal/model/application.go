package model

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending" // default on creation
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusWaitlisted  ApplicationStatus = "waitlisted"
)

// ApplicationStatuses lists every status a college admin may pick, in workflow order
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusSubmitted,
	ApplicationStatusUnderReview,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
	ApplicationStatusWaitlisted,
}

// Valid checks that the status is one of ApplicationStatuses
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

func (s PaymentStatus) Valid() bool {
	for _, known := range PaymentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Application struct {
	ID               uuid.UUID         `json:"id"`
	StudentProfileID uuid.UUID         `json:"student_profile_id"`
	StudentUserID    uuid.UUID         `json:"student_user_id"`
	StudentEmail     string            `json:"student_email"`
	StudentName      string            `json:"student_name"`
	CollegeID        uuid.UUID         `json:"college_id"`
	CollegeName      string            `json:"college_name"`
	Course           string            `json:"course"`
	Status           ApplicationStatus `json:"status"`
	PaymentStatus    PaymentStatus     `json:"payment_status"`
	PaymentID        string            `json:"payment_id,omitempty"`
	ExamSlotID       *uuid.UUID        `json:"exam_slot_id"`
	ExamDate         *time.Time        `json:"exam_date"`
	ExamTime         string            `json:"exam_time,omitempty"`
	ResultDate       *time.Time        `json:"result_date"`
	AmountPaid       *float64          `json:"amount_paid"`
	NeedsHostel      bool              `json:"needs_hostel"`
	NeedsScholarship bool              `json:"needs_scholarship"`
	CreatedAt        time.Time         `json:"created_date"`
	UpdatedAt        time.Time         `json:"updated_date"`
}

// NewApplication builds an application in its initial state
func NewApplication(profile *StudentProfile, college *College, course string, needsHostel, needsScholarship bool) *Application {
	return &Application{
		StudentProfileID: profile.ID,
		StudentUserID:    profile.UserID,
		StudentEmail:     profile.UserEmail,
		StudentName:      profile.FullName,
		CollegeID:        college.ID,
		CollegeName:      college.Name,
		Course:           course,
		Status:           ApplicationStatusPending,
		PaymentStatus:    PaymentStatusPending,
		NeedsHostel:      needsHostel,
		NeedsScholarship: needsScholarship,
	}
}

// OwnedBy checks if the application belongs to the student account
func (a *Application) OwnedBy(user *User) bool {
	return user.IsStudent() && user.ID != uuid.Nil && user.ID == a.StudentUserID
}

// HasExamSlot checks if the application is bound to an exam slot
func (a *Application) HasExamSlot() bool {
	return a.ExamSlotID != nil
}

// IsPendingLike is the student-side "in progress" tab
func (a *Application) IsPendingLike() bool {
	switch a.Status {
	case ApplicationStatusPending, ApplicationStatusSubmitted, ApplicationStatusUnderReview:
		return true
	}
	return false
}

// IsAccepted is shared by both student and college views
func (a *Application) IsAccepted() bool {
	return a.Status == ApplicationStatusAccepted
}

// IsRejectedLike is the student-side "not selected" tab
func (a *Application) IsRejectedLike() bool {
	return a.Status == ApplicationStatusRejected || a.Status == ApplicationStatusWaitlisted
}

// IsCollegePending is narrower than IsPendingLike: only untouched applications
func (a *Application) IsCollegePending() bool {
	return a.Status == ApplicationStatusPending
}

// IsReviewed is the college-side "reviewed" list. Submitted applications are in neither college list.
func (a *Application) IsReviewed() bool {
	switch a.Status {
	case ApplicationStatusUnderReview, ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWaitlisted:
		return true
	}
	return false
}

// StudentGroups holds the tabs of the student's applications page
type StudentGroups struct {
	Pending  []*Application
	Accepted []*Application
	Rejected []*Application
}

// GroupForStudent splits applications into student tabs, preserving order
func GroupForStudent(apps []*Application) StudentGroups {
	var g StudentGroups
	for _, app := range apps {
		switch {
		case app.IsPendingLike():
			g.Pending = append(g.Pending, app)
		case app.IsAccepted():
			g.Accepted = append(g.Accepted, app)
		case app.IsRejectedLike():
			g.Rejected = append(g.Rejected, app)
		}
	}
	return g
}

// CollegeGroups holds the lists of the college applications inbox
type CollegeGroups struct {
	Pending  []*Application
	Reviewed []*Application
}

// GroupForCollege splits applications into the college inbox lists, preserving order
func GroupForCollege(apps []*Application) CollegeGroups {
	var g CollegeGroups
	for _, app := range apps {
		if app.IsCollegePending() {
			g.Pending = append(g.Pending, app)
		}
		if app.IsReviewed() {
			g.Reviewed = append(g.Reviewed, app)
		}
	}
	return g
}

// ApplicationStatusChange is an audit record for a status update
type ApplicationStatusChange struct {
	ID            uuid.UUID         `json:"id"`
	ApplicationID uuid.UUID         `json:"application_id"`
	FromStatus    ApplicationStatus `json:"from_status"`
	ToStatus      ApplicationStatus `json:"to_status"`
	ActorEmail    string            `json:"actor_email"`
	ChangedAt     time.Time         `json:"changed_at"`
}
