package model

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("no permission")

	// Exam slot seat accounting
	ErrCapacityExceeded = errors.New("exam slot is full")
	ErrInvalidState     = errors.New("exam slot has no booked seats to release")
	ErrInvalidSeats     = errors.New("total seats must be at least 1")
	ErrSlotHasBookings  = errors.New("exam slot has booked seats")
	ErrSlotInactive     = errors.New("exam slot is not active")
	ErrSlotMismatch     = errors.New("exam slot belongs to another college")
	ErrNoExamSlot       = errors.New("application has no exam slot booked")

	// Applications
	ErrInvalidStatus        = errors.New("invalid application status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrDuplicateApplication = errors.New("already applied to this college for this course")
	ErrProfileIncomplete    = errors.New("student profile is incomplete")
	ErrCollegeInactive      = errors.New("college is not accepting applications")
	ErrCourseNotOffered     = errors.New("course is not offered by this college")

	// Accounts and profiles
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrEmailRequired      = errors.New("email is not set")
	ErrEmailTaken         = errors.New("email is used by another account")
	ErrCollegeBound       = errors.New("account already manages a college")
	ErrNoCollege          = errors.New("account has no college profile")
	ErrCodeTaken          = errors.New("college code is already taken")
)
