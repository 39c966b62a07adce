package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/validation"
)

// Errors of the chat layer itself
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNotAStudent   = errors.New("user is not a student")
	ErrNotAnAdmin    = errors.New("user is not a college admin")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// TransientMessage is shown when the store failed and a retry may help
const TransientMessage = "⚠️ Something went wrong on our side. Please try again in a moment."

// InternalMessage is shown for broken invariants, retrying will not help
const InternalMessage = "⚠️ The seat count of this exam slot is inconsistent. Please contact the college."

var userMessages = []struct {
	err  error
	text string
}{
	{ErrUserNotFound, "❌ You are not registered yet. Send /start"},
	{ErrNotAStudent, "❌ This is for student accounts. Switch with /switch"},
	{ErrNotAnAdmin, "❌ This is for college accounts. Switch with /switch"},
	{ErrNoMessage, "❌ This message can no longer be updated"},
	{ErrInvalidFormat, "❌ Invalid request"},

	{model.ErrNotFound, "❌ Not found. Check the ID and try again."},
	{model.ErrForbidden, "🚫 You don't have access to this."},
	{model.ErrCapacityExceeded, "😔 This exam slot is full. Please pick another one."},
	{model.ErrInvalidState, InternalMessage},
	{model.ErrInvalidSeats, "❌ An exam slot needs at least 1 seat."},
	{model.ErrSlotHasBookings, "❌ Students have booked this slot. Deactivate it instead of deleting."},
	{model.ErrSlotInactive, "❌ This exam slot is not open for booking."},
	{model.ErrSlotMismatch, "❌ This exam slot belongs to another college."},
	{model.ErrNoExamSlot, "❌ No exam slot is booked for this application."},
	{model.ErrInvalidStatus, "❌ Unknown application status."},
	{model.ErrInvalidPaymentStatus, "❌ Unknown payment status."},
	{model.ErrDuplicateApplication, "❌ You have already applied to this college for this course."},
	{model.ErrProfileIncomplete, "❌ Complete your profile first: /profile"},
	{model.ErrCollegeInactive, "❌ This college is not accepting applications right now."},
	{model.ErrCourseNotOffered, "❌ This college does not offer that course."},
	{model.ErrInvalidAccountType, "❌ Unknown account type."},
	{model.ErrEmailRequired, "❌ Set your email first: /email you@example.com"},
	{model.ErrEmailTaken, "❌ This email belongs to another account."},
	{model.ErrCollegeBound, "❌ Your account already manages a college. Edit it with /editcollege"},
	{model.ErrNoCollege, "❌ Create your college profile first: /newcollege"},
	{model.ErrCodeTaken, "❌ This college code is already taken."},
}

// ErrorMessage turns an error into the text shown to the user.
// Validation errors list every failing field.
func ErrorMessage(err error) string {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		return FieldErrorsMessage(verr)
	}

	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.text
		}
	}

	return TransientMessage
}

// IsTransient checks if err is not a known domain error
func IsTransient(err error) bool {
	return ErrorMessage(err) == TransientMessage
}

// IsInternal checks if err should be logged as an error rather than a warning
func IsInternal(err error) bool {
	return errors.Is(err, model.ErrInvalidState) || IsTransient(err)
}

func FieldErrorsMessage(verr *validation.ValidationError) string {
	var sb strings.Builder
	sb.WriteString("❌ Please fix the following:\n")
	for _, f := range verr.Fields {
		fmt.Fprintf(&sb, "• %s: %s\n", f.Field, f.Error)
	}
	return sb.String()
}
