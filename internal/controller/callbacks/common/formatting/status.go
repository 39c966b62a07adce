package formatting

import "github.com/AngelinAnto/OneAdmit/internal/model"

// StatusDisplay is the emoji and text shown for a status
type StatusDisplay struct {
	Emoji string
	Text  string
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

func GetApplicationStatusDisplay(status model.ApplicationStatus) StatusDisplay {
	displays := map[model.ApplicationStatus]StatusDisplay{
		model.ApplicationStatusPending:     {"⏳", "Pending"},
		model.ApplicationStatusSubmitted:   {"📨", "Submitted"},
		model.ApplicationStatusUnderReview: {"🔍", "Under review"},
		model.ApplicationStatusAccepted:    {"✅", "Accepted"},
		model.ApplicationStatusRejected:    {"❌", "Rejected"},
		model.ApplicationStatusWaitlisted:  {"🕓", "Waitlisted"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}

func GetPaymentStatusDisplay(status model.PaymentStatus) StatusDisplay {
	displays := map[model.PaymentStatus]StatusDisplay{
		model.PaymentStatusPending:   {"⌛", "Payment pending"},
		model.PaymentStatusCompleted: {"💰", "Paid"},
		model.PaymentStatusFailed:    {"⚠️", "Payment failed"},
		model.PaymentStatusRefunded:  {"↩️", "Refunded"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}

func GetAnnouncementTypeDisplay(t model.AnnouncementType) StatusDisplay {
	displays := map[model.AnnouncementType]StatusDisplay{
		model.AnnouncementTypeGeneral:   {"📢", "General"},
		model.AnnouncementTypeDeadline:  {"⏰", "Deadline"},
		model.AnnouncementTypeExam:      {"📝", "Exam"},
		model.AnnouncementTypeResult:    {"🏆", "Result"},
		model.AnnouncementTypeImportant: {"❗", "Important"},
	}

	if display, ok := displays[t]; ok {
		return display
	}

	return StatusDisplay{"📢", string(t)}
}
