package formatting

import (
	"testing"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{1500, "₹1,500"},
		{150000, "₹1,50,000"},
		{12345678, "₹1,23,45,678"},
		{999.6, "₹1,000"},
		{-2500, "₹-2,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRupees(tt.amount))
	}
}

func TestFormatFeesRange(t *testing.T) {
	assert.Equal(t, "", FormatFeesRange(nil, nil))
	assert.Equal(t, "₹50,000 - ₹1,20,000", FormatFeesRange(ptr(50000.0), ptr(120000.0)))
	assert.Equal(t, "from ₹50,000", FormatFeesRange(ptr(50000.0), nil))
	assert.Equal(t, "up to ₹90,000", FormatFeesRange(nil, ptr(90000.0)))
}

func TestStatusDisplays(t *testing.T) {
	for _, s := range model.ApplicationStatuses {
		assert.NotEqual(t, "Unknown", GetApplicationStatusDisplay(s).Text, s)
	}
	for _, s := range model.PaymentStatuses {
		assert.NotEqual(t, "Unknown", GetPaymentStatusDisplay(s).Text, s)
	}
	assert.Equal(t, "❓ Unknown", GetApplicationStatusDisplay("archived").String())
}

func TestCards_EscapeUserText(t *testing.T) {
	c := &model.College{
		Name:          "A&B <College>",
		Code:          "AB",
		City:          "Chennai",
		State:         "Tamil Nadu",
		Accreditation: model.AccreditationNAACA,
		IsActive:      true,
	}

	card := CollegeCard(c)
	assert.Contains(t, card, "A&amp;B &lt;College&gt;")
	assert.NotContains(t, card, "<College>")
	assert.NotContains(t, card, "Not accepting")

	c.IsActive = false
	assert.Contains(t, CollegeCard(c), "Not accepting applications")
}

func TestStudentApplicationCard(t *testing.T) {
	exam := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)
	app := &model.Application{
		ID:            uuid.New(),
		CollegeName:   "Loyola College",
		Course:        "B.Com",
		Status:        model.ApplicationStatusAccepted,
		PaymentStatus: model.PaymentStatusPending,
		ExamDate:      &exam,
		ExamTime:      "10:00 - 12:00",
	}

	card := StudentApplicationCard(app)
	assert.Contains(t, card, "✅ Accepted")
	assert.Contains(t, card, "Payment pending")
	assert.Contains(t, card, "Sat, 12 Apr 2025, 10:00 - 12:00")
	assert.Contains(t, card, app.ID.String())
}

func TestSlotLine(t *testing.T) {
	slot := &model.ExamSlot{
		ID:          uuid.New(),
		Date:        time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "12:00",
		Venue:       "Block A",
		TotalSeats:  30,
		BookedSeats: 30,
	}

	line := SlotLine(slot)
	assert.Contains(t, line, "Full")
	assert.Contains(t, line, "inactive")
}

func TestDashboardText(t *testing.T) {
	d := &service.Dashboard{
		College:             &model.College{Name: "MIT Campus", IsActive: true},
		TotalApplications:   3,
		PendingApplications: 2,
		Revenue:             1500,
		UpcomingSlots:       1,
		Recent: []*model.Application{
			{StudentName: "Priya", Course: "B.Tech", Status: model.ApplicationStatusPending},
		},
	}

	text := DashboardText(d)
	assert.Contains(t, text, "Applications: 3")
	assert.Contains(t, text, "Pending review: 2")
	assert.Contains(t, text, "₹1,500")
	assert.Contains(t, text, "Priya")
}
