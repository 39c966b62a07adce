package handlers

import (
	"testing"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/filter"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/colleges", ""},
		{"/colleges   course=B.Com ", "course=B.Com"},
		{"/apply@OnlyAdmitBot LOY B.Com", "LOY B.Com"},
		{"Priya Sharma", "Priya Sharma"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, commandArgs(tt.text), tt.text)
	}
}

func TestParseCollegeQuery(t *testing.T) {
	tests := []struct {
		name string
		args string
		want filter.FilterSet
	}{
		{
			name: "empty",
			args: "",
			want: filter.FilterSet{},
		},
		{
			name: "all predicates",
			args: "course=B.Com; course=MBA; city=Chennai; hostel; scholarship; search=loyola",
			want: filter.FilterSet{
				Search:         "loyola",
				Courses:        []string{"B.Com", "MBA"},
				Cities:         []string{"Chennai"},
				HasHostel:      true,
				HasScholarship: true,
			},
		},
		{
			name: "free text is a search",
			args: "madras christian",
			want: filter.FilterSet{Search: "madras christian"},
		},
		{
			name: "keys are case insensitive",
			args: "City=Coimbatore;HOSTEL",
			want: filter.FilterSet{Cities: []string{"Coimbatore"}, HasHostel: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCollegeQuery(tt.args))
		})
	}
}

func TestParseApply(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    service.ApplyRequest
		wantErr bool
	}{
		{
			name: "simple",
			args: "LOY B.Com",
			want: service.ApplyRequest{CollegeCode: "LOY", Course: "B.Com"},
		},
		{
			name: "course with spaces and flags",
			args: "MIT B.Tech Computer Science hostel scholarship",
			want: service.ApplyRequest{CollegeCode: "MIT", Course: "B.Tech Computer Science", NeedsHostel: true, NeedsScholarship: true},
		},
		{
			name: "flag word alone is the course",
			args: "HMC Hostel",
			want: service.ApplyRequest{CollegeCode: "HMC", Course: "Hostel"},
		},
		{
			name:    "missing course",
			args:    "LOY",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseApply(tt.args)
			if tt.wantErr {
				assert.ErrorIs(t, err, errUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-03-10", "10.03.2025", "10/03/2025"} {
		got, err := parseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := parseDate("March 10")
	assert.ErrorIs(t, err, errUsage)
}

func TestParseSetPayment(t *testing.T) {
	id := uuid.New()

	gotID, upd, err := parseSetPayment(id.String() + " completed pay_123 ₹1,500")
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, model.PaymentStatusCompleted, upd.Status)
	assert.Equal(t, "pay_123", upd.PaymentID)
	require.NotNil(t, upd.AmountPaid)
	assert.Equal(t, 1500.0, *upd.AmountPaid)

	_, upd, err = parseSetPayment(id.String() + " REFUNDED")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRefunded, upd.Status)
	assert.Nil(t, upd.AmountPaid)

	_, _, err = parseSetPayment("not-an-id completed")
	assert.ErrorIs(t, err, errUsage)
}

func TestParseAddSlot(t *testing.T) {
	form, err := parseAddSlot("2025-03-10 10:00 12:00 30 Main Block, Hall 2")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), form.Date)
	assert.Equal(t, "10:00", form.StartTime)
	assert.Equal(t, "12:00", form.EndTime)
	assert.Equal(t, 30, form.TotalSeats)
	assert.Equal(t, "Main Block, Hall 2", form.Venue)

	_, err = parseAddSlot("2025-03-10 10:00 12:00 thirty Hall")
	assert.ErrorIs(t, err, errUsage)

	_, err = parseAddSlot("2025-03-10 10:00")
	assert.ErrorIs(t, err, errUsage)
}

func TestParseAnnounce(t *testing.T) {
	form, err := parseAnnounce("Deadline Last date extended | Apply before 30 April")
	require.NoError(t, err)
	assert.Equal(t, model.AnnouncementTypeDeadline, form.Type)
	assert.Equal(t, "Last date extended", form.Title)
	assert.Equal(t, "Apply before 30 April", form.Content)

	_, err = parseAnnounce("exam no separator")
	assert.ErrorIs(t, err, errUsage)
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, model.ApplicationStatusUnderReview, parseStatus("Under Review"))
	assert.Equal(t, model.ApplicationStatusAccepted, parseStatus("accepted"))
}

func TestApplyCollegeField(t *testing.T) {
	var form model.CollegeForm

	require.NoError(t, applyCollegeField(&form, "courses", "B.Com, MBA, ,BBA"))
	assert.Equal(t, []string{"B.Com", "MBA", "BBA"}, form.Courses)

	require.NoError(t, applyCollegeField(&form, "fees", "50,000-1,20,000"))
	require.NotNil(t, form.AnnualFeesMin)
	require.NotNil(t, form.AnnualFeesMax)
	assert.Equal(t, 50000.0, *form.AnnualFeesMin)
	assert.Equal(t, 120000.0, *form.AnnualFeesMax)

	require.NoError(t, applyCollegeField(&form, "fees", "-90000"))
	assert.Nil(t, form.AnnualFeesMin)
	assert.Equal(t, 90000.0, *form.AnnualFeesMax)

	require.NoError(t, applyCollegeField(&form, "Hostel", "yes"))
	assert.True(t, form.HasHostel)

	require.NoError(t, applyCollegeField(&form, "accreditation", "naac a++"))
	assert.Equal(t, model.AccreditationNAACAPlusPlus, form.Accreditation)

	require.NoError(t, applyCollegeField(&form, "ranking", "42"))
	assert.Equal(t, 42, *form.Ranking)
	require.NoError(t, applyCollegeField(&form, "ranking", ""))
	assert.Nil(t, form.Ranking)

	assert.ErrorIs(t, applyCollegeField(&form, "hostel", "maybe"), errUsage)
	assert.ErrorIs(t, applyCollegeField(&form, "motto", "x"), errUsage)
}

func TestSplitListAndSkip(t *testing.T) {
	assert.Nil(t, splitList(" , "))
	assert.True(t, isSkip("-"))
	assert.True(t, isSkip("Skip"))
	assert.False(t, isSkip("Chennai"))
}
