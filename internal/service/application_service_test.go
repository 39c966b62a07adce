package service

import (
	"context"
	"testing"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationService_Apply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, college := env.newCollege(t, "PSG", "PSG Tech", "B.E. CSE", "MBA")
	student := env.newStudent(t, "meena@example.com")

	app, err := env.applications.Apply(ctx, student, ApplyRequest{CollegeCode: "psg", Course: "b.e. cse", NeedsHostel: true})
	require.NoError(t, err)

	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	assert.Equal(t, model.PaymentStatusPending, app.PaymentStatus)
	assert.Equal(t, "B.E. CSE", app.Course, "course is stored under the college's spelling")
	assert.Equal(t, college.ID, app.CollegeID)
	assert.Equal(t, "PSG Tech", app.CollegeName)
	assert.Equal(t, "Student meena@example.com", app.StudentName)
	assert.True(t, app.NeedsHostel)

	_, err = env.applications.Apply(ctx, student, ApplyRequest{CollegeCode: "PSG", Course: "B.E. CSE"})
	assert.ErrorIs(t, err, model.ErrDuplicateApplication)

	_, err = env.applications.Apply(ctx, student, ApplyRequest{CollegeCode: "PSG", Course: "MBA"})
	assert.NoError(t, err, "another course at the same college is a separate application")
}

func TestApplicationService_ApplyRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, _ := env.newCollege(t, "VIT", "VIT Vellore", "B.Tech CSE")
	student := env.newStudent(t, "ravi@example.com")

	tests := []struct {
		name    string
		student *model.User
		req     ApplyRequest
		want    error
	}{
		{
			name:    "unknown college",
			student: student,
			req:     ApplyRequest{CollegeCode: "NOPE", Course: "B.Tech CSE"},
			want:    model.ErrNotFound,
		},
		{
			name:    "course not offered",
			student: student,
			req:     ApplyRequest{CollegeCode: "VIT", Course: "MBBS"},
			want:    model.ErrCourseNotOffered,
		},
		{
			name:    "college admin cannot apply",
			student: admin,
			req:     ApplyRequest{CollegeCode: "VIT", Course: "B.Tech CSE"},
			want:    model.ErrForbidden,
		},
		{
			name:    "profile missing",
			student: env.newUser(t, model.AccountTypeStudent, "noprofile@example.com"),
			req:     ApplyRequest{CollegeCode: "VIT", Course: "B.Tech CSE"},
			want:    model.ErrProfileIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.applications.Apply(ctx, tt.student, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := env.colleges.SetActive(ctx, admin, false)
	require.NoError(t, err)

	_, err = env.applications.Apply(ctx, student, ApplyRequest{CollegeCode: "VIT", Course: "B.Tech CSE"})
	assert.ErrorIs(t, err, model.ErrCollegeInactive)
}

func TestApplicationService_UpdateStatusLeavesPaymentAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, _ := env.newCollege(t, "SSN", "SSN College", "B.E. EEE")
	student := env.newStudent(t, "divya@example.com")
	app := env.apply(t, student, "SSN", "B.E. EEE")

	updated, err := env.applications.UpdateStatus(ctx, admin, app.ID, model.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusAccepted, updated.Status)
	assert.Equal(t, model.PaymentStatusPending, updated.PaymentStatus)

	stored := env.storedApplication(t, app.ID)
	assert.Equal(t, model.ApplicationStatusAccepted, stored.Status)
	assert.Equal(t, model.PaymentStatusPending, stored.PaymentStatus)
}

func TestApplicationService_UpdateStatusAnyToAnyWithAudit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, _ := env.newCollege(t, "SSN", "SSN College", "B.E. EEE")
	student := env.newStudent(t, "divya@example.com")
	app := env.apply(t, student, "SSN", "B.E. EEE")

	sequence := []model.ApplicationStatus{
		model.ApplicationStatusRejected,
		model.ApplicationStatusPending,
		model.ApplicationStatusWaitlisted,
		model.ApplicationStatusAccepted,
	}
	for _, status := range sequence {
		_, err := env.applications.UpdateStatus(ctx, admin, app.ID, status)
		require.NoError(t, err)
	}

	history, err := env.applications.History(ctx, student, app.ID)
	require.NoError(t, err)
	require.Len(t, history, len(sequence))

	from := model.ApplicationStatusPending
	for i, change := range history {
		assert.Equal(t, from, change.FromStatus)
		assert.Equal(t, sequence[i], change.ToStatus)
		assert.Equal(t, "admin@ssn.edu", change.ActorEmail)
		assert.False(t, change.ChangedAt.IsZero())
		from = change.ToStatus
	}
}

func TestApplicationService_UpdateStatusChecks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, _ := env.newCollege(t, "SSN", "SSN College", "B.E. EEE")
	otherAdmin, _ := env.newCollege(t, "REC", "Rajalakshmi", "B.E. EEE")
	student := env.newStudent(t, "divya@example.com")
	app := env.apply(t, student, "SSN", "B.E. EEE")

	_, err := env.applications.UpdateStatus(ctx, admin, app.ID, "approved")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = env.applications.UpdateStatus(ctx, otherAdmin, app.ID, model.ApplicationStatusRejected)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = env.applications.UpdateStatus(ctx, student, app.ID, model.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = env.applications.History(ctx, otherAdmin, app.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	assert.Empty(t, env.db.changes, "rejected updates leave no audit trail")
	assert.Equal(t, model.ApplicationStatusPending, env.storedApplication(t, app.ID).Status)
}

func TestApplicationService_UpdatePaymentStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, _ := env.newCollege(t, "AU", "Anna University", "M.E. CSE")
	student := env.newStudent(t, "karthik@example.com")
	app := env.apply(t, student, "AU", "M.E. CSE")

	_, err := env.applications.UpdatePaymentStatus(ctx, admin, app.ID, PaymentUpdate{Status: "paid"})
	assert.ErrorIs(t, err, model.ErrInvalidPaymentStatus)

	updated, err := env.applications.UpdatePaymentStatus(ctx, admin, app.ID, PaymentUpdate{
		Status:     model.PaymentStatusCompleted,
		PaymentID:  "pay_123",
		AmountPaid: ptr(750.0),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, updated.Status)

	updated, err = env.applications.UpdatePaymentStatus(ctx, admin, app.ID, PaymentUpdate{Status: model.PaymentStatusRefunded})
	require.NoError(t, err)

	stored := env.storedApplication(t, app.ID)
	assert.Equal(t, model.PaymentStatusRefunded, stored.PaymentStatus)
	assert.Equal(t, "pay_123", stored.PaymentID)
	require.NotNil(t, stored.AmountPaid)
	assert.Equal(t, 750.0, *stored.AmountPaid)
	assert.Equal(t, model.ApplicationStatusPending, stored.Status)
	assert.Empty(t, env.db.changes, "payment updates are not status changes")
}

func TestApplicationService_StudentGroups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, _ := env.newCollege(t, "LOY", "Loyola", "B.Sc", "B.Com", "BBA", "BCA")
	student := env.newStudent(t, "nila@example.com")

	statuses := map[string]model.ApplicationStatus{
		"B.Sc":  model.ApplicationStatusSubmitted,
		"B.Com": model.ApplicationStatusAccepted,
		"BBA":   model.ApplicationStatusRejected,
		"BCA":   model.ApplicationStatusWaitlisted,
	}
	for _, course := range []string{"B.Sc", "B.Com", "BBA", "BCA"} {
		app := env.apply(t, student, "LOY", course)
		_, err := env.applications.UpdateStatus(ctx, admin, app.ID, statuses[course])
		require.NoError(t, err)
	}

	groups, err := env.applications.StudentApplications(ctx, student)
	require.NoError(t, err)

	courses := func(apps []*model.Application) []string {
		out := make([]string, 0, len(apps))
		for _, a := range apps {
			out = append(out, a.Course)
		}
		return out
	}

	assert.Equal(t, []string{"B.Sc"}, courses(groups.Pending))
	assert.Equal(t, []string{"B.Com"}, courses(groups.Accepted))
	assert.Equal(t, []string{"BCA", "BBA"}, courses(groups.Rejected), "newest first")

	inbox, err := env.applications.CollegeInbox(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, inbox.Pending, "submitted is neither pending nor reviewed on the college side")
	assert.Len(t, inbox.Reviewed, 3)
}

func TestApplicationService_CollegeDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, college := env.newCollege(t, "KEC", "Kongu Engineering", "B.E. Civil", "B.E. Mech")
	s1 := env.newStudent(t, "a@example.com")
	s2 := env.newStudent(t, "b@example.com")

	app1 := env.apply(t, s1, "KEC", "B.E. Civil")
	env.apply(t, s2, "KEC", "B.E. Mech")
	env.apply(t, s2, "KEC", "B.E. Civil")

	_, err := env.applications.UpdateStatus(ctx, admin, app1.ID, model.ApplicationStatusUnderReview)
	require.NoError(t, err)
	_, err = env.applications.UpdatePaymentStatus(ctx, admin, app1.ID, PaymentUpdate{Status: model.PaymentStatusCompleted, AmountPaid: ptr(500.0)})
	require.NoError(t, err)

	now := time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)
	env.newSlot(t, admin, now.AddDate(0, 0, -1), 10)
	env.newSlot(t, admin, now, 10)
	env.newSlot(t, admin, now.AddDate(0, 0, 5), 10)
	hidden := env.newSlot(t, admin, now.AddDate(0, 0, 6), 10)
	_, err = env.slots.SetActive(ctx, admin, hidden.ID, false)
	require.NoError(t, err)

	d, err := env.applications.CollegeDashboard(ctx, admin, now)
	require.NoError(t, err)

	assert.Equal(t, college.ID, d.College.ID)
	assert.Equal(t, 3, d.TotalApplications)
	assert.Equal(t, 2, d.PendingApplications)
	assert.Equal(t, 500.0, d.Revenue)
	assert.Equal(t, 2, d.UpcomingSlots, "today counts, past and inactive slots do not")
	assert.Len(t, d.Recent, 3)

	student := env.newStudent(t, "c@example.com")
	_, err = env.applications.CollegeDashboard(ctx, student, now)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestApplicationService_SetResultDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, _ := env.newCollege(t, "GCT", "Government College of Technology", "B.E. Production")
	student := env.newStudent(t, "g@example.com")
	app := env.apply(t, student, "GCT", "B.E. Production")

	date := time.Date(2027, 5, 20, 0, 0, 0, 0, time.UTC)
	_, err := env.applications.SetResultDate(ctx, admin, app.ID, date)
	require.NoError(t, err)

	got, err := env.applications.Get(ctx, student, app.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ResultDate)
	assert.True(t, got.ResultDate.Equal(date))
}
