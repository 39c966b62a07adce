package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/cache"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApplicationService struct {
	appRepo     ApplicationStore
	collegeRepo CollegeStore
	profileRepo StudentProfileStore
	slotRepo    ExamSlotStore
	tx          Transactor
	cache       *cache.QueryCache
	logger      *zap.Logger
}

func NewApplicationService(
	appRepo ApplicationStore,
	collegeRepo CollegeStore,
	profileRepo StudentProfileStore,
	slotRepo ExamSlotStore,
	tx Transactor,
	queryCache *cache.QueryCache,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		appRepo:     appRepo,
		collegeRepo: collegeRepo,
		profileRepo: profileRepo,
		slotRepo:    slotRepo,
		tx:          tx,
		cache:       queryCache,
		logger:      logger,
	}
}

// ApplyRequest is a student's application to one course of a college
type ApplyRequest struct {
	CollegeCode      string
	Course           string
	NeedsHostel      bool
	NeedsScholarship bool
}

// Apply submits a new application for the student
func (s *ApplicationService) Apply(ctx context.Context, student *model.User, req ApplyRequest) (*model.Application, error) {
	if !student.IsStudent() {
		return nil, model.ErrForbidden
	}
	if student.Email == "" {
		return nil, model.ErrEmailRequired
	}

	profile, err := s.profileRepo.GetByUserID(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("get student profile: %w", err)
	}
	if profile == nil || !profile.IsComplete() {
		return nil, model.ErrProfileIncomplete
	}

	college, err := s.collegeRepo.GetByCode(ctx, req.CollegeCode)
	if err != nil {
		return nil, fmt.Errorf("get college: %w", err)
	}
	if college == nil {
		return nil, model.ErrNotFound
	}
	if !college.IsActive {
		return nil, model.ErrCollegeInactive
	}

	course, ok := college.CourseNamed(req.Course)
	if !ok {
		return nil, model.ErrCourseNotOffered
	}

	app := model.NewApplication(profile, college, course, req.NeedsHostel, req.NeedsScholarship)
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.invalidate(ctx, app)

	s.logger.Info("Application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("college_id", college.ID.String()),
		zap.String("course", course),
		zap.String("student_email", student.Email),
	)

	return app, nil
}

// MyApplications returns the student's applications, newest first
func (s *ApplicationService) MyApplications(ctx context.Context, student *model.User) ([]*model.Application, error) {
	if !student.IsStudent() {
		return nil, nil
	}

	return cache.Fetch(ctx, s.cache, cache.KeyMyApplications(student.ID), func(ctx context.Context) ([]*model.Application, error) {
		return s.appRepo.GetByStudentUserID(ctx, student.ID)
	})
}

// StudentApplications groups the student's applications into tabs
func (s *ApplicationService) StudentApplications(ctx context.Context, student *model.User) (model.StudentGroups, error) {
	apps, err := s.MyApplications(ctx, student)
	if err != nil {
		return model.StudentGroups{}, fmt.Errorf("list applications: %w", err)
	}
	return model.GroupForStudent(apps), nil
}

// CollegeApplications returns every application to the admin's college, newest first
func (s *ApplicationService) CollegeApplications(ctx context.Context, admin *model.User) ([]*model.Application, error) {
	if !admin.IsCollegeAdmin() {
		return nil, model.ErrForbidden
	}
	if admin.CollegeID == nil {
		return nil, model.ErrNoCollege
	}

	collegeID := *admin.CollegeID
	return cache.Fetch(ctx, s.cache, cache.KeyCollegeApplications(collegeID), func(ctx context.Context) ([]*model.Application, error) {
		return s.appRepo.GetByCollegeID(ctx, collegeID)
	})
}

// CollegeInbox groups the college's applications into pending and reviewed
func (s *ApplicationService) CollegeInbox(ctx context.Context, admin *model.User) (model.CollegeGroups, error) {
	apps, err := s.CollegeApplications(ctx, admin)
	if err != nil {
		return model.CollegeGroups{}, err
	}
	return model.GroupForCollege(apps), nil
}

// Get returns an application visible to the user: the owning student or the college admin
func (s *ApplicationService) Get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if app == nil {
		return nil, model.ErrNotFound
	}
	if !canView(user, app) {
		return nil, model.ErrForbidden
	}
	return app, nil
}

// UpdateStatus sets any valid status and records the change in the audit log.
// Payment status is not touched.
func (s *ApplicationService) UpdateStatus(ctx context.Context, admin *model.User, id uuid.UUID, status model.ApplicationStatus) (*model.Application, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	app, err := s.managedApplication(ctx, admin, id)
	if err != nil {
		return nil, err
	}

	change := &model.ApplicationStatusChange{
		ApplicationID: app.ID,
		FromStatus:    app.Status,
		ToStatus:      status,
		ActorEmail:    admin.Email,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.appRepo.UpdateStatus(ctx, app.ID, status); err != nil {
			return err
		}
		return s.appRepo.RecordStatusChange(ctx, change)
	})
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}

	app.Status = status
	s.invalidate(ctx, app)

	s.logger.Info("Application status updated",
		zap.String("application_id", app.ID.String()),
		zap.String("from", string(change.FromStatus)),
		zap.String("to", string(status)),
		zap.String("actor", admin.Email),
	)

	return app, nil
}

// PaymentUpdate carries a payment status change. Empty PaymentID and nil
// AmountPaid keep the stored values.
type PaymentUpdate struct {
	Status     model.PaymentStatus
	PaymentID  string
	AmountPaid *float64
}

// UpdatePaymentStatus changes only the payment fields of an application
func (s *ApplicationService) UpdatePaymentStatus(ctx context.Context, admin *model.User, id uuid.UUID, upd PaymentUpdate) (*model.Application, error) {
	if !upd.Status.Valid() {
		return nil, model.ErrInvalidPaymentStatus
	}

	app, err := s.managedApplication(ctx, admin, id)
	if err != nil {
		return nil, err
	}

	paymentID := app.PaymentID
	if upd.PaymentID != "" {
		paymentID = upd.PaymentID
	}
	amountPaid := app.AmountPaid
	if upd.AmountPaid != nil {
		amountPaid = upd.AmountPaid
	}

	if err := s.appRepo.UpdatePayment(ctx, app.ID, upd.Status, paymentID, amountPaid); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	app.PaymentStatus = upd.Status
	app.PaymentID = paymentID
	app.AmountPaid = amountPaid
	s.invalidate(ctx, app)

	s.logger.Info("Payment status updated",
		zap.String("application_id", app.ID.String()),
		zap.String("payment_status", string(upd.Status)),
	)

	return app, nil
}

// SetResultDate announces when the result of an application will be out
func (s *ApplicationService) SetResultDate(ctx context.Context, admin *model.User, id uuid.UUID, date time.Time) (*model.Application, error) {
	app, err := s.managedApplication(ctx, admin, id)
	if err != nil {
		return nil, err
	}

	if err := s.appRepo.SetResultDate(ctx, app.ID, &date); err != nil {
		return nil, fmt.Errorf("set result date: %w", err)
	}

	app.ResultDate = &date
	s.invalidate(ctx, app)
	return app, nil
}

// History returns the status audit log of an application, oldest first
func (s *ApplicationService) History(ctx context.Context, user *model.User, id uuid.UUID) ([]*model.ApplicationStatusChange, error) {
	app, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	changes, err := s.appRepo.GetStatusChanges(ctx, app.ID)
	if err != nil {
		return nil, fmt.Errorf("get status history: %w", err)
	}
	return changes, nil
}

// Dashboard is the summary shown on the college dashboard
type Dashboard struct {
	College             *model.College
	TotalApplications   int
	PendingApplications int
	Revenue             float64
	UpcomingSlots       int
	Recent              []*model.Application
}

const dashboardRecent = 5

// CollegeDashboard summarises applications, revenue and upcoming exam slots
func (s *ApplicationService) CollegeDashboard(ctx context.Context, admin *model.User, now time.Time) (*Dashboard, error) {
	apps, err := s.CollegeApplications(ctx, admin)
	if err != nil {
		return nil, err
	}

	college, err := s.collegeRepo.GetByID(ctx, *admin.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("get college: %w", err)
	}
	if college == nil {
		return nil, model.ErrNoCollege
	}

	slots, err := cache.Fetch(ctx, s.cache, cache.KeyCollegeExamSlots(college.ID), func(ctx context.Context) ([]*model.ExamSlot, error) {
		return s.slotRepo.GetByCollegeID(ctx, college.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("list exam slots: %w", err)
	}

	d := &Dashboard{
		College:           college,
		TotalApplications: len(apps),
	}
	for _, app := range apps {
		if app.IsCollegePending() {
			d.PendingApplications++
		}
		if app.AmountPaid != nil {
			d.Revenue += *app.AmountPaid
		}
	}
	for _, slot := range slots {
		if slot.IsUpcoming(now) {
			d.UpcomingSlots++
		}
	}

	d.Recent = apps
	if len(d.Recent) > dashboardRecent {
		d.Recent = d.Recent[:dashboardRecent]
	}

	return d, nil
}

// managedApplication loads an application the admin's college owns
func (s *ApplicationService) managedApplication(ctx context.Context, admin *model.User, id uuid.UUID) (*model.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if app == nil {
		return nil, model.ErrNotFound
	}
	if !admin.ManagesCollege(app.CollegeID) {
		return nil, model.ErrForbidden
	}
	return app, nil
}

func (s *ApplicationService) invalidate(ctx context.Context, app *model.Application) {
	s.cache.Invalidate(ctx,
		cache.KeyMyApplications(app.StudentUserID),
		cache.KeyCollegeApplications(app.CollegeID),
	)
}

func canView(user *model.User, app *model.Application) bool {
	if user.ManagesCollege(app.CollegeID) {
		return true
	}
	return app.OwnedBy(user)
}
