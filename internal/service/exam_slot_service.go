package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/cache"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExamSlotService struct {
	slotRepo    ExamSlotStore
	appRepo     ApplicationStore
	collegeRepo CollegeStore
	tx          Transactor
	cache       *cache.QueryCache
	deleteGuard bool
	logger      *zap.Logger
}

// NewExamSlotService creates the service. With deleteGuard set, slots that
// still have booked seats cannot be deleted.
func NewExamSlotService(
	slotRepo ExamSlotStore,
	appRepo ApplicationStore,
	collegeRepo CollegeStore,
	tx Transactor,
	queryCache *cache.QueryCache,
	deleteGuard bool,
	logger *zap.Logger,
) *ExamSlotService {
	return &ExamSlotService{
		slotRepo:    slotRepo,
		appRepo:     appRepo,
		collegeRepo: collegeRepo,
		tx:          tx,
		cache:       queryCache,
		deleteGuard: deleteGuard,
		logger:      logger,
	}
}

// Create adds an empty active slot to the admin's college
func (s *ExamSlotService) Create(ctx context.Context, admin *model.User, form model.ExamSlotForm) (*model.ExamSlot, error) {
	if !admin.IsCollegeAdmin() {
		return nil, model.ErrForbidden
	}
	if admin.CollegeID == nil {
		return nil, model.ErrNoCollege
	}

	slot, err := model.NewExamSlot(form.TotalSeats)
	if err != nil {
		return nil, err
	}
	if err := validation.Check(form); err != nil {
		return nil, err
	}

	college, err := s.collegeRepo.GetByID(ctx, *admin.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("get college: %w", err)
	}
	if college == nil {
		return nil, model.ErrNoCollege
	}

	slot.CollegeID = college.ID
	slot.CollegeName = college.Name
	slot.Date = dateOnly(form.Date)
	slot.StartTime = form.StartTime
	slot.EndTime = form.EndTime
	slot.Venue = form.Venue

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create exam slot: %w", err)
	}

	s.cache.Invalidate(ctx, cache.KeyCollegeExamSlots(college.ID))

	s.logger.Info("Exam slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("college_id", college.ID.String()),
		zap.Time("date", slot.Date),
		zap.Int("total_seats", slot.TotalSeats),
	)

	return slot, nil
}

// ListForCollege returns all slots of a college, soonest first
func (s *ExamSlotService) ListForCollege(ctx context.Context, collegeID uuid.UUID) ([]*model.ExamSlot, error) {
	return cache.Fetch(ctx, s.cache, cache.KeyCollegeExamSlots(collegeID), func(ctx context.Context) ([]*model.ExamSlot, error) {
		return s.slotRepo.GetByCollegeID(ctx, collegeID)
	})
}

// Upcoming returns the active slots of a college from today on
func (s *ExamSlotService) Upcoming(ctx context.Context, collegeID uuid.UUID, now time.Time) ([]*model.ExamSlot, error) {
	slots, err := s.ListForCollege(ctx, collegeID)
	if err != nil {
		return nil, err
	}

	upcoming := make([]*model.ExamSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsUpcoming(now) {
			upcoming = append(upcoming, slot)
		}
	}
	return upcoming, nil
}

// MySlots returns the slots of the admin's college
func (s *ExamSlotService) MySlots(ctx context.Context, admin *model.User) ([]*model.ExamSlot, error) {
	if !admin.IsCollegeAdmin() {
		return nil, model.ErrForbidden
	}
	if admin.CollegeID == nil {
		return nil, model.ErrNoCollege
	}
	return s.ListForCollege(ctx, *admin.CollegeID)
}

// BookForApplication reserves a seat for the student's application. A seat
// held in another slot is released in the same transaction.
func (s *ExamSlotService) BookForApplication(ctx context.Context, student *model.User, applicationID, slotID uuid.UUID) (*model.Application, error) {
	app, err := s.ownApplication(ctx, student, applicationID)
	if err != nil {
		return nil, err
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get exam slot: %w", err)
	}
	if slot == nil {
		return nil, model.ErrNotFound
	}
	if slot.CollegeID != app.CollegeID {
		return nil, model.ErrSlotMismatch
	}
	if !slot.IsActive {
		return nil, model.ErrSlotInactive
	}
	if app.ExamSlotID != nil && *app.ExamSlotID == slot.ID {
		return app, nil
	}

	// Advisory check on the fetched copy; the store update below decides
	if err := slot.BookSeat(); err != nil {
		return nil, err
	}

	previous := app.ExamSlotID
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if previous != nil {
			if err := s.releaseSeat(ctx, *previous); err != nil {
				return err
			}
		}
		if err := s.slotRepo.IncrementBooked(ctx, slot.ID); err != nil {
			return err
		}
		return s.appRepo.BindExamSlot(ctx, app.ID, slot)
	})
	if err != nil {
		return nil, fmt.Errorf("book exam slot: %w", err)
	}

	date := slot.Date
	app.ExamSlotID = &slot.ID
	app.ExamDate = &date
	app.ExamTime = slot.ExamTime()

	keys := []string{
		cache.KeyCollegeExamSlots(app.CollegeID),
		cache.KeyMyApplications(app.StudentUserID),
		cache.KeyCollegeApplications(app.CollegeID),
	}
	s.cache.Invalidate(ctx, keys...)

	s.logger.Info("Exam slot booked",
		zap.String("application_id", app.ID.String()),
		zap.String("slot_id", slot.ID.String()),
		zap.Bool("rebooked", previous != nil),
	)

	return app, nil
}

// CancelBooking gives the application's seat back and clears the binding
func (s *ExamSlotService) CancelBooking(ctx context.Context, student *model.User, applicationID uuid.UUID) (*model.Application, error) {
	app, err := s.ownApplication(ctx, student, applicationID)
	if err != nil {
		return nil, err
	}
	if !app.HasExamSlot() {
		return nil, model.ErrNoExamSlot
	}

	slotID := *app.ExamSlotID
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.releaseSeat(ctx, slotID); err != nil {
			return err
		}
		return s.appRepo.UnbindExamSlot(ctx, app.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("cancel exam booking: %w", err)
	}

	app.ExamSlotID = nil
	app.ExamDate = nil
	app.ExamTime = ""

	s.cache.Invalidate(ctx,
		cache.KeyCollegeExamSlots(app.CollegeID),
		cache.KeyMyApplications(app.StudentUserID),
		cache.KeyCollegeApplications(app.CollegeID),
	)

	s.logger.Info("Exam booking cancelled",
		zap.String("application_id", app.ID.String()),
		zap.String("slot_id", slotID.String()),
	)

	return app, nil
}

// SetActive shows or hides a slot from students
func (s *ExamSlotService) SetActive(ctx context.Context, admin *model.User, slotID uuid.UUID, active bool) (*model.ExamSlot, error) {
	slot, err := s.managedSlot(ctx, admin, slotID)
	if err != nil {
		return nil, err
	}

	if err := s.slotRepo.SetActive(ctx, slot.ID, active); err != nil {
		return nil, fmt.Errorf("set exam slot active: %w", err)
	}
	slot.IsActive = active

	s.cache.Invalidate(ctx, cache.KeyCollegeExamSlots(slot.CollegeID))
	return slot, nil
}

// DeleteSlot removes a slot. Applications bound to it keep their copied
// exam date and time.
func (s *ExamSlotService) DeleteSlot(ctx context.Context, admin *model.User, slotID uuid.UUID) error {
	slot, err := s.managedSlot(ctx, admin, slotID)
	if err != nil {
		return err
	}

	if slot.BookedSeats > 0 {
		if s.deleteGuard {
			return model.ErrSlotHasBookings
		}
		s.logger.Warn("Deleting exam slot with booked seats",
			zap.String("slot_id", slot.ID.String()),
			zap.Int("booked_seats", slot.BookedSeats),
		)
	}

	if err := s.slotRepo.Delete(ctx, slot.ID); err != nil {
		return fmt.Errorf("delete exam slot: %w", err)
	}

	s.cache.Invalidate(ctx, cache.KeyCollegeExamSlots(slot.CollegeID))

	s.logger.Info("Exam slot deleted", zap.String("slot_id", slot.ID.String()))
	return nil
}

// Attendees lists the applications booked into a slot
func (s *ExamSlotService) Attendees(ctx context.Context, admin *model.User, slotID uuid.UUID) ([]*model.Application, error) {
	slot, err := s.managedSlot(ctx, admin, slotID)
	if err != nil {
		return nil, err
	}

	apps, err := s.appRepo.GetByExamSlotID(ctx, slot.ID)
	if err != nil {
		return nil, fmt.Errorf("list slot attendees: %w", err)
	}
	return apps, nil
}

// releaseSeat decrements a slot that may have been deleted meanwhile
func (s *ExamSlotService) releaseSeat(ctx context.Context, slotID uuid.UUID) error {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		s.logger.Warn("Booked exam slot no longer exists", zap.String("slot_id", slotID.String()))
		return nil
	}
	return s.slotRepo.DecrementBooked(ctx, slotID)
}

func (s *ExamSlotService) ownApplication(ctx context.Context, student *model.User, id uuid.UUID) (*model.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if app == nil {
		return nil, model.ErrNotFound
	}
	if !app.OwnedBy(student) {
		return nil, model.ErrForbidden
	}
	return app, nil
}

func (s *ExamSlotService) managedSlot(ctx context.Context, admin *model.User, id uuid.UUID) (*model.ExamSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get exam slot: %w", err)
	}
	if slot == nil {
		return nil, model.ErrNotFound
	}
	if !admin.ManagesCollege(slot.CollegeID) {
		return nil, model.ErrForbidden
	}
	return slot, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
