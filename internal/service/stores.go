package service

import (
	"context"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/repository"
	"github.com/AngelinAnto/OneAdmit/internal/repository/base"
	"github.com/google/uuid"
)

// Stores the services depend on. The pgx repositories implement them;
// Get* methods return nil, nil when the record does not exist.

type CollegeStore interface {
	Create(ctx context.Context, c *model.College) error
	Update(ctx context.Context, c *model.College) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.College, error)
	GetByCode(ctx context.Context, code string) (*model.College, error)
	ListActive(ctx context.Context) ([]model.College, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	GetByStudentUserID(ctx context.Context, userID uuid.UUID) ([]*model.Application, error)
	GetByCollegeID(ctx context.Context, collegeID uuid.UUID) ([]*model.Application, error)
	GetByExamSlotID(ctx context.Context, slotID uuid.UUID) ([]*model.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error
	UpdatePayment(ctx context.Context, id uuid.UUID, status model.PaymentStatus, paymentID string, amountPaid *float64) error
	SetResultDate(ctx context.Context, id uuid.UUID, resultDate *time.Time) error
	BindExamSlot(ctx context.Context, id uuid.UUID, slot *model.ExamSlot) error
	UnbindExamSlot(ctx context.Context, id uuid.UUID) error
	RecordStatusChange(ctx context.Context, change *model.ApplicationStatusChange) error
	GetStatusChanges(ctx context.Context, applicationID uuid.UUID) ([]*model.ApplicationStatusChange, error)
}

type ExamSlotStore interface {
	Create(ctx context.Context, slot *model.ExamSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ExamSlot, error)
	GetByCollegeID(ctx context.Context, collegeID uuid.UUID) ([]*model.ExamSlot, error)
	IncrementBooked(ctx context.Context, id uuid.UUID) error
	DecrementBooked(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AnnouncementStore interface {
	Create(ctx context.Context, a *model.Announcement) error
	ListActive(ctx context.Context) ([]*model.Announcement, error)
	Deactivate(ctx context.Context, id, collegeID uuid.UUID) error
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type StudentProfileStore interface {
	Upsert(ctx context.Context, p *model.StudentProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.StudentProfile, error)
}

// Transactor runs fn in one database transaction. Stores called with the
// ctx passed to fn join it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var (
	_ CollegeStore        = (*repository.CollegeRepository)(nil)
	_ ApplicationStore    = (*repository.ApplicationRepository)(nil)
	_ ExamSlotStore       = (*repository.ExamSlotRepository)(nil)
	_ AnnouncementStore   = (*repository.AnnouncementRepository)(nil)
	_ UserStore           = (*repository.UserRepository)(nil)
	_ StudentProfileStore = (*repository.StudentProfileRepository)(nil)
	_ Transactor          = (*base.Transactor)(nil)
)
