package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `
	id, student_profile_id, student_user_id, student_email, student_name, college_id, college_name, course,
	status, payment_status, payment_id, exam_slot_id, exam_date, exam_time, result_date,
	amount_paid, needs_hostel, needs_scholarship, created_at, updated_at`

type ApplicationRepository struct {
	*base.Repository
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{Repository: base.NewRepository(pool)}
}

// Create inserts an application. Duplicate (student account, college, course) returns model.ErrDuplicateApplication.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO applications (
			student_profile_id, student_user_id, student_email, student_name, college_id, college_name,
			course, status, payment_status, needs_hostel, needs_scholarship
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(ctx, query,
		app.StudentProfileID, app.StudentUserID, app.StudentEmail, app.StudentName, app.CollegeID, app.CollegeName,
		app.Course, app.Status, app.PaymentStatus, app.NeedsHostel, app.NeedsScholarship,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrDuplicateApplication
		}
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

// GetByID returns nil when the application does not exist
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application by id: %w", err)
	}

	return app, nil
}

// GetByStudentUserID returns the student's applications, newest first
func (r *ApplicationRepository) GetByStudentUserID(ctx context.Context, userID uuid.UUID) ([]*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE student_user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "get applications by student", query, userID)
}

// GetByCollegeID returns the college's applications, newest first
func (r *ApplicationRepository) GetByCollegeID(ctx context.Context, collegeID uuid.UUID) ([]*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE college_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "get applications by college", query, collegeID)
}

// GetByExamSlotID returns the applications bound to a slot
func (r *ApplicationRepository) GetByExamSlotID(ctx context.Context, slotID uuid.UUID) ([]*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE exam_slot_id = $1 ORDER BY created_at`
	return r.list(ctx, "get applications by exam slot", query, slotID)
}

func (r *ApplicationRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Application, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var apps []*model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

// UpdateStatus touches the status only
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error {
	query := `UPDATE applications SET status = $1, updated_at = now() WHERE id = $2`
	return r.execOne(ctx, "update application status", query, status, id)
}

// UpdatePayment touches the payment fields only
func (r *ApplicationRepository) UpdatePayment(ctx context.Context, id uuid.UUID, status model.PaymentStatus, paymentID string, amountPaid *float64) error {
	query := `
		UPDATE applications
		SET payment_status = $1, payment_id = $2, amount_paid = $3, updated_at = now()
		WHERE id = $4
	`
	return r.execOne(ctx, "update application payment", query, status, paymentID, amountPaid, id)
}

// SetResultDate stores the tentative result release date
func (r *ApplicationRepository) SetResultDate(ctx context.Context, id uuid.UUID, resultDate *time.Time) error {
	query := `UPDATE applications SET result_date = $1, updated_at = now() WHERE id = $2`
	return r.execOne(ctx, "set application result date", query, resultDate, id)
}

// BindExamSlot copies the slot's date and time onto the application
func (r *ApplicationRepository) BindExamSlot(ctx context.Context, id uuid.UUID, slot *model.ExamSlot) error {
	query := `
		UPDATE applications
		SET exam_slot_id = $1, exam_date = $2, exam_time = $3, updated_at = now()
		WHERE id = $4
	`
	return r.execOne(ctx, "bind exam slot", query, slot.ID, slot.Date, slot.ExamTime(), id)
}

// UnbindExamSlot clears the exam slot fields
func (r *ApplicationRepository) UnbindExamSlot(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE applications
		SET exam_slot_id = NULL, exam_date = NULL, exam_time = '', updated_at = now()
		WHERE id = $1
	`
	return r.execOne(ctx, "unbind exam slot", query, id)
}

// RecordStatusChange appends to the status audit log
func (r *ApplicationRepository) RecordStatusChange(ctx context.Context, change *model.ApplicationStatusChange) error {
	query := `
		INSERT INTO application_status_changes (application_id, from_status, to_status, actor_email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, changed_at
	`

	err := r.QueryRow(ctx, query,
		change.ApplicationID, change.FromStatus, change.ToStatus, change.ActorEmail,
	).Scan(&change.ID, &change.ChangedAt)
	if err != nil {
		return fmt.Errorf("record status change: %w", err)
	}

	return nil
}

// GetStatusChanges returns the audit log of an application, oldest first
func (r *ApplicationRepository) GetStatusChanges(ctx context.Context, applicationID uuid.UUID) ([]*model.ApplicationStatusChange, error) {
	query := `
		SELECT id, application_id, from_status, to_status, actor_email, changed_at
		FROM application_status_changes
		WHERE application_id = $1
		ORDER BY changed_at
	`

	rows, err := r.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("get status changes: %w", err)
	}
	defer rows.Close()

	var changes []*model.ApplicationStatusChange
	for rows.Next() {
		var c model.ApplicationStatusChange
		if err := rows.Scan(&c.ID, &c.ApplicationID, &c.FromStatus, &c.ToStatus, &c.ActorEmail, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		changes = append(changes, &c)
	}

	return changes, rows.Err()
}

func (r *ApplicationRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	affected, err := r.ExecAffected(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, model.ErrNotFound)
	}
	return nil
}

func scanApplication(row pgx.Row) (*model.Application, error) {
	var a model.Application
	err := row.Scan(
		&a.ID, &a.StudentProfileID, &a.StudentUserID, &a.StudentEmail, &a.StudentName, &a.CollegeID, &a.CollegeName,
		&a.Course, &a.Status, &a.PaymentStatus, &a.PaymentID, &a.ExamSlotID, &a.ExamDate,
		&a.ExamTime, &a.ResultDate, &a.AmountPaid, &a.NeedsHostel, &a.NeedsScholarship,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
