package repository

import (
	"context"
	"fmt"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const examSlotColumns = `
	id, college_id, college_name, date, start_time, end_time, venue,
	total_seats, booked_seats, is_active, created_at`

type ExamSlotRepository struct {
	*base.Repository
}

func NewExamSlotRepository(pool *pgxpool.Pool) *ExamSlotRepository {
	return &ExamSlotRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a slot
func (r *ExamSlotRepository) Create(ctx context.Context, slot *model.ExamSlot) error {
	query := `
		INSERT INTO exam_slots (college_id, college_name, date, start_time, end_time, venue, total_seats, booked_seats, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query,
		slot.CollegeID, slot.CollegeName, slot.Date, slot.StartTime, slot.EndTime, slot.Venue,
		slot.TotalSeats, slot.BookedSeats, slot.IsActive,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create exam slot: %w", err)
	}

	return nil
}

// GetByID returns nil when the slot does not exist
func (r *ExamSlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamSlot, error) {
	query := `SELECT ` + examSlotColumns + ` FROM exam_slots WHERE id = $1`

	slot, err := scanExamSlot(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exam slot by id: %w", err)
	}

	return slot, nil
}

// GetByCollegeID returns the college's slots ordered by date
func (r *ExamSlotRepository) GetByCollegeID(ctx context.Context, collegeID uuid.UUID) ([]*model.ExamSlot, error) {
	query := `SELECT ` + examSlotColumns + ` FROM exam_slots WHERE college_id = $1 ORDER BY date, start_time`

	rows, err := r.Query(ctx, query, collegeID)
	if err != nil {
		return nil, fmt.Errorf("get exam slots by college: %w", err)
	}
	defer rows.Close()

	var slots []*model.ExamSlot
	for rows.Next() {
		slot, err := scanExamSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exam slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// IncrementBooked takes a seat only while the slot is active and one is free.
// The WHERE clause is the authoritative capacity check.
func (r *ExamSlotRepository) IncrementBooked(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE exam_slots
		SET booked_seats = booked_seats + 1
		WHERE id = $1 AND is_active AND booked_seats < total_seats
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("book exam seat: %w", err)
	}

	if affected == 0 {
		return r.bookingRefusal(ctx, id)
	}

	return nil
}

// bookingRefusal tells why IncrementBooked changed no row
func (r *ExamSlotRepository) bookingRefusal(ctx context.Context, id uuid.UUID) error {
	var active bool
	err := r.QueryRow(ctx, `SELECT is_active FROM exam_slots WHERE id = $1`, id).Scan(&active)
	if err != nil {
		if base.IsNotFound(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("check exam slot: %w", err)
	}

	if !active {
		return model.ErrSlotInactive
	}
	return model.ErrCapacityExceeded
}

// DecrementBooked gives a seat back, refusing to go below zero
func (r *ExamSlotRepository) DecrementBooked(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE exam_slots
		SET booked_seats = booked_seats - 1
		WHERE id = $1 AND booked_seats > 0
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("release exam seat: %w", err)
	}

	if affected == 0 {
		return model.ErrInvalidState
	}

	return nil
}

// SetActive toggles whether students may book the slot
func (r *ExamSlotRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	affected, err := r.ExecAffected(ctx, `UPDATE exam_slots SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set exam slot active: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("set exam slot active: %w", model.ErrNotFound)
	}

	return nil
}

// Delete removes the slot. Bound applications are not touched.
func (r *ExamSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM exam_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete exam slot: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("delete exam slot: %w", model.ErrNotFound)
	}

	return nil
}

func scanExamSlot(row pgx.Row) (*model.ExamSlot, error) {
	var s model.ExamSlot
	err := row.Scan(
		&s.ID, &s.CollegeID, &s.CollegeName, &s.Date, &s.StartTime, &s.EndTime, &s.Venue,
		&s.TotalSeats, &s.BookedSeats, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
