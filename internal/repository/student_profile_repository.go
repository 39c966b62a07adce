package repository

import (
	"context"
	"fmt"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentProfileRepository struct {
	*base.Repository
}

func NewStudentProfileRepository(pool *pgxpool.Pool) *StudentProfileRepository {
	return &StudentProfileRepository{Repository: base.NewRepository(pool)}
}

// Upsert creates the profile or updates the one owned by the same account
func (r *StudentProfileRepository) Upsert(ctx context.Context, p *model.StudentProfile) error {
	query := `
		INSERT INTO student_profiles (
			user_id, user_email, full_name, phone, date_of_birth, gender, city, board,
			twelfth_percentage, preferred_courses, photo_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			user_email = EXCLUDED.user_email,
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			date_of_birth = EXCLUDED.date_of_birth,
			gender = EXCLUDED.gender,
			city = EXCLUDED.city,
			board = EXCLUDED.board,
			twelfth_percentage = EXCLUDED.twelfth_percentage,
			preferred_courses = EXCLUDED.preferred_courses,
			photo_url = EXCLUDED.photo_url,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(ctx, query,
		p.UserID, p.UserEmail, p.FullName, p.Phone, p.DateOfBirth, p.Gender, p.City, p.Board,
		p.TwelfthPercentage, courses(p.PreferredCourses), p.PhotoURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert student profile: %w", err)
	}

	return nil
}

// GetByUserID returns nil when the student has no profile yet
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.StudentProfile, error) {
	query := `
		SELECT id, user_id, user_email, full_name, phone, date_of_birth, gender, city, board,
		       twelfth_percentage, preferred_courses, photo_url, created_at, updated_at
		FROM student_profiles
		WHERE user_id = $1
	`

	var p model.StudentProfile
	err := r.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.UserEmail, &p.FullName, &p.Phone, &p.DateOfBirth, &p.Gender, &p.City, &p.Board,
		&p.TwelfthPercentage, &p.PreferredCourses, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student profile: %w", err)
	}

	return &p, nil
}
