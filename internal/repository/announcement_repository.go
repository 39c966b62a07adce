package repository

import (
	"context"
	"fmt"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnnouncementRepository struct {
	*base.Repository
}

func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{Repository: base.NewRepository(pool)}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	query := `
		INSERT INTO announcements (college_id, college_name, title, content, type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query,
		a.CollegeID, a.CollegeName, a.Title, a.Content, a.Type, a.IsActive,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}

	return nil
}

// ListActive returns active announcements, newest first
func (r *AnnouncementRepository) ListActive(ctx context.Context) ([]*model.Announcement, error) {
	query := `
		SELECT id, college_id, college_name, title, content, type, is_active, created_at
		FROM announcements
		WHERE is_active
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active announcements: %w", err)
	}
	defer rows.Close()

	var announcements []*model.Announcement
	for rows.Next() {
		var a model.Announcement
		err := rows.Scan(&a.ID, &a.CollegeID, &a.CollegeName, &a.Title, &a.Content, &a.Type, &a.IsActive, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		announcements = append(announcements, &a)
	}

	return announcements, rows.Err()
}

// Deactivate hides an announcement of the given college
func (r *AnnouncementRepository) Deactivate(ctx context.Context, id, collegeID uuid.UUID) error {
	query := `UPDATE announcements SET is_active = false WHERE id = $1 AND college_id = $2`

	affected, err := r.ExecAffected(ctx, query, id, collegeID)
	if err != nil {
		return fmt.Errorf("deactivate announcement: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("deactivate announcement: %w", model.ErrNotFound)
	}

	return nil
}
