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

const collegeColumns = `
	id, name, code, description, logo_url, city, state, address, website, phone, email,
	courses, application_fee, annual_fees_min, annual_fees_max, has_hostel, hostel_fees,
	has_scholarship, scholarship_details, accreditation, ranking, application_deadline,
	is_active, admin_email, created_at`

type CollegeRepository struct {
	*base.Repository
}

func NewCollegeRepository(pool *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a college profile
func (r *CollegeRepository) Create(ctx context.Context, c *model.College) error {
	query := `
		INSERT INTO colleges (
			name, code, description, logo_url, city, state, address, website, phone, email,
			courses, application_fee, annual_fees_min, annual_fees_max, has_hostel, hostel_fees,
			has_scholarship, scholarship_details, accreditation, ranking, application_deadline,
			is_active, admin_email
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query,
		c.Name, c.Code, c.Description, c.LogoURL, c.City, c.State, c.Address, c.Website, c.Phone, c.Email,
		courses(c.Courses), c.ApplicationFee, c.AnnualFeesMin, c.AnnualFeesMax, c.HasHostel, c.HostelFees,
		c.HasScholarship, c.ScholarshipDetails, c.Accreditation, c.Ranking, c.ApplicationDeadline,
		c.IsActive, c.AdminEmail,
	).Scan(&c.ID, &c.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrCodeTaken
		}
		return fmt.Errorf("create college: %w", err)
	}

	return nil
}

// Update overwrites the editable profile fields
func (r *CollegeRepository) Update(ctx context.Context, c *model.College) error {
	query := `
		UPDATE colleges SET
			name = $2, description = $3, logo_url = $4, city = $5, state = $6, address = $7,
			website = $8, phone = $9, email = $10, courses = $11, application_fee = $12,
			annual_fees_min = $13, annual_fees_max = $14, has_hostel = $15, hostel_fees = $16,
			has_scholarship = $17, scholarship_details = $18, accreditation = $19, ranking = $20,
			application_deadline = $21, is_active = $22, admin_email = $23
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query,
		c.ID, c.Name, c.Description, c.LogoURL, c.City, c.State, c.Address,
		c.Website, c.Phone, c.Email, courses(c.Courses), c.ApplicationFee,
		c.AnnualFeesMin, c.AnnualFeesMax, c.HasHostel, c.HostelFees,
		c.HasScholarship, c.ScholarshipDetails, c.Accreditation, c.Ranking,
		c.ApplicationDeadline, c.IsActive, c.AdminEmail,
	)
	if err != nil {
		return fmt.Errorf("update college: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update college: %w", model.ErrNotFound)
	}

	return nil
}

// GetByID returns nil when the college does not exist
func (r *CollegeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE id = $1`

	college, err := scanCollege(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get college by id: %w", err)
	}

	return college, nil
}

// GetByCode looks a college up by its unique code, case-insensitively
func (r *CollegeRepository) GetByCode(ctx context.Context, code string) (*model.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE lower(code) = lower($1)`

	college, err := scanCollege(r.QueryRow(ctx, query, code))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get college by code: %w", err)
	}

	return college, nil
}

// ListActive returns the colleges students can browse
func (r *CollegeRepository) ListActive(ctx context.Context) ([]model.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE is_active ORDER BY ranking NULLS LAST, name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active colleges: %w", err)
	}
	defer rows.Close()

	colleges := make([]model.College, 0)
	for rows.Next() {
		college, err := scanCollege(rows)
		if err != nil {
			return nil, fmt.Errorf("scan college: %w", err)
		}
		colleges = append(colleges, *college)
	}

	return colleges, rows.Err()
}

func scanCollege(row pgx.Row) (*model.College, error) {
	var c model.College
	err := row.Scan(
		&c.ID, &c.Name, &c.Code, &c.Description, &c.LogoURL, &c.City, &c.State, &c.Address,
		&c.Website, &c.Phone, &c.Email, &c.Courses, &c.ApplicationFee, &c.AnnualFeesMin,
		&c.AnnualFeesMax, &c.HasHostel, &c.HostelFees, &c.HasScholarship, &c.ScholarshipDetails,
		&c.Accreditation, &c.Ranking, &c.ApplicationDeadline, &c.IsActive, &c.AdminEmail,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// courses keeps NOT NULL text[] columns from receiving NULL
func courses(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
