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

const userColumns = `id, telegram_id, username, full_name, email, account_type, college_id, language_code, created_at`

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, full_name, email, account_type, college_id, language_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query,
		user.TelegramID,
		user.Username,
		user.FullName,
		user.Email,
		accountTypeValue(user.AccountType),
		user.CollegeID,
		user.LanguageCode,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByTelegramID returns nil when the user is not registered
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	user, err := scanUser(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return user, nil
}

// GetByID returns nil when the user does not exist
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// GetByEmail returns nil when no account uses the email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND email <> ''`

	user, err := scanUser(r.QueryRow(ctx, query, email))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

// Update saves every mutable field of the user. A duplicate email returns model.ErrEmailTaken.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET username = $1, full_name = $2, email = $3, account_type = $4, college_id = $5, language_code = $6
		WHERE id = $7
	`

	affected, err := r.ExecAffected(ctx, query,
		user.Username,
		user.FullName,
		user.Email,
		accountTypeValue(user.AccountType),
		user.CollegeID,
		user.LanguageCode,
		user.ID,
	)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update user: %w", model.ErrNotFound)
	}

	return nil
}

func accountTypeValue(t *model.AccountType) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		user        model.User
		accountType *string
	)
	err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FullName,
		&user.Email,
		&accountType,
		&user.CollegeID,
		&user.LanguageCode,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if accountType != nil {
		t := model.AccountType(*accountType)
		user.AccountType = &t
	}

	return &user, nil
}
