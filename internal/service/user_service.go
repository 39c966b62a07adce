package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/validation"
	"go.uber.org/zap"
)

// Identity is what the chat platform tells us about the caller
type Identity struct {
	TelegramID   int64
	Username     string
	FullName     string
	LanguageCode string
}

type UserService struct {
	userRepo UserStore
	logger   *zap.Logger
}

func NewUserService(userRepo UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CurrentUser registers the caller on first contact and refreshes the chat profile afterwards
func (s *UserService) CurrentUser(ctx context.Context, id Identity) (*model.User, error) {
	existingUser, err := s.userRepo.GetByTelegramID(ctx, id.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	if existingUser != nil {
		existingUser.Username = id.Username
		existingUser.LanguageCode = id.LanguageCode
		if existingUser.FullName == "" {
			existingUser.FullName = id.FullName
		}

		if err := s.userRepo.Update(ctx, existingUser); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}

		return existingUser, nil
	}

	user := &model.User{
		TelegramID:   id.TelegramID,
		Username:     id.Username,
		FullName:     id.FullName,
		LanguageCode: id.LanguageCode,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.String("user_id", user.ID.String()),
		zap.Int64("telegram_id", id.TelegramID),
		zap.String("username", id.Username),
	)

	return user, nil
}

// GetByTelegramID returns nil when the user never started the bot
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// UpdateCurrentUser applies a partial update to the caller's account
func (s *UserService) UpdateCurrentUser(ctx context.Context, telegramID int64, upd model.UserUpdate) (*model.User, error) {
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if err := validation.Check(model.EmailForm{Email: email}); err != nil {
			return nil, err
		}
		upd.Email = &email
	}

	if upd.AccountType != nil && *upd.AccountType != nil && !(*upd.AccountType).Valid() {
		return nil, model.ErrInvalidAccountType
	}

	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrNotFound
	}

	if upd.Email != nil && *upd.Email != user.Email {
		holder, err := s.userRepo.GetByEmail(ctx, *upd.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if holder != nil && holder.ID != user.ID {
			s.logger.Warn("Email already used by another account",
				zap.Int64("telegram_id", telegramID),
			)
			return nil, model.ErrEmailTaken
		}
	}

	upd.Apply(user)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// ChooseRole sets the account type picked on the role selection screen
func (s *UserService) ChooseRole(ctx context.Context, telegramID int64, role model.AccountType) (*model.User, error) {
	if !role.Valid() {
		return nil, model.ErrInvalidAccountType
	}

	user, err := s.UpdateCurrentUser(ctx, telegramID, model.UserUpdate{AccountType: accountType(&role)})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account type chosen",
		zap.Int64("telegram_id", telegramID),
		zap.String("account_type", string(role)),
	)

	return user, nil
}

// SwitchAccount clears the account type so the role can be picked again.
// The college binding is kept for when the admin comes back.
func (s *UserService) SwitchAccount(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.UpdateCurrentUser(ctx, telegramID, model.UserUpdate{AccountType: accountType(nil)})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account type cleared", zap.Int64("telegram_id", telegramID))
	return user, nil
}

func accountType(t *model.AccountType) **model.AccountType {
	return &t
}
