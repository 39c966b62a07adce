package service

import (
	"context"
	"fmt"
	"io"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/storage"
	"github.com/AngelinAnto/OneAdmit/internal/validation"
	"go.uber.org/zap"
)

type ProfileService struct {
	profileRepo StudentProfileStore
	files       storage.Storage
	logger      *zap.Logger
}

func NewProfileService(profileRepo StudentProfileStore, files storage.Storage, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		files:       files,
		logger:      logger,
	}
}

// GetProfile returns nil when the student has not filled the profile yet
func (s *ProfileService) GetProfile(ctx context.Context, student *model.User) (*model.StudentProfile, error) {
	if !student.IsStudent() {
		return nil, nil
	}

	profile, err := s.profileRepo.GetByUserID(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("get student profile: %w", err)
	}
	return profile, nil
}

// SaveProfile validates the form and stores it as the student's profile
func (s *ProfileService) SaveProfile(ctx context.Context, student *model.User, form model.StudentProfileForm) (*model.StudentProfile, error) {
	if !student.IsStudent() {
		return nil, model.ErrForbidden
	}
	if student.Email == "" {
		return nil, model.ErrEmailRequired
	}

	if err := validation.Check(form); err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(ctx, student)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &model.StudentProfile{UserID: student.ID}
	}

	form.ApplyTo(profile)
	profile.UserEmail = student.Email

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save student profile: %w", err)
	}

	s.logger.Info("Student profile saved",
		zap.String("profile_id", profile.ID.String()),
		zap.String("email", student.Email),
	)

	return profile, nil
}

// UploadPhoto stores the student's photo and links it to the profile
func (s *ProfileService) UploadPhoto(ctx context.Context, student *model.User, filename, contentType string, data io.Reader) (*model.StudentProfile, error) {
	profile, err := s.GetProfile(ctx, student)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, model.ErrProfileIncomplete
	}

	url, err := s.files.Upload(ctx, storage.ObjectKey("photos", filename), contentType, data)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	profile.PhotoURL = url
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save photo url: %w", err)
	}

	return profile, nil
}
