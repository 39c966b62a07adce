package service

import (
	"context"
	"fmt"

	"github.com/AngelinAnto/OneAdmit/internal/cache"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnnouncementService struct {
	announcementRepo AnnouncementStore
	collegeRepo      CollegeStore
	applications     *ApplicationService
	cache            *cache.QueryCache
	logger           *zap.Logger
}

func NewAnnouncementService(
	announcementRepo AnnouncementStore,
	collegeRepo CollegeStore,
	applications *ApplicationService,
	queryCache *cache.QueryCache,
	logger *zap.Logger,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		collegeRepo:      collegeRepo,
		applications:     applications,
		cache:            queryCache,
		logger:           logger,
	}
}

// ForStudent returns active announcements of the colleges the student applied to, newest first
func (s *AnnouncementService) ForStudent(ctx context.Context, student *model.User) ([]*model.Announcement, error) {
	apps, err := s.applications.MyApplications(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if len(apps) == 0 {
		return nil, nil
	}

	collegeIDs := make([]uuid.UUID, 0, len(apps))
	for _, app := range apps {
		collegeIDs = append(collegeIDs, app.CollegeID)
	}

	announcements, err := cache.Fetch(ctx, s.cache, cache.KeyAnnouncements, s.announcementRepo.ListActive)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	return model.RelevantTo(announcements, collegeIDs), nil
}

// Publish posts an announcement on behalf of the admin's college
func (s *AnnouncementService) Publish(ctx context.Context, admin *model.User, form model.AnnouncementForm) (*model.Announcement, error) {
	if !admin.IsCollegeAdmin() {
		return nil, model.ErrForbidden
	}
	if admin.CollegeID == nil {
		return nil, model.ErrNoCollege
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

	a := &model.Announcement{
		CollegeID:   college.ID,
		CollegeName: college.Name,
		Title:       form.Title,
		Content:     form.Content,
		Type:        form.Type,
		IsActive:    true,
	}

	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("publish announcement: %w", err)
	}

	s.cache.Invalidate(ctx, cache.KeyAnnouncements)

	s.logger.Info("Announcement published",
		zap.String("announcement_id", a.ID.String()),
		zap.String("college_id", college.ID.String()),
		zap.String("type", string(a.Type)),
	)

	return a, nil
}

// Withdraw hides an announcement of the admin's college
func (s *AnnouncementService) Withdraw(ctx context.Context, admin *model.User, id uuid.UUID) error {
	if !admin.IsCollegeAdmin() {
		return model.ErrForbidden
	}
	if admin.CollegeID == nil {
		return model.ErrNoCollege
	}

	if err := s.announcementRepo.Deactivate(ctx, id, *admin.CollegeID); err != nil {
		return fmt.Errorf("withdraw announcement: %w", err)
	}

	s.cache.Invalidate(ctx, cache.KeyAnnouncements)
	return nil
}
