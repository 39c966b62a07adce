package service

import (
	"context"
	"fmt"
	"io"

	"github.com/AngelinAnto/OneAdmit/internal/cache"
	"github.com/AngelinAnto/OneAdmit/internal/filter"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/storage"
	"github.com/AngelinAnto/OneAdmit/internal/validation"
	"go.uber.org/zap"
)

type CollegeService struct {
	collegeRepo CollegeStore
	userRepo    UserStore
	tx          Transactor
	files       storage.Storage
	cache       *cache.QueryCache
	logger      *zap.Logger
}

func NewCollegeService(
	collegeRepo CollegeStore,
	userRepo UserStore,
	tx Transactor,
	files storage.Storage,
	queryCache *cache.QueryCache,
	logger *zap.Logger,
) *CollegeService {
	return &CollegeService{
		collegeRepo: collegeRepo,
		userRepo:    userRepo,
		tx:          tx,
		files:       files,
		cache:       queryCache,
		logger:      logger,
	}
}

// Active returns all active colleges through the query cache
func (s *CollegeService) Active(ctx context.Context) ([]model.College, error) {
	return cache.Fetch(ctx, s.cache, cache.KeyColleges, s.collegeRepo.ListActive)
}

// Discover lists active colleges matching the filter
func (s *CollegeService) Discover(ctx context.Context, f filter.FilterSet) ([]model.College, error) {
	colleges, err := s.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return filter.Apply(colleges, f), nil
}

// Facets returns the course and city options for the filter panel
func (s *CollegeService) Facets(ctx context.Context) (filter.Facets, error) {
	colleges, err := s.Active(ctx)
	if err != nil {
		return filter.Facets{}, fmt.Errorf("list colleges: %w", err)
	}
	return filter.CollectFacets(colleges), nil
}

// GetByCode returns model.ErrNotFound for unknown codes
func (s *CollegeService) GetByCode(ctx context.Context, code string) (*model.College, error) {
	college, err := s.collegeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get college: %w", err)
	}
	if college == nil {
		return nil, model.ErrNotFound
	}
	return college, nil
}

// MyCollege returns the college managed by the admin
func (s *CollegeService) MyCollege(ctx context.Context, admin *model.User) (*model.College, error) {
	if !admin.IsCollegeAdmin() {
		return nil, model.ErrForbidden
	}
	if admin.CollegeID == nil {
		return nil, model.ErrNoCollege
	}

	college, err := s.collegeRepo.GetByID(ctx, *admin.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("get college: %w", err)
	}
	if college == nil {
		return nil, model.ErrNoCollege
	}
	return college, nil
}

// CreateProfile creates the admin's college and binds it to the account
func (s *CollegeService) CreateProfile(ctx context.Context, admin *model.User, form model.CollegeForm) (*model.College, error) {
	if !admin.IsCollegeAdmin() {
		return nil, model.ErrForbidden
	}
	if admin.CollegeID != nil {
		return nil, model.ErrCollegeBound
	}
	if err := validation.Check(form); err != nil {
		return nil, err
	}

	college := &model.College{IsActive: true, AdminEmail: admin.Email}
	form.ApplyTo(college)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.collegeRepo.Create(ctx, college); err != nil {
			return err
		}

		admin.CollegeID = &college.ID
		return s.userRepo.Update(ctx, admin)
	})
	if err != nil {
		admin.CollegeID = nil
		return nil, fmt.Errorf("create college profile: %w", err)
	}

	s.cache.Invalidate(ctx, cache.KeyColleges)

	s.logger.Info("College profile created",
		zap.String("college_id", college.ID.String()),
		zap.String("code", college.Code),
		zap.Int64("admin_telegram_id", admin.TelegramID),
	)

	return college, nil
}

// UpdateProfile replaces the editable fields of the admin's college
func (s *CollegeService) UpdateProfile(ctx context.Context, admin *model.User, form model.CollegeForm) (*model.College, error) {
	college, err := s.MyCollege(ctx, admin)
	if err != nil {
		return nil, err
	}
	if err := validation.Check(form); err != nil {
		return nil, err
	}

	// the code is the public handle of the college and stays fixed
	form.Code = college.Code
	form.ApplyTo(college)

	if err := s.collegeRepo.Update(ctx, college); err != nil {
		return nil, fmt.Errorf("update college profile: %w", err)
	}

	s.cache.Invalidate(ctx, cache.KeyColleges)

	s.logger.Info("College profile updated", zap.String("college_id", college.ID.String()))
	return college, nil
}

// SetActive opens or closes the college for new applications
func (s *CollegeService) SetActive(ctx context.Context, admin *model.User, active bool) (*model.College, error) {
	college, err := s.MyCollege(ctx, admin)
	if err != nil {
		return nil, err
	}

	college.IsActive = active
	if err := s.collegeRepo.Update(ctx, college); err != nil {
		return nil, fmt.Errorf("set college active: %w", err)
	}

	s.cache.Invalidate(ctx, cache.KeyColleges)

	s.logger.Info("College visibility changed",
		zap.String("college_id", college.ID.String()),
		zap.Bool("is_active", active),
	)
	return college, nil
}

// UploadLogo stores a new logo and links it to the admin's college
func (s *CollegeService) UploadLogo(ctx context.Context, admin *model.User, filename, contentType string, data io.Reader) (*model.College, error) {
	college, err := s.MyCollege(ctx, admin)
	if err != nil {
		return nil, err
	}

	url, err := s.files.Upload(ctx, storage.ObjectKey("logos", filename), contentType, data)
	if err != nil {
		return nil, fmt.Errorf("upload logo: %w", err)
	}

	college.LogoURL = url
	if err := s.collegeRepo.Update(ctx, college); err != nil {
		return nil, fmt.Errorf("save logo url: %w", err)
	}

	s.cache.Invalidate(ctx, cache.KeyColleges)
	return college, nil
}

// WarmCache reloads the college list into the query cache
func (s *CollegeService) WarmCache(ctx context.Context) (int, error) {
	s.cache.Invalidate(ctx, cache.KeyColleges)

	colleges, err := s.Active(ctx)
	if err != nil {
		return 0, fmt.Errorf("warm college cache: %w", err)
	}
	return len(colleges), nil
}
