package service

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/cache"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (s *memStorage) Upload(ctx context.Context, key, contentType string, data io.Reader) (string, error) {
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	return "https://cdn.test/" + key, nil
}

func (s *memStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.objects[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (s *memStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

// testEnv wires every service to one in-memory database
type testEnv struct {
	db    *memDB
	tx    *memTx
	files *memStorage

	users         *UserService
	profiles      *ProfileService
	colleges      *CollegeService
	applications  *ApplicationService
	slots         *ExamSlotService
	announcements *AnnouncementService

	nextTelegramID int64
}

type envOption func(*envConfig)

type envConfig struct {
	cache       *cache.QueryCache
	deleteGuard bool
}

func withCache(c *cache.QueryCache) envOption {
	return func(cfg *envConfig) { cfg.cache = c }
}

func withDeleteGuard() envOption {
	return func(cfg *envConfig) { cfg.deleteGuard = true }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	var cfg envConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := zap.NewNop()
	db := newMemDB()
	tx := &memTx{db: db}
	files := newMemStorage()

	collegeRepo := memColleges{db}
	appRepo := memApplications{db}
	slotRepo := memSlots{db}
	userRepo := memUsers{db}
	profileRepo := memProfiles{db}

	applications := NewApplicationService(appRepo, collegeRepo, profileRepo, slotRepo, tx, cfg.cache, logger)

	return &testEnv{
		db:             db,
		tx:             tx,
		files:          files,
		users:          NewUserService(userRepo, logger),
		profiles:       NewProfileService(profileRepo, files, logger),
		colleges:       NewCollegeService(collegeRepo, userRepo, tx, files, cfg.cache, logger),
		applications:   applications,
		slots:          NewExamSlotService(slotRepo, appRepo, collegeRepo, tx, cfg.cache, cfg.deleteGuard, logger),
		announcements:  NewAnnouncementService(memAnnouncements{db}, collegeRepo, applications, cfg.cache, logger),
		nextTelegramID: 1000,
	}
}

func ptr[T any](v T) *T { return &v }

// newUser registers a chat user with the given role and email
func (e *testEnv) newUser(t *testing.T, role model.AccountType, email string) *model.User {
	t.Helper()
	ctx := context.Background()

	e.nextTelegramID++
	user, err := e.users.CurrentUser(ctx, Identity{TelegramID: e.nextTelegramID, FullName: email})
	require.NoError(t, err)

	user, err = e.users.ChooseRole(ctx, user.TelegramID, role)
	require.NoError(t, err)

	user, err = e.users.UpdateCurrentUser(ctx, user.TelegramID, model.UserUpdate{Email: &email})
	require.NoError(t, err)
	return user
}

func completeProfileForm(name string) model.StudentProfileForm {
	return model.StudentProfileForm{
		FullName:          name,
		Phone:             "9876543210",
		DateOfBirth:       ptr(time.Date(2007, 3, 9, 0, 0, 0, 0, time.UTC)),
		Board:             "State Board",
		TwelfthPercentage: ptr(91.5),
		City:              "Madurai",
	}
}

// newStudent registers a student with a complete profile
func (e *testEnv) newStudent(t *testing.T, email string) *model.User {
	t.Helper()
	student := e.newUser(t, model.AccountTypeStudent, email)

	_, err := e.profiles.SaveProfile(context.Background(), student, completeProfileForm("Student "+email))
	require.NoError(t, err)
	return student
}

// newCollege registers an admin and their college
func (e *testEnv) newCollege(t *testing.T, code, name string, courses ...string) (*model.User, *model.College) {
	t.Helper()
	admin := e.newUser(t, model.AccountTypeCollege, "admin@"+code+".edu")

	college, err := e.colleges.CreateProfile(context.Background(), admin, model.CollegeForm{
		Name:    name,
		Code:    code,
		City:    "Chennai",
		Courses: courses,
	})
	require.NoError(t, err)
	return admin, college
}

func (e *testEnv) apply(t *testing.T, student *model.User, code, course string) *model.Application {
	t.Helper()
	app, err := e.applications.Apply(context.Background(), student, ApplyRequest{CollegeCode: code, Course: course})
	require.NoError(t, err)
	return app
}

func (e *testEnv) newSlot(t *testing.T, admin *model.User, date time.Time, seats int) *model.ExamSlot {
	t.Helper()
	slot, err := e.slots.Create(context.Background(), admin, model.ExamSlotForm{
		Date:       date,
		StartTime:  "10:00",
		EndTime:    "12:00",
		Venue:      "Block A",
		TotalSeats: seats,
	})
	require.NoError(t, err)
	return slot
}

func (e *testEnv) storedSlot(t *testing.T, id uuid.UUID) model.ExamSlot {
	t.Helper()
	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	slot, ok := e.db.slots[id]
	require.True(t, ok, "slot %s not stored", id)
	return slot
}

func (e *testEnv) storedApplication(t *testing.T, id uuid.UUID) model.Application {
	t.Helper()
	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	app, ok := e.db.applications[id]
	require.True(t, ok, "application %s not stored", id)
	return app
}
