package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/google/uuid"
)

// memDB is an in-memory EntityStore. Transactions snapshot the whole
// database and restore it when fn fails.
type memDB struct {
	mu            sync.Mutex
	colleges      map[uuid.UUID]model.College
	applications  map[uuid.UUID]model.Application
	changes       []model.ApplicationStatusChange
	slots         map[uuid.UUID]model.ExamSlot
	announcements []model.Announcement
	users         map[uuid.UUID]model.User
	profiles      map[uuid.UUID]model.StudentProfile
	clock         time.Time
}

func newMemDB() *memDB {
	return &memDB{
		colleges:     map[uuid.UUID]model.College{},
		applications: map[uuid.UUID]model.Application{},
		slots:        map[uuid.UUID]model.ExamSlot{},
		users:        map[uuid.UUID]model.User{},
		profiles:     map[uuid.UUID]model.StudentProfile{},
		clock:        time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

// tick returns increasing timestamps so "newest first" is deterministic
func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Minute)
	return db.clock
}

type memSnapshot struct {
	colleges      map[uuid.UUID]model.College
	applications  map[uuid.UUID]model.Application
	changes       []model.ApplicationStatusChange
	slots         map[uuid.UUID]model.ExamSlot
	announcements []model.Announcement
	users         map[uuid.UUID]model.User
	profiles      map[uuid.UUID]model.StudentProfile
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	return memSnapshot{
		colleges:      cloneMap(db.colleges),
		applications:  cloneMap(db.applications),
		changes:       append([]model.ApplicationStatusChange(nil), db.changes...),
		slots:         cloneMap(db.slots),
		announcements: append([]model.Announcement(nil), db.announcements...),
		users:         cloneMap(db.users),
		profiles:      cloneMap(db.profiles),
	}
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.colleges = s.colleges
	db.applications = s.applications
	db.changes = s.changes
	db.slots = s.slots
	db.announcements = s.announcements
	db.users = s.users
	db.profiles = s.profiles
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type memTx struct {
	db    *memDB
	calls int
}

func (t *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	snap := t.db.snapshot()
	if err := fn(ctx); err != nil {
		t.db.restore(snap)
		return err
	}
	return nil
}

// colleges

type memColleges struct{ db *memDB }

func (r memColleges) Create(ctx context.Context, c *model.College) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.colleges {
		if strings.EqualFold(existing.Code, c.Code) {
			return model.ErrCodeTaken
		}
	}
	c.ID = uuid.New()
	c.CreatedAt = r.db.tick()
	r.db.colleges[c.ID] = *c
	return nil
}

func (r memColleges) Update(ctx context.Context, c *model.College) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.colleges[c.ID]; !ok {
		return model.ErrNotFound
	}
	r.db.colleges[c.ID] = *c
	return nil
}

func (r memColleges) GetByID(ctx context.Context, id uuid.UUID) (*model.College, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if c, ok := r.db.colleges[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r memColleges) GetByCode(ctx context.Context, code string) (*model.College, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.colleges {
		if strings.EqualFold(c.Code, code) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r memColleges) ListActive(ctx context.Context) ([]model.College, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]model.College, 0, len(r.db.colleges))
	for _, c := range r.db.colleges {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// applications

type memApplications struct{ db *memDB }

func (r memApplications) Create(ctx context.Context, app *model.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.applications {
		if existing.StudentUserID == app.StudentUserID && existing.CollegeID == app.CollegeID && existing.Course == app.Course {
			return model.ErrDuplicateApplication
		}
	}
	app.ID = uuid.New()
	app.CreatedAt = r.db.tick()
	app.UpdatedAt = app.CreatedAt
	r.db.applications[app.ID] = *app
	return nil
}

func (r memApplications) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if app, ok := r.db.applications[id]; ok {
		return &app, nil
	}
	return nil, nil
}

func (r memApplications) list(keep func(model.Application) bool) []*model.Application {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*model.Application, 0)
	for _, app := range r.db.applications {
		if keep(app) {
			app := app
			out = append(out, &app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memApplications) GetByStudentUserID(ctx context.Context, userID uuid.UUID) ([]*model.Application, error) {
	return r.list(func(a model.Application) bool { return a.StudentUserID == userID }), nil
}

func (r memApplications) GetByCollegeID(ctx context.Context, collegeID uuid.UUID) ([]*model.Application, error) {
	return r.list(func(a model.Application) bool { return a.CollegeID == collegeID }), nil
}

func (r memApplications) GetByExamSlotID(ctx context.Context, slotID uuid.UUID) ([]*model.Application, error) {
	return r.list(func(a model.Application) bool { return a.ExamSlotID != nil && *a.ExamSlotID == slotID }), nil
}

func (r memApplications) update(id uuid.UUID, fn func(a *model.Application)) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	app, ok := r.db.applications[id]
	if !ok {
		return model.ErrNotFound
	}
	fn(&app)
	app.UpdatedAt = r.db.tick()
	r.db.applications[id] = app
	return nil
}

func (r memApplications) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error {
	return r.update(id, func(a *model.Application) { a.Status = status })
}

func (r memApplications) UpdatePayment(ctx context.Context, id uuid.UUID, status model.PaymentStatus, paymentID string, amountPaid *float64) error {
	return r.update(id, func(a *model.Application) {
		a.PaymentStatus = status
		a.PaymentID = paymentID
		a.AmountPaid = amountPaid
	})
}

func (r memApplications) SetResultDate(ctx context.Context, id uuid.UUID, resultDate *time.Time) error {
	return r.update(id, func(a *model.Application) { a.ResultDate = resultDate })
}

func (r memApplications) BindExamSlot(ctx context.Context, id uuid.UUID, slot *model.ExamSlot) error {
	return r.update(id, func(a *model.Application) {
		slotID, date := slot.ID, slot.Date
		a.ExamSlotID = &slotID
		a.ExamDate = &date
		a.ExamTime = slot.ExamTime()
	})
}

func (r memApplications) UnbindExamSlot(ctx context.Context, id uuid.UUID) error {
	return r.update(id, func(a *model.Application) {
		a.ExamSlotID = nil
		a.ExamDate = nil
		a.ExamTime = ""
	})
}

func (r memApplications) RecordStatusChange(ctx context.Context, change *model.ApplicationStatusChange) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	change.ID = uuid.New()
	change.ChangedAt = r.db.tick()
	r.db.changes = append(r.db.changes, *change)
	return nil
}

func (r memApplications) GetStatusChanges(ctx context.Context, applicationID uuid.UUID) ([]*model.ApplicationStatusChange, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*model.ApplicationStatusChange
	for _, c := range r.db.changes {
		if c.ApplicationID == applicationID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

// exam slots

type memSlots struct{ db *memDB }

func (r memSlots) Create(ctx context.Context, slot *model.ExamSlot) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	slot.ID = uuid.New()
	slot.CreatedAt = r.db.tick()
	r.db.slots[slot.ID] = *slot
	return nil
}

func (r memSlots) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamSlot, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if slot, ok := r.db.slots[id]; ok {
		return &slot, nil
	}
	return nil, nil
}

func (r memSlots) GetByCollegeID(ctx context.Context, collegeID uuid.UUID) ([]*model.ExamSlot, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*model.ExamSlot, 0)
	for _, slot := range r.db.slots {
		if slot.CollegeID == collegeID {
			slot := slot
			out = append(out, &slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// IncrementBooked mirrors the conditional UPDATE of the SQL store
func (r memSlots) IncrementBooked(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	slot, ok := r.db.slots[id]
	switch {
	case !ok:
		return model.ErrNotFound
	case !slot.IsActive:
		return model.ErrSlotInactive
	case slot.BookedSeats >= slot.TotalSeats:
		return model.ErrCapacityExceeded
	}
	slot.BookedSeats++
	r.db.slots[id] = slot
	return nil
}

func (r memSlots) DecrementBooked(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	slot, ok := r.db.slots[id]
	if !ok || slot.BookedSeats == 0 {
		return model.ErrInvalidState
	}
	slot.BookedSeats--
	r.db.slots[id] = slot
	return nil
}

func (r memSlots) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	slot, ok := r.db.slots[id]
	if !ok {
		return model.ErrNotFound
	}
	slot.IsActive = active
	r.db.slots[id] = slot
	return nil
}

func (r memSlots) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.slots[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.db.slots, id)
	return nil
}

// announcements

type memAnnouncements struct{ db *memDB }

func (r memAnnouncements) Create(ctx context.Context, a *model.Announcement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a.ID = uuid.New()
	a.CreatedAt = r.db.tick()
	r.db.announcements = append(r.db.announcements, *a)
	return nil
}

func (r memAnnouncements) ListActive(ctx context.Context) ([]*model.Announcement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*model.Announcement
	for i := len(r.db.announcements) - 1; i >= 0; i-- {
		if a := r.db.announcements[i]; a.IsActive {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r memAnnouncements) Deactivate(ctx context.Context, id, collegeID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, a := range r.db.announcements {
		if a.ID == id && a.CollegeID == collegeID {
			r.db.announcements[i].IsActive = false
			return nil
		}
	}
	return model.ErrNotFound
}

// users and profiles

type memUsers struct{ db *memDB }

func (r memUsers) Create(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	user.ID = uuid.New()
	user.CreatedAt = r.db.tick()
	r.db.users[user.ID] = *user
	return nil
}

func (r memUsers) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.TelegramID == telegramID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if u, ok := r.db.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if email != "" && u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// Update mirrors the unique email index of the SQL store
func (r memUsers) Update(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[user.ID]; !ok {
		return model.ErrNotFound
	}
	for id, u := range r.db.users {
		if id != user.ID && user.Email != "" && u.Email == user.Email {
			return model.ErrEmailTaken
		}
	}
	r.db.users[user.ID] = *user
	return nil
}

type memProfiles struct{ db *memDB }

func (r memProfiles) Upsert(ctx context.Context, p *model.StudentProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if existing, ok := r.db.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = uuid.New()
		p.CreatedAt = r.db.tick()
	}
	p.UpdatedAt = r.db.tick()
	r.db.profiles[p.UserID] = *p
	return nil
}

func (r memProfiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.StudentProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if p, ok := r.db.profiles[userID]; ok {
		return &p, nil
	}
	return nil, nil
}
