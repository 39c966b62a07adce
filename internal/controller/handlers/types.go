package handlers

import (
	"net/http"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/AngelinAnto/OneAdmit/internal/service"
	"go.uber.org/zap"
)

// Services groups the domain services the chat shell drives
type Services struct {
	Users         *service.UserService
	Profiles      *service.ProfileService
	Colleges      *service.CollegeService
	Applications  *service.ApplicationService
	ExamSlots     *service.ExamSlotService
	Announcements *service.AnnouncementService
}

// Handlers holds every dependency of the command handlers
type Handlers struct {
	userService         *service.UserService
	profileService      *service.ProfileService
	collegeService      *service.CollegeService
	applicationService  *service.ApplicationService
	examSlotService     *service.ExamSlotService
	announcementService *service.AnnouncementService
	stateManager        *state.Manager
	httpClient          *http.Client
	logger              *zap.Logger
	now                 func() time.Time
}

func NewHandlers(services Services, stateManager *state.Manager, logger *zap.Logger) *Handlers {
	return &Handlers{
		userService:         services.Users,
		profileService:      services.Profiles,
		collegeService:      services.Colleges,
		applicationService:  services.Applications,
		examSlotService:     services.ExamSlots,
		announcementService: services.Announcements,
		stateManager:        stateManager,
		httpClient:          &http.Client{Timeout: 30 * time.Second},
		logger:              logger,
		now:                 time.Now,
	}
}
