package callbacktypes

import (
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/filter"
	"github.com/AngelinAnto/OneAdmit/internal/service"
	"go.uber.org/zap"
)

// StateManager is the part of the per-user state the callbacks use:
// the saved discovery filter and the in-flight operation marks
type StateManager interface {
	Filter(telegramID int64) filter.FilterSet
	TryBegin(telegramID int64, op string) bool
	Finish(telegramID int64, op string)
}

// Handler holds the dependencies shared by every callback handler
type Handler struct {
	UserService         *service.UserService
	CollegeService      *service.CollegeService
	ApplicationService  *service.ApplicationService
	ExamSlotService     *service.ExamSlotService
	AnnouncementService *service.AnnouncementService
	StateManager        StateManager
	Logger              *zap.Logger
	Now                 func() time.Time
}
