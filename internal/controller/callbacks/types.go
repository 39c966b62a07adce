package callbacks

import (
	"context"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/callbacktypes"
	"github.com/AngelinAnto/OneAdmit/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler wraps callbacktypes.Handler with the bot entry point
type Handler struct {
	*callbacktypes.Handler
}

func NewHandler(
	userService *service.UserService,
	collegeService *service.CollegeService,
	applicationService *service.ApplicationService,
	examSlotService *service.ExamSlotService,
	announcementService *service.AnnouncementService,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:         userService,
		CollegeService:      collegeService,
		ApplicationService:  applicationService,
		ExamSlotService:     examSlotService,
		AnnouncementService: announcementService,
		StateManager:        stateManager,
		Logger:              logger,
		Now:                 time.Now,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery is registered for every inline button press
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	Route(ctx, b, update.CallbackQuery, h.Handler)
}
