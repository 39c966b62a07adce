package common

import (
	"context"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithUser loads the user and runs handler. Failures are answered with an alert.
func WithUser(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadUser(); err != nil {
		h.Logger.Error("Failed to load user",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithStudent runs handler for student accounts only
func WithStudent(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireStudent(); err != nil {
		h.Logger.Warn("Student check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithCollegeAdmin runs handler for college admin accounts only
func WithCollegeAdmin(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireCollegeAdmin(); err != nil {
		h.Logger.Warn("College admin check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// Guarded runs fn unless the same operation of the user is still running
func Guarded(hc *HandlerContext, op string, fn func()) {
	sm := hc.Handler.StateManager
	if !sm.TryBegin(hc.TelegramID, op) {
		hc.Answer("⏳ Please wait, still working on your previous request")
		return
	}
	defer sm.Finish(hc.TelegramID, op)

	fn()
}

// HandleError logs the failure and answers with the user-facing message
func HandleError(hc *HandlerContext, err error, operation string) {
	level := hc.Handler.Logger.Warn
	if IsInternal(err) {
		level = hc.Handler.Logger.Error
	}
	level("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}
