package handlers

import (
	"context"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// identity builds the auth identity of a Telegram sender
func identity(from *models.User) service.Identity {
	fullName := from.FirstName
	if from.LastName != "" {
		fullName += " " + from.LastName
	}
	return service.Identity{
		TelegramID:   from.ID,
		Username:     from.Username,
		FullName:     fullName,
		LanguageCode: from.LanguageCode,
	}
}

// requireUser returns the registered sender, registering on first contact.
// On failure the user is told and false is returned.
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	user, err := h.userService.CurrentUser(ctx, identity(update.Message.From))
	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("telegram_id", update.Message.From.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.TransientMessage)
		return nil, false
	}

	return user, true
}

func (h *Handlers) requireStudent(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return nil, false
	}

	if !user.IsStudent() {
		h.sendError(ctx, b, update.Message.Chat.ID, h.roleHint(user, common.ErrNotAStudent))
		return nil, false
	}

	return user, true
}

func (h *Handlers) requireCollegeAdmin(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return nil, false
	}

	if !user.IsCollegeAdmin() {
		h.sendError(ctx, b, update.Message.Chat.ID, h.roleHint(user, common.ErrNotAnAdmin))
		return nil, false
	}

	return user, true
}

func (h *Handlers) roleHint(user *model.User, err error) string {
	if !user.HasRole() {
		return "👋 Choose your account type first: /role"
	}
	return common.ErrorMessage(err)
}

// guarded runs fn unless the same operation of the user is still running
func (h *Handlers) guarded(ctx context.Context, b *bot.Bot, update *models.Update, op string, fn func()) {
	telegramID := update.Message.From.ID
	if !h.stateManager.TryBegin(telegramID, op) {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "⏳ Please wait, still working on your previous request.")
		return
	}
	defer h.stateManager.Finish(telegramID, op)

	fn()
}

// replyError logs a failed operation and tells the user what went wrong
func (h *Handlers) replyError(ctx context.Context, b *bot.Bot, chatID int64, err error, operation string) {
	log := h.logger.Warn
	if common.IsInternal(err) {
		log = h.logger.Error
	}
	log("Operation failed",
		zap.String("operation", operation),
		zap.Int64("chat_id", chatID),
		zap.Error(err),
	)
	h.sendError(ctx, b, chatID, common.ErrorMessage(err))
}

func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendHTML sends an HTML message with an optional inline keyboard
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
