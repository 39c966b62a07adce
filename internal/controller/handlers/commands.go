package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart registers the user and shows what to do next
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	greeting := fmt.Sprintf("👋 Hi, %s!\n\nWelcome to <b>OnlyAdmit</b>, one place to discover colleges, apply and book your entrance exam.\n\n",
		formatting.Escape(user.FullName))

	if !user.HasRole() {
		h.sendHTML(ctx, b, chatID, greeting+"How will you use OnlyAdmit?", keyboard.RoleKeyboard())
		return
	}

	h.sendHTML(ctx, b, chatID, greeting+formatting.HelpText(user), nil)
}

func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	h.sendHTML(ctx, b, update.Message.Chat.ID, formatting.HelpText(user), nil)
}

// HandleRole shows the account type picker
func (h *Handlers) HandleRole(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if user.HasRole() {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("You are using a %s account. To change it, send /switch", *user.AccountType))
		return
	}

	h.sendHTML(ctx, b, update.Message.Chat.ID, "How will you use OnlyAdmit?", keyboard.RoleKeyboard())
}

// HandleSwitch clears the account type and offers the picker again
func (h *Handlers) HandleSwitch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	if _, err := h.userService.SwitchAccount(ctx, telegramID); err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err, "switch account")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendHTML(ctx, b, update.Message.Chat.ID, "🔄 Pick your account type:", keyboard.RoleKeyboard())
}

// HandleCancel stops the current dialog
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Nothing to cancel.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Cancelled.")
}

// HandleEmail sets the contact email colleges see on applications
func (h *Handlers) HandleEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	email := commandArgs(update.Message.Text)
	if email == "" {
		current := "not set"
		if user.Email != "" {
			current = user.Email
		}
		h.sendMessage(ctx, b, chatID, "📧 Your email: "+current+"\n\nTo change it: /email you@example.com")
		return
	}

	h.guarded(ctx, b, update, state.OpUpdateUser, func() {
		updated, err := h.userService.UpdateCurrentUser(ctx, user.TelegramID, model.UserUpdate{Email: &email})
		if err != nil {
			h.replyError(ctx, b, chatID, err, "update email")
			return
		}
		h.sendMessage(ctx, b, chatID, "✅ Email saved: "+updated.Email)
	})
}

// HandleTextMessage feeds plain messages into the active dialog
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Commands have their own handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("Text message",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Send /help to see what I can do.")
	case state.StateProfileFullName,
		state.StateProfilePhone,
		state.StateProfileBirthDate,
		state.StateProfileGender,
		state.StateProfileCity,
		state.StateProfileBoard,
		state.StateProfilePercentage,
		state.StateProfileCourses:
		h.handleProfileStep(ctx, b, update, currentState)
	case state.StateCollegeCode,
		state.StateCollegeName,
		state.StateCollegeCity,
		state.StateCollegeCourses,
		state.StateCollegeFee,
		state.StateCollegeHostel,
		state.StateCollegeScholarship:
		h.handleCollegeStep(ctx, b, update, currentState)
	default:
		h.logger.Warn("Unhandled state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
