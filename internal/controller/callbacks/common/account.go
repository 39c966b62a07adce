package common

import (
	"context"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/callbacktypes"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleChooseRole saves the account type picked on the role keyboard
func HandleChooseRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	role := model.AccountType(strings.TrimPrefix(callback.Data, keyboard.PrefixRole))

	user, err := h.UserService.ChooseRole(ctx, hc.TelegramID, role)
	if err != nil {
		HandleError(hc, err, "choose role")
		return
	}

	text := "✅ Account type saved.\n\n" + formatting.HelpText(user)
	if err := hc.EditMessage(text, keyboard.Empty()); err != nil {
		h.Logger.Error("Failed to edit message", zap.Error(err))
	}
	hc.Answer("")
}

// HandleNoop acknowledges inert buttons
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	AnswerCallback(ctx, b, callback.ID, "")
}
