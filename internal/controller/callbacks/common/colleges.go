package common

import (
	"context"
	"strconv"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/callbacktypes"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCollegesPage re-applies the user's saved filter and shows another page
func HandleCollegesPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		page, err := strconv.Atoi(strings.TrimPrefix(callback.Data, keyboard.PrefixCollegesPage))
		if err != nil || page < 0 {
			HandleError(hc, ErrInvalidFormat, "page colleges")
			return
		}

		f := h.StateManager.Filter(hc.TelegramID)
		colleges, err := h.CollegeService.Discover(ctx, f)
		if err != nil {
			HandleError(hc, err, "discover colleges")
			return
		}

		// the list may have shrunk since the message was sent
		pages := formatting.PageCount(len(colleges), formatting.CollegesPerPage)
		page = formatting.ClampPage(page, pages)

		kb := keyboard.CollegesPageKeyboard(page, pages)
		if kb == nil {
			kb = keyboard.Empty()
		}

		text := formatting.CollegeListPage(colleges, f, page)
		if len(colleges) == 0 {
			text = "🔍 No colleges found. Try /colleges all"
		}

		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to edit college list", zap.Error(err))
		}
		hc.Answer("")
	})
}
