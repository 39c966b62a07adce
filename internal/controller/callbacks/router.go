package callbacks

import (
	"context"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/callbacktypes"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/college"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/student"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route dispatches a callback query by its data prefix.
// The data formats are listed next to the prefixes in the keyboard package.
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	case data == keyboard.Noop:
		common.HandleNoop(ctx, b, callback)
	case strings.HasPrefix(data, keyboard.PrefixRole):
		common.HandleChooseRole(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PrefixCollegesPage):
		common.HandleCollegesPage(ctx, b, callback, h)

	// ===== Student: exam slot booking =====
	case strings.HasPrefix(data, keyboard.PrefixAppSlots):
		student.HandlePickSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PrefixBookSlot):
		student.HandleBookSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PrefixCancelSlot):
		student.HandleCancelSlot(ctx, b, callback, h)

	// ===== College: inbox =====
	case strings.HasPrefix(data, keyboard.PrefixStatus):
		college.HandleSetStatus(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PrefixPayment):
		college.HandleSetPayment(ctx, b, callback, h)

	// ===== College: exam slots and announcements =====
	case strings.HasPrefix(data, keyboard.PrefixSlotOn), strings.HasPrefix(data, keyboard.PrefixSlotOff):
		college.HandleToggleSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PrefixSlotDelete):
		college.HandleDeleteSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PrefixAttendees):
		college.HandleAttendees(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PrefixWithdraw):
		college.HandleWithdrawAnnouncement(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
