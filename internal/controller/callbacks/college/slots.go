package college

import (
	"context"
	"fmt"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/callbacktypes"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleToggleSlot opens or closes a slot for booking
func HandleToggleSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCollegeAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		prefix, active := keyboard.PrefixSlotOff, false
		if strings.HasPrefix(callback.Data, keyboard.PrefixSlotOn) {
			prefix, active = keyboard.PrefixSlotOn, true
		}

		slotID, err := common.ParseIDFromCallback(callback.Data, prefix)
		if err != nil {
			common.HandleError(hc, err, "toggle exam slot")
			return
		}

		common.Guarded(hc, state.OpToggleSlot, func() {
			slot, err := h.ExamSlotService.SetActive(ctx, hc.User, slotID, active)
			if err != nil {
				common.HandleError(hc, err, "toggle exam slot")
				return
			}

			if err := hc.EditMessage(formatting.SlotLine(slot), keyboard.ManageSlotKeyboard(slot)); err != nil {
				h.Logger.Error("Failed to refresh slot", zap.Error(err))
			}
			if active {
				hc.Answer("Slot opened")
			} else {
				hc.Answer("Slot closed")
			}
		})
	})
}

func HandleDeleteSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCollegeAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, err := common.ParseIDFromCallback(callback.Data, keyboard.PrefixSlotDelete)
		if err != nil {
			common.HandleError(hc, err, "delete exam slot")
			return
		}

		common.Guarded(hc, state.OpDeleteSlot, func() {
			if err := h.ExamSlotService.DeleteSlot(ctx, hc.User, slotID); err != nil {
				common.HandleError(hc, err, "delete exam slot")
				return
			}

			if err := hc.EditMessage("🗑 Exam slot deleted.", keyboard.Empty()); err != nil {
				h.Logger.Error("Failed to edit message", zap.Error(err))
			}
			hc.Answer("Deleted")
		})
	})
}

// HandleAttendees sends the students booked into a slot
func HandleAttendees(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCollegeAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, err := common.ParseIDFromCallback(callback.Data, keyboard.PrefixAttendees)
		if err != nil {
			common.HandleError(hc, err, "list attendees")
			return
		}

		apps, err := h.ExamSlotService.Attendees(ctx, hc.User, slotID)
		if err != nil {
			common.HandleError(hc, err, "list attendees")
			return
		}
		if len(apps) == 0 {
			hc.AnswerAlert("Nobody has booked this slot yet")
			return
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "👥 <b>%d %s</b>\n\n", len(apps), formatting.Plural(len(apps), "attendee", "attendees"))
		for i, app := range apps {
			fmt.Fprintf(&sb, "%d. %s · %s (%s)\n", i+1,
				formatting.Escape(app.StudentName), formatting.Escape(app.Course), formatting.Escape(app.StudentEmail))
		}

		if err := hc.SendMessage(sb.String(), nil); err != nil {
			h.Logger.Error("Failed to send attendees", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleWithdrawAnnouncement hides an announcement from students
func HandleWithdrawAnnouncement(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCollegeAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data, keyboard.PrefixWithdraw)
		if err != nil {
			common.HandleError(hc, err, "withdraw announcement")
			return
		}

		common.Guarded(hc, state.OpWithdraw, func() {
			if err := h.AnnouncementService.Withdraw(ctx, hc.User, id); err != nil {
				common.HandleError(hc, err, "withdraw announcement")
				return
			}

			if err := hc.EditMessage("🗑 Announcement withdrawn.", keyboard.Empty()); err != nil {
				h.Logger.Error("Failed to edit message", zap.Error(err))
			}
			hc.Answer("Withdrawn")
		})
	})
}
