package student

import (
	"context"
	"fmt"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/callbacktypes"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlePickSlot lists the upcoming slots of the application's college.
// Every slot button carries the application id, so older lists stay valid.
func HandlePickSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		appID, err := common.ParseIDFromCallback(callback.Data, keyboard.PrefixAppSlots)
		if err != nil {
			common.HandleError(hc, err, "pick exam slot")
			return
		}

		app, err := h.ApplicationService.Get(ctx, hc.User, appID)
		if err != nil {
			common.HandleError(hc, err, "pick exam slot")
			return
		}

		slots, err := h.ExamSlotService.Upcoming(ctx, app.CollegeID, h.Now())
		if err != nil {
			common.HandleError(hc, err, "list exam slots")
			return
		}
		if len(slots) == 0 {
			hc.AnswerAlert("📭 " + app.CollegeName + " has not opened any exam slots yet")
			return
		}

		text := fmt.Sprintf("📝 Pick an exam slot for <b>%s</b> · %s",
			formatting.Escape(app.CollegeName), formatting.Escape(app.Course))
		if err := hc.SendMessage(text, keyboard.BookSlotKeyboard(app.ID, slots)); err != nil {
			h.Logger.Error("Failed to send slot list", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleBookSlot books the pressed slot for the application named in the button
func HandleBookSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		appID, slotID, err := common.ParseIDPair(callback.Data, keyboard.PrefixBookSlot)
		if err != nil {
			common.HandleError(hc, err, "book exam slot")
			return
		}

		common.Guarded(hc, state.OpBook, func() {
			app, err := h.ExamSlotService.BookForApplication(ctx, hc.User, appID, slotID)
			if err != nil {
				common.HandleError(hc, err, "book exam slot")
				return
			}

			h.Logger.Info("Exam slot booked from keyboard",
				zap.String("application_id", app.ID.String()),
				zap.String("slot_id", slotID.String()))

			text := "✅ Exam slot booked!\n\n" + formatting.StudentApplicationCard(app)
			if err := hc.EditMessage(text, keyboard.ApplicationKeyboard(app)); err != nil {
				h.Logger.Error("Failed to edit message", zap.Error(err))
			}
			hc.Answer("Booked")
		})
	})
}

// HandleCancelSlot gives the seat back
func HandleCancelSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		appID, err := common.ParseIDFromCallback(callback.Data, keyboard.PrefixCancelSlot)
		if err != nil {
			common.HandleError(hc, err, "cancel exam slot")
			return
		}

		common.Guarded(hc, state.OpCancelSlot, func() {
			app, err := h.ExamSlotService.CancelBooking(ctx, hc.User, appID)
			if err != nil {
				common.HandleError(hc, err, "cancel exam slot")
				return
			}

			text := "✖️ Exam slot cancelled.\n\n" + formatting.StudentApplicationCard(app)
			if err := hc.EditMessage(text, keyboard.ApplicationKeyboard(app)); err != nil {
				h.Logger.Error("Failed to edit message", zap.Error(err))
			}
			hc.Answer("Cancelled")
		})
	})
}
