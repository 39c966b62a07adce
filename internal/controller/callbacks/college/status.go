package college

import (
	"context"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/callbacktypes"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSetStatus applies the status picked on an inbox card
func HandleSetStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCollegeAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		appID, index, err := common.ParseIDAndIndex(callback.Data, keyboard.PrefixStatus)
		if err != nil {
			common.HandleError(hc, err, "set application status")
			return
		}
		status, ok := keyboard.StatusAt(index)
		if !ok {
			common.HandleError(hc, model.ErrInvalidStatus, "set application status")
			return
		}

		common.Guarded(hc, state.OpSetStatus, func() {
			app, err := h.ApplicationService.UpdateStatus(ctx, hc.User, appID, status)
			if err != nil {
				common.HandleError(hc, err, "set application status")
				return
			}

			refreshCard(hc, app)
			hc.Answer(formatting.GetApplicationStatusDisplay(app.Status).String())
		})
	})
}

// HandleSetPayment records the payment status picked on an inbox card
func HandleSetPayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCollegeAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		appID, index, err := common.ParseIDAndIndex(callback.Data, keyboard.PrefixPayment)
		if err != nil {
			common.HandleError(hc, err, "set payment status")
			return
		}
		status, ok := keyboard.PaymentStatusAt(index)
		if !ok {
			common.HandleError(hc, model.ErrInvalidPaymentStatus, "set payment status")
			return
		}

		common.Guarded(hc, state.OpSetPayment, func() {
			app, err := h.ApplicationService.UpdatePaymentStatus(ctx, hc.User, appID, service.PaymentUpdate{Status: status})
			if err != nil {
				common.HandleError(hc, err, "set payment status")
				return
			}

			refreshCard(hc, app)
			hc.Answer(formatting.GetPaymentStatusDisplay(app.PaymentStatus).String())
		})
	})
}

func refreshCard(hc *common.HandlerContext, app *model.Application) {
	err := hc.EditMessage(formatting.CollegeApplicationCard(app), keyboard.StatusKeyboard(app))
	if err != nil {
		hc.Handler.Logger.Error("Failed to refresh application card",
			zap.String("application_id", app.ID.String()),
			zap.Error(err))
	}
}
