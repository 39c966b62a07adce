package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/AngelinAnto/OneAdmit/internal/export"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const maxReviewedShown = 15

func (h *Handlers) HandleDashboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	dashboard, err := h.applicationService.CollegeDashboard(ctx, admin, h.now())
	if err != nil {
		h.replyError(ctx, b, chatID, err, "dashboard")
		return
	}

	h.sendHTML(ctx, b, chatID, formatting.DashboardText(dashboard), nil)
}

// HandleInbox sends every pending application with review buttons,
// then a short list of reviewed ones
func (h *Handlers) HandleInbox(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	inbox, err := h.applicationService.CollegeInbox(ctx, admin)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "inbox")
		return
	}

	if len(inbox.Pending) == 0 && len(inbox.Reviewed) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 No applications yet.")
		return
	}

	h.sendHTML(ctx, b, chatID, fmt.Sprintf("📥 <b>Inbox</b>\n⏳ Pending: %d\n🗂 Reviewed: %d",
		len(inbox.Pending), len(inbox.Reviewed)), nil)

	for _, app := range inbox.Pending {
		h.sendHTML(ctx, b, chatID, formatting.CollegeApplicationCard(app), keyboard.StatusKeyboard(app))
	}

	if len(inbox.Reviewed) == 0 {
		return
	}

	reviewed := inbox.Reviewed
	if len(reviewed) > maxReviewedShown {
		reviewed = reviewed[:maxReviewedShown]
	}
	var sb strings.Builder
	sb.WriteString("🗂 <b>Reviewed</b>\n\n")
	for _, app := range reviewed {
		fmt.Fprintf(&sb, "%s %s · %s\n<code>%s</code>\n",
			formatting.GetApplicationStatusDisplay(app.Status).Emoji,
			formatting.Escape(app.StudentName),
			formatting.Escape(app.Course),
			app.ID,
		)
	}
	if len(inbox.Reviewed) > len(reviewed) {
		fmt.Fprintf(&sb, "\n…and %d more. Use /export for the full list.", len(inbox.Reviewed)-len(reviewed))
	}
	h.sendHTML(ctx, b, chatID, sb.String(), nil)
}

func (h *Handlers) HandleSetStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	idRaw, statusRaw, found := strings.Cut(commandArgs(update.Message.Text), " ")
	id, err := parseID(idRaw)
	if !found || err != nil {
		h.usage(ctx, b, chatID, "/setstatus <application> <pending|submitted|under_review|accepted|rejected|waitlisted>")
		return
	}

	h.guarded(ctx, b, update, state.OpSetStatus, func() {
		app, err := h.applicationService.UpdateStatus(ctx, admin, id, parseStatus(statusRaw))
		if err != nil {
			h.replyError(ctx, b, chatID, err, "set status")
			return
		}
		h.sendHTML(ctx, b, chatID, "✅ Status updated\n\n"+formatting.CollegeApplicationCard(app), keyboard.StatusKeyboard(app))
	})
}

func (h *Handlers) HandleSetPayment(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	id, upd, err := parseSetPayment(commandArgs(update.Message.Text))
	if err != nil {
		h.usage(ctx, b, chatID, "/setpayment <application> <pending|completed|failed|refunded> [payment id] [amount]")
		return
	}

	h.guarded(ctx, b, update, state.OpSetPayment, func() {
		app, err := h.applicationService.UpdatePaymentStatus(ctx, admin, id, upd)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "set payment")
			return
		}
		h.sendHTML(ctx, b, chatID, "✅ Payment updated\n\n"+formatting.CollegeApplicationCard(app), nil)
	})
}

func (h *Handlers) HandleSetResult(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	fields := strings.Fields(commandArgs(update.Message.Text))
	if len(fields) != 2 {
		h.usage(ctx, b, chatID, "/setresult <application> <YYYY-MM-DD>")
		return
	}
	id, err := parseID(fields[0])
	if err != nil {
		h.usage(ctx, b, chatID, "/setresult <application> <YYYY-MM-DD>")
		return
	}
	date, err := parseDate(fields[1])
	if err != nil {
		h.usage(ctx, b, chatID, "/setresult <application> <YYYY-MM-DD>")
		return
	}

	h.guarded(ctx, b, update, state.OpSetResult, func() {
		app, err := h.applicationService.SetResultDate(ctx, admin, id, date)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "set result date")
			return
		}
		h.sendHTML(ctx, b, chatID, "✅ Result date set\n\n"+formatting.CollegeApplicationCard(app), nil)
	})
}

// HandleHistory shows the status audit trail of an application
func (h *Handlers) HandleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	id, err := parseID(commandArgs(update.Message.Text))
	if err != nil {
		h.usage(ctx, b, chatID, "/history <application>")
		return
	}

	app, err := h.applicationService.Get(ctx, admin, id)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "get application")
		return
	}
	changes, err := h.applicationService.History(ctx, admin, id)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "application history")
		return
	}

	h.sendHTML(ctx, b, chatID, formatting.HistoryText(app, changes), nil)
}

func (h *Handlers) HandleAddSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	form, err := parseAddSlot(commandArgs(update.Message.Text))
	if err != nil {
		h.usage(ctx, b, chatID, "/addslot <YYYY-MM-DD> <HH:MM> <HH:MM> <seats> <venue>")
		return
	}

	h.guarded(ctx, b, update, state.OpAddSlot, func() {
		slot, err := h.examSlotService.Create(ctx, admin, form)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "add exam slot")
			return
		}
		h.sendHTML(ctx, b, chatID, "✅ Exam slot added\n\n"+formatting.SlotLine(slot), keyboard.ManageSlotKeyboard(slot))
	})
}

// HandleMySlots sends each exam slot of the college with its controls
func (h *Handlers) HandleMySlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	slots, err := h.examSlotService.MySlots(ctx, admin)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "list exam slots")
		return
	}

	if len(slots) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 No exam slots yet. Add one with /addslot")
		return
	}

	for _, slot := range slots {
		h.sendHTML(ctx, b, chatID, formatting.SlotLine(slot), keyboard.ManageSlotKeyboard(slot))
	}
}

func (h *Handlers) HandleDeleteSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	id, err := parseID(commandArgs(update.Message.Text))
	if err != nil {
		h.usage(ctx, b, chatID, "/deleteslot <slot>")
		return
	}

	h.guarded(ctx, b, update, state.OpDeleteSlot, func() {
		if err := h.examSlotService.DeleteSlot(ctx, admin, id); err != nil {
			h.replyError(ctx, b, chatID, err, "delete exam slot")
			return
		}
		h.sendMessage(ctx, b, chatID, "🗑 Exam slot deleted.")
	})
}

func (h *Handlers) HandleAnnounce(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	form, err := parseAnnounce(commandArgs(update.Message.Text))
	if err != nil {
		h.usage(ctx, b, chatID, "/announce <general|deadline|exam|result|important> <title> | <content>")
		return
	}

	h.guarded(ctx, b, update, state.OpAnnounce, func() {
		a, err := h.announcementService.Publish(ctx, admin, form)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "publish announcement")
			return
		}
		h.sendHTML(ctx, b, chatID, "📢 Published\n\n"+formatting.AnnouncementCard(a), keyboard.WithdrawKeyboard(a.ID))
	})
}

func (h *Handlers) HandleUnannounce(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	id, err := parseID(commandArgs(update.Message.Text))
	if err != nil {
		h.usage(ctx, b, chatID, "/unannounce <id>")
		return
	}

	h.guarded(ctx, b, update, state.OpWithdraw, func() {
		if err := h.announcementService.Withdraw(ctx, admin, id); err != nil {
			h.replyError(ctx, b, chatID, err, "withdraw announcement")
			return
		}
		h.sendMessage(ctx, b, chatID, "🗑 Announcement withdrawn.")
	})
}

// HandleExport sends the college's applications as an Excel file
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	h.guarded(ctx, b, update, state.OpExport, func() {
		apps, err := h.applicationService.CollegeApplications(ctx, admin)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "export applications")
			return
		}

		var buf bytes.Buffer
		if err := export.WriteApplications(&buf, apps); err != nil {
			h.replyError(ctx, b, chatID, err, "export applications")
			return
		}

		filename := fmt.Sprintf("applications-%s.xlsx", h.now().Format("2006-01-02"))
		_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:   chatID,
			Document: &models.InputFileUpload{Filename: filename, Data: &buf},
			Caption:  fmt.Sprintf("📊 %d %s", len(apps), formatting.Plural(len(apps), "application", "applications")),
		})
		if err != nil {
			h.logger.Error("Failed to send export",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return
		}

		h.logger.Info("Applications exported",
			zap.Int64("telegram_id", admin.TelegramID),
			zap.Int("count", len(apps)),
		)
	})
}

// HandleEditCollege changes one field of the admin's college.
// "active yes|no" opens or closes the college for applications.
func (h *Handlers) HandleEditCollege(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	fieldsHint := "/editcollege <field> <value>\nFields: " + strings.Join(collegeFields, ", ") + ", active"

	args := commandArgs(update.Message.Text)
	if args == "" {
		college, err := h.collegeService.MyCollege(ctx, admin)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "get college")
			return
		}
		h.sendHTML(ctx, b, chatID, formatting.CollegeCard(college)+"\n"+formatting.Escape("ℹ️ Usage: "+fieldsHint), nil)
		return
	}

	field, value, _ := strings.Cut(args, " ")

	h.guarded(ctx, b, update, state.OpEditCollege, func() {
		var (
			college *model.College
			err     error
		)

		if strings.EqualFold(field, "active") {
			active, perr := parseYesNo(value)
			if perr != nil {
				h.usage(ctx, b, chatID, "/editcollege active <yes|no>")
				return
			}
			college, err = h.collegeService.SetActive(ctx, admin, active)
		} else {
			college, err = h.collegeService.MyCollege(ctx, admin)
			if err == nil {
				form := model.FormFromCollege(college)
				if ferr := applyCollegeField(&form, field, value); ferr != nil {
					h.usage(ctx, b, chatID, fieldsHint)
					return
				}
				college, err = h.collegeService.UpdateProfile(ctx, admin, form)
			}
		}

		if err != nil {
			h.replyError(ctx, b, chatID, err, "edit college")
			return
		}
		h.sendHTML(ctx, b, chatID, "✅ Saved\n\n"+formatting.CollegeCard(college), nil)
	})
}
