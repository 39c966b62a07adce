package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/AngelinAnto/OneAdmit/internal/filter"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const maxAnnouncementsShown = 10

// usage tells the user how a command is called
func (h *Handlers) usage(ctx context.Context, b *bot.Bot, chatID int64, line string) {
	h.sendMessage(ctx, b, chatID, "ℹ️ Usage: "+line)
}

// HandleColleges lists active colleges matching the user's filter.
// Arguments replace the saved filter, "all" clears it.
func (h *Handlers) HandleColleges(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	switch {
	case strings.EqualFold(args, "all"):
		h.stateManager.SetFilter(telegramID, filter.FilterSet{})
	case args != "":
		h.stateManager.SetFilter(telegramID, parseCollegeQuery(args))
	}
	f := h.stateManager.Filter(telegramID)

	colleges, err := h.collegeService.Discover(ctx, f)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "discover colleges")
		return
	}

	if len(colleges) == 0 {
		text := "🔍 No colleges found."
		if !f.IsEmpty() {
			text += "\n\nTry fewer filters, or /colleges all to see everything."
		}
		h.sendMessage(ctx, b, chatID, text)
		return
	}

	pages := formatting.PageCount(len(colleges), formatting.CollegesPerPage)
	h.sendHTML(ctx, b, chatID, formatting.CollegeListPage(colleges, f, 0), keyboard.CollegesPageKeyboard(0, pages))
}

func (h *Handlers) HandleCollege(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	chatID := update.Message.Chat.ID
	code := commandArgs(update.Message.Text)
	if code == "" {
		h.usage(ctx, b, chatID, "/college <code>")
		return
	}

	college, err := h.collegeService.GetByCode(ctx, code)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "get college")
		return
	}

	h.sendHTML(ctx, b, chatID, formatting.CollegeCard(college), keyboard.CollegeKeyboard(college))
}

// HandleApply submits a new application for the student
func (h *Handlers) HandleApply(ctx context.Context, b *bot.Bot, update *models.Update) {
	student, ok := h.requireStudent(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	req, err := parseApply(commandArgs(update.Message.Text))
	if err != nil {
		h.usage(ctx, b, chatID, "/apply <code> <course> [hostel] [scholarship]")
		return
	}

	h.guarded(ctx, b, update, state.OpApply, func() {
		app, err := h.applicationService.Apply(ctx, student, req)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "apply")
			return
		}

		h.logger.Info("Application submitted",
			zap.String("application_id", app.ID.String()),
			zap.String("college_code", req.CollegeCode),
			zap.Int64("telegram_id", student.TelegramID),
		)
		h.sendHTML(ctx, b, chatID, "✅ Application submitted!\n\n"+formatting.StudentApplicationCard(app), keyboard.ApplicationKeyboard(app))
	})
}

// HandleApplications shows the student's applications grouped by outcome
func (h *Handlers) HandleApplications(ctx context.Context, b *bot.Bot, update *models.Update) {
	student, ok := h.requireStudent(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	groups, err := h.applicationService.StudentApplications(ctx, student)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "list applications")
		return
	}

	total := len(groups.Pending) + len(groups.Accepted) + len(groups.Rejected)
	if total == 0 {
		h.sendMessage(ctx, b, chatID, "📭 You have no applications yet.\n\nFind a college with /colleges, then /apply.")
		return
	}

	h.sendHTML(ctx, b, chatID, fmt.Sprintf("📋 <b>Your applications</b>\n⏳ In progress: %d\n✅ Accepted: %d\n❌ Not selected: %d",
		len(groups.Pending), len(groups.Accepted), len(groups.Rejected)), nil)

	for _, app := range groups.Pending {
		h.sendHTML(ctx, b, chatID, formatting.StudentApplicationCard(app), keyboard.ApplicationKeyboard(app))
	}
	for _, app := range groups.Accepted {
		h.sendHTML(ctx, b, chatID, formatting.StudentApplicationCard(app), keyboard.ApplicationKeyboard(app))
	}
	for _, app := range groups.Rejected {
		h.sendHTML(ctx, b, chatID, formatting.StudentApplicationCard(app), nil)
	}
}

// HandleSlots lists upcoming bookable slots of a college
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	chatID := update.Message.Chat.ID
	code := commandArgs(update.Message.Text)
	if code == "" {
		h.usage(ctx, b, chatID, "/slots <code>")
		return
	}

	college, err := h.collegeService.GetByCode(ctx, code)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "get college")
		return
	}

	slots, err := h.examSlotService.Upcoming(ctx, college.ID, h.now())
	if err != nil {
		h.replyError(ctx, b, chatID, err, "list exam slots")
		return
	}

	if len(slots) == 0 {
		h.sendHTML(ctx, b, chatID, fmt.Sprintf("📭 <b>%s</b> has no upcoming exam slots.", formatting.Escape(college.Name)), nil)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 <b>Exam slots · %s</b>\n\n", formatting.Escape(college.Name))
	for _, slot := range slots {
		sb.WriteString(formatting.SlotLine(slot))
	}
	sb.WriteString("\nBook with /book &lt;application&gt; &lt;slot&gt; or from /applications")

	h.sendHTML(ctx, b, chatID, sb.String(), nil)
}

// HandleBook books or changes the exam slot of an application
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	student, ok := h.requireStudent(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	fields := strings.Fields(commandArgs(update.Message.Text))
	if len(fields) != 2 {
		h.usage(ctx, b, chatID, "/book <application> <slot>")
		return
	}
	appID, err := parseID(fields[0])
	if err != nil {
		h.usage(ctx, b, chatID, "/book <application> <slot>")
		return
	}
	slotID, err := parseID(fields[1])
	if err != nil {
		h.usage(ctx, b, chatID, "/book <application> <slot>")
		return
	}

	h.guarded(ctx, b, update, state.OpBook, func() {
		app, err := h.examSlotService.BookForApplication(ctx, student, appID, slotID)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "book exam slot")
			return
		}
		h.sendHTML(ctx, b, chatID, "✅ Exam slot booked!\n\n"+formatting.StudentApplicationCard(app), keyboard.ApplicationKeyboard(app))
	})
}

func (h *Handlers) HandleCancelSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	student, ok := h.requireStudent(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	appID, err := parseID(commandArgs(update.Message.Text))
	if err != nil {
		h.usage(ctx, b, chatID, "/cancelslot <application>")
		return
	}

	h.guarded(ctx, b, update, state.OpCancelSlot, func() {
		app, err := h.examSlotService.CancelBooking(ctx, student, appID)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "cancel exam slot")
			return
		}
		h.sendHTML(ctx, b, chatID, "🗑 Exam slot released.\n\n"+formatting.StudentApplicationCard(app), keyboard.ApplicationKeyboard(app))
	})
}

// HandleAnnouncements shows news from colleges the student applied to
func (h *Handlers) HandleAnnouncements(ctx context.Context, b *bot.Bot, update *models.Update) {
	student, ok := h.requireStudent(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	announcements, err := h.announcementService.ForStudent(ctx, student)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "list announcements")
		return
	}

	if len(announcements) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 No announcements from your colleges.")
		return
	}

	if len(announcements) > maxAnnouncementsShown {
		announcements = announcements[:maxAnnouncementsShown]
	}
	cards := make([]string, 0, len(announcements))
	for _, a := range announcements {
		cards = append(cards, formatting.AnnouncementCard(a))
	}

	h.sendHTML(ctx, b, chatID, "📢 <b>Announcements</b>\n\n"+strings.Join(cards, "\n"), nil)
}
