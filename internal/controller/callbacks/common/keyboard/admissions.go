package keyboard

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Callback data prefixes. Telegram limits callback data to 64 bytes,
// so enum values are passed by their index and a pair of ids in compact form.
const (
	PrefixRole       = "role:"        // role:student
	PrefixStatus     = "st:"          // st:<application_id>:<status index>
	PrefixPayment    = "pay:"         // pay:<application_id>:<payment status index>
	PrefixAppSlots   = "app_slots:"   // app_slots:<application_id>
	PrefixBookSlot   = "bk:"          // bk:<compact application_id>:<compact slot_id>
	PrefixCancelSlot = "cancel_slot:" // cancel_slot:<application_id>
	PrefixSlotOn     = "slot_on:"     // slot_on:<slot_id>
	PrefixSlotOff    = "slot_off:"    // slot_off:<slot_id>
	PrefixSlotDelete = "slot_del:"    // slot_del:<slot_id>
	PrefixAttendees  = "slot_att:"    // slot_att:<slot_id>
	PrefixWithdraw   = "ann_off:"     // ann_off:<announcement_id>
	Noop             = "noop"
)

// RoleKeyboard asks a new user for the account type
func RoleKeyboard() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("🎓 Student", PrefixRole+string(model.AccountTypeStudent)),
			Button("🏛 College", PrefixRole+string(model.AccountTypeCollege)),
		).
		Build()
}

// StatusKeyboard offers every application status except the current one,
// followed by the payment statuses
func StatusKeyboard(app *model.Application) *models.InlineKeyboardMarkup {
	var statuses []models.InlineKeyboardButton
	for i, status := range model.ApplicationStatuses {
		if status == app.Status {
			continue
		}
		statuses = append(statuses, Button(StatusLabel(status), fmt.Sprintf("%s%s:%d", PrefixStatus, app.ID, i)))
	}

	var payments []models.InlineKeyboardButton
	for i, status := range model.PaymentStatuses {
		if status == app.PaymentStatus {
			continue
		}
		payments = append(payments, Button("💳 "+string(status), fmt.Sprintf("%s%s:%d", PrefixPayment, app.ID, i)))
	}

	return NewBuilder().
		Chunked(2, statuses...).
		Chunked(3, payments...).
		Build()
}

// ApplicationKeyboard is attached to a student's application card
func ApplicationKeyboard(app *model.Application) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	if app.HasExamSlot() {
		b.Row(
			Button("🔁 Change exam slot", PrefixAppSlots+app.ID.String()),
			Button("✖️ Cancel exam slot", PrefixCancelSlot+app.ID.String()),
		)
	} else {
		b.Row(Button("📅 Pick exam slot", PrefixAppSlots+app.ID.String()))
	}
	return b.Build()
}

// CollegeKeyboard links the college website. It is nil when there is no usable website.
func CollegeKeyboard(c *model.College) *models.InlineKeyboardMarkup {
	url := WebsiteURL(c.Website)
	if url == "" {
		return nil
	}
	return NewBuilder().
		Row(URLButton("🌐 Website", url)).
		Build()
}

// WebsiteURL adds https:// to bare host names and drops other schemes
func WebsiteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t\n") {
		return ""
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return raw
	case strings.Contains(lower, "://"):
		return ""
	}
	return "https://" + raw
}

// BookSlotKeyboard lists bookable slots for one application. Full slots are shown but inert.
func BookSlotKeyboard(appID uuid.UUID, slots []*model.ExamSlot) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, slot := range slots {
		label := fmt.Sprintf("%s %s · %s", slot.Date.Format("02 Jan"), slot.StartTime, slot.Badge())
		data := BookSlotData(appID, slot.ID)
		if slot.IsFull() {
			data = Noop
		}
		b.Row(Button(label, data))
	}
	return b.Build()
}

// BookSlotData packs both ids into 47 bytes
func BookSlotData(appID, slotID uuid.UUID) string {
	return PrefixBookSlot + CompactID(appID) + ":" + CompactID(slotID)
}

// CompactID is the unpadded base64url form of the 16 id bytes (22 characters)
func CompactID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// ParseCompactID reverses CompactID
func ParseCompactID(raw string) (uuid.UUID, bool) {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ManageSlotKeyboard is attached to each slot in the admin's slot list
func ManageSlotKeyboard(slot *model.ExamSlot) *models.InlineKeyboardMarkup {
	toggle := Button("⏸ Deactivate", PrefixSlotOff+slot.ID.String())
	if !slot.IsActive {
		toggle = Button("▶️ Activate", PrefixSlotOn+slot.ID.String())
	}
	return NewBuilder().
		Row(toggle, Button("👥 Attendees", PrefixAttendees+slot.ID.String())).
		Row(Button("🗑 Delete", PrefixSlotDelete+slot.ID.String())).
		Build()
}

// WithdrawKeyboard is attached to a published announcement
func WithdrawKeyboard(id uuid.UUID) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("🗑 Withdraw", PrefixWithdraw+id.String())).
		Build()
}

// StatusAt resolves a status index from callback data
func StatusAt(raw string) (model.ApplicationStatus, bool) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= len(model.ApplicationStatuses) {
		return "", false
	}
	return model.ApplicationStatuses[i], true
}

// PaymentStatusAt resolves a payment status index from callback data
func PaymentStatusAt(raw string) (model.PaymentStatus, bool) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= len(model.PaymentStatuses) {
		return "", false
	}
	return model.PaymentStatuses[i], true
}

// StatusLabel is the short button label of a status
func StatusLabel(status model.ApplicationStatus) string {
	switch status {
	case model.ApplicationStatusPending:
		return "⏳ Pending"
	case model.ApplicationStatusSubmitted:
		return "📨 Submitted"
	case model.ApplicationStatusUnderReview:
		return "🔍 Under review"
	case model.ApplicationStatusAccepted:
		return "✅ Accept"
	case model.ApplicationStatusRejected:
		return "❌ Reject"
	case model.ApplicationStatusWaitlisted:
		return "🕓 Waitlist"
	}
	return string(status)
}
